package langchain

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed protocol_schema.json
var protocolSchemaJSON string

//go:embed step_schema.json
var stepSchemaJSON string

type compiled struct {
	once   sync.Once
	name   string
	source string
	schema *jsonschema.Schema
	err    error
}

func (c *compiled) get() (*jsonschema.Schema, error) {
	c.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(c.name, strings.NewReader(c.source)); err != nil {
			c.err = fmt.Errorf("add schema resource %s: %w", c.name, err)
			return
		}
		c.schema, c.err = compiler.Compile(c.name)
		if c.err != nil {
			c.err = fmt.Errorf("compile %s: %w", c.name, c.err)
		}
	})
	return c.schema, c.err
}

var (
	protocolSchema = &compiled{name: "protocol_schema.json", source: protocolSchemaJSON}
	stepSchema     = &compiled{name: "step_schema.json", source: stepSchemaJSON}
)

// validate checks raw JSON against the schema and decodes it into out.
func validate(c *compiled, raw string, out any) error {
	schema, err := c.get()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("reply is not valid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("reply does not match %s: %w", c.name, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}
