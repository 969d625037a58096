package models

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON requires a JSON object but tolerates wrong-typed fields:
// a non-string title, timing or notes decodes as "", a non-array list decodes
// as nil and non-string list items are dropped.
func (s *StepFields) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("step must be an object: %w", err)
	}
	*s = StepFields{
		Title:     jsonString(raw["title"]),
		Reagents:  jsonStrings(raw["reagents"]),
		Timing:    jsonString(raw["timing"]),
		Equipment: jsonStrings(raw["equipment"]),
		Notes:     jsonString(raw["notes"]),
	}
	return nil
}

func jsonString(raw json.RawMessage) string {
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}

func jsonStrings(raw json.RawMessage) []string {
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v, ok := item.(string); ok {
			out = append(out, v)
		}
	}
	return out
}

// UnmarshalYAML applies the same leniency as UnmarshalJSON.
func (s *StepFields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*s = StepFields{}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("step must be a mapping (line %d)", node.Line)
	}
	out := StepFields{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		value := node.Content[i+1]
		switch node.Content[i].Value {
		case "title":
			out.Title = yamlString(value)
		case "reagents":
			out.Reagents = yamlStrings(value)
		case "timing":
			out.Timing = yamlString(value)
		case "equipment":
			out.Equipment = yamlStrings(value)
		case "notes":
			out.Notes = yamlString(value)
		}
	}
	*s = out
	return nil
}

func yamlString(node *yaml.Node) string {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str" {
		return node.Value
	}
	return ""
}

func yamlStrings(node *yaml.Node) []string {
	if node.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind == yaml.ScalarNode && item.ShortTag() == "!!str" {
			out = append(out, item.Value)
		}
	}
	return out
}
