package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mohammad-safakhou/labchain/models"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCMD()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExtractFromStdin(t *testing.T) {
	out, err := run(t, "Step 1: Mix\nadd water\nStep 2: Heat", "extract")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	var res models.StandardizeResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Confidence != 0.5 || len(res.ExtractedSteps) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.ExtractedSteps[0].Notes != " add water" {
		t.Fatalf("unexpected notes %q", res.ExtractedSteps[0].Notes)
	}
}

func TestExtractYAMLFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "protocol.txt")
	if err := os.WriteFile(path, []byte("Method: Centrifuge\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "", "extract", path, "-o", "yaml")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	var res models.StandardizeResult
	if err := yaml.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Protocol.Steps) != 1 || res.Protocol.Steps[0].Title != "Method: Centrifuge" {
		t.Fatalf("unexpected steps: %+v", res.Protocol.Steps)
	}
}

func TestExtractRejectsUnknownFormat(t *testing.T) {
	if _, err := run(t, "", "extract", "-o", "xml"); err == nil {
		t.Fatalf("expected an error for xml output")
	}
}

func TestAnalyze(t *testing.T) {
	doc := `{"steps":[{"title":"Mix","reagents":["salt"],"timing":"1 min","equipment":["beaker"]},{"title":"Stir"}]}`
	out, err := run(t, doc, "analyze")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var report models.CompletenessReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"Step 2: reagents, timing, equipment"}, report.MissingParams); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if report.CompletenessScore != 0.62 {
		t.Fatalf("expected 0.62 got %v", report.CompletenessScore)
	}
}

func TestAnalyzeYAMLSingleStep(t *testing.T) {
	doc := "steps:\n  - title: Mix\n  - title: Stir\n    timing: 5 min\n"
	out, err := run(t, doc, "analyze", "--step", "2")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var report models.CompletenessReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"Step 2: reagents, equipment"}, report.MissingParams); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestAnalyzeStepOutOfRange(t *testing.T) {
	if _, err := run(t, `{"steps":[]}`, "analyze", "--step", "1"); err == nil {
		t.Fatalf("expected an out of range error")
	}
}
