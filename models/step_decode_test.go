package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestStepFieldsJSONToleratesWrongTypes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StepFields
	}{
		{"well formed", `{"title":"Mix","reagents":["salt"],"timing":"5 min","equipment":["beaker"],"notes":"gently"}`,
			StepFields{Title: "Mix", Reagents: []string{"salt"}, Timing: "5 min", Equipment: []string{"beaker"}, Notes: "gently"}},
		{"numeric timing", `{"title":"Mix","timing":30}`, StepFields{Title: "Mix"}},
		{"numeric title", `{"title":7,"timing":"1 h"}`, StepFields{Timing: "1 h"}},
		{"scalar reagents", `{"reagents":"salt","equipment":{"name":"beaker"}}`, StepFields{}},
		{"mixed list items", `{"reagents":["salt",3,null,{"x":1},"water"]}`, StepFields{Reagents: []string{"salt", "water"}}},
		{"empty list", `{"equipment":[]}`, StepFields{Equipment: []string{}}},
		{"nulls", `{"title":null,"reagents":null}`, StepFields{}},
		{"null step", `null`, StepFields{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StepFields
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestStepFieldsJSONRejectsNonObjects(t *testing.T) {
	for _, in := range []string{`"Mix"`, `42`, `["Mix"]`} {
		var got StepFields
		if err := json.Unmarshal([]byte(in), &got); err == nil {
			t.Fatalf("expected an error for %s", in)
		}
	}
}

func TestProtocolInputJSONKeepsOtherSteps(t *testing.T) {
	var in ProtocolInput
	if err := json.Unmarshal([]byte(`{"steps":[{"title":"A","timing":30},{"title":"B","timing":"2 min"}]}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []StepFields{{Title: "A"}, {Title: "B", Timing: "2 min"}}
	if diff := cmp.Diff(want, in.Steps); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestStepFieldsYAMLToleratesWrongTypes(t *testing.T) {
	doc := `
steps:
  - title: Mix
    timing: 30
    reagents: salt
  - title: Spin
    timing: 5 min
    equipment: [centrifuge, 4, tube]
`
	var in ProtocolInput
	if err := yaml.Unmarshal([]byte(doc), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []StepFields{
		{Title: "Mix"},
		{Title: "Spin", Timing: "5 min", Equipment: []string{"centrifuge", "tube"}},
	}
	if diff := cmp.Diff(want, in.Steps); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestStepFieldsYAMLRejectsNonMappings(t *testing.T) {
	var in ProtocolInput
	if err := yaml.Unmarshal([]byte("steps:\n  - just text\n"), &in); err == nil {
		t.Fatalf("expected an error for a scalar step")
	}
}
