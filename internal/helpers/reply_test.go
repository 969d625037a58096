package helpers

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"json fence", "Here you go:\n```json\n{\"a\": [1, 2]}\n```\nThanks", `{"a": [1, 2]}`},
		{"plain fence", "```\n{\"b\": true}\n```", `{"b": true}`},
		{"fence with other tag", "```JSON\n{\"c\": 3}\n```", `{"c": 3}`},
		{"prose around", `Sure! {"title": "x"} hope this helps`, `{"title": "x"}`},
		{"braces in strings", `{"notes": "use {curly} and ] brackets"} trailing }`, `{"notes": "use {curly} and ] brackets"}`},
		{"escaped quote", `{"t": "say \"hi\" {"}`, `{"t": "say \"hi\" {"}`},
		{"array", "[1, [2, 3]]", "[1, [2, 3]]"},
		{"bom", "\uFEFF{\"d\":4}", `{"d":4}`},
		{"skips unbalanced prefix", `{ oops ] {"e":5}`, `{"e":5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.reply)
			if err != nil {
				t.Fatalf("ExtractJSON: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	for _, reply := range []string{"", "no json here", "{ never closed", "```json\n```"} {
		if _, err := ExtractJSON(reply); !errors.Is(err, ErrNoJSON) {
			t.Fatalf("%q: expected ErrNoJSON, got %v", reply, err)
		}
	}
}
