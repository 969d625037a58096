package langchain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/labchain/models"
)

const (
	parserSystemPrompt    = "You are a scientific protocol parser. Return only valid JSON."
	assistantSystemPrompt = "You are a scientific protocol assistant. Return only valid JSON."
)

// standardizePrompt embeds text and, when present, the caller's context hints
// as a JSON object.
func standardizePrompt(text string, hints map[string]any) string {
	contextBlock := ""
	if len(hints) > 0 {
		if b, err := json.Marshal(hints); err == nil {
			contextBlock = "\nAdditional context:\n" + string(b) + "\n"
		}
	}
	return fmt.Sprintf(`Convert the following laboratory protocol description into a structured JSON format.
Extract steps, reagents, equipment, timing, and notes.

Protocol text:
%s
%s
Return a JSON object with this structure:
{
    "title": "Protocol title",
    "description": "Brief description",
    "steps": [
        {
            "title": "Step title",
            "reagents": ["reagent1", "reagent2"],
            "timing": "e.g., 30 minutes",
            "equipment": ["equipment1"],
            "notes": "Additional notes"
        }
    ]
}
`, text, contextBlock)
}

func autocompletePrompt(steps []models.StepFields, partial string) string {
	lines := make([]string, len(steps))
	for i, s := range steps {
		lines[i] = fmt.Sprintf("Step %d: %s", i+1, s.Title)
	}
	partialLine := ""
	if partial != "" {
		partialLine = "Partial text: " + partial
	}
	return fmt.Sprintf(`Based on the following protocol steps, suggest the next logical step:

Current steps:
%s

%s

Suggest the next step in this format:
{
    "title": "Step title",
    "reagents": ["suggested reagents"],
    "timing": "suggested timing",
    "equipment": ["suggested equipment"],
    "notes": "reasoning or notes"
}
`, strings.Join(lines, "\n"), partialLine)
}
