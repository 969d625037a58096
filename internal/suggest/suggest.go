// Package suggest provides the generic next-step suggestions used when no
// generator is available.
package suggest

import "github.com/mohammad-safakhou/labchain/models"

const (
	FallbackConfidence = 0.3
	FallbackReasoning  = "Generic suggestion"
)

var generic = []models.StepSuggestion{
	{
		Title:     "Document Results",
		Reagents:  []string{},
		Timing:    "",
		Equipment: []string{},
		Notes:     "Record observations and results",
	},
	{
		Title:     "Clean Up",
		Reagents:  []string{},
		Timing:    "",
		Equipment: []string{},
		Notes:     "Clean and store equipment",
	},
}

// Fallback returns the first generic suggestion. The current steps are not
// inspected.
func Fallback(_ []models.StepFields) models.AutocompleteResult {
	first := generic[0]
	first.Reagents = append([]string{}, first.Reagents...)
	first.Equipment = append([]string{}, first.Equipment...)
	return models.AutocompleteResult{
		Suggestions: []models.StepSuggestion{first},
		Confidence:  FallbackConfidence,
		Reasoning:   FallbackReasoning,
	}
}
