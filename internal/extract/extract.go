// Package extract segments free-form protocol text into steps without a
// language model. It backs /standardize when no generator is configured or
// the generator fails.
package extract

import (
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/labchain/models"
)

const (
	// FallbackConfidence marks a result as rule-based rather than model-derived.
	FallbackConfidence = 0.5
	// DefaultTitle is the protocol title used when none can be inferred.
	DefaultTitle = "Extracted Protocol"
)

var headerKeywords = []string{"step", "procedure", "method"}

// IsStepHeader reports whether line opens a new step.
func IsStepHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Steps splits text into step records in a single greedy pass. Lines seen
// before the first header are dropped.
func Steps(text string) []models.StepRecord {
	steps := []models.StepRecord{}
	var current *models.StepRecord

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case IsStepHeader(line):
			if current != nil {
				steps = append(steps, *current)
			}
			current = newStep(len(steps)+1, line)
		case current != nil:
			current.Notes += " " + line
		}
	}
	if current != nil {
		steps = append(steps, *current)
	}
	return steps
}

// Standardize runs Steps and wraps the result the way /standardize reports it.
func Standardize(text string) models.StandardizeResult {
	steps := Steps(text)
	return models.StandardizeResult{
		Protocol: models.ProtocolDraft{
			Title:       DefaultTitle,
			Description: "",
			Steps:       steps,
		},
		Confidence:     FallbackConfidence,
		ExtractedSteps: steps,
	}
}

// StepID returns the id for the step at 1-based position order.
func StepID(order int) string {
	return fmt.Sprintf("step-%d", order)
}

func newStep(order int, title string) *models.StepRecord {
	return &models.StepRecord{
		ID:        StepID(order),
		Order:     order,
		Title:     title,
		Reagents:  []string{},
		Timing:    "",
		Equipment: []string{},
		Notes:     "",
	}
}
