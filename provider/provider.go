package provider

import (
	"context"
	"errors"

	"github.com/mohammad-safakhou/labchain/models"
)

// ErrUnavailable is returned by Unavailable. Callers take the rule-based path
// without treating it as a failure.
var ErrUnavailable = errors.New("generator not configured")

// Generator is the model-backed capability behind /standardize and
// /autocomplete.
type Generator interface {
	// GenerateProtocol structures free text into a protocol. Returned steps
	// carry ids and orders matching their position.
	GenerateProtocol(ctx context.Context, text string, hints map[string]any) (models.ProtocolDraft, error)
	// SuggestNextStep proposes the step that should follow steps.
	SuggestNextStep(ctx context.Context, steps []models.StepFields, partial string) (models.StepSuggestion, error)
}

type unavailable struct{}

// Unavailable is the Generator used when no backend is configured.
var Unavailable Generator = unavailable{}

func (unavailable) GenerateProtocol(context.Context, string, map[string]any) (models.ProtocolDraft, error) {
	return models.ProtocolDraft{}, ErrUnavailable
}

func (unavailable) SuggestNextStep(context.Context, []models.StepFields, string) (models.StepSuggestion, error) {
	return models.StepSuggestion{}, ErrUnavailable
}

// IsAvailable reports whether g is a real backend.
func IsAvailable(g Generator) bool {
	_, none := g.(unavailable)
	return g != nil && !none
}
