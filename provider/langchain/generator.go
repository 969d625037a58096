// Package langchain implements provider.Generator on top of a langchaingo
// chat model.
package langchain

import (
	"context"
	"fmt"
	"time"

	"github.com/mohammad-safakhou/labchain/internal/extract"
	"github.com/mohammad-safakhou/labchain/internal/helpers"
	"github.com/mohammad-safakhou/labchain/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// Tuning holds sampling settings for one operation.
type Tuning struct {
	Temperature float64
	MaxTokens   int
}

// Options configures a Generator.
type Options struct {
	Standardize  Tuning
	Autocomplete Tuning
	// Timeout bounds each model call; zero leaves the caller's context alone.
	Timeout time.Duration
}

// Generator asks a chat model for structured protocols and next steps.
type Generator struct {
	model llms.Model
	opts  Options
}

// New wraps model.
func New(model llms.Model, opts Options) *Generator {
	return &Generator{model: model, opts: opts}
}

type protocolReply struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Steps       []stepReply `json:"steps"`
}

type stepReply struct {
	Title     *string  `json:"title"`
	Reagents  []string `json:"reagents"`
	Timing    *string  `json:"timing"`
	Equipment []string `json:"equipment"`
	Notes     *string  `json:"notes"`
}

// GenerateProtocol implements provider.Generator. Non-empty hints are added
// to the prompt as context.
func (g *Generator) GenerateProtocol(ctx context.Context, text string, hints map[string]any) (models.ProtocolDraft, error) {
	raw, err := g.complete(ctx, parserSystemPrompt, standardizePrompt(text, hints), g.opts.Standardize)
	if err != nil {
		return models.ProtocolDraft{}, err
	}
	var reply protocolReply
	if err := validate(protocolSchema, raw, &reply); err != nil {
		return models.ProtocolDraft{}, err
	}

	draft := models.ProtocolDraft{
		Title:       orDefault(reply.Title, extract.DefaultTitle),
		Description: orDefault(reply.Description, ""),
		Steps:       make([]models.StepRecord, 0, len(reply.Steps)),
	}
	for i, s := range reply.Steps {
		order := i + 1
		draft.Steps = append(draft.Steps, models.StepRecord{
			ID:        extract.StepID(order),
			Order:     order,
			Title:     orDefault(s.Title, fmt.Sprintf("Step %d", order)),
			Reagents:  helpers.PlainTexts(s.Reagents),
			Timing:    orDefault(s.Timing, ""),
			Equipment: helpers.PlainTexts(s.Equipment),
			Notes:     orDefault(s.Notes, ""),
		})
	}
	return draft, nil
}

// SuggestNextStep implements provider.Generator.
func (g *Generator) SuggestNextStep(ctx context.Context, steps []models.StepFields, partial string) (models.StepSuggestion, error) {
	raw, err := g.complete(ctx, assistantSystemPrompt, autocompletePrompt(steps, partial), g.opts.Autocomplete)
	if err != nil {
		return models.StepSuggestion{}, err
	}
	var reply stepReply
	if err := validate(stepSchema, raw, &reply); err != nil {
		return models.StepSuggestion{}, err
	}
	return models.StepSuggestion{
		Title:     orDefault(reply.Title, ""),
		Reagents:  helpers.PlainTexts(reply.Reagents),
		Timing:    orDefault(reply.Timing, ""),
		Equipment: helpers.PlainTexts(reply.Equipment),
		Notes:     orDefault(reply.Notes, ""),
	}, nil
}

// complete sends one system+user exchange and returns the JSON in the reply.
func (g *Generator) complete(ctx context.Context, system, prompt string, tuning Tuning) (string, error) {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}
	var callOpts []llms.CallOption
	callOpts = append(callOpts, llms.WithTemperature(tuning.Temperature))
	if tuning.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(tuning.MaxTokens))
	}

	resp, err := g.model.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	raw, err := helpers.ExtractJSON(resp.Choices[0].Content)
	if err != nil {
		return "", fmt.Errorf("parse reply: %w", err)
	}
	return raw, nil
}

// orDefault sanitizes a model string, substituting def when it is absent
// or empty once sanitized.
func orDefault(s *string, def string) string {
	if s == nil {
		return def
	}
	if v := helpers.PlainText(*s); v != "" {
		return v
	}
	return def
}
