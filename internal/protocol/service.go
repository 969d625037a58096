// Package protocol ties the model-backed generator to the rule-based
// extractor, suggester and completeness analyzer.
package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mohammad-safakhou/labchain/internal/cache"
	"github.com/mohammad-safakhou/labchain/internal/completeness"
	"github.com/mohammad-safakhou/labchain/internal/extract"
	"github.com/mohammad-safakhou/labchain/internal/suggest"
	"github.com/mohammad-safakhou/labchain/internal/telemetry"
	"github.com/mohammad-safakhou/labchain/models"
	"github.com/mohammad-safakhou/labchain/provider"
)

// Operation names used in logs, metrics and cache keys.
const (
	OpStandardize   = "standardize"
	OpAutocomplete  = "autocomplete"
	OpDetectMissing = "detect_missing"
)

// Confidence reported for model-backed results.
const (
	ModelStandardizeConfidence  = 0.85
	ModelAutocompleteConfidence = 0.80
	ModelAutocompleteReasoning  = "Generated based on protocol context"
)

// Service answers the three protocol operations. It is safe for concurrent
// use as long as its collaborators are.
type Service struct {
	gen        provider.Generator
	cache      cache.Cache
	cacheScope string
	metrics    *telemetry.Metrics
	logger     *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithCache stores model-backed standardization results in c. scope names
// the generator (provider and model) and is part of every key.
func WithCache(c cache.Cache, scope string) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheScope = scope
	}
}

// WithMetrics records operations on m.
func WithMetrics(m *telemetry.Metrics) Option { return func(s *Service) { s.metrics = m } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.logger = l } }

// NewService builds a Service around gen; a nil gen means provider.Unavailable.
func NewService(gen provider.Generator, opts ...Option) *Service {
	if gen == nil {
		gen = provider.Unavailable
	}
	s := &Service{gen: gen, cache: cache.Noop{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "protocol")
	return s
}

// Standardize structures text, preferring a cached or freshly generated
// model result and falling back to rule-based extraction.
func (s *Service) Standardize(ctx context.Context, text string, hints map[string]any) models.StandardizeResult {
	key, cacheable := s.standardizeKey(text, hints)
	if cacheable {
		if res, ok := s.cached(ctx, key); ok {
			s.metrics.ObserveRequest(OpStandardize, telemetry.SourceCache)
			return res
		}
	}

	draft, err := s.gen.GenerateProtocol(ctx, text, hints)
	if err != nil {
		s.generatorFailed(OpStandardize, err)
		s.metrics.ObserveRequest(OpStandardize, telemetry.SourceFallback)
		return extract.Standardize(text)
	}

	res := models.StandardizeResult{
		Protocol:       draft,
		Confidence:     ModelStandardizeConfidence,
		ExtractedSteps: draft.Steps,
	}
	if cacheable {
		s.store(ctx, key, res)
	}
	s.metrics.ObserveRequest(OpStandardize, telemetry.SourceModel)
	return res
}

// Autocomplete suggests the next step.
func (s *Service) Autocomplete(ctx context.Context, steps []models.StepFields, partial string) models.AutocompleteResult {
	suggestion, err := s.gen.SuggestNextStep(ctx, steps, partial)
	if err != nil {
		s.generatorFailed(OpAutocomplete, err)
		s.metrics.ObserveRequest(OpAutocomplete, telemetry.SourceFallback)
		return suggest.Fallback(steps)
	}
	s.metrics.ObserveRequest(OpAutocomplete, telemetry.SourceModel)
	return models.AutocompleteResult{
		Suggestions: []models.StepSuggestion{suggestion},
		Confidence:  ModelAutocompleteConfidence,
		Reasoning:   ModelAutocompleteReasoning,
	}
}

// DetectMissing reports missing fields for all steps, or for the single
// step at stepIndex when it is non-nil. The caller checks the index range.
func (s *Service) DetectMissing(steps []models.StepFields, stepIndex *int) models.CompletenessReport {
	var report models.CompletenessReport
	if stepIndex != nil {
		report = completeness.AnalyzeStep(steps, *stepIndex)
	} else {
		report = completeness.Analyze(steps)
	}
	s.metrics.ObserveRequest(OpDetectMissing, telemetry.SourceRules)
	s.metrics.ObserveCompleteness(report.CompletenessScore)
	return report
}

// HasGenerator reports whether a model backend is configured.
func (s *Service) HasGenerator() bool {
	return provider.IsAvailable(s.gen)
}

func (s *Service) generatorFailed(op string, err error) {
	if errors.Is(err, provider.ErrUnavailable) {
		return
	}
	s.metrics.ObserveGeneratorFailure(op)
	s.logger.Warn("generator failed, using fallback", "operation", op, "error", err)
}

// standardizeKey keys a result by generator scope, text and hints. Hints that
// cannot be encoded make the request uncacheable.
func (s *Service) standardizeKey(text string, hints map[string]any) (string, bool) {
	encoded := ""
	if len(hints) > 0 {
		b, err := json.Marshal(hints)
		if err != nil {
			s.logger.Warn("hints not cacheable", "error", err)
			return "", false
		}
		encoded = string(b)
	}
	return cache.Key(OpStandardize, s.cacheScope, text, encoded), true
}

func (s *Service) cached(ctx context.Context, key string) (models.StandardizeResult, bool) {
	var res models.StandardizeResult
	b, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("cache read failed", "error", err)
		}
		return res, false
	}
	if err := json.Unmarshal(b, &res); err != nil {
		s.logger.Warn("cache entry unreadable", "error", err)
		return res, false
	}
	return res, true
}

func (s *Service) store(ctx context.Context, key string, res models.StandardizeResult) {
	b, err := json.Marshal(res)
	if err != nil {
		s.logger.Warn("cache encode failed", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, b); err != nil {
		s.logger.Warn("cache write failed", "error", err)
	}
}
