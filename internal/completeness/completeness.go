// Package completeness scores how fully a protocol's steps are specified and
// suggests what to add.
package completeness

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mohammad-safakhou/labchain/models"
)

// Field names in check order.
const (
	FieldTitle     = "title"
	FieldReagents  = "reagents"
	FieldTiming    = "timing"
	FieldEquipment = "equipment"
)

const fieldsPerStep = 4

// Suggestion texts. Timing is reported as a bare string and the list fields
// as one-element lists.
//
// TODO: report timing as a list too once the notebook UI accepts both shapes.
const (
	ReagentsSuggestion  = "Consider adding required reagents"
	TimingSuggestion    = "Consider adding timing/duration"
	EquipmentSuggestion = "Consider adding required equipment"
)

// Analyze inspects every step and builds the report.
func Analyze(steps []models.StepFields) models.CompletenessReport {
	report := newReport()
	filled := 0
	for i, step := range steps {
		report.add(i+1, step)
		filled += filledFields(step)
	}
	report.CompletenessScore = score(filled, len(steps))
	return report.CompletenessReport
}

// AnalyzeStep analyzes only the step at the 0-based index. Annotations keep
// the step's position within the full protocol. The caller checks bounds.
func AnalyzeStep(steps []models.StepFields, index int) models.CompletenessReport {
	report := newReport()
	step := steps[index]
	report.add(index+1, step)
	report.CompletenessScore = score(filledFields(step), 1)
	return report.CompletenessReport
}

// MissingFields returns the missing field names of a step in check order.
func MissingFields(step models.StepFields) []string {
	var missing []string
	if strings.TrimSpace(step.Title) == "" {
		missing = append(missing, FieldTitle)
	}
	if len(step.Reagents) == 0 {
		missing = append(missing, FieldReagents)
	}
	if strings.TrimSpace(step.Timing) == "" {
		missing = append(missing, FieldTiming)
	}
	if len(step.Equipment) == 0 {
		missing = append(missing, FieldEquipment)
	}
	return missing
}

type report struct {
	models.CompletenessReport
}

func newReport() *report {
	return &report{models.CompletenessReport{
		MissingParams: []string{},
		Suggestions:   map[string]map[string]any{},
	}}
}

func (r *report) add(position int, step models.StepFields) {
	missing := MissingFields(step)
	if len(missing) == 0 {
		return
	}
	suggestions := map[string]any{}
	for _, field := range missing {
		switch field {
		case FieldReagents:
			suggestions[field] = []string{ReagentsSuggestion}
		case FieldTiming:
			suggestions[field] = TimingSuggestion
		case FieldEquipment:
			suggestions[field] = []string{EquipmentSuggestion}
		}
	}
	r.MissingParams = append(r.MissingParams, fmt.Sprintf("Step %d: %s", position, strings.Join(missing, ", ")))
	r.Suggestions[fmt.Sprintf("step_%d", position)] = suggestions
}

// filledFields counts present fields. Title and timing count when non-empty
// before trimming, so a whitespace-only title is both missing and filled.
func filledFields(step models.StepFields) int {
	n := 0
	if step.Title != "" {
		n++
	}
	if len(step.Reagents) > 0 {
		n++
	}
	if step.Timing != "" {
		n++
	}
	if len(step.Equipment) > 0 {
		n++
	}
	return n
}

func score(filled, steps int) float64 {
	if steps == 0 {
		return 1.0
	}
	return round2(float64(filled) / float64(steps*fieldsPerStep))
}

// round2 rounds to two decimals from the exact binary value, resolving exact
// ties to even (0.125 -> 0.12, 0.375 -> 0.38).
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
