package models

// StepRecord is one unit of procedure inside a protocol.
type StepRecord struct {
	ID        string   `json:"id" yaml:"id"`
	Order     int      `json:"order" yaml:"order"`
	Title     string   `json:"title" yaml:"title"`
	Reagents  []string `json:"reagents" yaml:"reagents"`
	Timing    string   `json:"timing" yaml:"timing"`
	Equipment []string `json:"equipment" yaml:"equipment"`
	Notes     string   `json:"notes" yaml:"notes"`
}

// ProtocolDraft is a structured protocol built from free text.
type ProtocolDraft struct {
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Steps       []StepRecord `json:"steps" yaml:"steps"`
}

// StandardizeResult is what /standardize returns. ExtractedSteps always
// mirrors Protocol.Steps.
type StandardizeResult struct {
	Protocol       ProtocolDraft `json:"protocol" yaml:"protocol"`
	Confidence     float64       `json:"confidence" yaml:"confidence"`
	ExtractedSteps []StepRecord  `json:"extracted_steps" yaml:"extracted_steps"`
}

// StepFields is a step as submitted by a client for analysis or as context
// for a next-step suggestion. Absent or null fields decode to zero values.
type StepFields struct {
	Title     string   `json:"title" yaml:"title"`
	Reagents  []string `json:"reagents" yaml:"reagents"`
	Timing    string   `json:"timing" yaml:"timing"`
	Equipment []string `json:"equipment" yaml:"equipment"`
	Notes     string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ProtocolInput is the protocol document accepted by missing-field detection.
type ProtocolInput struct {
	Title string       `json:"title,omitempty" yaml:"title,omitempty"`
	Steps []StepFields `json:"steps" yaml:"steps"`
}

// StepSuggestion is a proposed next step.
type StepSuggestion struct {
	Title     string   `json:"title" yaml:"title"`
	Reagents  []string `json:"reagents" yaml:"reagents"`
	Timing    string   `json:"timing" yaml:"timing"`
	Equipment []string `json:"equipment" yaml:"equipment"`
	Notes     string   `json:"notes" yaml:"notes"`
}

// AutocompleteResult is what /autocomplete returns.
type AutocompleteResult struct {
	Suggestions []StepSuggestion `json:"suggestions" yaml:"suggestions"`
	Confidence  float64          `json:"confidence" yaml:"confidence"`
	Reasoning   string           `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
}

// CompletenessReport lists the fields each step is missing.
//
// Suggestions maps "step_<n>" to field suggestions. The value for "timing"
// is a string while "reagents" and "equipment" carry a one-element list;
// clients depend on that shape.
type CompletenessReport struct {
	MissingParams     []string                  `json:"missing_params" yaml:"missing_params"`
	Suggestions       map[string]map[string]any `json:"suggestions" yaml:"suggestions"`
	CompletenessScore float64                   `json:"completeness_score" yaml:"completeness_score"`
}
