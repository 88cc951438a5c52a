// Package calc implements the calculation dispatch engine.
//
// Each calculator is identified by a slug and declares its own input
// fields, arithmetic, and output unit through a Definition registered at
// init time. Calculate resolves a slug, validates the raw input map
// against the definition's field specs, and runs the formula. The whole
// operation is a pure function of its input: no I/O, no partial results.
package calc

// Input is the raw calculation input: a JSON object decoded to a map.
// Each calculator defines its own required and optional fields.
type Input map[string]any

// Output is the structured result of a calculation.
type Output struct {
	ResultValue       float64            `json:"resultValue"`
	UnitLabel         string             `json:"unitLabel"`
	AdditionalResults map[string]float64 `json:"additionalResults,omitempty"`
}

// FieldSpec describes one input field of a calculator.
type FieldSpec struct {
	// Name is the JSON key in the input object.
	Name string

	// Description is the human-readable field name used in validation
	// messages, e.g. "area (ha)".
	Description string

	// Integer requires the value to be a whole number (counts).
	Integer bool

	// Optional fields may be absent; if present they must still satisfy
	// the positivity constraint.
	Optional bool
}

// Definition bundles a calculator's field specs, arithmetic, and unit.
//
// Compute receives the validated field values. Optional fields appear in
// the map only when they were present in the input.
type Definition struct {
	Key     string
	Fields  []FieldSpec
	Unit    string
	Compute func(fields map[string]float64) Output
}
