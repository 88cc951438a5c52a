package calc

import (
	"tanihitung/internal/apperr"
)

// Calculate resolves key in the registry, validates input, and runs the
// formula. It never returns a partial result: either the full Output or a
// classified error.
func Calculate(key string, input Input) (Output, error) {
	if key == "" {
		return Output{}, apperr.New(apperr.KindBadRequest, "slug is required")
	}
	if input == nil {
		return Output{}, apperr.New(apperr.KindBadRequest, "valid input data is required")
	}

	def, ok := Lookup(key)
	if !ok {
		return Output{}, apperr.Newf(apperr.KindUnknownFormula, "unknown calculator slug: %s", key)
	}

	values, err := validateFields(def, input)
	if err != nil {
		return Output{}, err
	}

	return def.Compute(values), nil
}
