package calc

import (
	"encoding/json"
	"math"

	"tanihitung/internal/apperr"
)

// validateFields checks the raw input against the definition's field
// specs, in declared order, and returns the validated values. The first
// failing field aborts with a validation error carrying that field's name.
//
// Required fields must be present; optional fields are skipped when
// absent. All fields must be finite numbers, strictly positive, and whole
// numbers when the spec says Integer. NaN and Infinity pass a naive
// "is it a number" check in dynamic languages, so they are rejected here
// explicitly.
func validateFields(def Definition, in Input) (map[string]float64, error) {
	values := make(map[string]float64, len(def.Fields))

	for _, spec := range def.Fields {
		raw, present := in[spec.Name]
		if !present || raw == nil {
			if spec.Optional {
				continue
			}
			return nil, apperr.Validation(spec.Name, spec.Description+" must be a positive "+numberWord(spec))
		}

		v, ok := toFloat(raw)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, apperr.Validation(spec.Name, spec.Description+" must be a positive "+numberWord(spec))
		}
		if v <= 0 {
			return nil, apperr.Validation(spec.Name, spec.Description+" must be a positive "+numberWord(spec))
		}
		if spec.Integer && v != math.Trunc(v) {
			return nil, apperr.Validation(spec.Name, spec.Description+" must be a positive "+numberWord(spec))
		}

		values[spec.Name] = v
	}

	return values, nil
}

func numberWord(spec FieldSpec) string {
	if spec.Integer {
		return "integer"
	}
	return "number"
}

// toFloat accepts the numeric types a decoded JSON document or direct
// caller may supply. Strings that look numeric are not numbers.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
