// Package export renders a user's calculation history as CSV.
//
// The output is deterministic: rows arrive newest-first from the store and
// are rendered in order, and input summaries follow the JSON document's
// own key order rather than Go map iteration order.
//
// Escaping is intentionally hand-rolled instead of using encoding/csv:
// the format quotes a field only when it contains a comma, double quote,
// CR, or LF (encoding/csv also quotes leading spaces, which would change
// the output for summaries).
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Header is the fixed CSV header row, including its line terminator.
const Header = "Date,Calculator,Input Summary,Result,Unit\n"

// Record is one history row joined with its calculator's display name.
// ResultValue carries the store's decimal string (NUMERIC scale 4) so the
// formatter can strip the fixed fractional padding on output.
type Record struct {
	CreatedAt      time.Time
	CalculatorName string
	InputJSON      []byte
	ResultValue    string
	UnitLabel      string
}

// Format renders the full CSV document for the given records.
// With no records the output is exactly the header row.
func Format(records []Record) string {
	var b strings.Builder
	b.WriteString(Header)

	for _, r := range records {
		b.WriteString(r.CreatedAt.UTC().Format("2006-01-02"))
		b.WriteByte(',')
		b.WriteString(escapeField(r.CalculatorName))
		b.WriteByte(',')
		b.WriteString(escapeField(inputSummary(r.InputJSON)))
		b.WriteByte(',')
		b.WriteString(formatResult(r.ResultValue))
		b.WriteByte(',')
		b.WriteString(escapeField(r.UnitLabel))
		b.WriteByte('\n')
	}

	return b.String()
}

// formatResult converts the stored decimal string back to a number and
// prints it without the storage layer's fractional padding
// ("250.0000" -> "250"). Unparseable values pass through unchanged.
func formatResult(stored string) string {
	v, err := strconv.ParseFloat(stored, 64)
	if err != nil {
		return stored
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// inputSummary renders the stored input JSON as a human-readable summary:
// "<Readable Key>: <value>" pairs joined with " | ", in document order.
func inputSummary(raw []byte) string {
	pairs, ok := decodeObject(raw)
	if !ok || len(pairs) == 0 {
		return "No input data"
	}

	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, readableKey(p.key)+": "+formatValue(p.value))
	}
	return strings.Join(parts, " | ")
}

type pair struct {
	key   string
	value any
}

// decodeObject parses raw as a JSON object, preserving key order.
// Returns false when raw is empty, null, or not an object.
func decodeObject(raw []byte) ([]pair, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	var pairs []pair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}
		pairs = append(pairs, pair{key: key, value: value})
	}

	return pairs, true
}

// readableKey converts a camelCase key to Title Case with spaces:
// "areaHa" -> "Area Ha", "feedKgPerChickenPerDay" -> "Feed Kg Per Chicken Per Day".
func readableKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatValue renders a decoded JSON value for the summary. Numbers are
// rounded half away from zero to at most 4 fractional digits with
// trailing zeros dropped; other types print their natural form.
func formatValue(v any) string {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return n.String()
		}
		return strconv.FormatFloat(round4(f), 'f', -1, 64)
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case nil:
		return "null"
	default:
		return fmt.Sprint(n)
	}
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// escapeField applies CSV escaping: wrap in double quotes when the field
// contains a comma, quote, CR, or LF, doubling internal quotes. Empty
// strings escape to an empty field.
func escapeField(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, ",\"\r\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
