package pricing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseNumericOrZero converts free-form numeric text to a float.
// Blank, malformed, NaN and infinite input all become 0 so the calculator
// never rejects a keystroke.
func ParseNumericOrZero(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Numeric is a float that accepts JSON numbers, numeric strings, null and
// anything else, normalising every non-numeric value to 0.
type Numeric float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*n = 0
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		*n = Numeric(ParseNumericOrZero(s))
	default:
		*n = Numeric(ParseNumericOrZero(string(data)))
	}
	return nil
}

// Float returns the value as float64.
func (n Numeric) Float() float64 {
	return float64(n)
}

// Index is a product position that accepts JSON numbers and numeric strings,
// truncating fractions toward zero. Anything that is not a number becomes -1,
// which no catalog position matches.
type Index int

// UnmarshalJSON implements json.Unmarshaler.
func (i *Index) UnmarshalJSON(data []byte) error {
	*i = -1
	raw := string(bytes.TrimSpace(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.Abs(v) > math.MaxInt32 {
		return nil
	}
	*i = Index(math.Trunc(v))
	return nil
}

// nonNegative clamps negative quantities to zero.
func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
