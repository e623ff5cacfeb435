package numval

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Value is a decimal amount that tolerates every shape the backend is known
// to emit for numeric fields: a JSON number, a numeric string, a Mongo-style
// {"$numberDecimal": "123.45"} wrapper, or null. Anything unparsable decodes
// to zero. Decoding never fails, so a partially malformed payload still
// yields a renderable snapshot.
type Value struct {
	d decimal.Decimal
}

func FromDecimal(d decimal.Decimal) Value {
	return Value{d: d}
}

func FromFloat(f float64) Value {
	return Value{d: decimal.NewFromFloat(f)}
}

func FromInt(n int64) Value {
	return Value{d: decimal.NewFromInt(n)}
}

// Parse coerces a free-form string. It accepts a numeric prefix the way
// parseFloat does ("12.5x" -> 12.5) and returns zero for anything else.
func Parse(s string) Value {
	return Value{d: parseDecimalString(s)}
}

func (v Value) Decimal() decimal.Decimal {
	return v.d
}

func (v Value) Float64() float64 {
	f, _ := v.d.Float64()
	return f
}

func (v Value) Int64() int64 {
	return v.d.IntPart()
}

func (v Value) IsZero() bool {
	return v.d.IsZero()
}

func (v Value) String() string {
	return v.d.String()
}

func (v *Value) UnmarshalJSON(data []byte) error {
	v.d = decimal.Zero

	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		v.d = parseDecimalString(s)
	case '{':
		var wrapper struct {
			NumberDecimal string `json:"$numberDecimal"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil
		}
		v.d = parseDecimalString(wrapper.NumberDecimal)
	default:
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return nil
		}
		v.d = d
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.d.String()), nil
}

func parseDecimalString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	// Fall back to the longest numeric prefix ("123.45 USD" -> 123.45).
	if prefix := numericPrefix(s); prefix != "" {
		if d, err := decimal.NewFromString(prefix); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func numericPrefix(s string) string {
	end := 0
	seenDigit := false
	seenDot := false

	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			seenDigit = true
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	if !seenDigit {
		return ""
	}
	return strings.TrimSuffix(s[:end], ".")
}
