// Package wellness normalizes free-form health and mood input (numbers,
// labels, emoji) onto the fixed integer scales stored in the journal.
package wellness

import (
	"bytes"
	"encoding/json"
	"math"
)

// Kind tags the shape of a raw input value.
type Kind int

const (
	KindAbsent Kind = iota
	KindNumber
	KindText
	KindOther
)

// Value is a closed union over the JSON shapes a client may send for a
// condition or mood: nothing, a number, a string, or anything else.
type Value struct {
	Kind   Kind
	Number float64
	Text   string
}

// Number builds a numeric Value.
func Number(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// Text builds a string Value.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// UnmarshalJSON classifies the raw JSON token. It never fails on
// well-formed JSON; unsupported shapes become KindOther.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{Kind: KindAbsent}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Number(n)
	default:
		*v = Value{Kind: KindOther}
	}
	return nil
}

// MarshalJSON writes the value back in its original shape.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Number)
	case KindText:
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}

// integer reports the value as an int when it is a whole number.
func (v Value) integer() (int, bool) {
	if v.Kind != KindNumber || v.Number != math.Trunc(v.Number) || math.IsInf(v.Number, 0) {
		return 0, false
	}
	return int(v.Number), true
}
