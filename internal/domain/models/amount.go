package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value as delivered by the POS backend. Decimal fields
// arrive as JSON strings ("12.50"), bare numbers or null; anything that does
// not parse is kept as malformed and counts as zero.
type Amount struct {
	value     decimal.Decimal
	raw       string
	malformed bool
}

// ParseAmount parses a backend decimal string. Blank input is a zero amount,
// unparseable input is a malformed zero amount. It never fails.
func ParseAmount(raw string) Amount {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Amount{}
	}

	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Amount{raw: raw, malformed: true}
	}

	return Amount{value: value, raw: raw}
}

// NewAmount wraps an already computed decimal.
func NewAmount(value decimal.Decimal) Amount {
	return Amount{value: value, raw: value.StringFixed(2)}
}

// AmountFromInt is a convenience for whole currency units.
func AmountFromInt(value int64) Amount {
	return NewAmount(decimal.NewFromInt(value))
}

// Decimal returns the parsed value, zero when missing or malformed.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Malformed reports whether the backend sent something that is not a number.
func (a Amount) Malformed() bool {
	return a.malformed
}

// Raw returns the text exactly as received.
func (a Amount) Raw() string {
	return a.raw
}

func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// String renders the amount with two decimal places.
func (a Amount) String() string {
	return a.value.StringFixed(2)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.value.StringFixed(2))
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = Amount{}
		return nil
	}

	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*a = ParseAmount(text)
		return nil
	}

	*a = ParseAmount(string(trimmed))
	return nil
}
