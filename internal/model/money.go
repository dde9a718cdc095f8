package model

import (
	"bytes"
	"strconv"
	"strings"
)

// Money is a decimal amount that tolerates the wire formats the POS
// integrations actually send: JSON numbers, numeric strings and null.
// Non-numeric values decode to zero.
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*m = 0
		return nil
	}
	raw := string(data)
	if raw[0] == '"' {
		raw = strings.Trim(raw, `"`)
	}
	raw = strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*m = 0
		return nil
	}
	*m = Money(v)
	return nil
}

func (m Money) Float64() float64 { return float64(m) }
