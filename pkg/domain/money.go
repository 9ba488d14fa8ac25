package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Money is an amount in grosze (1/100 PLN).
type Money int64

// PLN converts a złoty amount into Money, rounding to the nearest grosz.
func PLN(zl float64) Money {
	return Money(math.Round(zl * 100))
}

// Zloty returns the amount as a floating point złoty value.
func (m Money) Zloty() float64 {
	return float64(m) / 100
}

// String renders the amount the way it is shown to customers: "12 zł" or "12.50 zł".
func (m Money) String() string {
	if m%100 == 0 {
		return fmt.Sprintf("%d zł", int64(m)/100)
	}
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d zł", sign, v/100, v%100)
}

// MarshalJSON encodes Money as a złoty number (e.g. 12.5).
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Zloty())
}

// UnmarshalJSON decodes a złoty number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var zl float64
	if err := json.Unmarshal(data, &zl); err != nil {
		return fmt.Errorf("invalid money amount: %w", err)
	}
	*m = PLN(zl)
	return nil
}
