package domain

import (
	"fmt"
	"math/big"
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// It stores the value as a rational number to avoid floating-point precision issues.
// Spanner NUMERIC columns bind directly to *big.Rat, so values round-trip through
// storage without any conversion.
type Money struct {
	rat *big.Rat
}

// ParseMoney parses a decimal string such as "19.99" into a Money value.
// Scientific notation and fractions ("1/3") are rejected; only plain decimal
// literals are accepted.
func ParseMoney(s string) (*Money, error) {
	if s == "" {
		return nil, fmt.Errorf("empty price")
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' && r != '+' {
			return nil, fmt.Errorf("invalid decimal %q", s)
		}
	}
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid decimal %q", s)
	}
	return &Money{rat: rat}, nil
}

// NewMoneyFromRat creates a Money from a big.Rat, copying the value.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return &Money{rat: big.NewRat(0, 1)}
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// Rat returns a copy of the underlying rational value, suitable for binding to
// a Spanner NUMERIC parameter.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// IsWholeCents returns true if the value is representable in whole cents.
// Validation enforces this on every accepted price, so String never rounds a
// stored value.
func (m *Money) IsWholeCents() bool {
	return new(big.Rat).Mul(m.rat, big.NewRat(100, 1)).IsInt()
}

// String returns the value as a decimal string with two fraction digits.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}
