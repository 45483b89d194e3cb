package kernel

import (
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
)

// Money is a non-negative amount in currency minor units (paise, cents).
// Arithmetic stays in integers so revenue sums never pick up floating rounding.
//
// The zero value is a valid amount of zero; missing totals read back from
// storage are represented that way.
type Money struct {
	minor int64
}

// NewMoney creates an amount from minor units. Negative amounts are rejected.
func NewMoney(minorUnits int64) (Money, error) {
	if minorUnits < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("money", minorUnits, 0, int64(math.MaxInt64))
	}
	return Money{minor: minorUnits}, nil
}

// MoneyFromNullable reads an optional stored amount, treating nil as zero.
func MoneyFromNullable(minorUnits *int64) (Money, error) {
	if minorUnits == nil {
		return Money{}, nil
	}
	return NewMoney(*minorUnits)
}

// MinorUnits returns the amount in minor units.
func (m Money) MinorUnits() int64 {
	return m.minor
}

// MaxMoney is the largest representable amount.
func MaxMoney() Money {
	return Money{minor: math.MaxInt64}
}

// Add returns m + other, or an out of range error if the sum does not fit in int64.
func (m Money) Add(other Money) (Money, error) {
	if other.minor > math.MaxInt64-m.minor {
		return Money{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"money", other.minor, 0, math.MaxInt64-m.minor,
			fmt.Errorf("%d + %d overflows", m.minor, other.minor),
		)
	}
	return Money{minor: m.minor + other.minor}, nil
}

// Multiply returns m * quantity. Quantity must be non-negative and the product
// must fit in int64.
func (m Money) Multiply(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, math.MaxInt)
	}
	if quantity > 0 && m.minor > math.MaxInt64/int64(quantity) {
		return Money{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"quantity", quantity, 0, math.MaxInt64/m.minor,
			fmt.Errorf("%d * %d overflows", m.minor, quantity),
		)
	}
	return Money{minor: m.minor * int64(quantity)}, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.minor == 0
}

// String renders the amount as major.minor with two decimal places.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.minor/100, m.minor%100)
}
