package money

import (
	"database/sql/driver"
	"fmt"
)

// Money is a fixed-point currency amount expressed as an integer count of
// centavos. All arithmetic on balances happens on this type; amounts are never
// represented as floats. The unit is fixed: 100 centavos = 1 boliviano.
type Money int64

// CentavosPerBoliviano is the fixed minor-unit scale.
const CentavosPerBoliviano = 100

// FromCentavos builds a Money from a raw centavo count.
func FromCentavos(c int64) Money {
	return Money(c)
}

// FromBolivianos builds a Money from a whole-boliviano count.
func FromBolivianos(b int64) Money {
	return Money(b * CentavosPerBoliviano)
}

// Centavos returns the raw centavo count.
func (m Money) Centavos() int64 {
	return int64(m)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m == 0
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other. The result may be negative.
func (m Money) Sub(other Money) Money {
	return m - other
}

// DivideBy returns m divided by n using integer division. Used by the one-shot
// currency-unit migration; n must be positive.
func (m Money) DivideBy(n int64) Money {
	return Money(int64(m) / n)
}

// String formats the amount as "Bs X.YY".
func (m Money) String() string {
	c := int64(m)
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%sBs %d.%02d", sign, c/CentavosPerBoliviano, c%CentavosPerBoliviano)
}

// Value implements driver.Valuer so Money persists as a bigint column.
func (m Money) Value() (driver.Value, error) {
	return int64(m), nil
}

// Scan implements sql.Scanner.
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = 0
	case int64:
		*m = Money(v)
	case []byte:
		var c int64
		if _, err := fmt.Sscanf(string(v), "%d", &c); err != nil {
			return fmt.Errorf("money: cannot scan %q: %w", string(v), err)
		}
		*m = Money(c)
	default:
		return fmt.Errorf("money: cannot scan %T", src)
	}
	return nil
}
