package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBolivianos(t *testing.T) {
	assert.Equal(t, Money(2000), FromBolivianos(20))
	assert.Equal(t, Money(0), FromBolivianos(0))
	assert.Equal(t, Money(-500), FromBolivianos(-5))
}

func TestArithmetic(t *testing.T) {
	a := FromBolivianos(20)
	b := FromCentavos(550)

	assert.Equal(t, Money(2550), a.Add(b))
	assert.Equal(t, Money(1450), a.Sub(b))

	// Overpaying a balance goes negative, it is not clamped.
	assert.True(t, b.Sub(a).IsNegative())
}

func TestDivideBy(t *testing.T) {
	assert.Equal(t, Money(25), FromCentavos(2500).DivideBy(100))
	assert.Equal(t, Money(0), Money(0).DivideBy(100))
}

func TestString(t *testing.T) {
	assert.Equal(t, "Bs 20.00", FromBolivianos(20).String())
	assert.Equal(t, "Bs 25.50", FromCentavos(2550).String())
	assert.Equal(t, "-Bs 3.75", FromCentavos(-375).String())
}

func TestScanValue(t *testing.T) {
	v, err := FromCentavos(1234).Value()
	require.NoError(t, err)
	assert.Equal(t, int64(1234), v)

	var m Money
	require.NoError(t, m.Scan(int64(1234)))
	assert.Equal(t, Money(1234), m)

	require.NoError(t, m.Scan([]byte("2500")))
	assert.Equal(t, Money(2500), m)

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan("not-a-valid-src-type-for-money"))
}
