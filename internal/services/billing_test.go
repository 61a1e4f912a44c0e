package services

import (
	"testing"

	"github.com/srodrigo23/backend-otb-control/internal/config"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
	"github.com/stretchr/testify/assert"
)

func testBillingPolicy() *BillingPolicy {
	return NewBillingPolicy(&config.Config{
		ConsumptionThresholdM3: 20,
		FlatWaterFeeBs:         20,
	})
}

func TestBillingPolicy_Consumption(t *testing.T) {
	p := testBillingPolicy()

	prev := 100
	assert.Equal(t, 25, p.Consumption(125, &prev))

	// First reading of a meter bills the full current value
	assert.Equal(t, 125, p.Consumption(125, nil))

	// Rolled back meter yields a negative delta; caller flags it as anomaly
	assert.Equal(t, -5, p.Consumption(95, &prev))
}

func TestBillingPolicy_BillConsumption(t *testing.T) {
	p := testBillingPolicy()

	tests := []struct {
		name        string
		consumption int
		want        money.Money
	}{
		{"zero consumption pays flat fee", 0, money.FromBolivianos(20)},
		{"under threshold pays flat fee", 12, money.FromBolivianos(20)},
		{"at threshold pays flat fee", 20, money.FromBolivianos(20)},
		{"just over threshold bills full consumption", 21, money.FromBolivianos(21)},
		{"well over threshold bills full consumption", 57, money.FromBolivianos(57)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.BillConsumption(tt.consumption))
		})
	}
}

func TestBillingPolicy_NoDiscontinuityDiscount(t *testing.T) {
	p := testBillingPolicy()

	// 21 m3 is billed from zero, so the charge jumps from the flat 20 to 21,
	// never 20 plus the single excess cubic meter.
	assert.Equal(t, money.FromBolivianos(21), p.BillConsumption(21))
	assert.NotEqual(t, money.FromBolivianos(1), p.BillConsumption(21))
}
