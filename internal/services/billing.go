package services

import (
	"github.com/srodrigo23/backend-otb-control/internal/config"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
)

// BillingPolicy computes water charges from meter consumption. The tariff is
// the association's historical one: consumption at or under the threshold
// pays the flat fee; above it, every cubic meter from zero is billed at
// Bs 1, not just the excess.
type BillingPolicy struct {
	thresholdM3 int
	flatFee     money.Money
}

// NewBillingPolicy builds the policy from config values
func NewBillingPolicy(cfg *config.Config) *BillingPolicy {
	return &BillingPolicy{
		thresholdM3: cfg.ConsumptionThresholdM3,
		flatFee:     money.FromBolivianos(int64(cfg.FlatWaterFeeBs)),
	}
}

// Consumption computes cubic meters consumed between two readings. A meter
// with no prior reading is billed on its full current reading.
func (p *BillingPolicy) Consumption(current int, previous *int) int {
	if previous == nil {
		return current
	}
	return current - *previous
}

// BillConsumption converts consumption into a charge. Callers must not pass
// negative consumption; negative deltas are anomalies and are never billed.
func (p *BillingPolicy) BillConsumption(consumption int) money.Money {
	if consumption <= p.thresholdM3 {
		return p.flatFee
	}
	return money.FromBolivianos(int64(consumption))
}
