package services

import (
	"context"
	"testing"
	"time"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestMigrateCurrencyUnits_RefusesSecondRun(t *testing.T) {
	divideCalls := 0
	repos := &repository.Repositories{
		Migration: &mockMigrationRepository{
			mockFindByName: func(ctx context.Context, name string) (*models.DataMigration, error) {
				return &models.DataMigration{ID: 1, Name: name, AppliedAt: time.Now()}, nil
			},
		},
		Debt: &mockDebtRepository{
			mockDivideAllAmounts: func(ctx context.Context, divisor int64) (int64, error) {
				divideCalls++
				return 0, nil
			},
		},
		Payment: &mockPaymentRepository{},
		Collect: &mockCollectRepository{},
	}

	svc := NewMigrationService(&fakeTxManager{repos: repos}, repos)
	_, err := svc.MigrateCurrencyUnits(context.Background())

	assert.ErrorIs(t, err, ErrMigrationAlreadyRun)
	assert.Equal(t, 0, divideCalls)
}

func TestMigrateCurrencyUnits_DividesEveryLedgerTable(t *testing.T) {
	var divisors []int64
	var guard *models.DataMigration

	repos := &repository.Repositories{
		Migration: &mockMigrationRepository{
			mockCreate: func(ctx context.Context, migration *models.DataMigration) error {
				guard = migration
				return nil
			},
		},
		Debt: &mockDebtRepository{
			mockDivideAllAmounts: func(ctx context.Context, divisor int64) (int64, error) {
				divisors = append(divisors, divisor)
				return 120, nil
			},
		},
		Payment: &mockPaymentRepository{
			mockDivideAllAmounts: func(ctx context.Context, divisor int64) (int64, int64, error) {
				divisors = append(divisors, divisor)
				return 45, 90, nil
			},
		},
		Collect: &mockCollectRepository{
			mockDivideAllAmounts: func(ctx context.Context, divisor int64) (int64, error) {
				divisors = append(divisors, divisor)
				return 8, nil
			},
		},
	}

	svc := NewMigrationService(&fakeTxManager{repos: repos}, repos)
	result, err := svc.MigrateCurrencyUnits(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(120), result.DebtItems)
	assert.Equal(t, int64(45), result.Payments)
	assert.Equal(t, int64(90), result.PaymentDetails)
	assert.Equal(t, int64(8), result.CollectDebts)
	assert.Equal(t, []int64{100, 100, 100}, divisors)

	// Guard row recorded so the migration never runs twice
	assert.NotNil(t, guard)
	assert.Equal(t, models.MigrationCentavosToBolivianos, guard.Name)
	assert.Equal(t, int64(263), guard.RowsAffected)
}
