package services

import (
	"context"
	"time"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/pkg/logger"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
)

// MigrationService runs guarded one-shot data fixes
type MigrationService struct {
	txm           repository.TransactionManager
	migrationRepo repository.MigrationRepository
}

// NewMigrationService creates a new migration service
func NewMigrationService(txm repository.TransactionManager, repos *repository.Repositories) *MigrationService {
	return &MigrationService{
		txm:           txm,
		migrationRepo: repos.Migration,
	}
}

// CurrencyMigrationResult reports per-table updated row counts
type CurrencyMigrationResult struct {
	DebtItems      int64 `json:"debt_items"`
	Payments       int64 `json:"payments"`
	PaymentDetails int64 `json:"payment_details"`
	CollectDebts   int64 `json:"collect_debts"`
}

// MigrateCurrencyUnits divides every monetary column in the ledger by 100,
// converting values stored at the wrong scale. The data_migrations guard row
// makes it one-shot: a second call fails before touching anything.
func (s *MigrationService) MigrateCurrencyUnits(ctx context.Context) (*CurrencyMigrationResult, error) {
	result := &CurrencyMigrationResult{}

	err := s.txm.Transaction(ctx, func(repos *repository.Repositories) error {
		applied, err := repos.Migration.FindByName(ctx, models.MigrationCentavosToBolivianos)
		if err != nil {
			return err
		}
		if applied != nil {
			return ErrMigrationAlreadyRun
		}

		divisor := int64(money.CentavosPerBoliviano)

		debts, err := repos.Debt.DivideAllAmounts(ctx, divisor)
		if err != nil {
			return err
		}
		result.DebtItems = debts

		payments, details, err := repos.Payment.DivideAllAmounts(ctx, divisor)
		if err != nil {
			return err
		}
		result.Payments = payments
		result.PaymentDetails = details

		sessions, err := repos.Collect.DivideAllAmounts(ctx, divisor)
		if err != nil {
			return err
		}
		result.CollectDebts = sessions

		return repos.Migration.Create(ctx, &models.DataMigration{
			Name:         models.MigrationCentavosToBolivianos,
			Description:  "División de todos los montos entre 100 (corrección de escala)",
			RowsAffected: debts + payments + details + sessions,
			AppliedAt:    time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info("currency unit migration applied",
		"debt_items", result.DebtItems,
		"payments", result.Payments,
		"payment_details", result.PaymentDetails,
		"collect_debts", result.CollectDebts)

	return result, nil
}

// ListApplied returns the migrations already applied
func (s *MigrationService) ListApplied(ctx context.Context) ([]models.DataMigration, error) {
	return s.migrationRepo.FindAll(ctx)
}
