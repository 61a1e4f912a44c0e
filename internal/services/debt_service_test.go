package services

import (
	"context"
	"testing"
	"time"

	"github.com/srodrigo23/backend-otb-control/internal/config"
	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newDebtServiceForTest(repos *repository.Repositories) *DebtService {
	return NewDebtService(
		&fakeTxManager{repos: repos},
		repos,
		testBillingPolicy(),
		NewEmailService(&config.Config{}),
		30,
	)
}

func testReading(id, meterID, neighborID uint, current int) models.MeterReading {
	return models.MeterReading{
		ID:             id,
		MeasureID:      1,
		MeterID:        meterID,
		CurrentReading: current,
		Status:         models.ReadingStatusNormal,
		Meter: models.NeighborMeter{
			ID:         meterID,
			NeighborID: neighborID,
			MeterCode:  "MED-001",
			Neighbor:   models.Neighbor{ID: neighborID, FirstName: "Juan", LastName: "Pérez"},
		},
	}
}

func TestGenerateForMeasure_CreatesDebtsFromReadings(t *testing.T) {
	var created []*models.DebtItem

	previous := testReading(1, 10, 5, 100)
	debtRepo := &mockDebtRepository{
		mockCreate: func(ctx context.Context, debt *models.DebtItem) error {
			debt.ID = uint(len(created)) + 100
			created = append(created, debt)
			return nil
		},
	}
	readingRepo := &mockReadingRepository{
		mockFindByMeasure: func(ctx context.Context, measureID uint) ([]models.MeterReading, error) {
			return []models.MeterReading{
				testReading(2, 10, 5, 115), // delta 15, under threshold
				testReading(3, 11, 6, 57),  // no prior reading, over threshold
			}, nil
		},
		mockFindPrevious: func(ctx context.Context, meterID, beforeID uint) (*models.MeterReading, error) {
			if meterID == 10 {
				return &previous, nil
			}
			return nil, nil
		},
	}
	repos := &repository.Repositories{
		Debt:     debtRepo,
		DebtType: &mockDebtTypeRepository{},
		Measure:  &mockMeasureRepository{},
		Reading:  readingRepo,
		Neighbor: &mockNeighborRepository{},
	}

	svc := newDebtServiceForTest(repos)
	result, err := svc.GenerateForMeasure(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.TotalReadings)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Anomalies)
	assert.Len(t, created, 2)

	// Consumption at or under the threshold pays the flat fee
	assert.Equal(t, money.FromBolivianos(20), created[0].Amount)
	assert.Equal(t, created[0].Amount, created[0].Balance)
	assert.Equal(t, "Consumo de agua - 15 m3", created[0].Reason)
	assert.Equal(t, models.DebtStatusPending, created[0].Status)
	assert.Equal(t, "2026-01", created[0].Period)
	assert.NotNil(t, created[0].MeterReadingID)
	assert.Equal(t, uint(2), *created[0].MeterReadingID)

	// Over the threshold every cubic meter is billed from zero
	assert.Equal(t, money.FromBolivianos(57), created[1].Amount)
	assert.Equal(t, "Consumo de agua - 57 m3", created[1].Reason)

	assert.NotNil(t, created[0].DueDate)
	wantDue := created[0].IssueDate.AddDate(0, 0, 30)
	assert.Equal(t, wantDue, *created[0].DueDate)
}

func TestGenerateForMeasure_SkipsAlreadyBilledReadings(t *testing.T) {
	createCalls := 0
	debtRepo := &mockDebtRepository{
		mockFindByReadingID: func(ctx context.Context, readingID uint) (*models.DebtItem, error) {
			return &models.DebtItem{ID: 77}, nil
		},
		mockCreate: func(ctx context.Context, debt *models.DebtItem) error {
			createCalls++
			return nil
		},
	}
	readingRepo := &mockReadingRepository{
		mockFindByMeasure: func(ctx context.Context, measureID uint) ([]models.MeterReading, error) {
			return []models.MeterReading{testReading(2, 10, 5, 115)}, nil
		},
	}
	repos := &repository.Repositories{
		Debt:     debtRepo,
		DebtType: &mockDebtTypeRepository{},
		Measure:  &mockMeasureRepository{},
		Reading:  readingRepo,
		Neighbor: &mockNeighborRepository{},
	}

	svc := newDebtServiceForTest(repos)
	result, err := svc.GenerateForMeasure(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, createCalls)
	assert.Equal(t, outcomeSkipped, result.Details[0].Outcome)
	assert.Equal(t, uint(77), result.Details[0].DebtID)
}

func TestGenerateForMeasure_FlagsNegativeConsumption(t *testing.T) {
	var updatedReading *models.MeterReading
	createCalls := 0

	previous := testReading(1, 10, 5, 120)
	debtRepo := &mockDebtRepository{
		mockCreate: func(ctx context.Context, debt *models.DebtItem) error {
			createCalls++
			return nil
		},
	}
	readingRepo := &mockReadingRepository{
		mockFindByMeasure: func(ctx context.Context, measureID uint) ([]models.MeterReading, error) {
			return []models.MeterReading{testReading(2, 10, 5, 110)}, nil
		},
		mockFindPrevious: func(ctx context.Context, meterID, beforeID uint) (*models.MeterReading, error) {
			return &previous, nil
		},
		mockUpdate: func(ctx context.Context, reading *models.MeterReading) error {
			updatedReading = reading
			return nil
		},
	}
	repos := &repository.Repositories{
		Debt:     debtRepo,
		DebtType: &mockDebtTypeRepository{},
		Measure:  &mockMeasureRepository{},
		Reading:  readingRepo,
		Neighbor: &mockNeighborRepository{},
	}

	svc := newDebtServiceForTest(repos)
	result, err := svc.GenerateForMeasure(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Anomalies)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 0, createCalls)
	assert.Equal(t, outcomeAnomaly, result.Details[0].Outcome)
	assert.Equal(t, -10, result.Details[0].Consumption)

	assert.NotNil(t, updatedReading)
	assert.True(t, updatedReading.HasAnomaly)
	assert.Equal(t, models.ReadingStatusAnomaly, updatedReading.Status)
}

func TestGenerateForMeasure_MeasureNotFound(t *testing.T) {
	repos := &repository.Repositories{
		Debt:     &mockDebtRepository{},
		DebtType: &mockDebtTypeRepository{},
		Measure: &mockMeasureRepository{
			mockFindByID: func(ctx context.Context, id uint) (*models.Measure, error) {
				return nil, gorm.ErrRecordNotFound
			},
		},
		Reading:  &mockReadingRepository{},
		Neighbor: &mockNeighborRepository{},
	}

	svc := newDebtServiceForTest(repos)
	_, err := svc.GenerateForMeasure(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDebt_RefusesWhenPaymentsExist(t *testing.T) {
	deleteCalls := 0
	repos := &repository.Repositories{
		Debt: &mockDebtRepository{
			mockFindByID: func(ctx context.Context, id uint) (*models.DebtItem, error) {
				return &models.DebtItem{
					ID:         id,
					Status:     models.DebtStatusPartial,
					AmountPaid: money.FromBolivianos(10),
				}, nil
			},
			mockDelete: func(ctx context.Context, id uint) error {
				deleteCalls++
				return nil
			},
		},
		DebtType: &mockDebtTypeRepository{},
		Measure:  &mockMeasureRepository{},
		Reading:  &mockReadingRepository{},
		Neighbor: &mockNeighborRepository{},
	}

	svc := newDebtServiceForTest(repos)
	err := svc.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, ErrDebtNotDeletable)
	assert.Equal(t, 0, deleteCalls)
}

func TestDeleteDebt_RemovesUntouchedDebt(t *testing.T) {
	deleted := uint(0)
	repos := &repository.Repositories{
		Debt: &mockDebtRepository{
			mockFindByID: func(ctx context.Context, id uint) (*models.DebtItem, error) {
				return &models.DebtItem{ID: id, Status: models.DebtStatusPending}, nil
			},
			mockDelete: func(ctx context.Context, id uint) error {
				deleted = id
				return nil
			},
		},
		DebtType: &mockDebtTypeRepository{},
		Measure:  &mockMeasureRepository{},
		Reading:  &mockReadingRepository{},
		Neighbor: &mockNeighborRepository{},
	}

	svc := newDebtServiceForTest(repos)
	err := svc.Delete(context.Background(), 4)

	assert.NoError(t, err)
	assert.Equal(t, uint(4), deleted)
}

func TestCreateManual_RejectsInvalidDueDate(t *testing.T) {
	repos := &repository.Repositories{
		Debt:     &mockDebtRepository{},
		DebtType: &mockDebtTypeRepository{},
		Measure:  &mockMeasureRepository{},
		Reading:  &mockReadingRepository{},
		Neighbor: &mockNeighborRepository{},
	}

	bad := "31/12/2026"
	svc := newDebtServiceForTest(repos)
	_, err := svc.CreateManual(context.Background(), &CreateManualDebtInput{
		NeighborID: 1,
		DebtTypeID: 2,
		AmountCent: 5000,
		Reason:     "Multa por inasistencia",
		DueDate:    &bad,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateManual_CreatesPendingDebt(t *testing.T) {
	var created *models.DebtItem
	repos := &repository.Repositories{
		Debt: &mockDebtRepository{
			mockCreate: func(ctx context.Context, debt *models.DebtItem) error {
				created = debt
				return nil
			},
		},
		DebtType: &mockDebtTypeRepository{},
		Measure:  &mockMeasureRepository{},
		Reading:  &mockReadingRepository{},
		Neighbor: &mockNeighborRepository{},
	}

	svc := newDebtServiceForTest(repos)
	debt, err := svc.CreateManual(context.Background(), &CreateManualDebtInput{
		NeighborID: 1,
		DebtTypeID: 2,
		AmountCent: 5000,
		Reason:     "Multa por inasistencia",
		Period:     "2026-02",
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, money.FromCentavos(5000), debt.Amount)
	assert.Equal(t, debt.Amount, debt.Balance)
	assert.Equal(t, models.DebtStatusPending, debt.Status)
	assert.Nil(t, debt.MeterReadingID)
}

func TestNotifyOverdue_SkipsNeighborsWithoutEmail(t *testing.T) {
	due := time.Now().AddDate(0, 0, -10)
	email := "juan@example.com"

	repos := &repository.Repositories{
		Debt: &mockDebtRepository{
			mockFindOverdue: func(ctx context.Context) ([]models.DebtItem, error) {
				return []models.DebtItem{
					{ID: 1, NeighborID: 5, DueDate: &due},
					{ID: 2, NeighborID: 5, DueDate: &due}, // same neighbor, one notice
					{ID: 3, NeighborID: 6, DueDate: &due},
				}, nil
			},
			mockFindActive: func(ctx context.Context, neighborID uint) ([]models.DebtItem, error) {
				return []models.DebtItem{{ID: 1, NeighborID: neighborID, Balance: money.FromBolivianos(20)}}, nil
			},
		},
		DebtType: &mockDebtTypeRepository{},
		Measure:  &mockMeasureRepository{},
		Reading:  &mockReadingRepository{},
		Neighbor: &mockNeighborRepository{
			mockFindByID: func(ctx context.Context, id uint) (*models.Neighbor, error) {
				n := &models.Neighbor{ID: id, FirstName: "Juan", LastName: "Pérez"}
				if id == 5 {
					n.Email = &email
				}
				return n, nil
			},
		},
	}

	svc := newDebtServiceForTest(repos)
	sent, err := svc.NotifyOverdue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
}
