package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/pkg/logger"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
	"gorm.io/gorm"
)

// DebtService handles the debt ledger: generation from meter readings,
// listings per neighbor, and guarded deletion.
type DebtService struct {
	txm          repository.TransactionManager
	debtRepo     repository.DebtRepository
	debtTypeRepo repository.DebtTypeRepository
	measureRepo  repository.MeasureRepository
	readingRepo  repository.ReadingRepository
	neighborRepo repository.NeighborRepository
	billing      *BillingPolicy
	emailSvc     *EmailService
	dueDays      int
}

// NewDebtService creates a new debt service
func NewDebtService(
	txm repository.TransactionManager,
	repos *repository.Repositories,
	billing *BillingPolicy,
	emailSvc *EmailService,
	dueDays int,
) *DebtService {
	return &DebtService{
		txm:          txm,
		debtRepo:     repos.Debt,
		debtTypeRepo: repos.DebtType,
		measureRepo:  repos.Measure,
		readingRepo:  repos.Reading,
		neighborRepo: repos.Neighbor,
		billing:      billing,
		emailSvc:     emailSvc,
		dueDays:      dueDays,
	}
}

// GenerationDetail describes the outcome for one reading of the batch
type GenerationDetail struct {
	ReadingID    uint   `json:"reading_id"`
	NeighborName string `json:"neighbor_name"`
	MeterCode    string `json:"meter_code"`
	Consumption  int    `json:"consumption"`
	Outcome      string `json:"outcome"`
	DebtID       uint   `json:"debt_id,omitempty"`
}

// GenerationResult is the summary of a debt generation batch
type GenerationResult struct {
	MeasureID     uint               `json:"measure_id"`
	TotalReadings int                `json:"total_readings"`
	Created       int                `json:"created"`
	Skipped       int                `json:"skipped"`
	Anomalies     int                `json:"anomalies"`
	Details       []GenerationDetail `json:"details"`
}

// Batch outcome labels
const (
	outcomeCreated = "created"
	outcomeSkipped = "skipped"
	outcomeAnomaly = "anomaly"
)

// GenerateForMeasure bills every reading of a campaign inside one
// transaction. Readings that already produced a debt are skipped, so the
// batch can be rerun safely; negative consumption flags the reading as an
// anomaly and produces no debt.
func (s *DebtService) GenerateForMeasure(ctx context.Context, measureID uint) (*GenerationResult, error) {
	result := &GenerationResult{MeasureID: measureID}

	err := s.txm.Transaction(ctx, func(repos *repository.Repositories) error {
		measure, err := repos.Measure.FindByID(ctx, measureID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		debtType, err := repos.DebtType.FindOrCreate(ctx,
			models.DebtTypeWaterConsumption, "Consumo mensual de agua potable")
		if err != nil {
			return fmt.Errorf("error al obtener tipo de deuda: %w", err)
		}

		readings, err := repos.Reading.FindByMeasure(ctx, measureID)
		if err != nil {
			return err
		}
		result.TotalReadings = len(readings)

		today := time.Now().Truncate(24 * time.Hour)
		dueDate := today.AddDate(0, 0, s.dueDays)

		for i := range readings {
			reading := &readings[i]
			detail := GenerationDetail{
				ReadingID:    reading.ID,
				NeighborName: reading.Meter.Neighbor.FullName(),
				MeterCode:    reading.Meter.MeterCode,
			}

			existing, err := repos.Debt.FindByReadingID(ctx, reading.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				result.Skipped++
				detail.Outcome = outcomeSkipped
				detail.DebtID = existing.ID
				result.Details = append(result.Details, detail)
				continue
			}

			previous, err := repos.Reading.FindPrevious(ctx, reading.MeterID, reading.ID)
			if err != nil {
				return err
			}
			var prevValue *int
			if previous != nil {
				prevValue = &previous.CurrentReading
			}

			consumption := s.billing.Consumption(reading.CurrentReading, prevValue)
			detail.Consumption = consumption

			if consumption < 0 {
				reading.HasAnomaly = true
				reading.Status = models.ReadingStatusAnomaly
				if err := repos.Reading.Update(ctx, reading); err != nil {
					return err
				}
				result.Anomalies++
				detail.Outcome = outcomeAnomaly
				result.Details = append(result.Details, detail)
				continue
			}

			amount := s.billing.BillConsumption(consumption)
			readingID := reading.ID
			due := dueDate
			debt := &models.DebtItem{
				NeighborID:     reading.Meter.NeighborID,
				DebtTypeID:     debtType.ID,
				MeterReadingID: &readingID,
				Amount:         amount,
				Balance:        amount,
				Reason:         fmt.Sprintf("Consumo de agua - %d m3", consumption),
				Period:         measure.Period,
				IssueDate:      today,
				DueDate:        &due,
				Status:         models.DebtStatusPending,
			}
			if err := repos.Debt.Create(ctx, debt); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: lectura %d", ErrDuplicateDebt, reading.ID)
				}
				return fmt.Errorf("error al crear deuda para lectura %d: %w", reading.ID, err)
			}

			result.Created++
			detail.Outcome = outcomeCreated
			detail.DebtID = debt.ID
			result.Details = append(result.Details, detail)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("debt generation batch finished",
		"measure_id", measureID,
		"created", result.Created,
		"skipped", result.Skipped,
		"anomalies", result.Anomalies)

	return result, nil
}

// GetDebt returns a single debt by id
func (s *DebtService) GetDebt(ctx context.Context, id uint) (*models.DebtItem, error) {
	debt, err := s.debtRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return debt, nil
}

// GetActiveDebts returns a neighbor's open debts with totals
func (s *DebtService) GetActiveDebts(ctx context.Context, neighborID uint) (*models.NeighborDebtsResponse, error) {
	neighbor, err := s.neighborRepo.FindByID(ctx, neighborID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	debts, err := s.debtRepo.FindActiveByNeighbor(ctx, neighborID)
	if err != nil {
		return nil, err
	}

	return buildNeighborDebts(neighbor, debts), nil
}

// GetAllDebts returns a neighbor's full debt history with totals
func (s *DebtService) GetAllDebts(ctx context.Context, neighborID uint) (*models.NeighborDebtsResponse, error) {
	neighbor, err := s.neighborRepo.FindByID(ctx, neighborID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	debts, err := s.debtRepo.FindAllByNeighbor(ctx, neighborID)
	if err != nil {
		return nil, err
	}

	return buildNeighborDebts(neighbor, debts), nil
}

func buildNeighborDebts(neighbor *models.Neighbor, debts []models.DebtItem) *models.NeighborDebtsResponse {
	resp := &models.NeighborDebtsResponse{
		NeighborID:   neighbor.ID,
		NeighborName: neighbor.FullName(),
		TotalDebts:   len(debts),
		DebtDetails:  make([]models.DebtItemResponse, 0, len(debts)),
	}
	for i := range debts {
		resp.TotalAmount = resp.TotalAmount.Add(debts[i].Amount)
		resp.TotalBalance = resp.TotalBalance.Add(debts[i].Balance)
		resp.DebtDetails = append(resp.DebtDetails, debts[i].ToResponse())
	}
	return resp
}

// List returns a page of debts
func (s *DebtService) List(ctx context.Context, query *repository.ListQuery) ([]models.DebtItem, int64, error) {
	return s.debtRepo.List(ctx, query)
}

// CreateManualDebtInput carries the fields for a debt created by hand
type CreateManualDebtInput struct {
	NeighborID uint    `json:"neighbor_id" binding:"required"`
	DebtTypeID uint    `json:"debt_type_id" binding:"required"`
	AmountCent int64   `json:"amount_centavos" binding:"required,gt=0"`
	Reason     string  `json:"reason" binding:"required"`
	Period     string  `json:"period"`
	DueDate    *string `json:"due_date"`
	Notes      *string `json:"notes"`
}

// CreateManual creates a debt not tied to any reading (fines, maintenance)
func (s *DebtService) CreateManual(ctx context.Context, input *CreateManualDebtInput) (*models.DebtItem, error) {
	if _, err := s.neighborRepo.FindByID(ctx, input.NeighborID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.debtTypeRepo.FindByID(ctx, input.DebtTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	debt := &models.DebtItem{
		NeighborID: input.NeighborID,
		DebtTypeID: input.DebtTypeID,
		Reason:     input.Reason,
		Period:     input.Period,
		IssueDate:  today,
		Status:     models.DebtStatusPending,
		Notes:      input.Notes,
	}
	debt.Amount = money.FromCentavos(input.AmountCent)
	debt.Balance = debt.Amount

	if input.DueDate != nil && *input.DueDate != "" {
		due, err := time.Parse("2006-01-02", *input.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de vencimiento inválida", ErrValidation)
		}
		debt.DueDate = &due
	}

	if err := s.debtRepo.Create(ctx, debt); err != nil {
		return nil, err
	}
	return debt, nil
}

// Delete removes a debt if nothing was ever paid against it
func (s *DebtService) Delete(ctx context.Context, id uint) error {
	debt, err := s.debtRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !debt.MayDelete() {
		return ErrDebtNotDeletable
	}

	return s.debtRepo.Delete(ctx, id)
}

// DeleteByMeasure removes all untouched debts generated by a campaign and
// returns how many were deleted. Debts with payment history survive.
func (s *DebtService) DeleteByMeasure(ctx context.Context, measureID uint) (int64, error) {
	var deleted int64
	err := s.txm.Transaction(ctx, func(repos *repository.Repositories) error {
		if _, err := repos.Measure.FindByID(ctx, measureID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		n, err := repos.Debt.DeletePendingByMeasure(ctx, measureID)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	return deleted, err
}

// ListDebtTypes returns all debt categories
func (s *DebtService) ListDebtTypes(ctx context.Context) ([]models.DebtType, error) {
	return s.debtTypeRepo.FindAll(ctx)
}

// NotifyOverdue emails a debt notice to every neighbor with at least one
// overdue debt and a registered email address. Returns the number of notices
// sent; per-neighbor failures are logged and do not stop the scan.
func (s *DebtService) NotifyOverdue(ctx context.Context) (int, error) {
	overdue, err := s.debtRepo.FindOverdue(ctx)
	if err != nil {
		return 0, err
	}

	neighborIDs := make([]uint, 0, len(overdue))
	seen := make(map[uint]bool)
	for _, d := range overdue {
		if !seen[d.NeighborID] {
			seen[d.NeighborID] = true
			neighborIDs = append(neighborIDs, d.NeighborID)
		}
	}

	sent := 0
	for _, id := range neighborIDs {
		neighbor, err := s.neighborRepo.FindByID(ctx, id)
		if err != nil {
			logger.Warn("No se pudo cargar el vecino para el aviso de mora", "neighbor_id", id, "error", err)
			continue
		}
		if neighbor.Email == nil || *neighbor.Email == "" {
			continue
		}

		debts, err := s.GetActiveDebts(ctx, id)
		if err != nil {
			logger.Warn("No se pudo armar el resumen de deudas", "neighbor_id", id, "error", err)
			continue
		}

		if err := s.emailSvc.SendDebtNotice(ctx, neighbor, debts); err != nil {
			logger.Warn("No se pudo enviar el aviso de mora", "neighbor_id", id, "error", err)
			continue
		}
		sent++
	}

	logger.Info("Avisos de mora enviados", "overdue_debts", len(overdue), "notices_sent", sent)
	return sent, nil
}
