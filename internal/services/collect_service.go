package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"gorm.io/gorm"
)

// CollectService manages collection sessions and their aggregates
type CollectService struct {
	txm         repository.TransactionManager
	collectRepo repository.CollectRepository
	paymentRepo repository.PaymentRepository
}

// NewCollectService creates a new collection session service
func NewCollectService(txm repository.TransactionManager, repos *repository.Repositories) *CollectService {
	return &CollectService{
		txm:         txm,
		collectRepo: repos.Collect,
		paymentRepo: repos.Payment,
	}
}

// CreateCollectInput carries the fields to open a collection session
type CreateCollectInput struct {
	CollectDate   string  `json:"collect_date" binding:"required"`
	Period        string  `json:"period"`
	CollectorName string  `json:"collector_name"`
	Location      string  `json:"location"`
	Status        string  `json:"status"`
	Notes         *string `json:"notes"`
}

// Create opens a new collection session
func (s *CollectService) Create(ctx context.Context, input *CreateCollectInput) (*models.CollectDebt, error) {
	date, err := time.Parse("2006-01-02", input.CollectDate)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha de recaudación inválida", ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = models.CollectStatusScheduled
	}

	session := &models.CollectDebt{
		CollectDate:   date,
		Period:        input.Period,
		CollectorName: input.CollectorName,
		Location:      input.Location,
		Status:        status,
		Notes:         input.Notes,
	}
	if err := s.collectRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns a collection session by id
func (s *CollectService) Get(ctx context.Context, id uint) (*models.CollectDebt, error) {
	session, err := s.collectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

// UpdateCollectInput carries the updatable session fields
type UpdateCollectInput struct {
	CollectDate   *string `json:"collect_date"`
	Period        *string `json:"period"`
	CollectorName *string `json:"collector_name"`
	Location      *string `json:"location"`
	Status        *string `json:"status"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
	Notes         *string `json:"notes"`
}

// Update edits session metadata. Aggregate counters are never writable here.
func (s *CollectService) Update(ctx context.Context, id uint, input *UpdateCollectInput) (*models.CollectDebt, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CollectDate != nil {
		date, err := time.Parse("2006-01-02", *input.CollectDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de recaudación inválida", ErrValidation)
		}
		session.CollectDate = date
	}
	if input.Period != nil {
		session.Period = *input.Period
	}
	if input.CollectorName != nil {
		session.CollectorName = *input.CollectorName
	}
	if input.Location != nil {
		session.Location = *input.Location
	}
	if input.Status != nil {
		session.Status = *input.Status
	}
	if input.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *input.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: hora de inicio inválida", ErrValidation)
		}
		session.StartTime = &t
	}
	if input.EndTime != nil {
		t, err := time.Parse(time.RFC3339, *input.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: hora de fin inválida", ErrValidation)
		}
		session.EndTime = &t
	}
	if input.Notes != nil {
		session.Notes = input.Notes
	}

	if err := s.collectRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Delete removes a session that has no payments
func (s *CollectService) Delete(ctx context.Context, id uint) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.paymentRepo.CountBySession(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: la sesión tiene pagos registrados", ErrInvalidState)
	}

	return s.collectRepo.Delete(ctx, session.ID)
}

// List returns a page of collection sessions
func (s *CollectService) List(ctx context.Context, query *repository.ListQuery) ([]models.CollectDebt, int64, error) {
	return s.collectRepo.List(ctx, query)
}

// GetSessionPayments returns a session's payments with nested detail lines
func (s *CollectService) GetSessionPayments(ctx context.Context, id uint) ([]models.Payment, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.paymentRepo.FindBySession(ctx, id)
}

// RecalculateTotals rebuilds the session aggregates from the payment rows.
// The allocator keeps them current; this repairs them after manual fixes.
func (s *CollectService) RecalculateTotals(ctx context.Context, id uint) (*models.CollectDebt, error) {
	var session *models.CollectDebt
	err := s.txm.Transaction(ctx, func(repos *repository.Repositories) error {
		found, err := repos.Collect.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		count, err := repos.Payment.CountBySession(ctx, id)
		if err != nil {
			return err
		}
		collected, err := repos.Payment.SumBySession(ctx, id)
		if err != nil {
			return err
		}
		neighbors, err := repos.Payment.CountDistinctNeighborsBySession(ctx, id)
		if err != nil {
			return err
		}

		found.TotalPayments = int(count)
		found.TotalCollected = collected
		found.TotalNeighborsPaid = int(neighbors)
		if err := repos.Collect.Update(ctx, found); err != nil {
			return err
		}
		session = found
		return nil
	})
	return session, err
}
