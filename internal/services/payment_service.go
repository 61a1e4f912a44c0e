package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srodrigo23/backend-otb-control/internal/jobs"
	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/internal/statemachine"
	"github.com/srodrigo23/backend-otb-control/pkg/logger"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
	"gorm.io/gorm"
)

// PaymentService handles payment registration and allocation across debts
type PaymentService struct {
	txm          repository.TransactionManager
	paymentRepo  repository.PaymentRepository
	neighborRepo repository.NeighborRepository
	emailSvc     *EmailService
	worker       *jobs.Worker
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	txm repository.TransactionManager,
	repos *repository.Repositories,
	emailSvc *EmailService,
	worker *jobs.Worker,
) *PaymentService {
	return &PaymentService{
		txm:          txm,
		paymentRepo:  repos.Payment,
		neighborRepo: repos.Neighbor,
		emailSvc:     emailSvc,
		worker:       worker,
	}
}

// AllocationInput is one instruction to apply part of the payment to a debt
type AllocationInput struct {
	DebtItemID    uint  `json:"debt_item_id" binding:"required"`
	AmountApplied int64 `json:"amount_applied" binding:"required"`
}

// CreatePaymentInput carries the fields to register a payment
type CreatePaymentInput struct {
	NeighborID      uint              `json:"neighbor_id" binding:"required"`
	TotalAmount     int64             `json:"total_amount" binding:"required"`
	PaymentMethod   string            `json:"payment_method"`
	ReferenceNumber *string           `json:"reference_number"`
	ReceivedBy      string            `json:"received_by"`
	Notes           *string           `json:"notes"`
	Allocations     []AllocationInput `json:"allocations"`
}

// CreatePaymentResult is the allocation outcome returned to the caller
type CreatePaymentResult struct {
	Payment        models.PaymentResponse `json:"payment"`
	SkippedDebtIDs []uint                 `json:"skipped_debt_ids,omitempty"`
	Overpayment    bool                   `json:"overpayment"`
}

// CreatePayment registers one payment in a collection session and fans the
// amount out across the requested debts. An empty allocation list is valid:
// the payment is recorded as a general contribution with no detail lines.
// Everything runs in one transaction; a missing debt is skipped and reported,
// any other failure rolls the whole payment back. Balances are not clamped,
// so over-allocating a debt drives its balance negative and raises the
// overpayment flag.
func (s *PaymentService) CreatePayment(ctx context.Context, collectDebtID uint, input *CreatePaymentInput) (*CreatePaymentResult, error) {
	if input.TotalAmount <= 0 {
		return nil, fmt.Errorf("%w: el monto total debe ser mayor a cero", ErrValidation)
	}
	for _, alloc := range input.Allocations {
		if alloc.DebtItemID == 0 || alloc.AmountApplied <= 0 {
			return nil, fmt.Errorf("%w: cada asignación requiere deuda y monto positivo", ErrValidation)
		}
	}

	method := input.PaymentMethod
	if method == "" {
		method = models.PaymentMethodCash
	}

	var (
		payment    *models.Payment
		skippedIDs []uint
		overpay    bool
	)

	err := s.txm.Transaction(ctx, func(repos *repository.Repositories) error {
		session, err := repos.Collect.FindByID(ctx, collectDebtID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		neighbor, err := repos.Neighbor.FindByID(ctx, input.NeighborID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		total := money.FromCentavos(input.TotalAmount)
		payment = &models.Payment{
			NeighborID:      neighbor.ID,
			CollectDebtID:   session.ID,
			TotalAmount:     total,
			PaymentMethod:   method,
			PaymentDate:     time.Now(),
			ReceiptNumber:   newReceiptNumber(),
			ReferenceNumber: input.ReferenceNumber,
			ReceivedBy:      input.ReceivedBy,
			Notes:           input.Notes,
		}
		if err := repos.Payment.Create(ctx, payment); err != nil {
			return fmt.Errorf("error al registrar pago: %w", err)
		}
		payment.Neighbor = *neighbor

		var allocated money.Money
		for _, alloc := range input.Allocations {
			debt, err := repos.Debt.FindByID(ctx, alloc.DebtItemID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					skippedIDs = append(skippedIDs, alloc.DebtItemID)
					continue
				}
				return err
			}

			applied := money.FromCentavos(alloc.AmountApplied)
			previous := debt.Balance
			newBalance := previous.Sub(applied)

			detail := models.PaymentDetail{
				PaymentID:       payment.ID,
				DebtItemID:      debt.ID,
				AmountApplied:   applied,
				PreviousBalance: previous,
				NewBalance:      newBalance,
			}

			debt.AmountPaid = debt.AmountPaid.Add(applied)
			debt.Balance = newBalance

			dfsm := statemachine.NewDebtFSM(debt)
			if newBalance.IsNegative() || newBalance.IsZero() {
				if debt.Status != models.DebtStatusPaid {
					if err := dfsm.Settle(ctx); err != nil {
						return fmt.Errorf("%w: %v", ErrInvalidState, err)
					}
				}
				now := time.Now()
				debt.PaidDate = &now
				if newBalance.IsNegative() {
					overpay = true
				}
			} else if !debt.AmountPaid.IsZero() && debt.Status == models.DebtStatusPending {
				if err := dfsm.ApplyPartial(ctx); err != nil {
					return fmt.Errorf("%w: %v", ErrInvalidState, err)
				}
			}

			if err := repos.Debt.Update(ctx, debt); err != nil {
				return err
			}
			if err := repos.Payment.CreateDetail(ctx, &detail); err != nil {
				return fmt.Errorf("error al registrar detalle de pago: %w", err)
			}

			detail.DebtItem = *debt
			payment.PaymentDetails = append(payment.PaymentDetails, detail)
			allocated = allocated.Add(applied)
		}

		// Declared total exceeding what was actually allocated is accepted
		// but surfaced to the caller.
		if total.Sub(allocated).Centavos() > 0 {
			overpay = true
		}

		return s.recalculateSessionTotals(ctx, repos, session)
	})
	if err != nil {
		return nil, err
	}

	s.afterPaymentCommit(payment, skippedIDs)

	return &CreatePaymentResult{
		Payment:        payment.ToResponse(),
		SkippedDebtIDs: skippedIDs,
		Overpayment:    overpay || paymentHasNegativeBalance(payment),
	}, nil
}

func paymentHasNegativeBalance(p *models.Payment) bool {
	for i := range p.PaymentDetails {
		if p.PaymentDetails[i].NewBalance.IsNegative() {
			return true
		}
	}
	return false
}

// recalculateSessionTotals rebuilds the session aggregates from its payments
func (s *PaymentService) recalculateSessionTotals(ctx context.Context, repos *repository.Repositories, session *models.CollectDebt) error {
	count, err := repos.Payment.CountBySession(ctx, session.ID)
	if err != nil {
		return err
	}
	collected, err := repos.Payment.SumBySession(ctx, session.ID)
	if err != nil {
		return err
	}
	neighbors, err := repos.Payment.CountDistinctNeighborsBySession(ctx, session.ID)
	if err != nil {
		return err
	}

	session.TotalPayments = int(count)
	session.TotalCollected = collected
	session.TotalNeighborsPaid = int(neighbors)
	return repos.Collect.Update(ctx, session)
}

// afterPaymentCommit queues the post-commit side effects: skipped-debt
// warning and the receipt email for neighbors that have one.
func (s *PaymentService) afterPaymentCommit(payment *models.Payment, skippedIDs []uint) {
	if len(skippedIDs) > 0 {
		ids := make([]string, 0, len(skippedIDs))
		for _, id := range skippedIDs {
			ids = append(ids, fmt.Sprintf("%d", id))
		}
		logger.Warn("payment allocation skipped missing debts",
			"payment_id", payment.ID,
			"receipt", payment.ReceiptNumber,
			"skipped_debt_ids", strings.Join(ids, ","))
	}

	if s.worker == nil || s.emailSvc == nil {
		return
	}
	if payment.Neighbor.Email == nil || *payment.Neighbor.Email == "" {
		return
	}

	p := payment
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.emailSvc.SendPaymentReceipt(ctx, p)
	})
}

// GetPayment returns a payment with its detail lines
func (s *PaymentService) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return payment, nil
}

// GetNeighborPayments returns a neighbor's payment history
func (s *PaymentService) GetNeighborPayments(ctx context.Context, neighborID uint) ([]models.Payment, error) {
	if _, err := s.neighborRepo.FindByID(ctx, neighborID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.paymentRepo.FindByNeighbor(ctx, neighborID)
}

// newReceiptNumber builds a short unique receipt number, REC-XXXXXXXX
func newReceiptNumber() string {
	id := uuid.New().String()
	return "REC-" + strings.ToUpper(id[:8])
}
