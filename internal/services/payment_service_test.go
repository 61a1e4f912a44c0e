package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/srodrigo23/backend-otb-control/internal/config"
	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newPaymentServiceForTest(repos *repository.Repositories) *PaymentService {
	return NewPaymentService(
		&fakeTxManager{repos: repos},
		repos,
		NewEmailService(&config.Config{}),
		nil,
	)
}

func TestCreatePayment_AllocatesAcrossDebts(t *testing.T) {
	debts := map[uint]*models.DebtItem{
		1: {ID: 1, NeighborID: 5, Amount: money.FromBolivianos(20), Balance: money.FromBolivianos(20), Status: models.DebtStatusPending},
		2: {ID: 2, NeighborID: 5, Amount: money.FromBolivianos(50), Balance: money.FromBolivianos(50), Status: models.DebtStatusPending},
	}
	var updatedDebts []*models.DebtItem
	var details []*models.PaymentDetail
	var updatedSession *models.CollectDebt

	repos := &repository.Repositories{
		Collect: &mockCollectRepository{
			mockUpdate: func(ctx context.Context, session *models.CollectDebt) error {
				updatedSession = session
				return nil
			},
		},
		Neighbor: &mockNeighborRepository{},
		Debt: &mockDebtRepository{
			mockFindByID: func(ctx context.Context, id uint) (*models.DebtItem, error) {
				d, ok := debts[id]
				if !ok {
					return nil, gorm.ErrRecordNotFound
				}
				found := *d
				return &found, nil
			},
			mockUpdate: func(ctx context.Context, debt *models.DebtItem) error {
				updatedDebts = append(updatedDebts, debt)
				return nil
			},
		},
		Payment: &mockPaymentRepository{
			mockCreate: func(ctx context.Context, payment *models.Payment) error {
				payment.ID = 9
				return nil
			},
			mockCreateDetail: func(ctx context.Context, detail *models.PaymentDetail) error {
				details = append(details, detail)
				return nil
			},
			mockCountBySession: func(ctx context.Context, collectDebtID uint) (int64, error) {
				return 1, nil
			},
			mockSumBySession: func(ctx context.Context, collectDebtID uint) (money.Money, error) {
				return money.FromBolivianos(50), nil
			},
			mockCountNeighbors: func(ctx context.Context, collectDebtID uint) (int64, error) {
				return 1, nil
			},
		},
	}

	svc := newPaymentServiceForTest(repos)
	result, err := svc.CreatePayment(context.Background(), 3, &CreatePaymentInput{
		NeighborID:  5,
		TotalAmount: 5000, // Bs 50
		Allocations: []AllocationInput{
			{DebtItemID: 1, AmountApplied: 2000}, // clears debt 1
			{DebtItemID: 2, AmountApplied: 3000}, // partial on debt 2
		},
	})

	assert.NoError(t, err)
	assert.False(t, result.Overpayment)
	assert.Empty(t, result.SkippedDebtIDs)
	assert.Len(t, details, 2)
	assert.Len(t, updatedDebts, 2)

	// Debt 1 is fully settled
	assert.Equal(t, models.DebtStatusPaid, updatedDebts[0].Status)
	assert.True(t, updatedDebts[0].Balance.IsZero())
	assert.NotNil(t, updatedDebts[0].PaidDate)
	assert.Equal(t, money.FromBolivianos(20), details[0].PreviousBalance)
	assert.True(t, details[0].NewBalance.IsZero())

	// Debt 2 keeps a balance and moves to partial
	assert.Equal(t, models.DebtStatusPartial, updatedDebts[1].Status)
	assert.Equal(t, money.FromBolivianos(20), updatedDebts[1].Balance)
	assert.Nil(t, updatedDebts[1].PaidDate)

	// Session aggregates rebuilt from the payment rows
	assert.NotNil(t, updatedSession)
	assert.Equal(t, 1, updatedSession.TotalPayments)
	assert.Equal(t, money.FromBolivianos(50), updatedSession.TotalCollected)
	assert.Equal(t, 1, updatedSession.TotalNeighborsPaid)

	assert.Equal(t, models.PaymentMethodCash, result.Payment.PaymentMethod)
	assert.Contains(t, result.Payment.ReceiptNumber, "REC-")
}

func TestCreatePayment_AcceptsEmptyAllocationList(t *testing.T) {
	var created *models.Payment
	var details []*models.PaymentDetail
	var updatedSession *models.CollectDebt

	repos := &repository.Repositories{
		Collect: &mockCollectRepository{
			mockUpdate: func(ctx context.Context, session *models.CollectDebt) error {
				updatedSession = session
				return nil
			},
		},
		Neighbor: &mockNeighborRepository{},
		Debt:     &mockDebtRepository{},
		Payment: &mockPaymentRepository{
			mockCreate: func(ctx context.Context, payment *models.Payment) error {
				payment.ID = 12
				created = payment
				return nil
			},
			mockCreateDetail: func(ctx context.Context, detail *models.PaymentDetail) error {
				details = append(details, detail)
				return nil
			},
			mockCountBySession: func(ctx context.Context, collectDebtID uint) (int64, error) {
				return 1, nil
			},
			mockSumBySession: func(ctx context.Context, collectDebtID uint) (money.Money, error) {
				return money.FromBolivianos(20), nil
			},
			mockCountNeighbors: func(ctx context.Context, collectDebtID uint) (int64, error) {
				return 1, nil
			},
		},
	}

	// A general contribution: nothing is applied to any debt
	svc := newPaymentServiceForTest(repos)
	result, err := svc.CreatePayment(context.Background(), 3, &CreatePaymentInput{
		NeighborID:  5,
		TotalAmount: 2000, // Bs 20
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, money.FromBolivianos(20), created.TotalAmount)
	assert.Empty(t, details)
	assert.Empty(t, result.Payment.Details)
	assert.Empty(t, result.SkippedDebtIDs)

	// The whole declared total stayed unallocated
	assert.True(t, result.Overpayment)

	// Session aggregates still count the payment
	assert.NotNil(t, updatedSession)
	assert.Equal(t, 1, updatedSession.TotalPayments)
	assert.Equal(t, money.FromBolivianos(20), updatedSession.TotalCollected)
	assert.Equal(t, 1, updatedSession.TotalNeighborsPaid)
}

func TestCreatePayment_SkipsMissingDebts(t *testing.T) {
	repos := &repository.Repositories{
		Collect:  &mockCollectRepository{},
		Neighbor: &mockNeighborRepository{},
		Debt: &mockDebtRepository{
			mockFindByID: func(ctx context.Context, id uint) (*models.DebtItem, error) {
				if id == 404 {
					return nil, gorm.ErrRecordNotFound
				}
				return &models.DebtItem{ID: id, Balance: money.FromBolivianos(30), Status: models.DebtStatusPending}, nil
			},
		},
		Payment: &mockPaymentRepository{},
	}

	svc := newPaymentServiceForTest(repos)
	result, err := svc.CreatePayment(context.Background(), 3, &CreatePaymentInput{
		NeighborID:  5,
		TotalAmount: 5000,
		Allocations: []AllocationInput{
			{DebtItemID: 1, AmountApplied: 3000},
			{DebtItemID: 404, AmountApplied: 2000},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, []uint{404}, result.SkippedDebtIDs)
	// The declared total exceeds what was actually allocated
	assert.True(t, result.Overpayment)
	assert.Len(t, result.Payment.Details, 1)
}

func TestCreatePayment_OverAllocationDrivesBalanceNegative(t *testing.T) {
	var updated *models.DebtItem
	repos := &repository.Repositories{
		Collect:  &mockCollectRepository{},
		Neighbor: &mockNeighborRepository{},
		Debt: &mockDebtRepository{
			mockFindByID: func(ctx context.Context, id uint) (*models.DebtItem, error) {
				return &models.DebtItem{ID: id, Balance: money.FromBolivianos(20), Status: models.DebtStatusPending}, nil
			},
			mockUpdate: func(ctx context.Context, debt *models.DebtItem) error {
				updated = debt
				return nil
			},
		},
		Payment: &mockPaymentRepository{},
	}

	svc := newPaymentServiceForTest(repos)
	result, err := svc.CreatePayment(context.Background(), 3, &CreatePaymentInput{
		NeighborID:  5,
		TotalAmount: 2500,
		Allocations: []AllocationInput{
			{DebtItemID: 1, AmountApplied: 2500}, // Bs 5 over the balance
		},
	})

	assert.NoError(t, err)
	assert.True(t, result.Overpayment)

	// The balance is not clamped at zero
	assert.Equal(t, money.FromCentavos(-500), updated.Balance)
	assert.Equal(t, models.DebtStatusPaid, updated.Status)
	assert.NotNil(t, updated.PaidDate)

	// The flag lives on the result envelope only, not inside the payment
	body, err := json.Marshal(result)
	assert.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(body), `"overpayment"`))
}

func TestCreatePayment_RejectsInvalidInput(t *testing.T) {
	repos := &repository.Repositories{
		Collect:  &mockCollectRepository{},
		Neighbor: &mockNeighborRepository{},
		Debt:     &mockDebtRepository{},
		Payment:  &mockPaymentRepository{},
	}
	svc := newPaymentServiceForTest(repos)

	_, err := svc.CreatePayment(context.Background(), 3, &CreatePaymentInput{
		NeighborID:  5,
		TotalAmount: 0,
		Allocations: []AllocationInput{{DebtItemID: 1, AmountApplied: 100}},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreatePayment(context.Background(), 3, &CreatePaymentInput{
		NeighborID:  5,
		TotalAmount: 100,
		Allocations: []AllocationInput{{DebtItemID: 1, AmountApplied: 0}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreatePayment_SessionNotFound(t *testing.T) {
	repos := &repository.Repositories{
		Collect: &mockCollectRepository{
			mockFindByID: func(ctx context.Context, id uint) (*models.CollectDebt, error) {
				return nil, gorm.ErrRecordNotFound
			},
		},
		Neighbor: &mockNeighborRepository{},
		Debt:     &mockDebtRepository{},
		Payment:  &mockPaymentRepository{},
	}

	svc := newPaymentServiceForTest(repos)
	_, err := svc.CreatePayment(context.Background(), 99, &CreatePaymentInput{
		NeighborID:  5,
		TotalAmount: 100,
		Allocations: []AllocationInput{{DebtItemID: 1, AmountApplied: 100}},
	})

	assert.ErrorIs(t, err, ErrNotFound)
}
