package services

import (
	"context"
	"testing"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
	"github.com/stretchr/testify/assert"
)

func newCollectServiceForTest(repos *repository.Repositories) *CollectService {
	return NewCollectService(&fakeTxManager{repos: repos}, repos)
}

func TestCreateSession_DefaultsToScheduled(t *testing.T) {
	var created *models.CollectDebt
	repos := &repository.Repositories{
		Collect: &mockCollectRepository{
			mockCreate: func(ctx context.Context, session *models.CollectDebt) error {
				created = session
				return nil
			},
		},
		Payment: &mockPaymentRepository{},
	}

	svc := newCollectServiceForTest(repos)
	session, err := svc.Create(context.Background(), &CreateCollectInput{
		CollectDate: "2026-09-01",
		Period:      "2026-08",
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, models.CollectStatusScheduled, session.Status)
	assert.Equal(t, "2026-08", session.Period)
}

func TestCreateSession_RejectsInvalidDate(t *testing.T) {
	repos := &repository.Repositories{
		Collect: &mockCollectRepository{},
		Payment: &mockPaymentRepository{},
	}

	svc := newCollectServiceForTest(repos)
	_, err := svc.Create(context.Background(), &CreateCollectInput{
		CollectDate: "01/09/2026",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteSession_RefusesWhenPaymentsExist(t *testing.T) {
	deleteCalls := 0
	repos := &repository.Repositories{
		Collect: &mockCollectRepository{
			mockDelete: func(ctx context.Context, id uint) error {
				deleteCalls++
				return nil
			},
		},
		Payment: &mockPaymentRepository{
			mockCountBySession: func(ctx context.Context, collectDebtID uint) (int64, error) {
				return 3, nil
			},
		},
	}

	svc := newCollectServiceForTest(repos)
	err := svc.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, 0, deleteCalls)
}

func TestDeleteSession_RemovesEmptySession(t *testing.T) {
	deleted := uint(0)
	repos := &repository.Repositories{
		Collect: &mockCollectRepository{
			mockDelete: func(ctx context.Context, id uint) error {
				deleted = id
				return nil
			},
		},
		Payment: &mockPaymentRepository{},
	}

	svc := newCollectServiceForTest(repos)
	err := svc.Delete(context.Background(), 4)

	assert.NoError(t, err)
	assert.Equal(t, uint(4), deleted)
}

func TestRecalculateTotals_RebuildsAggregates(t *testing.T) {
	var updated *models.CollectDebt
	repos := &repository.Repositories{
		Collect: &mockCollectRepository{
			mockUpdate: func(ctx context.Context, session *models.CollectDebt) error {
				updated = session
				return nil
			},
		},
		Payment: &mockPaymentRepository{
			mockCountBySession: func(ctx context.Context, collectDebtID uint) (int64, error) {
				return 12, nil
			},
			mockSumBySession: func(ctx context.Context, collectDebtID uint) (money.Money, error) {
				return money.FromBolivianos(340), nil
			},
			mockCountNeighbors: func(ctx context.Context, collectDebtID uint) (int64, error) {
				return 9, nil
			},
		},
	}

	svc := newCollectServiceForTest(repos)
	session, err := svc.RecalculateTotals(context.Background(), 1)

	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, 12, session.TotalPayments)
	assert.Equal(t, money.FromBolivianos(340), session.TotalCollected)
	assert.Equal(t, 9, session.TotalNeighborsPaid)
}
