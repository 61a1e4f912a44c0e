package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/srodrigo23/backend-otb-control/internal/config"
	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/internal/services"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
	"github.com/stretchr/testify/assert"
)

// inlineTxManager runs the transaction body directly against the given
// repositories, no database involved.
type inlineTxManager struct {
	repos *repository.Repositories
}

func (f *inlineTxManager) Transaction(ctx context.Context, fn func(repos *repository.Repositories) error) error {
	return fn(f.repos)
}

type stubCollectRepository struct {
	repository.CollectRepository
}

func (s *stubCollectRepository) FindByID(ctx context.Context, id uint) (*models.CollectDebt, error) {
	return &models.CollectDebt{ID: id}, nil
}
func (s *stubCollectRepository) Update(ctx context.Context, session *models.CollectDebt) error {
	return nil
}

type stubNeighborRepository struct {
	repository.NeighborRepository
}

func (s *stubNeighborRepository) FindByID(ctx context.Context, id uint) (*models.Neighbor, error) {
	return &models.Neighbor{ID: id, FirstName: "Juan", LastName: "Pérez"}, nil
}

type stubPaymentRepository struct {
	repository.PaymentRepository
	created *models.Payment
}

func (s *stubPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	payment.ID = 9
	s.created = payment
	return nil
}
func (s *stubPaymentRepository) CreateDetail(ctx context.Context, detail *models.PaymentDetail) error {
	return nil
}
func (s *stubPaymentRepository) CountBySession(ctx context.Context, collectDebtID uint) (int64, error) {
	return 1, nil
}
func (s *stubPaymentRepository) SumBySession(ctx context.Context, collectDebtID uint) (money.Money, error) {
	return money.FromBolivianos(20), nil
}
func (s *stubPaymentRepository) CountDistinctNeighborsBySession(ctx context.Context, collectDebtID uint) (int64, error) {
	return 1, nil
}

func newCollectHandlerForTest() (*CollectHandler, *stubPaymentRepository) {
	paymentRepo := &stubPaymentRepository{}
	repos := &repository.Repositories{
		Collect:  &stubCollectRepository{},
		Neighbor: &stubNeighborRepository{},
		Payment:  paymentRepo,
	}
	paymentSvc := services.NewPaymentService(
		&inlineTxManager{repos: repos},
		repos,
		services.NewEmailService(&config.Config{}),
		nil,
	)
	return NewCollectHandler(nil, paymentSvc), paymentRepo
}

func postPayment(t *testing.T, h *CollectHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	c.Request, _ = http.NewRequest("POST", "/collect-debts/3/payments", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CreatePayment(c)
	return w
}

func TestCreatePaymentHandler_AcceptsGeneralPayment(t *testing.T) {
	h, paymentRepo := newCollectHandlerForTest()

	w := postPayment(t, h, `{"neighbor_id":5,"total_amount":2000,"allocations":[]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotNil(t, paymentRepo.created)

	var result services.CreatePaymentResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Empty(t, result.Payment.Details)
	assert.True(t, result.Overpayment)
}

func TestCreatePaymentHandler_RejectsMissingNeighbor(t *testing.T) {
	h, _ := newCollectHandlerForTest()

	w := postPayment(t, h, `{"total_amount":2000,"allocations":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Vecino")
}

func TestCreatePaymentHandler_RejectsAllocationWithoutAmount(t *testing.T) {
	h, _ := newCollectHandlerForTest()

	w := postPayment(t, h, `{"neighbor_id":5,"total_amount":2000,"allocations":[{"debt_item_id":1}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
