package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/srodrigo23/backend-otb-control/internal/config"
	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/internal/services"
	"github.com/stretchr/testify/assert"
)

type stubMeasureRepository struct {
	repository.MeasureRepository
}

func (s *stubMeasureRepository) FindByID(ctx context.Context, id uint) (*models.Measure, error) {
	return &models.Measure{ID: id, Period: "2026-01"}, nil
}

type stubDebtRepository struct {
	repository.DebtRepository
}

func (s *stubDebtRepository) DeletePendingByMeasure(ctx context.Context, measureID uint) (int64, error) {
	return 7, nil
}

func TestDestroyDebtsHandler_ReportsDeletedCount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repos := &repository.Repositories{
		Measure: &stubMeasureRepository{},
		Debt:    &stubDebtRepository{},
	}
	debtSvc := services.NewDebtService(
		&inlineTxManager{repos: repos},
		repos,
		services.NewBillingPolicy(&config.Config{}),
		services.NewEmailService(&config.Config{}),
		30,
	)
	h := NewMeasureHandler(nil, debtSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	c.Request, _ = http.NewRequest("DELETE", "/measures/4/debts", nil)

	h.DestroyDebts(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"debts_deleted":7`)
}
