package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/internal/services"
)

type DebtHandler struct {
	debtService      *services.DebtService
	migrationService *services.MigrationService
}

func NewDebtHandler(debtService *services.DebtService, migrationService *services.MigrationService) *DebtHandler {
	return &DebtHandler{debtService: debtService, migrationService: migrationService}
}

// @Summary List Debts
// @Description Get a paginated list of debt items
// @Tags Debts
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param period query string false "Filter by period (YYYY-MM)"
// @Param neighbor_id query int false "Filter by neighbor"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /debts [get]
func (h *DebtHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["status"] = c.Query("status")
	query.Filters["period"] = c.Query("period")
	query.Filters["neighbor_id"] = c.Query("neighbor_id")

	// Parse sort parameter (format: field-direction)
	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}

	debts, total, err := h.debtService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, d := range debts {
		responses = append(responses, d.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"debts": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Debt
// @Description Get a debt item by ID
// @Tags Debts
// @Accept json
// @Produce json
// @Param id path int true "Debt ID"
// @Success 200 {object} models.DebtItemResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /debts/{id} [get]
func (h *DebtHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	debt, err := h.debtService.GetDebt(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"debt": debt.ToResponse()})
}

// @Summary Create Debt
// @Description Register a manual debt such as a fine or a maintenance fee
// @Tags Debts
// @Accept json
// @Produce json
// @Param request body services.CreateManualDebtInput true "Debt data"
// @Success 201 {object} models.DebtItemResponse
// @Security BearerAuth
// @Router /debts [post]
func (h *DebtHandler) Create(c *gin.Context) {
	var input services.CreateManualDebtInput
	if err := BindNestedOrFlat(c, "debt", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de deuda inválidos"})
		return
	}
	if input.NeighborID == 0 || input.DebtTypeID == 0 || input.AmountCent <= 0 || input.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vecino, tipo, monto y motivo son requeridos"})
		return
	}

	debt, err := h.debtService.CreateManual(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"debt": debt.ToResponse()})
}

// @Summary Delete Debt
// @Description Delete a pending debt with no payments applied (Admin)
// @Tags Debts
// @Accept json
// @Produce json
// @Param id path int true "Debt ID"
// @Success 200 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /debts/{id} [delete]
func (h *DebtHandler) Destroy(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.debtService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deuda eliminada exitosamente"})
}

// @Summary List Debt Types
// @Description Get the debt type catalog
// @Tags Debts
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /debt-types [get]
func (h *DebtHandler) Types(c *gin.Context) {
	types, err := h.debtService.ListDebtTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"debt_types": types})
}

// @Summary Migrate Currency Units
// @Description Divide every stored amount by 100, converting centavos to bolivianos. One-shot, guarded (Admin)
// @Tags Debts
// @Accept json
// @Produce json
// @Success 200 {object} services.CurrencyMigrationResult
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /debts/migrate-currency [post]
func (h *DebtHandler) MigrateCurrency(c *gin.Context) {
	result, err := h.migrationService.MigrateCurrencyUnits(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Migración de moneda aplicada",
		"updated": result,
	})
}
