package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/internal/services"
)

type CollectHandler struct {
	collectService *services.CollectService
	paymentService *services.PaymentService
}

func NewCollectHandler(collectService *services.CollectService, paymentService *services.PaymentService) *CollectHandler {
	return &CollectHandler{collectService: collectService, paymentService: paymentService}
}

// @Summary List Collection Sessions
// @Description Get a paginated list of collection sessions
// @Tags Collections
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param period query string false "Filter by period (YYYY-MM)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /collect-debts [get]
func (h *CollectHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["status"] = c.Query("status")
	query.Filters["period"] = c.Query("period")

	// Parse sort parameter (format: field-direction)
	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}

	sessions, total, err := h.collectService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, s := range sessions {
		responses = append(responses, s.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"collect_debts": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Collection Session
// @Description Get a collection session by ID
// @Tags Collections
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} models.CollectDebtResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /collect-debts/{id} [get]
func (h *CollectHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	session, err := h.collectService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collect_debt": session.ToResponse()})
}

// @Summary Create Collection Session
// @Description Open a collection session for a period
// @Tags Collections
// @Accept json
// @Produce json
// @Param request body services.CreateCollectInput true "Session data"
// @Success 201 {object} models.CollectDebtResponse
// @Security BearerAuth
// @Router /collect-debts [post]
func (h *CollectHandler) Create(c *gin.Context) {
	var input services.CreateCollectInput
	if err := BindNestedOrFlat(c, "collect_debt", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de recaudación inválidos"})
		return
	}
	if input.CollectDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha de recaudación es requerida"})
		return
	}

	session, err := h.collectService.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"collect_debt": session.ToResponse()})
}

// @Summary Update Collection Session
// @Description Update a collection session's metadata
// @Tags Collections
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body services.UpdateCollectInput true "Fields to update"
// @Success 200 {object} models.CollectDebtResponse
// @Security BearerAuth
// @Router /collect-debts/{id} [put]
func (h *CollectHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var input services.UpdateCollectInput
	if err := BindNestedOrFlat(c, "collect_debt", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de recaudación inválidos"})
		return
	}

	session, err := h.collectService.Update(c.Request.Context(), uint(id), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collect_debt": session.ToResponse()})
}

// @Summary Delete Collection Session
// @Description Delete a collection session with no payments (Admin)
// @Tags Collections
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /collect-debts/{id} [delete]
func (h *CollectHandler) Destroy(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.collectService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recaudación eliminada exitosamente"})
}

// @Summary List Session Payments
// @Description Get the payments registered in a collection session
// @Tags Collections
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /collect-debts/{id}/payments [get]
func (h *CollectHandler) Payments(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	payments, err := h.collectService.GetSessionPayments(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for _, p := range payments {
		responses = append(responses, p.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"payments": responses})
}

// @Summary Register Payment
// @Description Register a payment in a collection session and allocate it across debts
// @Tags Collections
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Param request body services.CreatePaymentInput true "Payment data"
// @Success 201 {object} services.CreatePaymentResult
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /collect-debts/{id}/payments [post]
func (h *CollectHandler) CreatePayment(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var input services.CreatePaymentInput
	if err := BindNestedOrFlat(c, "payment", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de pago inválidos"})
		return
	}
	if input.NeighborID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vecino es requerido"})
		return
	}

	result, err := h.paymentService.CreatePayment(c.Request.Context(), uint(id), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// @Summary Recalculate Session Totals
// @Description Recount the payment aggregates of a collection session
// @Tags Collections
// @Accept json
// @Produce json
// @Param id path int true "Session ID"
// @Success 200 {object} models.CollectDebtResponse
// @Security BearerAuth
// @Router /collect-debts/{id}/recalculate [post]
func (h *CollectHandler) Recalculate(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	session, err := h.collectService.RecalculateTotals(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collect_debt": session.ToResponse()})
}
