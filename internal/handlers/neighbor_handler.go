package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/internal/services"
)

type NeighborHandler struct {
	neighborService *services.NeighborService
	debtService     *services.DebtService
	paymentService  *services.PaymentService
}

func NewNeighborHandler(
	neighborService *services.NeighborService,
	debtService *services.DebtService,
	paymentService *services.PaymentService,
) *NeighborHandler {
	return &NeighborHandler{
		neighborService: neighborService,
		debtService:     debtService,
		paymentService:  paymentService,
	}
}

// @Summary List Neighbors
// @Description Get a paginated list of neighbors
// @Tags Neighbors
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search query string false "Search by name or CI"
// @Param section query string false "Filter by section"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /neighbors [get]
func (h *NeighborHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["section"] = c.Query("section")
	query.Filters["is_active"] = c.Query("is_active")

	if search := c.Query("search"); search != "" {
		query.Filters["search_term"] = search
	}

	// Parse sort parameter (format: field-direction)
	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}

	neighbors, total, err := h.neighborService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"neighbors": neighbors,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Neighbor
// @Description Get a neighbor by ID, including their meters
// @Tags Neighbors
// @Accept json
// @Produce json
// @Param id path int true "Neighbor ID"
// @Success 200 {object} models.Neighbor
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /neighbors/{id} [get]
func (h *NeighborHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	neighbor, err := h.neighborService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"neighbor": neighbor})
}

// @Summary Create Neighbor
// @Description Register a neighbor
// @Tags Neighbors
// @Accept json
// @Produce json
// @Param request body services.CreateNeighborInput true "Neighbor data"
// @Success 201 {object} models.Neighbor
// @Security BearerAuth
// @Router /neighbors [post]
func (h *NeighborHandler) Create(c *gin.Context) {
	var input services.CreateNeighborInput
	if err := BindNestedOrFlat(c, "neighbor", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de vecino inválidos"})
		return
	}
	if input.FirstName == "" || input.LastName == "" || input.CI == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre, apellido y CI son requeridos"})
		return
	}

	neighbor, err := h.neighborService.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"neighbor": neighbor})
}

// @Summary Update Neighbor
// @Description Update a neighbor's data
// @Tags Neighbors
// @Accept json
// @Produce json
// @Param id path int true "Neighbor ID"
// @Param request body services.UpdateNeighborInput true "Fields to update"
// @Success 200 {object} models.Neighbor
// @Security BearerAuth
// @Router /neighbors/{id} [put]
func (h *NeighborHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var input services.UpdateNeighborInput
	if err := BindNestedOrFlat(c, "neighbor", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de vecino inválidos"})
		return
	}

	neighbor, err := h.neighborService.Update(c.Request.Context(), uint(id), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"neighbor": neighbor})
}

// @Summary Delete Neighbor
// @Description Delete a neighbor and their debts and payments (Admin)
// @Tags Neighbors
// @Accept json
// @Produce json
// @Param id path int true "Neighbor ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /neighbors/{id} [delete]
func (h *NeighborHandler) Destroy(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.neighborService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vecino eliminado exitosamente"})
}

// @Summary List Neighbor Meters
// @Description Get the water meters registered for a neighbor
// @Tags Neighbors
// @Accept json
// @Produce json
// @Param id path int true "Neighbor ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /neighbors/{id}/meters [get]
func (h *NeighborHandler) Meters(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	meters, err := h.neighborService.GetMeters(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meters": meters})
}

// @Summary Register Meter
// @Description Register a water meter for a neighbor
// @Tags Neighbors
// @Accept json
// @Produce json
// @Param id path int true "Neighbor ID"
// @Param request body services.CreateMeterInput true "Meter data"
// @Success 201 {object} models.NeighborMeter
// @Security BearerAuth
// @Router /neighbors/{id}/meters [post]
func (h *NeighborHandler) CreateMeter(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var input services.CreateMeterInput
	if err := BindNestedOrFlat(c, "meter", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de medidor inválidos"})
		return
	}
	if input.MeterCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Código de medidor es requerido"})
		return
	}

	meter, err := h.neighborService.CreateMeter(c.Request.Context(), uint(id), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meter": meter})
}

// @Summary Neighbor Payments
// @Description Get the payment history of a neighbor
// @Tags Neighbors
// @Accept json
// @Produce json
// @Param id path int true "Neighbor ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /neighbors/{id}/payments [get]
func (h *NeighborHandler) Payments(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	payments, err := h.paymentService.GetNeighborPayments(c.Request.Context(), uint(id))
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

// @Summary Neighbor Active Debts
// @Description Get the pending and partial debts of a neighbor with totals
// @Tags Neighbors
// @Accept json
// @Produce json
// @Param id path int true "Neighbor ID"
// @Success 200 {object} models.NeighborDebtsResponse
// @Security BearerAuth
// @Router /neighbors/{id}/debts/active [get]
func (h *NeighborHandler) ActiveDebts(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	debts, err := h.debtService.GetActiveDebts(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, debts)
}

// @Summary Neighbor Debt History
// @Description Get every debt of a neighbor, settled ones included
// @Tags Neighbors
// @Accept json
// @Produce json
// @Param id path int true "Neighbor ID"
// @Success 200 {object} models.NeighborDebtsResponse
// @Security BearerAuth
// @Router /neighbors/{id}/debts/all [get]
func (h *NeighborHandler) AllDebts(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	debts, err := h.debtService.GetAllDebts(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, debts)
}
