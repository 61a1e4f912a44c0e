package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/internal/services"
)

type MeasureHandler struct {
	measureService *services.MeasureService
	debtService    *services.DebtService
}

func NewMeasureHandler(measureService *services.MeasureService, debtService *services.DebtService) *MeasureHandler {
	return &MeasureHandler{measureService: measureService, debtService: debtService}
}

// @Summary List Measures
// @Description Get a paginated list of reading campaigns
// @Tags Measures
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param period query string false "Filter by period (YYYY-MM)"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /measures [get]
func (h *MeasureHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["period"] = c.Query("period")
	query.Filters["status"] = c.Query("status")

	// Parse sort parameter (format: field-direction)
	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}

	measures, total, err := h.measureService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"measures": measures,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Measure
// @Description Get a reading campaign by ID
// @Tags Measures
// @Accept json
// @Produce json
// @Param id path int true "Measure ID"
// @Success 200 {object} models.Measure
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /measures/{id} [get]
func (h *MeasureHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	measure, err := h.measureService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"measure": measure})
}

// @Summary Create Measure
// @Description Open a reading campaign for a period
// @Tags Measures
// @Accept json
// @Produce json
// @Param request body services.CreateMeasureInput true "Campaign data"
// @Success 201 {object} models.Measure
// @Security BearerAuth
// @Router /measures [post]
func (h *MeasureHandler) Create(c *gin.Context) {
	var input services.CreateMeasureInput
	if err := BindNestedOrFlat(c, "measure", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de medición inválidos"})
		return
	}
	if input.MeasureDate == "" || input.Period == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha y periodo son requeridos"})
		return
	}

	measure, err := h.measureService.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"measure": measure})
}

// @Summary Update Measure
// @Description Update a reading campaign
// @Tags Measures
// @Accept json
// @Produce json
// @Param id path int true "Measure ID"
// @Param request body services.UpdateMeasureInput true "Fields to update"
// @Success 200 {object} models.Measure
// @Security BearerAuth
// @Router /measures/{id} [put]
func (h *MeasureHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var input services.UpdateMeasureInput
	if err := BindNestedOrFlat(c, "measure", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de medición inválidos"})
		return
	}

	measure, err := h.measureService.Update(c.Request.Context(), uint(id), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"measure": measure})
}

// @Summary Delete Measure
// @Description Delete a reading campaign (Admin)
// @Tags Measures
// @Accept json
// @Produce json
// @Param id path int true "Measure ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /measures/{id} [delete]
func (h *MeasureHandler) Destroy(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.measureService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medición eliminada exitosamente"})
}

// @Summary List Meter Readings
// @Description Get the meter readings captured in a campaign
// @Tags Measures
// @Accept json
// @Produce json
// @Param id path int true "Measure ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /measures/{id}/meter-readings [get]
func (h *MeasureHandler) Readings(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	readings, err := h.measureService.GetReadings(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for _, r := range readings {
		responses = append(responses, r.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"meter_readings": responses})
}

// @Summary Record Meter Reading
// @Description Record one meter's reading in a campaign
// @Tags Measures
// @Accept json
// @Produce json
// @Param id path int true "Measure ID"
// @Param request body services.CreateReadingInput true "Reading data"
// @Success 201 {object} models.MeterReadingResponse
// @Security BearerAuth
// @Router /measures/{id}/meter-readings [post]
func (h *MeasureHandler) CreateReading(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var input services.CreateReadingInput
	if err := BindNestedOrFlat(c, "meter_reading", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de lectura inválidos"})
		return
	}
	if input.MeterID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Medidor es requerido"})
		return
	}

	reading, err := h.measureService.CreateReading(c.Request.Context(), uint(id), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meter_reading": reading.ToResponse()})
}

// @Summary Generate Debts
// @Description Generate water consumption debts for every reading in the campaign
// @Tags Measures
// @Accept json
// @Produce json
// @Param id path int true "Measure ID"
// @Success 200 {object} services.GenerationResult
// @Security BearerAuth
// @Router /measures/{id}/generate-debts [post]
func (h *MeasureHandler) GenerateDebts(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	result, err := h.debtService.GenerateForMeasure(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Delete Generated Debts
// @Description Delete the untouched pending debts generated from this campaign (Admin)
// @Tags Measures
// @Accept json
// @Produce json
// @Param id path int true "Measure ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /measures/{id}/debts [delete]
func (h *MeasureHandler) DestroyDebts(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	deleted, err := h.debtService.DeleteByMeasure(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Deudas pendientes eliminadas",
		"debts_deleted": deleted,
	})
}
