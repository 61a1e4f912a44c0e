package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/internal/services"
)

type MeetHandler struct {
	meetService *services.MeetService
}

func NewMeetHandler(meetService *services.MeetService) *MeetHandler {
	return &MeetHandler{meetService: meetService}
}

// @Summary List Meetings
// @Description Get a paginated list of association meetings
// @Tags Meetings
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search query string false "Search by title"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /meets [get]
func (h *MeetHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Filters["status"] = c.Query("status")

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

	meets, total, err := h.meetService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var responses []interface{}
	for _, m := range meets {
		responses = append(responses, m.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"meets": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Meeting
// @Description Get a meeting by ID
// @Tags Meetings
// @Accept json
// @Produce json
// @Param id path int true "Meeting ID"
// @Success 200 {object} models.MeetResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /meets/{id} [get]
func (h *MeetHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	meet, err := h.meetService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meet": meet.ToResponse()})
}

// @Summary Create Meeting
// @Description Schedule an association meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param request body services.CreateMeetInput true "Meeting data"
// @Success 201 {object} models.MeetResponse
// @Security BearerAuth
// @Router /meets [post]
func (h *MeetHandler) Create(c *gin.Context) {
	var input services.CreateMeetInput
	if err := BindNestedOrFlat(c, "meet", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de reunión inválidos"})
		return
	}
	if input.MeetDate == "" || input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha y título son requeridos"})
		return
	}

	meet, err := h.meetService.Create(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meet": meet.ToResponse()})
}

// @Summary Update Meeting
// @Description Update a meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param id path int true "Meeting ID"
// @Param request body services.UpdateMeetInput true "Fields to update"
// @Success 200 {object} models.MeetResponse
// @Security BearerAuth
// @Router /meets/{id} [put]
func (h *MeetHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var input services.UpdateMeetInput
	if err := BindNestedOrFlat(c, "meet", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de reunión inválidos"})
		return
	}

	meet, err := h.meetService.Update(c.Request.Context(), uint(id), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meet": meet.ToResponse()})
}

// @Summary Delete Meeting
// @Description Delete a meeting and its attendance records (Admin)
// @Tags Meetings
// @Accept json
// @Produce json
// @Param id path int true "Meeting ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /meets/{id} [delete]
func (h *MeetHandler) Destroy(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	if err := h.meetService.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reunión eliminada exitosamente"})
}

// @Summary List Attendance
// @Description Get the attendance records of a meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param id path int true "Meeting ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /meets/{id}/assistances [get]
func (h *MeetHandler) Assistances(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	assistances, err := h.meetService.GetAssistances(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	var responses []interface{}
	for _, a := range assistances {
		responses = append(responses, a.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"assistances": responses})
}

// @Summary Record Attendance
// @Description Create or update a neighbor's attendance record for a meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param id path int true "Meeting ID"
// @Param request body services.RecordAssistanceInput true "Attendance data"
// @Success 200 {object} models.AssistanceResponse
// @Security BearerAuth
// @Router /meets/{id}/assistances [post]
func (h *MeetHandler) RecordAssistance(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	var input services.RecordAssistanceInput
	if err := BindNestedOrFlat(c, "assistance", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de asistencia inválidos"})
		return
	}
	if input.NeighborID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vecino es requerido"})
		return
	}

	assistance, err := h.meetService.RecordAssistance(c.Request.Context(), uint(id), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assistance": assistance.ToResponse()})
}

// @Summary Recalculate Meeting Statistics
// @Description Recount attendance totals for a meeting
// @Tags Meetings
// @Accept json
// @Produce json
// @Param id path int true "Meeting ID"
// @Success 200 {object} models.MeetResponse
// @Security BearerAuth
// @Router /meets/{id}/recalculate-statistics [post]
func (h *MeetHandler) RecalculateStatistics(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	meet, err := h.meetService.RecalculateStatistics(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meet": meet.ToResponse()})
}

// @Summary Recalculate All Meeting Statistics
// @Description Recount attendance totals for every meeting (Admin)
// @Tags Meetings
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /meets/recalculate-all-statistics [post]
func (h *MeetHandler) RecalculateAllStatistics(c *gin.Context) {
	updated, err := h.meetService.RecalculateAllStatistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Estadísticas recalculadas",
		"updated": updated,
	})
}
