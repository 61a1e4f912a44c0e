package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srodrigo23/backend-otb-control/internal/services"
)

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidPassword):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrDebtNotDeletable),
		errors.Is(err, services.ErrDuplicateDebt),
		errors.Is(err, services.ErrMigrationAlreadyRun):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
