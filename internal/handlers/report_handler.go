package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/srodrigo23/backend-otb-control/internal/services"
	"github.com/srodrigo23/backend-otb-control/internal/storage"
	"github.com/srodrigo23/backend-otb-control/pkg/logger"
)

type ReportHandler struct {
	exportService *services.ExportService
	reportService *services.ReportService
	archive       *storage.LocalArchive
}

func NewReportHandler(
	exportService *services.ExportService,
	reportService *services.ReportService,
	archive *storage.LocalArchive,
) *ReportHandler {
	return &ReportHandler{
		exportService: exportService,
		reportService: reportService,
		archive:       archive,
	}
}

// archiveCopy keeps a copy of a generated document on disk. Failures are
// logged and never block the download.
func (h *ReportHandler) archiveCopy(data []byte, filename, subDir string) {
	if h.archive == nil {
		return
	}
	if _, err := h.archive.Save(data, filename, subDir); err != nil {
		logger.Log.Warn("No se pudo archivar el documento", "filename", filename, "error", err)
	}
}

// @Summary Export Session Payments
// @Description Download the payments of a collection session as an Excel file
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Session ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/collect-debts/{id}/payments.xlsx [get]
func (h *ReportHandler) SessionPaymentsXLSX(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	data, filename, err := h.exportService.ExportSessionXLSX(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	h.archiveCopy(data, filename, "recaudaciones")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// @Summary Payment Receipt PDF
// @Description Download the receipt of a payment as a PDF
// @Tags Reports
// @Produce application/pdf
// @Param id path int true "Payment ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/payments/{id}/receipt.pdf [get]
func (h *ReportHandler) PaymentReceiptPDF(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	data, filename, err := h.exportService.ExportReceiptPDF(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	h.archiveCopy(data, filename, "recibos")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// @Summary Neighbor Statement PDF
// @Description Download a neighbor's account statement as a PDF
// @Tags Reports
// @Produce application/pdf
// @Param id path int true "Neighbor ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/neighbors/{id}/statement.pdf [get]
func (h *ReportHandler) NeighborStatementPDF(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	buf, err := h.reportService.GenerateNeighborStatementPDF(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("estado_cuenta_%d.pdf", id)
	h.archiveCopy(buf.Bytes(), filename, "estados")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
