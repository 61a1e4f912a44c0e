package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/srodrigo23/backend-otb-control/internal/models"
)

// ReportService renders formal documents as HTML converted to PDF
type ReportService struct {
	neighborSvc *NeighborService
	debtSvc     *DebtService
	paymentSvc  *PaymentService
}

// NewReportService creates a new report service
func NewReportService(neighborSvc *NeighborService, debtSvc *DebtService, paymentSvc *PaymentService) *ReportService {
	return &ReportService{
		neighborSvc: neighborSvc,
		debtSvc:     debtSvc,
		paymentSvc:  paymentSvc,
	}
}

// generatePDF renders an HTML template and converts it with wkhtmltopdf
func (s *ReportService) generatePDF(templateName string, data interface{}) (*bytes.Buffer, error) {
	// Path relative to project root in production, to the package in tests
	tmplPath := fmt.Sprintf("internal/services/templates/reports/%s", templateName)
	if _, err := os.Stat(tmplPath); os.IsNotExist(err) {
		tmplPath = fmt.Sprintf("templates/reports/%s", templateName)
	}

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s (path: %s): %w", templateName, tmplPath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(buf.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}

// GenerateNeighborStatementPDF builds a statement of account for a neighbor:
// every debt with its balance, plus the payment history.
func (s *ReportService) GenerateNeighborStatementPDF(ctx context.Context, neighborID uint) (*bytes.Buffer, error) {
	neighbor, err := s.neighborSvc.Get(ctx, neighborID)
	if err != nil {
		return nil, err
	}

	debts, err := s.debtSvc.GetAllDebts(ctx, neighborID)
	if err != nil {
		return nil, err
	}

	payments, err := s.paymentSvc.GetNeighborPayments(ctx, neighborID)
	if err != nil {
		return nil, err
	}

	type debtLine struct {
		DebtType  string
		Period    string
		Reason    string
		Amount    string
		Paid      string
		Balance   string
		Status    string
		IsOverdue bool
	}

	type paymentLine struct {
		Receipt string
		Date    string
		Method  string
		Amount  string
	}

	statusLabels := map[string]string{
		models.DebtStatusPending: "Pendiente",
		models.DebtStatusPartial: "Pago parcial",
		models.DebtStatusPaid:    "Pagada",
	}

	debtLines := make([]debtLine, 0, len(debts.DebtDetails))
	for _, d := range debts.DebtDetails {
		label := d.Status
		if v, ok := statusLabels[d.Status]; ok {
			label = v
		}
		debtLines = append(debtLines, debtLine{
			DebtType:  d.DebtTypeName,
			Period:    d.Period,
			Reason:    d.Reason,
			Amount:    d.Amount.String(),
			Paid:      d.AmountPaid.String(),
			Balance:   d.Balance.String(),
			Status:    label,
			IsOverdue: d.IsOverdue,
		})
	}

	paymentLines := make([]paymentLine, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		paymentLines = append(paymentLines, paymentLine{
			Receipt: p.ReceiptNumber,
			Date:    p.PaymentDate.Format("02/01/2006"),
			Method:  paymentMethodLabel(p.PaymentMethod),
			Amount:  p.TotalAmount.String(),
		})
	}

	data := map[string]interface{}{
		"NeighborName": neighbor.FullName(),
		"CI":           neighbor.CI,
		"Section":      neighbor.Section,
		"Date":         time.Now().Format("02/01/2006"),
		"TotalDebts":   debts.TotalDebts,
		"TotalAmount":  debts.TotalAmount.String(),
		"TotalBalance": debts.TotalBalance.String(),
		"Debts":        debtLines,
		"Payments":     paymentLines,
	}

	return s.generatePDF("neighbor_statement.html", data)
}
