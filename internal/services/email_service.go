package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"github.com/srodrigo23/backend-otb-control/internal/config"
	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/pkg/logger"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

// EmailService sends transactional mail to neighbors through Resend. When no
// API key is configured the sends become no-ops, so a bare deployment still
// works without mail.
type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	var client *resend.Client
	if cfg.ResendAPIKey != "" {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

type receiptDetailData struct {
	DebtType        string
	Period          string
	AmountApplied   string
	PreviousBalance string
	NewBalance      string
}

// SendPaymentReceipt emails the payment receipt to the neighbor. Neighbors
// without an email address are skipped by the caller.
func (s *EmailService) SendPaymentReceipt(ctx context.Context, payment *models.Payment) error {
	if s.resendClient == nil {
		logger.Debug("resend api key not configured, skipping receipt email",
			"receipt", payment.ReceiptNumber)
		return nil
	}
	if payment.Neighbor.Email == nil || *payment.Neighbor.Email == "" {
		return nil
	}

	details := make([]receiptDetailData, 0, len(payment.PaymentDetails))
	for i := range payment.PaymentDetails {
		d := &payment.PaymentDetails[i]
		typeName := ""
		if d.DebtItem.DebtType.ID != 0 {
			typeName = d.DebtItem.DebtType.Name
		}
		details = append(details, receiptDetailData{
			DebtType:        typeName,
			Period:          d.DebtItem.Period,
			AmountApplied:   d.AmountApplied.String(),
			PreviousBalance: d.PreviousBalance.String(),
			NewBalance:      d.NewBalance.String(),
		})
	}

	data := struct {
		Name          string
		ReceiptNumber string
		PaymentDate   string
		TotalAmount   string
		PaymentMethod string
		Details       []receiptDetailData
	}{
		Name:          payment.Neighbor.FullName(),
		ReceiptNumber: payment.ReceiptNumber,
		PaymentDate:   payment.PaymentDate.Format("02/01/2006 15:04"),
		TotalAmount:   payment.TotalAmount.String(),
		PaymentMethod: paymentMethodLabel(payment.PaymentMethod),
		Details:       details,
	}

	body, err := s.renderTemplate("payment_receipt.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{*payment.Neighbor.Email},
		Subject: fmt.Sprintf("Recibo de pago %s", payment.ReceiptNumber),
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", *payment.Neighbor.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Recibo de pago %s",
		*payment.Neighbor.Email, payment.ReceiptNumber))
	return nil
}

// SendDebtNotice emails a neighbor the summary of their open debts
func (s *EmailService) SendDebtNotice(ctx context.Context, neighbor *models.Neighbor, debts *models.NeighborDebtsResponse) error {
	if s.resendClient == nil {
		logger.Debug("resend api key not configured, skipping debt notice",
			"neighbor_id", neighbor.ID)
		return nil
	}
	if neighbor.Email == nil || *neighbor.Email == "" {
		return nil
	}

	type noticeLine struct {
		DebtType  string
		Period    string
		Balance   string
		DueDate   string
		IsOverdue bool
	}
	lines := make([]noticeLine, 0, len(debts.DebtDetails))
	for _, d := range debts.DebtDetails {
		due := ""
		if d.DueDate != nil {
			due = d.DueDate.Format("02/01/2006")
		}
		lines = append(lines, noticeLine{
			DebtType:  d.DebtTypeName,
			Period:    d.Period,
			Balance:   d.Balance.String(),
			DueDate:   due,
			IsOverdue: d.IsOverdue,
		})
	}

	data := struct {
		Name         string
		TotalDebts   int
		TotalBalance string
		Debts        []noticeLine
	}{
		Name:         neighbor.FullName(),
		TotalDebts:   debts.TotalDebts,
		TotalBalance: debts.TotalBalance.String(),
		Debts:        lines,
	}

	body, err := s.renderTemplate("debt_notice.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{*neighbor.Email},
		Subject: "Aviso de deudas pendientes",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", *neighbor.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Aviso de deudas pendientes", *neighbor.Email))
	return nil
}

func paymentMethodLabel(method string) string {
	switch method {
	case models.PaymentMethodCash:
		return "Efectivo"
	case models.PaymentMethodTransfer:
		return "Transferencia"
	case models.PaymentMethodQR:
		return "Pago QR"
	default:
		return method
	}
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
