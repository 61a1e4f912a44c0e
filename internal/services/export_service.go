package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportService renders collection sessions and receipts as files
type ExportService struct {
	collectSvc *CollectService
	paymentSvc *PaymentService
}

// NewExportService creates a new export service
func NewExportService(collectSvc *CollectService, paymentSvc *PaymentService) *ExportService {
	return &ExportService{
		collectSvc: collectSvc,
		paymentSvc: paymentSvc,
	}
}

// ExportSessionXLSX builds an Excel sheet with a session's payments
func (s *ExportService) ExportSessionXLSX(ctx context.Context, collectDebtID uint) ([]byte, string, error) {
	session, err := s.collectSvc.Get(ctx, collectDebtID)
	if err != nil {
		return nil, "", err
	}
	payments, err := s.collectSvc.GetSessionPayments(ctx, collectDebtID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Recaudación"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "Sesión de Recaudación")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	_ = f.SetCellValue(sheet, "A3", "Fecha")
	_ = f.SetCellValue(sheet, "B3", session.CollectDate.Format("02/01/2006"))
	_ = f.SetCellValue(sheet, "A4", "Periodo")
	_ = f.SetCellValue(sheet, "B4", session.Period)
	_ = f.SetCellValue(sheet, "A5", "Cobrador")
	_ = f.SetCellValue(sheet, "B5", session.CollectorName)
	_ = f.SetCellValue(sheet, "A6", "Total recaudado")
	_ = f.SetCellValue(sheet, "B6", session.TotalCollected.String())
	_ = f.SetCellValue(sheet, "A7", "Pagos")
	_ = f.SetCellValue(sheet, "B7", session.TotalPayments)
	_ = f.SetCellValue(sheet, "A8", "Vecinos que pagaron")
	_ = f.SetCellValue(sheet, "B8", session.TotalNeighborsPaid)

	row := 10
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Recibo")
	_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Vecino")
	_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Fecha")
	_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "Método")
	_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Monto")

	for i := range payments {
		p := &payments[i]
		row++
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.ReceiptNumber)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Neighbor.FullName())
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.PaymentDate.Format("02/01/2006 15:04"))
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), paymentMethodLabel(p.PaymentMethod))
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.TotalAmount.String())
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("recaudacion_%d_%s.xlsx", session.ID, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportReceiptPDF builds a printable receipt for one payment
func (s *ExportService) ExportReceiptPDF(ctx context.Context, paymentID uint) ([]byte, string, error) {
	payment, err := s.paymentSvc.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Recibo de Pago - OTB")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 8, "Nro. de recibo:")
	pdf.Cell(40, 8, payment.ReceiptNumber)
	pdf.Ln(6)

	pdf.Cell(60, 8, "Vecino:")
	pdf.Cell(40, 8, payment.Neighbor.FullName())
	pdf.Ln(6)

	pdf.Cell(60, 8, "Fecha:")
	pdf.Cell(40, 8, payment.PaymentDate.Format("02/01/2006 15:04"))
	pdf.Ln(6)

	pdf.Cell(60, 8, "Metodo de pago:")
	pdf.Cell(40, 8, paymentMethodLabel(payment.PaymentMethod))
	pdf.Ln(6)

	pdf.Cell(60, 8, "Total pagado:")
	pdf.Cell(40, 8, payment.TotalAmount.String())
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, "Detalle por deuda")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.Cell(50, 7, "Concepto")
	pdf.Cell(25, 7, "Periodo")
	pdf.Cell(35, 7, "Aplicado")
	pdf.Cell(35, 7, "Saldo anterior")
	pdf.Cell(35, 7, "Saldo nuevo")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 9)
	for i := range payment.PaymentDetails {
		d := &payment.PaymentDetails[i]
		typeName := ""
		if d.DebtItem.DebtType.ID != 0 {
			typeName = d.DebtItem.DebtType.Name
		}
		pdf.Cell(50, 6, typeName)
		pdf.Cell(25, 6, d.DebtItem.Period)
		pdf.Cell(35, 6, d.AmountApplied.String())
		pdf.Cell(35, 6, d.PreviousBalance.String())
		pdf.Cell(35, 6, d.NewBalance.String())
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("recibo_%s.pdf", payment.ReceiptNumber)
	return buf.Bytes(), filename, nil
}
