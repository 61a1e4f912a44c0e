package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/srodrigo23/backend-otb-control/internal/config"
	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/services"
	"github.com/srodrigo23/backend-otb-control/pkg/logger"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
)

// Manual smoke test for the Resend templates. Sends a sample payment
// receipt and debt notice to TEST_EMAIL_TO.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Setup("development")

	if cfg.ResendAPIKey == "" {
		log.Fatal("RESEND_API_KEY is not set")
	}

	emailService := services.NewEmailService(cfg)

	toEmail := os.Getenv("TEST_EMAIL_TO")
	if toEmail == "" {
		toEmail = "test@example.com"
		log.Println("TEST_EMAIL_TO not set, using test@example.com. Emails might fail if the domain is not verified.")
	}

	neighbor := &models.Neighbor{
		FirstName: "Juana",
		LastName:  "Mamani",
		CI:        "1234567",
		Email:     &toEmail,
	}

	payment := &models.Payment{
		ID:            1,
		NeighborID:    1,
		Neighbor:      *neighbor,
		TotalAmount:   money.FromBolivianos(45),
		PaymentMethod: models.PaymentMethodCash,
		PaymentDate:   time.Now(),
		ReceiptNumber: "REC-TEST0001",
		ReceivedBy:    "Tesorería OTB",
		PaymentDetails: []models.PaymentDetail{
			{
				DebtItemID:      1,
				AmountApplied:   money.FromBolivianos(20),
				PreviousBalance: money.FromBolivianos(20),
				NewBalance:      money.FromCentavos(0),
				DebtItem: models.DebtItem{
					Period:   "2026-07",
					DebtType: models.DebtType{ID: 1, Name: models.DebtTypeWaterConsumption},
				},
			},
			{
				DebtItemID:      2,
				AmountApplied:   money.FromBolivianos(25),
				PreviousBalance: money.FromBolivianos(25),
				NewBalance:      money.FromCentavos(0),
				DebtItem: models.DebtItem{
					Period:   "2026-08",
					DebtType: models.DebtType{ID: 1, Name: models.DebtTypeWaterConsumption},
				},
			},
		},
	}

	log.Printf("Sending payment receipt to %s...", toEmail)
	if err := emailService.SendPaymentReceipt(context.Background(), payment); err != nil {
		log.Fatalf("Failed to send payment receipt: %v", err)
	}
	log.Println("Payment receipt sent successfully!")

	debts := &models.NeighborDebtsResponse{
		NeighborID:   1,
		NeighborName: neighbor.FullName(),
		TotalDebts:   1,
		TotalAmount:  money.FromBolivianos(35),
		TotalBalance: money.FromBolivianos(35),
		DebtDetails: []models.DebtItemResponse{
			{
				ID:           3,
				DebtTypeName: models.DebtTypeWaterConsumption,
				Period:       "2026-06",
				Amount:       money.FromBolivianos(35),
				Balance:      money.FromBolivianos(35),
				Status:       models.DebtStatusPending,
				IsOverdue:    true,
			},
		},
	}

	log.Printf("Sending debt notice to %s...", toEmail)
	if err := emailService.SendDebtNotice(context.Background(), neighbor, debts); err != nil {
		log.Fatalf("Failed to send debt notice: %v", err)
	}
	log.Println("Debt notice sent successfully!")
}
