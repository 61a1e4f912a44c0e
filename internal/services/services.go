package services

import (
	"github.com/srodrigo23/backend-otb-control/internal/config"
	"github.com/srodrigo23/backend-otb-control/internal/jobs"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth      *AuthService
	User      *UserService
	Neighbor  *NeighborService
	Measure   *MeasureService
	Debt      *DebtService
	Payment   *PaymentService
	Collect   *CollectService
	Meet      *MeetService
	Migration *MigrationService
	Email     *EmailService
	Export    *ExportService
	Report    *ReportService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	billing := NewBillingPolicy(cfg)
	emailSvc := NewEmailService(cfg)

	neighborSvc := NewNeighborService(repos)
	debtSvc := NewDebtService(repos, repos, billing, emailSvc, cfg.DebtDueDays)
	paymentSvc := NewPaymentService(repos, repos, emailSvc, worker)
	collectSvc := NewCollectService(repos, repos)

	return &Services{
		Auth:      NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:      NewUserService(repos),
		Neighbor:  neighborSvc,
		Measure:   NewMeasureService(repos),
		Debt:      debtSvc,
		Payment:   paymentSvc,
		Collect:   collectSvc,
		Meet:      NewMeetService(repos),
		Migration: NewMigrationService(repos, repos),
		Email:     emailSvc,
		Export:    NewExportService(collectSvc, paymentSvc),
		Report:    NewReportService(neighborSvc, debtSvc, paymentSvc),
	}
}
