package handlers

import (
	"github.com/srodrigo23/backend-otb-control/internal/services"
	"github.com/srodrigo23/backend-otb-control/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	User     *UserHandler
	Neighbor *NeighborHandler
	Measure  *MeasureHandler
	Debt     *DebtHandler
	Meet     *MeetHandler
	Collect  *CollectHandler
	Report   *ReportHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, archive *storage.LocalArchive) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(),
		Auth:     NewAuthHandler(svcs.Auth),
		User:     NewUserHandler(svcs.User),
		Neighbor: NewNeighborHandler(svcs.Neighbor, svcs.Debt, svcs.Payment),
		Measure:  NewMeasureHandler(svcs.Measure, svcs.Debt),
		Debt:     NewDebtHandler(svcs.Debt, svcs.Migration),
		Meet:     NewMeetHandler(svcs.Meet),
		Collect:  NewCollectHandler(svcs.Collect, svcs.Payment),
		Report:   NewReportHandler(svcs.Export, svcs.Report, archive),
	}
}
