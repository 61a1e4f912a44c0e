package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	db *gorm.DB

	User         UserRepository
	RefreshToken RefreshTokenRepository
	Neighbor     NeighborRepository
	Meter        MeterRepository
	Measure      MeasureRepository
	Reading      ReadingRepository
	DebtType     DebtTypeRepository
	Debt         DebtRepository
	Payment      PaymentRepository
	Collect      CollectRepository
	Meet         MeetRepository
	Assistance   AssistanceRepository
	Migration    MigrationRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		User:         NewUserRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Neighbor:     NewNeighborRepository(db),
		Meter:        NewMeterRepository(db),
		Measure:      NewMeasureRepository(db),
		Reading:      NewReadingRepository(db),
		DebtType:     NewDebtTypeRepository(db),
		Debt:         NewDebtRepository(db),
		Payment:      NewPaymentRepository(db),
		Collect:      NewCollectRepository(db),
		Meet:         NewMeetRepository(db),
		Assistance:   NewAssistanceRepository(db),
		Migration:    NewMigrationRepository(db),
	}
}

// TransactionManager runs a function against a transactional set of
// repositories, committing if fn returns nil and rolling back otherwise.
// Services depend on this interface so tests can swap in a fake runner.
type TransactionManager interface {
	Transaction(ctx context.Context, fn func(repos *Repositories) error) error
}

// Transaction executes fn inside a database transaction. Every repository
// access through the repos handed to fn goes through the same transaction.
func (r *Repositories) Transaction(ctx context.Context, fn func(repos *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

func applyOrder(db *gorm.DB, query *ListQuery, fallback string) *gorm.DB {
	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		return db.Order(order)
	}
	return db.Order(fallback)
}

func applyPagination(db *gorm.DB, query *ListQuery) *gorm.DB {
	if query.PerPage > 0 {
		return db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}
	return db
}
