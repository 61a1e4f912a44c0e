package repository

import (
	"context"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
	"gorm.io/gorm"
)

// CollectRepository defines the interface for collection session data access
type CollectRepository interface {
	FindByID(ctx context.Context, id uint) (*models.CollectDebt, error)
	Create(ctx context.Context, session *models.CollectDebt) error
	Update(ctx context.Context, session *models.CollectDebt) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.CollectDebt, int64, error)
	SumCollected(ctx context.Context) (money.Money, error)
	DivideAllAmounts(ctx context.Context, divisor int64) (int64, error)
}

type collectRepository struct {
	db *gorm.DB
}

// NewCollectRepository creates a new collection session repository
func NewCollectRepository(db *gorm.DB) CollectRepository {
	return &collectRepository{db: db}
}

func (r *collectRepository) FindByID(ctx context.Context, id uint) (*models.CollectDebt, error) {
	var session models.CollectDebt
	err := r.db.WithContext(ctx).First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *collectRepository) Create(ctx context.Context, session *models.CollectDebt) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *collectRepository) Update(ctx context.Context, session *models.CollectDebt) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *collectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.CollectDebt{}, id).Error
}

func (r *collectRepository) List(ctx context.Context, query *ListQuery) ([]models.CollectDebt, int64, error) {
	var sessions []models.CollectDebt
	var total int64

	db := r.db.WithContext(ctx).Model(&models.CollectDebt{})

	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}
	if query.Filters["period"] != "" {
		db = db.Where("period = ?", query.Filters["period"])
	}

	db.Count(&total)

	db = applyOrder(db, query, "collect_date DESC")
	db = applyPagination(db, query)

	err := db.Find(&sessions).Error
	return sessions, total, err
}

func (r *collectRepository) SumCollected(ctx context.Context) (money.Money, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.CollectDebt{}).
		Select("COALESCE(SUM(total_collected), 0)").
		Scan(&total).Error
	return money.FromCentavos(total), err
}

// DivideAllAmounts rescales the session aggregates by the divisor. Used once
// by the currency migration.
func (r *collectRepository) DivideAllAmounts(ctx context.Context, divisor int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CollectDebt{}).
		Where("1 = 1").
		Update("total_collected", gorm.Expr("total_collected / ?", divisor))
	return result.RowsAffected, result.Error
}
