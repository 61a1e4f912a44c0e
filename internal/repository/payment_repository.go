package repository

import (
	"context"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindByReceiptNumber(ctx context.Context, receipt string) (*models.Payment, error)
	FindByNeighbor(ctx context.Context, neighborID uint) ([]models.Payment, error)
	FindBySession(ctx context.Context, collectDebtID uint) ([]models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	CreateDetail(ctx context.Context, detail *models.PaymentDetail) error
	List(ctx context.Context, query *ListQuery) ([]models.Payment, int64, error)
	CountBySession(ctx context.Context, collectDebtID uint) (int64, error)
	SumBySession(ctx context.Context, collectDebtID uint) (money.Money, error)
	CountDistinctNeighborsBySession(ctx context.Context, collectDebtID uint) (int64, error)
	DivideAllAmounts(ctx context.Context, divisor int64) (payments int64, details int64, err error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Neighbor").
		Preload("PaymentDetails").
		Preload("PaymentDetails.DebtItem").
		Preload("PaymentDetails.DebtItem.DebtType").
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByReceiptNumber(ctx context.Context, receipt string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Neighbor").
		Preload("PaymentDetails").
		Preload("PaymentDetails.DebtItem").
		Preload("PaymentDetails.DebtItem.DebtType").
		Where("receipt_number = ?", receipt).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByNeighbor(ctx context.Context, neighborID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Preload("PaymentDetails").
		Where("neighbor_id = ?", neighborID).
		Order("payment_date DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) FindBySession(ctx context.Context, collectDebtID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Preload("Neighbor").
		Preload("PaymentDetails").
		Preload("PaymentDetails.DebtItem").
		Preload("PaymentDetails.DebtItem.DebtType").
		Where("collect_debt_id = ?", collectDebtID).
		Order("payment_date ASC, id ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(payment).Error
}

// CreateDetail persists one allocation line. The preloaded DebtItem on the
// struct is response-only and never written here.
func (r *paymentRepository) CreateDetail(ctx context.Context, detail *models.PaymentDetail) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(detail).Error
}

func (r *paymentRepository) List(ctx context.Context, query *ListQuery) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Payment{}).Preload("Neighbor")

	if query.Filters["neighbor_id"] != "" {
		db = db.Where("neighbor_id = ?", query.Filters["neighbor_id"])
	}
	if query.Filters["collect_debt_id"] != "" {
		db = db.Where("collect_debt_id = ?", query.Filters["collect_debt_id"])
	}
	if query.Filters["payment_method"] != "" {
		db = db.Where("payment_method = ?", query.Filters["payment_method"])
	}
	if query.Search != "" {
		db = db.Where("receipt_number ILIKE ?", "%"+query.Search+"%")
	}

	db.Count(&total)

	db = applyOrder(db, query, "payment_date DESC")
	db = applyPagination(db, query)

	err := db.Find(&payments).Error
	return payments, total, err
}

func (r *paymentRepository) CountBySession(ctx context.Context, collectDebtID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("collect_debt_id = ?", collectDebtID).
		Count(&count).Error
	return count, err
}

func (r *paymentRepository) SumBySession(ctx context.Context, collectDebtID uint) (money.Money, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("collect_debt_id = ?", collectDebtID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return money.FromCentavos(total), err
}

func (r *paymentRepository) CountDistinctNeighborsBySession(ctx context.Context, collectDebtID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("collect_debt_id = ?", collectDebtID).
		Distinct("neighbor_id").
		Count(&count).Error
	return count, err
}

// DivideAllAmounts rescales payment totals and detail snapshots by the
// divisor. Used once by the currency migration.
func (r *paymentRepository) DivideAllAmounts(ctx context.Context, divisor int64) (int64, int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("1 = 1").
		Update("total_amount", gorm.Expr("total_amount / ?", divisor))
	if result.Error != nil {
		return 0, 0, result.Error
	}

	detailResult := r.db.WithContext(ctx).
		Model(&models.PaymentDetail{}).
		Where("1 = 1").
		Updates(map[string]interface{}{
			"amount_applied":   gorm.Expr("amount_applied / ?", divisor),
			"previous_balance": gorm.Expr("previous_balance / ?", divisor),
			"new_balance":      gorm.Expr("new_balance / ?", divisor),
		})
	if detailResult.Error != nil {
		return result.RowsAffected, 0, detailResult.Error
	}
	return result.RowsAffected, detailResult.RowsAffected, nil
}
