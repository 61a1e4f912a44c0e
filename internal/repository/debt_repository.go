package repository

import (
	"context"
	"errors"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/pkg/money"
	"gorm.io/gorm"
)

// DebtTypeRepository defines the interface for debt type data access
type DebtTypeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.DebtType, error)
	FindByName(ctx context.Context, name string) (*models.DebtType, error)
	FindOrCreate(ctx context.Context, name, description string) (*models.DebtType, error)
	FindAll(ctx context.Context) ([]models.DebtType, error)
	Create(ctx context.Context, debtType *models.DebtType) error
}

type debtTypeRepository struct {
	db *gorm.DB
}

// NewDebtTypeRepository creates a new debt type repository
func NewDebtTypeRepository(db *gorm.DB) DebtTypeRepository {
	return &debtTypeRepository{db: db}
}

func (r *debtTypeRepository) FindByID(ctx context.Context, id uint) (*models.DebtType, error) {
	var dt models.DebtType
	err := r.db.WithContext(ctx).First(&dt, id).Error
	if err != nil {
		return nil, err
	}
	return &dt, nil
}

func (r *debtTypeRepository) FindByName(ctx context.Context, name string) (*models.DebtType, error) {
	var dt models.DebtType
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&dt).Error
	if err != nil {
		return nil, err
	}
	return &dt, nil
}

func (r *debtTypeRepository) FindOrCreate(ctx context.Context, name, description string) (*models.DebtType, error) {
	var dt models.DebtType
	err := r.db.WithContext(ctx).
		Where(models.DebtType{Name: name}).
		Attrs(models.DebtType{Description: description}).
		FirstOrCreate(&dt).Error
	if err != nil {
		return nil, err
	}
	return &dt, nil
}

func (r *debtTypeRepository) FindAll(ctx context.Context) ([]models.DebtType, error) {
	var types []models.DebtType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *debtTypeRepository) Create(ctx context.Context, debtType *models.DebtType) error {
	return r.db.WithContext(ctx).Create(debtType).Error
}

// DebtRepository defines the interface for debt ledger data access
type DebtRepository interface {
	FindByID(ctx context.Context, id uint) (*models.DebtItem, error)
	FindByReadingID(ctx context.Context, readingID uint) (*models.DebtItem, error)
	FindActiveByNeighbor(ctx context.Context, neighborID uint) ([]models.DebtItem, error)
	FindAllByNeighbor(ctx context.Context, neighborID uint) ([]models.DebtItem, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.DebtItem, error)
	FindOverdue(ctx context.Context) ([]models.DebtItem, error)
	Create(ctx context.Context, debt *models.DebtItem) error
	Update(ctx context.Context, debt *models.DebtItem) error
	Delete(ctx context.Context, id uint) error
	DeletePendingByMeasure(ctx context.Context, measureID uint) (int64, error)
	List(ctx context.Context, query *ListQuery) ([]models.DebtItem, int64, error)
	SumActiveBalance(ctx context.Context) (money.Money, error)
	DivideAllAmounts(ctx context.Context, divisor int64) (int64, error)
}

type debtRepository struct {
	db *gorm.DB
}

// NewDebtRepository creates a new debt repository
func NewDebtRepository(db *gorm.DB) DebtRepository {
	return &debtRepository{db: db}
}

func (r *debtRepository) FindByID(ctx context.Context, id uint) (*models.DebtItem, error) {
	var debt models.DebtItem
	err := r.db.WithContext(ctx).
		Preload("DebtType").
		Preload("Neighbor").
		First(&debt, id).Error
	if err != nil {
		return nil, err
	}
	return &debt, nil
}

func (r *debtRepository) FindByReadingID(ctx context.Context, readingID uint) (*models.DebtItem, error) {
	var debt models.DebtItem
	err := r.db.WithContext(ctx).
		Where("meter_reading_id = ?", readingID).
		First(&debt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &debt, nil
}

func (r *debtRepository) FindActiveByNeighbor(ctx context.Context, neighborID uint) ([]models.DebtItem, error) {
	var debts []models.DebtItem
	err := r.db.WithContext(ctx).
		Preload("DebtType").
		Where("neighbor_id = ? AND status IN ?", neighborID,
			[]string{models.DebtStatusPending, models.DebtStatusPartial}).
		Order("issue_date ASC, id ASC").
		Find(&debts).Error
	return debts, err
}

func (r *debtRepository) FindAllByNeighbor(ctx context.Context, neighborID uint) ([]models.DebtItem, error) {
	var debts []models.DebtItem
	err := r.db.WithContext(ctx).
		Preload("DebtType").
		Where("neighbor_id = ?", neighborID).
		Order("issue_date DESC, id DESC").
		Find(&debts).Error
	return debts, err
}

func (r *debtRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.DebtItem, error) {
	var debts []models.DebtItem
	err := r.db.WithContext(ctx).
		Preload("DebtType").
		Where("id IN ?", ids).
		Find(&debts).Error
	return debts, err
}

func (r *debtRepository) FindOverdue(ctx context.Context) ([]models.DebtItem, error) {
	var debts []models.DebtItem
	err := r.db.WithContext(ctx).
		Preload("Neighbor").
		Preload("DebtType").
		Where("due_date IS NOT NULL AND due_date < NOW() AND status != ?", models.DebtStatusPaid).
		Order("due_date ASC").
		Find(&debts).Error
	return debts, err
}

func (r *debtRepository) Create(ctx context.Context, debt *models.DebtItem) error {
	if err := r.db.WithContext(ctx).Create(debt).Error; err != nil {
		if isDuplicateKeyError(err, "idx_debt_items_meter_reading_id") {
			return gorm.ErrDuplicatedKey
		}
		return err
	}
	return nil
}

func (r *debtRepository) Update(ctx context.Context, debt *models.DebtItem) error {
	return r.db.WithContext(ctx).Save(debt).Error
}

func (r *debtRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.DebtItem{}, id).Error
}

// DeletePendingByMeasure removes untouched debts generated from a reading
// campaign. Debts with any payment history survive.
func (r *debtRepository) DeletePendingByMeasure(ctx context.Context, measureID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("meter_reading_id IN (?) AND status = ? AND amount_paid = 0",
			r.db.Model(&models.MeterReading{}).Select("id").Where("measure_id = ?", measureID),
			models.DebtStatusPending).
		Delete(&models.DebtItem{})
	return result.RowsAffected, result.Error
}

func (r *debtRepository) List(ctx context.Context, query *ListQuery) ([]models.DebtItem, int64, error) {
	var debts []models.DebtItem
	var total int64

	db := r.db.WithContext(ctx).Model(&models.DebtItem{}).Preload("DebtType")

	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}
	if query.Filters["neighbor_id"] != "" {
		db = db.Where("neighbor_id = ?", query.Filters["neighbor_id"])
	}
	if query.Filters["period"] != "" {
		db = db.Where("period = ?", query.Filters["period"])
	}
	if query.Filters["debt_type_id"] != "" {
		db = db.Where("debt_type_id = ?", query.Filters["debt_type_id"])
	}

	db.Count(&total)

	db = applyOrder(db, query, "issue_date DESC, id DESC")
	db = applyPagination(db, query)

	err := db.Find(&debts).Error
	return debts, total, err
}

func (r *debtRepository) SumActiveBalance(ctx context.Context) (money.Money, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.DebtItem{}).
		Where("status IN ?", []string{models.DebtStatusPending, models.DebtStatusPartial}).
		Select("COALESCE(SUM(balance), 0)").
		Scan(&total).Error
	return money.FromCentavos(total), err
}

// DivideAllAmounts rescales every monetary column on every debt row by the
// divisor. Used once by the currency migration; integer division truncates
// toward zero, matching the historical conversion.
func (r *debtRepository) DivideAllAmounts(ctx context.Context, divisor int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.DebtItem{}).
		Where("1 = 1").
		Updates(map[string]interface{}{
			"amount":      gorm.Expr("amount / ?", divisor),
			"amount_paid": gorm.Expr("amount_paid / ?", divisor),
			"balance":     gorm.Expr("balance / ?", divisor),
			"late_fee":    gorm.Expr("late_fee / ?", divisor),
			"discount":    gorm.Expr("discount / ?", divisor),
		})
	return result.RowsAffected, result.Error
}
