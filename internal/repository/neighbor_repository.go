package repository

import (
	"context"
	"errors"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"gorm.io/gorm"
)

// NeighborRepository defines the interface for neighbor data access
type NeighborRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Neighbor, error)
	FindByIDWithMeters(ctx context.Context, id uint) (*models.Neighbor, error)
	FindByCI(ctx context.Context, ci string) (*models.Neighbor, error)
	Create(ctx context.Context, neighbor *models.Neighbor) error
	Update(ctx context.Context, neighbor *models.Neighbor) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Neighbor, int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type neighborRepository struct {
	db *gorm.DB
}

// NewNeighborRepository creates a new neighbor repository
func NewNeighborRepository(db *gorm.DB) NeighborRepository {
	return &neighborRepository{db: db}
}

func (r *neighborRepository) FindByID(ctx context.Context, id uint) (*models.Neighbor, error) {
	var neighbor models.Neighbor
	err := r.db.WithContext(ctx).First(&neighbor, id).Error
	if err != nil {
		return nil, err
	}
	return &neighbor, nil
}

func (r *neighborRepository) FindByIDWithMeters(ctx context.Context, id uint) (*models.Neighbor, error) {
	var neighbor models.Neighbor
	err := r.db.WithContext(ctx).
		Preload("Meters").
		First(&neighbor, id).Error
	if err != nil {
		return nil, err
	}
	return &neighbor, nil
}

func (r *neighborRepository) FindByCI(ctx context.Context, ci string) (*models.Neighbor, error) {
	var neighbor models.Neighbor
	err := r.db.WithContext(ctx).Where("ci = ?", ci).First(&neighbor).Error
	if err != nil {
		return nil, err
	}
	return &neighbor, nil
}

func (r *neighborRepository) Create(ctx context.Context, neighbor *models.Neighbor) error {
	if err := r.db.WithContext(ctx).Create(neighbor).Error; err != nil {
		if isDuplicateKeyError(err, "idx_neighbors_ci") {
			return errors.New("Ya existe un vecino con este carnet de identidad")
		}
		return err
	}
	return nil
}

func (r *neighborRepository) Update(ctx context.Context, neighbor *models.Neighbor) error {
	return r.db.WithContext(ctx).Save(neighbor).Error
}

func (r *neighborRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Neighbor{}, id).Error
}

func (r *neighborRepository) List(ctx context.Context, query *ListQuery) ([]models.Neighbor, int64, error) {
	var neighbors []models.Neighbor
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Neighbor{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("first_name ILIKE ? OR second_name ILIKE ? OR last_name ILIKE ? OR ci ILIKE ?",
			search, search, search, search)
	}

	if query.Filters["section"] != "" {
		db = db.Where("section = ?", query.Filters["section"])
	}
	if query.Filters["is_active"] != "" {
		db = db.Where("is_active = ?", query.Filters["is_active"] == "true")
	}

	db.Count(&total)

	db = applyOrder(db, query, "last_name ASC, first_name ASC")
	db = applyPagination(db, query)

	err := db.Find(&neighbors).Error
	return neighbors, total, err
}

func (r *neighborRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Neighbor{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

// MeterRepository defines the interface for water meter data access
type MeterRepository interface {
	FindByID(ctx context.Context, id uint) (*models.NeighborMeter, error)
	FindByCode(ctx context.Context, code string) (*models.NeighborMeter, error)
	FindByNeighbor(ctx context.Context, neighborID uint) ([]models.NeighborMeter, error)
	FindActive(ctx context.Context) ([]models.NeighborMeter, error)
	Create(ctx context.Context, meter *models.NeighborMeter) error
	Update(ctx context.Context, meter *models.NeighborMeter) error
	Delete(ctx context.Context, id uint) error
	CountActive(ctx context.Context) (int64, error)
}

type meterRepository struct {
	db *gorm.DB
}

// NewMeterRepository creates a new meter repository
func NewMeterRepository(db *gorm.DB) MeterRepository {
	return &meterRepository{db: db}
}

func (r *meterRepository) FindByID(ctx context.Context, id uint) (*models.NeighborMeter, error) {
	var meter models.NeighborMeter
	err := r.db.WithContext(ctx).Preload("Neighbor").First(&meter, id).Error
	if err != nil {
		return nil, err
	}
	return &meter, nil
}

func (r *meterRepository) FindByCode(ctx context.Context, code string) (*models.NeighborMeter, error) {
	var meter models.NeighborMeter
	err := r.db.WithContext(ctx).Where("meter_code = ?", code).First(&meter).Error
	if err != nil {
		return nil, err
	}
	return &meter, nil
}

func (r *meterRepository) FindByNeighbor(ctx context.Context, neighborID uint) ([]models.NeighborMeter, error) {
	var meters []models.NeighborMeter
	err := r.db.WithContext(ctx).
		Where("neighbor_id = ?", neighborID).
		Order("id ASC").
		Find(&meters).Error
	return meters, err
}

func (r *meterRepository) FindActive(ctx context.Context) ([]models.NeighborMeter, error) {
	var meters []models.NeighborMeter
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&meters).Error
	return meters, err
}

func (r *meterRepository) Create(ctx context.Context, meter *models.NeighborMeter) error {
	if err := r.db.WithContext(ctx).Create(meter).Error; err != nil {
		if isDuplicateKeyError(err, "idx_neighbor_meters_meter_code") {
			return errors.New("Ya existe un medidor con este código")
		}
		return err
	}
	return nil
}

func (r *meterRepository) Update(ctx context.Context, meter *models.NeighborMeter) error {
	return r.db.WithContext(ctx).Save(meter).Error
}

func (r *meterRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.NeighborMeter{}, id).Error
}

func (r *meterRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.NeighborMeter{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}
