package repository

import (
	"context"
	"errors"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"gorm.io/gorm"
)

// MeasureRepository defines the interface for reading campaign data access
type MeasureRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Measure, error)
	FindByIDWithReadings(ctx context.Context, id uint) (*models.Measure, error)
	FindByPeriod(ctx context.Context, period string) (*models.Measure, error)
	Create(ctx context.Context, measure *models.Measure) error
	Update(ctx context.Context, measure *models.Measure) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Measure, int64, error)
}

type measureRepository struct {
	db *gorm.DB
}

// NewMeasureRepository creates a new measure repository
func NewMeasureRepository(db *gorm.DB) MeasureRepository {
	return &measureRepository{db: db}
}

func (r *measureRepository) FindByID(ctx context.Context, id uint) (*models.Measure, error) {
	var measure models.Measure
	err := r.db.WithContext(ctx).First(&measure, id).Error
	if err != nil {
		return nil, err
	}
	return &measure, nil
}

func (r *measureRepository) FindByIDWithReadings(ctx context.Context, id uint) (*models.Measure, error) {
	var measure models.Measure
	err := r.db.WithContext(ctx).
		Preload("Readings").
		Preload("Readings.Meter").
		Preload("Readings.Meter.Neighbor").
		First(&measure, id).Error
	if err != nil {
		return nil, err
	}
	return &measure, nil
}

func (r *measureRepository) FindByPeriod(ctx context.Context, period string) (*models.Measure, error) {
	var measure models.Measure
	err := r.db.WithContext(ctx).Where("period = ?", period).First(&measure).Error
	if err != nil {
		return nil, err
	}
	return &measure, nil
}

func (r *measureRepository) Create(ctx context.Context, measure *models.Measure) error {
	return r.db.WithContext(ctx).Create(measure).Error
}

func (r *measureRepository) Update(ctx context.Context, measure *models.Measure) error {
	return r.db.WithContext(ctx).Save(measure).Error
}

func (r *measureRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Measure{}, id).Error
}

func (r *measureRepository) List(ctx context.Context, query *ListQuery) ([]models.Measure, int64, error) {
	var measures []models.Measure
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Measure{})

	if query.Filters["period"] != "" {
		db = db.Where("period = ?", query.Filters["period"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	db.Count(&total)

	db = applyOrder(db, query, "measure_date DESC")
	db = applyPagination(db, query)

	err := db.Find(&measures).Error
	return measures, total, err
}

// ReadingRepository defines the interface for meter reading data access
type ReadingRepository interface {
	FindByID(ctx context.Context, id uint) (*models.MeterReading, error)
	FindByMeasure(ctx context.Context, measureID uint) ([]models.MeterReading, error)
	FindPrevious(ctx context.Context, meterID, beforeID uint) (*models.MeterReading, error)
	Create(ctx context.Context, reading *models.MeterReading) error
	Update(ctx context.Context, reading *models.MeterReading) error
	Delete(ctx context.Context, id uint) error
}

type readingRepository struct {
	db *gorm.DB
}

// NewReadingRepository creates a new reading repository
func NewReadingRepository(db *gorm.DB) ReadingRepository {
	return &readingRepository{db: db}
}

func (r *readingRepository) FindByID(ctx context.Context, id uint) (*models.MeterReading, error) {
	var reading models.MeterReading
	err := r.db.WithContext(ctx).
		Preload("Meter").
		Preload("Meter.Neighbor").
		First(&reading, id).Error
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

func (r *readingRepository) FindByMeasure(ctx context.Context, measureID uint) ([]models.MeterReading, error) {
	var readings []models.MeterReading
	err := r.db.WithContext(ctx).
		Preload("Meter").
		Preload("Meter.Neighbor").
		Where("measure_id = ?", measureID).
		Order("id ASC").
		Find(&readings).Error
	return readings, err
}

// FindPrevious returns the most recent earlier reading of the same meter,
// or nil when the meter has no prior history.
func (r *readingRepository) FindPrevious(ctx context.Context, meterID, beforeID uint) (*models.MeterReading, error) {
	var reading models.MeterReading
	err := r.db.WithContext(ctx).
		Where("meter_id = ? AND id < ?", meterID, beforeID).
		Order("id DESC").
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reading, nil
}

func (r *readingRepository) Create(ctx context.Context, reading *models.MeterReading) error {
	return r.db.WithContext(ctx).Create(reading).Error
}

func (r *readingRepository) Update(ctx context.Context, reading *models.MeterReading) error {
	return r.db.WithContext(ctx).Save(reading).Error
}

func (r *readingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MeterReading{}, id).Error
}
