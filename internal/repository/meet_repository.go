package repository

import (
	"context"
	"errors"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"gorm.io/gorm"
)

// MeetRepository defines the interface for meeting data access
type MeetRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Meet, error)
	FindByIDWithAssistances(ctx context.Context, id uint) (*models.Meet, error)
	Create(ctx context.Context, meet *models.Meet) error
	Update(ctx context.Context, meet *models.Meet) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Meet, int64, error)
}

type meetRepository struct {
	db *gorm.DB
}

// NewMeetRepository creates a new meeting repository
func NewMeetRepository(db *gorm.DB) MeetRepository {
	return &meetRepository{db: db}
}

func (r *meetRepository) FindByID(ctx context.Context, id uint) (*models.Meet, error) {
	var meet models.Meet
	err := r.db.WithContext(ctx).First(&meet, id).Error
	if err != nil {
		return nil, err
	}
	return &meet, nil
}

func (r *meetRepository) FindByIDWithAssistances(ctx context.Context, id uint) (*models.Meet, error) {
	var meet models.Meet
	err := r.db.WithContext(ctx).
		Preload("Assistances").
		Preload("Assistances.Neighbor").
		First(&meet, id).Error
	if err != nil {
		return nil, err
	}
	return &meet, nil
}

func (r *meetRepository) Create(ctx context.Context, meet *models.Meet) error {
	return r.db.WithContext(ctx).Create(meet).Error
}

func (r *meetRepository) Update(ctx context.Context, meet *models.Meet) error {
	return r.db.WithContext(ctx).Save(meet).Error
}

func (r *meetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Meet{}, id).Error
}

func (r *meetRepository) List(ctx context.Context, query *ListQuery) ([]models.Meet, int64, error) {
	var meets []models.Meet
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Meet{})

	if query.Search != "" {
		db = db.Where("title ILIKE ?", "%"+query.Search+"%")
	}
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	db.Count(&total)

	db = applyOrder(db, query, "meet_date DESC")
	db = applyPagination(db, query)

	err := db.Find(&meets).Error
	return meets, total, err
}

// AssistanceRepository defines the interface for attendance data access
type AssistanceRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Assistance, error)
	FindByMeet(ctx context.Context, meetID uint) ([]models.Assistance, error)
	FindByMeetAndNeighbor(ctx context.Context, meetID, neighborID uint) (*models.Assistance, error)
	Create(ctx context.Context, assistance *models.Assistance) error
	Update(ctx context.Context, assistance *models.Assistance) error
	Delete(ctx context.Context, id uint) error
	CountByMeet(ctx context.Context, meetID uint) (present, absent, onTime int64, err error)
}

type assistanceRepository struct {
	db *gorm.DB
}

// NewAssistanceRepository creates a new attendance repository
func NewAssistanceRepository(db *gorm.DB) AssistanceRepository {
	return &assistanceRepository{db: db}
}

func (r *assistanceRepository) FindByID(ctx context.Context, id uint) (*models.Assistance, error) {
	var assistance models.Assistance
	err := r.db.WithContext(ctx).
		Preload("Neighbor").
		First(&assistance, id).Error
	if err != nil {
		return nil, err
	}
	return &assistance, nil
}

func (r *assistanceRepository) FindByMeet(ctx context.Context, meetID uint) ([]models.Assistance, error) {
	var assistances []models.Assistance
	err := r.db.WithContext(ctx).
		Preload("Neighbor").
		Where("meet_id = ?", meetID).
		Order("id ASC").
		Find(&assistances).Error
	return assistances, err
}

func (r *assistanceRepository) FindByMeetAndNeighbor(ctx context.Context, meetID, neighborID uint) (*models.Assistance, error) {
	var assistance models.Assistance
	err := r.db.WithContext(ctx).
		Where("meet_id = ? AND neighbor_id = ?", meetID, neighborID).
		First(&assistance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assistance, nil
}

func (r *assistanceRepository) Create(ctx context.Context, assistance *models.Assistance) error {
	if err := r.db.WithContext(ctx).Create(assistance).Error; err != nil {
		if isDuplicateKeyError(err, "idx_assistance_meet_neighbor") {
			return errors.New("El vecino ya tiene un registro de asistencia para esta reunión")
		}
		return err
	}
	return nil
}

func (r *assistanceRepository) Update(ctx context.Context, assistance *models.Assistance) error {
	return r.db.WithContext(ctx).Save(assistance).Error
}

func (r *assistanceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Assistance{}, id).Error
}

func (r *assistanceRepository) CountByMeet(ctx context.Context, meetID uint) (int64, int64, int64, error) {
	var present, absent, onTime int64
	err := r.db.WithContext(ctx).
		Model(&models.Assistance{}).
		Where("meet_id = ? AND is_present = ?", meetID, true).
		Count(&present).Error
	if err != nil {
		return 0, 0, 0, err
	}
	err = r.db.WithContext(ctx).
		Model(&models.Assistance{}).
		Where("meet_id = ? AND is_present = ?", meetID, false).
		Count(&absent).Error
	if err != nil {
		return 0, 0, 0, err
	}
	err = r.db.WithContext(ctx).
		Model(&models.Assistance{}).
		Where("meet_id = ? AND is_present = ? AND is_on_time = ?", meetID, true, true).
		Count(&onTime).Error
	return present, absent, onTime, err
}
