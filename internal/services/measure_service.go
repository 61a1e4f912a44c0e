package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"gorm.io/gorm"
)

// MeasureService manages reading campaigns and meter readings
type MeasureService struct {
	measureRepo repository.MeasureRepository
	readingRepo repository.ReadingRepository
	meterRepo   repository.MeterRepository
}

// NewMeasureService creates a new measure service
func NewMeasureService(repos *repository.Repositories) *MeasureService {
	return &MeasureService{
		measureRepo: repos.Measure,
		readingRepo: repos.Reading,
		meterRepo:   repos.Meter,
	}
}

// CreateMeasureInput carries the fields to open a reading campaign
type CreateMeasureInput struct {
	MeasureDate string  `json:"measure_date" binding:"required"`
	Period      string  `json:"period" binding:"required"`
	ReaderName  string  `json:"reader_name"`
	Notes       *string `json:"notes"`
}

// Create opens a reading campaign, counting the active meters to visit
func (s *MeasureService) Create(ctx context.Context, input *CreateMeasureInput) (*models.Measure, error) {
	date, err := time.Parse("2006-01-02", input.MeasureDate)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha de medición inválida", ErrValidation)
	}

	total, err := s.meterRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	measure := &models.Measure{
		MeasureDate:   date,
		Period:        input.Period,
		ReaderName:    input.ReaderName,
		Status:        models.MeasureStatusScheduled,
		TotalMeters:   int(total),
		MetersPending: int(total),
		Notes:         input.Notes,
	}
	if err := s.measureRepo.Create(ctx, measure); err != nil {
		return nil, err
	}
	return measure, nil
}

// Get returns a campaign by id
func (s *MeasureService) Get(ctx context.Context, id uint) (*models.Measure, error) {
	measure, err := s.measureRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return measure, nil
}

// UpdateMeasureInput carries the updatable campaign fields
type UpdateMeasureInput struct {
	MeasureDate *string `json:"measure_date"`
	Period      *string `json:"period"`
	ReaderName  *string `json:"reader_name"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
}

// Update edits campaign metadata
func (s *MeasureService) Update(ctx context.Context, id uint, input *UpdateMeasureInput) (*models.Measure, error) {
	measure, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.MeasureDate != nil {
		date, err := time.Parse("2006-01-02", *input.MeasureDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de medición inválida", ErrValidation)
		}
		measure.MeasureDate = date
	}
	if input.Period != nil {
		measure.Period = *input.Period
	}
	if input.ReaderName != nil {
		measure.ReaderName = *input.ReaderName
	}
	if input.Status != nil {
		measure.Status = *input.Status
	}
	if input.Notes != nil {
		measure.Notes = input.Notes
	}

	if err := s.measureRepo.Update(ctx, measure); err != nil {
		return nil, err
	}
	return measure, nil
}

// Delete removes a campaign. Its readings go with it; debts generated from
// them are handled separately by the debt service.
func (s *MeasureService) Delete(ctx context.Context, id uint) error {
	measure, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.measureRepo.Delete(ctx, measure.ID)
}

// List returns a page of campaigns
func (s *MeasureService) List(ctx context.Context, query *repository.ListQuery) ([]models.Measure, int64, error) {
	return s.measureRepo.List(ctx, query)
}

// GetReadings returns a campaign's readings with meter and neighbor info
func (s *MeasureService) GetReadings(ctx context.Context, measureID uint) ([]models.MeterReading, error) {
	if _, err := s.Get(ctx, measureID); err != nil {
		return nil, err
	}
	return s.readingRepo.FindByMeasure(ctx, measureID)
}

// CreateReadingInput carries the fields to record one meter reading
type CreateReadingInput struct {
	MeterID        uint    `json:"meter_id" binding:"required"`
	CurrentReading int     `json:"current_reading" binding:"min=0"`
	ReadingDate    *string `json:"reading_date"`
	Notes          *string `json:"notes"`
}

// CreateReading records a reading in a campaign and advances its counters
func (s *MeasureService) CreateReading(ctx context.Context, measureID uint, input *CreateReadingInput) (*models.MeterReading, error) {
	measure, err := s.Get(ctx, measureID)
	if err != nil {
		return nil, err
	}

	if _, err := s.meterRepo.FindByID(ctx, input.MeterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	readingDate := time.Now()
	if input.ReadingDate != nil && *input.ReadingDate != "" {
		readingDate, err = time.Parse("2006-01-02", *input.ReadingDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de lectura inválida", ErrValidation)
		}
	}

	reading := &models.MeterReading{
		MeasureID:      measure.ID,
		MeterID:        input.MeterID,
		CurrentReading: input.CurrentReading,
		ReadingDate:    readingDate,
		Status:         models.ReadingStatusNormal,
		Notes:          input.Notes,
	}
	if err := s.readingRepo.Create(ctx, reading); err != nil {
		return nil, err
	}

	measure.MetersRead++
	if measure.MetersPending > 0 {
		measure.MetersPending--
	}
	if measure.Status == models.MeasureStatusScheduled {
		measure.Status = models.MeasureStatusInProgress
	}
	if measure.MetersPending == 0 {
		measure.Status = models.MeasureStatusCompleted
	}
	if err := s.measureRepo.Update(ctx, measure); err != nil {
		return nil, err
	}

	return reading, nil
}
