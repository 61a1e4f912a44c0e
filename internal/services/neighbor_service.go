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

// NeighborService manages neighbors and their water meters
type NeighborService struct {
	neighborRepo repository.NeighborRepository
	meterRepo    repository.MeterRepository
}

// NewNeighborService creates a new neighbor service
func NewNeighborService(repos *repository.Repositories) *NeighborService {
	return &NeighborService{
		neighborRepo: repos.Neighbor,
		meterRepo:    repos.Meter,
	}
}

// CreateNeighborInput carries the fields to register a neighbor
type CreateNeighborInput struct {
	FirstName   string  `json:"first_name" binding:"required"`
	SecondName  string  `json:"second_name"`
	LastName    string  `json:"last_name" binding:"required"`
	CI          string  `json:"ci" binding:"required"`
	PhoneNumber string  `json:"phone_number"`
	Email       *string `json:"email"`
	BirthDay    *string `json:"birth_day"`
	Section     string  `json:"section"`
}

// Create registers a neighbor. CI must be unique.
func (s *NeighborService) Create(ctx context.Context, input *CreateNeighborInput) (*models.Neighbor, error) {
	neighbor := &models.Neighbor{
		FirstName:   input.FirstName,
		SecondName:  input.SecondName,
		LastName:    input.LastName,
		CI:          input.CI,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		Section:     input.Section,
		IsActive:    true,
	}

	if input.BirthDay != nil && *input.BirthDay != "" {
		birth, err := time.Parse("2006-01-02", *input.BirthDay)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de nacimiento inválida", ErrValidation)
		}
		neighbor.BirthDay = &birth
	}

	if err := s.neighborRepo.Create(ctx, neighbor); err != nil {
		return nil, err
	}
	return neighbor, nil
}

// Get returns a neighbor by id
func (s *NeighborService) Get(ctx context.Context, id uint) (*models.Neighbor, error) {
	neighbor, err := s.neighborRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return neighbor, nil
}

// UpdateNeighborInput carries the updatable neighbor fields
type UpdateNeighborInput struct {
	FirstName   *string `json:"first_name"`
	SecondName  *string `json:"second_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`
	BirthDay    *string `json:"birth_day"`
	Section     *string `json:"section"`
	IsActive    *bool   `json:"is_active"`
}

// Update edits a neighbor
func (s *NeighborService) Update(ctx context.Context, id uint, input *UpdateNeighborInput) (*models.Neighbor, error) {
	neighbor, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		neighbor.FirstName = *input.FirstName
	}
	if input.SecondName != nil {
		neighbor.SecondName = *input.SecondName
	}
	if input.LastName != nil {
		neighbor.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		neighbor.PhoneNumber = *input.PhoneNumber
	}
	if input.Email != nil {
		neighbor.Email = input.Email
	}
	if input.BirthDay != nil && *input.BirthDay != "" {
		birth, err := time.Parse("2006-01-02", *input.BirthDay)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de nacimiento inválida", ErrValidation)
		}
		neighbor.BirthDay = &birth
	}
	if input.Section != nil {
		neighbor.Section = *input.Section
	}
	if input.IsActive != nil {
		neighbor.IsActive = *input.IsActive
	}

	if err := s.neighborRepo.Update(ctx, neighbor); err != nil {
		return nil, err
	}
	return neighbor, nil
}

// Delete removes a neighbor and, per the cascade, their debts and payments
func (s *NeighborService) Delete(ctx context.Context, id uint) error {
	neighbor, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.neighborRepo.Delete(ctx, neighbor.ID)
}

// List returns a page of neighbors
func (s *NeighborService) List(ctx context.Context, query *repository.ListQuery) ([]models.Neighbor, int64, error) {
	return s.neighborRepo.List(ctx, query)
}

// GetMeters returns a neighbor's water meters
func (s *NeighborService) GetMeters(ctx context.Context, neighborID uint) ([]models.NeighborMeter, error) {
	if _, err := s.Get(ctx, neighborID); err != nil {
		return nil, err
	}
	return s.meterRepo.FindByNeighbor(ctx, neighborID)
}

// CreateMeterInput carries the fields to register a water meter
type CreateMeterInput struct {
	MeterCode        string  `json:"meter_code" binding:"required"`
	Label            string  `json:"label"`
	InstallationDate *string `json:"installation_date"`
	Notes            *string `json:"notes"`
}

// CreateMeter registers a meter for a neighbor. Meter code must be unique.
func (s *NeighborService) CreateMeter(ctx context.Context, neighborID uint, input *CreateMeterInput) (*models.NeighborMeter, error) {
	if _, err := s.Get(ctx, neighborID); err != nil {
		return nil, err
	}

	meter := &models.NeighborMeter{
		NeighborID: neighborID,
		MeterCode:  input.MeterCode,
		Label:      input.Label,
		IsActive:   true,
		Notes:      input.Notes,
	}
	if meter.Label == "" {
		meter.Label = "Medidor Principal"
	}
	if input.InstallationDate != nil && *input.InstallationDate != "" {
		date, err := time.Parse("2006-01-02", *input.InstallationDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de instalación inválida", ErrValidation)
		}
		meter.InstallationDate = &date
	}

	if err := s.meterRepo.Create(ctx, meter); err != nil {
		return nil, err
	}
	return meter, nil
}
