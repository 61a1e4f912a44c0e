package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/srodrigo23/backend-otb-control/pkg/logger"
	"gorm.io/gorm"
)

// MeetService manages meetings and attendance records
type MeetService struct {
	meetRepo       repository.MeetRepository
	assistanceRepo repository.AssistanceRepository
	neighborRepo   repository.NeighborRepository
}

// NewMeetService creates a new meeting service
func NewMeetService(repos *repository.Repositories) *MeetService {
	return &MeetService{
		meetRepo:       repos.Meet,
		assistanceRepo: repos.Assistance,
		neighborRepo:   repos.Neighbor,
	}
}

// CreateMeetInput carries the fields to schedule a meeting
type CreateMeetInput struct {
	MeetDate    string  `json:"meet_date" binding:"required"`
	MeetType    string  `json:"meet_type"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	IsMandatory *bool   `json:"is_mandatory"`
	Organizer   string  `json:"organizer"`
	Notes       *string `json:"notes"`
}

// Create schedules a meeting. The expected headcount starts at the number
// of active neighbors.
func (s *MeetService) Create(ctx context.Context, input *CreateMeetInput) (*models.Meet, error) {
	date, err := time.Parse("2006-01-02", input.MeetDate)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha de reunión inválida", ErrValidation)
	}

	total, err := s.neighborRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	meetType := input.MeetType
	if meetType == "" {
		meetType = models.MeetTypeOrdinary
	}
	mandatory := true
	if input.IsMandatory != nil {
		mandatory = *input.IsMandatory
	}

	meet := &models.Meet{
		MeetDate:       date,
		MeetType:       meetType,
		Title:          input.Title,
		Description:    input.Description,
		Location:       input.Location,
		Status:         models.MeetStatusScheduled,
		IsMandatory:    mandatory,
		TotalNeighbors: int(total),
		Organizer:      input.Organizer,
		Notes:          input.Notes,
	}
	if err := s.meetRepo.Create(ctx, meet); err != nil {
		return nil, err
	}
	return meet, nil
}

// Get returns a meeting by id
func (s *MeetService) Get(ctx context.Context, id uint) (*models.Meet, error) {
	meet, err := s.meetRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return meet, nil
}

// UpdateMeetInput carries the updatable meeting fields
type UpdateMeetInput struct {
	MeetDate    *string `json:"meet_date"`
	MeetType    *string `json:"meet_type"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
	IsMandatory *bool   `json:"is_mandatory"`
	Organizer   *string `json:"organizer"`
	Notes       *string `json:"notes"`
}

// Update edits a meeting
func (s *MeetService) Update(ctx context.Context, id uint, input *UpdateMeetInput) (*models.Meet, error) {
	meet, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.MeetDate != nil {
		date, err := time.Parse("2006-01-02", *input.MeetDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de reunión inválida", ErrValidation)
		}
		meet.MeetDate = date
	}
	if input.MeetType != nil {
		meet.MeetType = *input.MeetType
	}
	if input.Title != nil {
		meet.Title = *input.Title
	}
	if input.Description != nil {
		meet.Description = *input.Description
	}
	if input.Location != nil {
		meet.Location = *input.Location
	}
	if input.Status != nil {
		meet.Status = *input.Status
	}
	if input.IsMandatory != nil {
		meet.IsMandatory = *input.IsMandatory
	}
	if input.Organizer != nil {
		meet.Organizer = *input.Organizer
	}
	if input.Notes != nil {
		meet.Notes = input.Notes
	}

	if err := s.meetRepo.Update(ctx, meet); err != nil {
		return nil, err
	}
	return meet, nil
}

// Delete removes a meeting and its attendance records
func (s *MeetService) Delete(ctx context.Context, id uint) error {
	meet, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.meetRepo.Delete(ctx, meet.ID)
}

// List returns a page of meetings
func (s *MeetService) List(ctx context.Context, query *repository.ListQuery) ([]models.Meet, int64, error) {
	return s.meetRepo.List(ctx, query)
}

// GetAssistances returns a meeting's attendance records
func (s *MeetService) GetAssistances(ctx context.Context, meetID uint) ([]models.Assistance, error) {
	if _, err := s.Get(ctx, meetID); err != nil {
		return nil, err
	}
	return s.assistanceRepo.FindByMeet(ctx, meetID)
}

// RecordAssistanceInput carries one neighbor's attendance for a meeting
type RecordAssistanceInput struct {
	NeighborID        uint    `json:"neighbor_id" binding:"required"`
	IsPresent         bool    `json:"is_present"`
	IsOnTime          bool    `json:"is_on_time"`
	ArrivalTime       *string `json:"arrival_time"`
	HasExcuse         bool    `json:"has_excuse"`
	ExcuseReason      *string `json:"excuse_reason"`
	HasRepresentative bool    `json:"has_representative"`
	RepresentedBy     *string `json:"represented_by"`
	Notes             *string `json:"notes"`
}

// RecordAssistance creates or updates a neighbor's attendance for a meeting
// and refreshes the meeting statistics.
func (s *MeetService) RecordAssistance(ctx context.Context, meetID uint, input *RecordAssistanceInput) (*models.Assistance, error) {
	meet, err := s.Get(ctx, meetID)
	if err != nil {
		return nil, err
	}
	if _, err := s.neighborRepo.FindByID(ctx, input.NeighborID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var arrival *time.Time
	if input.ArrivalTime != nil && *input.ArrivalTime != "" {
		t, err := time.Parse(time.RFC3339, *input.ArrivalTime)
		if err != nil {
			return nil, fmt.Errorf("%w: hora de llegada inválida", ErrValidation)
		}
		arrival = &t
	}

	assistance, err := s.assistanceRepo.FindByMeetAndNeighbor(ctx, meetID, input.NeighborID)
	if err != nil {
		return nil, err
	}

	if assistance == nil {
		assistance = &models.Assistance{
			MeetID:     meetID,
			NeighborID: input.NeighborID,
		}
	}
	assistance.IsPresent = input.IsPresent
	assistance.IsOnTime = input.IsOnTime
	assistance.ArrivalTime = arrival
	assistance.HasExcuse = input.HasExcuse
	assistance.ExcuseReason = input.ExcuseReason
	assistance.HasRepresentative = input.HasRepresentative
	assistance.RepresentedBy = input.RepresentedBy
	assistance.Notes = input.Notes

	if assistance.ID == 0 {
		err = s.assistanceRepo.Create(ctx, assistance)
	} else {
		err = s.assistanceRepo.Update(ctx, assistance)
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.recalculate(ctx, meet); err != nil {
		return nil, err
	}
	return assistance, nil
}

// RecalculateStatistics refreshes one meeting's attendance counters from the
// assistance rows.
func (s *MeetService) RecalculateStatistics(ctx context.Context, meetID uint) (*models.Meet, error) {
	meet, err := s.Get(ctx, meetID)
	if err != nil {
		return nil, err
	}
	return s.recalculate(ctx, meet)
}

// RecalculateAllStatistics refreshes attendance counters for every meeting.
// Returns how many meetings were updated.
func (s *MeetService) RecalculateAllStatistics(ctx context.Context) (int, error) {
	query := repository.NewListQuery()
	query.PerPage = 0

	meets, _, err := s.meetRepo.List(ctx, query)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range meets {
		if _, err := s.recalculate(ctx, &meets[i]); err != nil {
			logger.Error("failed to recalculate meeting statistics",
				"meet_id", meets[i].ID, "error", err)
			continue
		}
		updated++
	}
	return updated, nil
}

func (s *MeetService) recalculate(ctx context.Context, meet *models.Meet) (*models.Meet, error) {
	present, absent, onTime, err := s.assistanceRepo.CountByMeet(ctx, meet.ID)
	if err != nil {
		return nil, err
	}

	meet.TotalPresent = int(present)
	meet.TotalAbsent = int(absent)
	meet.TotalOnTime = int(onTime)
	if err := s.meetRepo.Update(ctx, meet); err != nil {
		return nil, err
	}
	return meet, nil
}
