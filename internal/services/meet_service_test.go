package services

import (
	"context"
	"testing"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"github.com/srodrigo23/backend-otb-control/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestCreateMeet_DefaultsAndHeadcount(t *testing.T) {
	var created *models.Meet
	repos := &repository.Repositories{
		Meet: &mockMeetRepository{
			mockCreate: func(ctx context.Context, meet *models.Meet) error {
				created = meet
				return nil
			},
		},
		Assistance: &mockAssistanceRepository{},
		Neighbor: &mockNeighborRepository{
			mockCountActive: func(ctx context.Context) (int64, error) {
				return 42, nil
			},
		},
	}

	svc := NewMeetService(repos)
	meet, err := svc.Create(context.Background(), &CreateMeetInput{
		MeetDate: "2026-09-15",
		Title:    "Asamblea ordinaria de septiembre",
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, models.MeetTypeOrdinary, meet.MeetType)
	assert.Equal(t, models.MeetStatusScheduled, meet.Status)
	assert.True(t, meet.IsMandatory)
	assert.Equal(t, 42, meet.TotalNeighbors)
}

func TestCreateMeet_RejectsInvalidDate(t *testing.T) {
	repos := &repository.Repositories{
		Meet:       &mockMeetRepository{},
		Assistance: &mockAssistanceRepository{},
		Neighbor:   &mockNeighborRepository{},
	}

	svc := NewMeetService(repos)
	_, err := svc.Create(context.Background(), &CreateMeetInput{
		MeetDate: "15/09/2026",
		Title:    "Asamblea",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecordAssistance_CreatesAndRecalculates(t *testing.T) {
	var created *models.Assistance
	var updatedMeet *models.Meet

	repos := &repository.Repositories{
		Meet: &mockMeetRepository{
			mockUpdate: func(ctx context.Context, meet *models.Meet) error {
				updatedMeet = meet
				return nil
			},
		},
		Assistance: &mockAssistanceRepository{
			mockCreate: func(ctx context.Context, assistance *models.Assistance) error {
				assistance.ID = 7
				created = assistance
				return nil
			},
			mockCountByMeet: func(ctx context.Context, meetID uint) (present, absent, onTime int64, err error) {
				return 5, 2, 4, nil
			},
		},
		Neighbor: &mockNeighborRepository{},
	}

	svc := NewMeetService(repos)
	assistance, err := svc.RecordAssistance(context.Background(), 1, &RecordAssistanceInput{
		NeighborID: 5,
		IsPresent:  true,
		IsOnTime:   true,
	})

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, uint(1), assistance.MeetID)
	assert.Equal(t, uint(5), assistance.NeighborID)
	assert.True(t, assistance.IsPresent)

	assert.NotNil(t, updatedMeet)
	assert.Equal(t, 5, updatedMeet.TotalPresent)
	assert.Equal(t, 2, updatedMeet.TotalAbsent)
	assert.Equal(t, 4, updatedMeet.TotalOnTime)
}

func TestRecordAssistance_UpdatesExistingRecord(t *testing.T) {
	createCalls := 0
	var updated *models.Assistance

	repos := &repository.Repositories{
		Meet: &mockMeetRepository{},
		Assistance: &mockAssistanceRepository{
			mockFindByMeetAndNeighbor: func(ctx context.Context, meetID, neighborID uint) (*models.Assistance, error) {
				return &models.Assistance{ID: 7, MeetID: meetID, NeighborID: neighborID, IsPresent: false}, nil
			},
			mockCreate: func(ctx context.Context, assistance *models.Assistance) error {
				createCalls++
				return nil
			},
			mockUpdate: func(ctx context.Context, assistance *models.Assistance) error {
				updated = assistance
				return nil
			},
		},
		Neighbor: &mockNeighborRepository{},
	}

	svc := NewMeetService(repos)
	assistance, err := svc.RecordAssistance(context.Background(), 1, &RecordAssistanceInput{
		NeighborID: 5,
		IsPresent:  true,
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, createCalls)
	assert.NotNil(t, updated)
	assert.Equal(t, uint(7), assistance.ID)
	assert.True(t, assistance.IsPresent)
}

func TestRecordAssistance_RejectsInvalidArrivalTime(t *testing.T) {
	repos := &repository.Repositories{
		Meet:       &mockMeetRepository{},
		Assistance: &mockAssistanceRepository{},
		Neighbor:   &mockNeighborRepository{},
	}

	bad := "ayer a las cinco"
	svc := NewMeetService(repos)
	_, err := svc.RecordAssistance(context.Background(), 1, &RecordAssistanceInput{
		NeighborID:  5,
		ArrivalTime: &bad,
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecalculateAllStatistics_CountsUpdatedMeetings(t *testing.T) {
	updates := 0
	repos := &repository.Repositories{
		Meet: &mockMeetRepository{
			mockList: func(ctx context.Context, query *repository.ListQuery) ([]models.Meet, int64, error) {
				return []models.Meet{{ID: 1}, {ID: 2}, {ID: 3}}, 3, nil
			},
			mockUpdate: func(ctx context.Context, meet *models.Meet) error {
				updates++
				return nil
			},
		},
		Assistance: &mockAssistanceRepository{
			mockCountByMeet: func(ctx context.Context, meetID uint) (present, absent, onTime int64, err error) {
				return int64(meetID), 0, int64(meetID), nil
			},
		},
		Neighbor: &mockNeighborRepository{},
	}

	svc := NewMeetService(repos)
	updated, err := svc.RecalculateAllStatistics(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 3, updated)
	assert.Equal(t, 3, updates)
}
