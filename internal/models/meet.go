package models

import "time"

// Meet is a neighborhood assembly. Attendance statistics are denormalized
// onto the row and refreshed from the assistance records whenever attendance
// changes.
type Meet struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	MeetDate       time.Time  `gorm:"type:date;not null;index" json:"meet_date"`
	MeetType       string     `gorm:"default:ordinary;not null" json:"meet_type"`
	Title          string     `gorm:"not null" json:"title"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	StartTime      *time.Time `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	Status         string     `gorm:"default:scheduled;not null" json:"status"`
	IsMandatory    bool       `gorm:"not null;default:true" json:"is_mandatory"`
	TotalNeighbors int        `gorm:"not null;default:0" json:"total_neighbors"`
	TotalPresent   int        `gorm:"not null;default:0" json:"total_present"`
	TotalAbsent    int        `gorm:"not null;default:0" json:"total_absent"`
	TotalOnTime    int        `gorm:"not null;default:0" json:"total_on_time"`
	Organizer      string     `json:"organizer"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Associations
	Assistances []Assistance `gorm:"foreignKey:MeetID;constraint:OnDelete:CASCADE" json:"assistances,omitempty"`
}

// TableName specifies the table name for Meet
func (Meet) TableName() string {
	return "meets"
}

// Meeting status constants
const (
	MeetStatusScheduled  = "scheduled"
	MeetStatusInProgress = "in_progress"
	MeetStatusCompleted  = "completed"
	MeetStatusCancelled  = "cancelled"
)

// Meeting type constants
const (
	MeetTypeOrdinary      = "ordinary"
	MeetTypeExtraordinary = "extraordinary"
	MeetTypeEmergency     = "emergency"
)

// Assistance is one neighbor's attendance record for a meeting. A neighbor
// appears at most once per meeting.
type Assistance struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	MeetID            uint       `gorm:"not null;uniqueIndex:idx_assistance_meet_neighbor" json:"meet_id"`
	NeighborID        uint       `gorm:"not null;uniqueIndex:idx_assistance_meet_neighbor" json:"neighbor_id"`
	IsPresent         bool       `gorm:"not null;default:false" json:"is_present"`
	IsOnTime          bool       `gorm:"not null;default:false" json:"is_on_time"`
	ArrivalTime       *time.Time `json:"arrival_time"`
	DepartureTime     *time.Time `json:"departure_time"`
	HasExcuse         bool       `gorm:"not null;default:false" json:"has_excuse"`
	ExcuseReason      *string    `json:"excuse_reason"`
	HasRepresentative bool       `gorm:"not null;default:false" json:"has_representative"`
	RepresentedBy     *string    `json:"represented_by"`
	Notes             *string    `json:"notes"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Associations
	Meet     Meet     `gorm:"foreignKey:MeetID" json:"meet,omitempty"`
	Neighbor Neighbor `gorm:"foreignKey:NeighborID" json:"neighbor,omitempty"`
}

// TableName specifies the table name for Assistance
func (Assistance) TableName() string {
	return "assistances"
}

// AssistanceResponse is the JSON response format for attendance records
type AssistanceResponse struct {
	ID                uint       `json:"id"`
	MeetID            uint       `json:"meet_id"`
	NeighborID        uint       `json:"neighbor_id"`
	NeighborName      string     `json:"neighbor_name"`
	IsPresent         bool       `json:"is_present"`
	IsOnTime          bool       `json:"is_on_time"`
	ArrivalTime       *time.Time `json:"arrival_time"`
	DepartureTime     *time.Time `json:"departure_time"`
	HasExcuse         bool       `json:"has_excuse"`
	ExcuseReason      *string    `json:"excuse_reason"`
	HasRepresentative bool       `json:"has_representative"`
	RepresentedBy     *string    `json:"represented_by"`
	Notes             *string    `json:"notes"`
}

// ToResponse converts Assistance to AssistanceResponse. Neighbor should be
// preloaded.
func (a *Assistance) ToResponse() AssistanceResponse {
	return AssistanceResponse{
		ID:                a.ID,
		MeetID:            a.MeetID,
		NeighborID:        a.NeighborID,
		NeighborName:      a.Neighbor.FullName(),
		IsPresent:         a.IsPresent,
		IsOnTime:          a.IsOnTime,
		ArrivalTime:       a.ArrivalTime,
		DepartureTime:     a.DepartureTime,
		HasExcuse:         a.HasExcuse,
		ExcuseReason:      a.ExcuseReason,
		HasRepresentative: a.HasRepresentative,
		RepresentedBy:     a.RepresentedBy,
		Notes:             a.Notes,
	}
}

// MeetResponse is the JSON response format for meetings
type MeetResponse struct {
	ID             uint       `json:"id"`
	MeetDate       time.Time  `json:"meet_date"`
	MeetType       string     `json:"meet_type"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	StartTime      *time.Time `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	Status         string     `json:"status"`
	IsMandatory    bool       `json:"is_mandatory"`
	TotalNeighbors int        `json:"total_neighbors"`
	TotalPresent   int        `json:"total_present"`
	TotalAbsent    int        `json:"total_absent"`
	TotalOnTime    int        `json:"total_on_time"`
	AttendanceRate float64    `json:"attendance_rate"`
	Organizer      string     `json:"organizer"`
	Notes          *string    `json:"notes"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToResponse converts Meet to MeetResponse
func (m *Meet) ToResponse() MeetResponse {
	rate := 0.0
	if m.TotalNeighbors > 0 {
		rate = float64(m.TotalPresent) / float64(m.TotalNeighbors) * 100
	}

	return MeetResponse{
		ID:             m.ID,
		MeetDate:       m.MeetDate,
		MeetType:       m.MeetType,
		Title:          m.Title,
		Description:    m.Description,
		Location:       m.Location,
		StartTime:      m.StartTime,
		EndTime:        m.EndTime,
		Status:         m.Status,
		IsMandatory:    m.IsMandatory,
		TotalNeighbors: m.TotalNeighbors,
		TotalPresent:   m.TotalPresent,
		TotalAbsent:    m.TotalAbsent,
		TotalOnTime:    m.TotalOnTime,
		AttendanceRate: rate,
		Organizer:      m.Organizer,
		Notes:          m.Notes,
	}
}
