package models

import (
	"time"
)

// Measure represents one meter-reading session: somebody walks the
// neighborhood and samples every active meter.
type Measure struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	MeasureDate   time.Time `gorm:"type:date;not null" json:"measure_date"`
	Period        string    `gorm:"size:7;not null;index" json:"period"` // YYYY-MM
	ReaderName    string    `json:"reader_name"`
	Status        string    `gorm:"default:scheduled;not null" json:"status"`
	TotalMeters   int       `gorm:"default:0" json:"total_meters"`
	MetersRead    int       `gorm:"default:0" json:"meters_read"`
	MetersPending int       `gorm:"default:0" json:"meters_pending"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	Readings []MeterReading `gorm:"foreignKey:MeasureID" json:"readings,omitempty"`
}

// TableName specifies the table name for Measure
func (Measure) TableName() string {
	return "measures"
}

// Measure status constants
const (
	MeasureStatusScheduled  = "scheduled"
	MeasureStatusInProgress = "in_progress"
	MeasureStatusCompleted  = "completed"
)

// MeterReading is one gauge-value sample for a meter inside a measure. It is
// an immutable fact: after creation only status and has_anomaly may change.
type MeterReading struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	MeasureID      uint      `gorm:"not null;index" json:"measure_id"`
	MeterID        uint      `gorm:"not null;index" json:"meter_id"`
	CurrentReading int       `gorm:"not null" json:"current_reading"`
	ReadingDate    time.Time `gorm:"type:date" json:"reading_date"`
	Status         string    `gorm:"default:normal" json:"status"`
	HasAnomaly     bool      `gorm:"default:false" json:"has_anomaly"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Associations
	Measure Measure       `gorm:"foreignKey:MeasureID" json:"measure,omitempty"`
	Meter   NeighborMeter `gorm:"foreignKey:MeterID" json:"meter,omitempty"`
}

// TableName specifies the table name for MeterReading
func (MeterReading) TableName() string {
	return "meter_readings"
}

// Reading status constants
const (
	ReadingStatusNormal  = "normal"
	ReadingStatusAnomaly = "anomaly"
)

// MeterReadingResponse is the listing shape for a measure's readings,
// flattened with neighbor and meter info for the reading sheet UI.
type MeterReadingResponse struct {
	ID             uint      `json:"id"`
	MeterID        uint      `json:"meter_id"`
	MeasureID      uint      `json:"measure_id"`
	CurrentReading int       `json:"current_reading"`
	ReadingDate    time.Time `json:"reading_date"`
	Status         string    `json:"status"`
	HasAnomaly     bool      `json:"has_anomaly"`
	Notes          *string   `json:"notes"`

	NeighborFirstName  string `json:"neighbor_first_name"`
	NeighborSecondName string `json:"neighbor_second_name"`
	NeighborLastName   string `json:"neighbor_last_name"`
	NeighborCI         string `json:"neighbor_ci"`
	MeterNumber        string `json:"meter_number"`
}

// ToResponse converts MeterReading to MeterReadingResponse. Meter and
// Meter.Neighbor must be preloaded.
func (r *MeterReading) ToResponse() MeterReadingResponse {
	return MeterReadingResponse{
		ID:                 r.ID,
		MeterID:            r.MeterID,
		MeasureID:          r.MeasureID,
		CurrentReading:     r.CurrentReading,
		ReadingDate:        r.ReadingDate,
		Status:             r.Status,
		HasAnomaly:         r.HasAnomaly,
		Notes:              r.Notes,
		NeighborFirstName:  r.Meter.Neighbor.FirstName,
		NeighborSecondName: r.Meter.Neighbor.SecondName,
		NeighborLastName:   r.Meter.Neighbor.LastName,
		NeighborCI:         r.Meter.Neighbor.CI,
		MeterNumber:        r.Meter.MeterCode,
	}
}
