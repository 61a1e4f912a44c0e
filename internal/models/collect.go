package models

import (
	"time"

	"github.com/srodrigo23/backend-otb-control/pkg/money"
)

// CollectDebt is a collection session: a scheduled window during which the
// board receives payments. Its totals are aggregates maintained as payments
// come in and can be recomputed from the payment rows at any time.
type CollectDebt struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	CollectDate        time.Time   `gorm:"type:date;not null;index" json:"collect_date"`
	Period             string      `gorm:"size:7;index" json:"period"`
	CollectorName      string      `json:"collector_name"`
	Location           string      `json:"location"`
	Status             string      `gorm:"default:scheduled;not null" json:"status"`
	TotalPayments      int         `gorm:"not null;default:0" json:"total_payments"`
	TotalCollected     money.Money `gorm:"not null;default:0" json:"total_collected"`
	TotalNeighborsPaid int         `gorm:"not null;default:0" json:"total_neighbors_paid"`
	StartTime          *time.Time  `json:"start_time"`
	EndTime            *time.Time  `json:"end_time"`
	Notes              *string     `json:"notes"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`

	// Associations
	Payments []Payment `gorm:"foreignKey:CollectDebtID" json:"payments,omitempty"`
}

// TableName specifies the table name for CollectDebt
func (CollectDebt) TableName() string {
	return "collect_debts"
}

// Collection session status constants
const (
	CollectStatusScheduled = "scheduled"
	CollectStatusActive    = "active"
	CollectStatusClosed    = "closed"
)

// CollectDebtResponse is the JSON response format for collection sessions
type CollectDebtResponse struct {
	ID                 uint        `json:"id"`
	CollectDate        time.Time   `json:"collect_date"`
	Period             string      `json:"period"`
	CollectorName      string      `json:"collector_name"`
	Location           string      `json:"location"`
	Status             string      `json:"status"`
	TotalPayments      int         `json:"total_payments"`
	TotalCollected     money.Money `json:"total_collected"`
	TotalNeighborsPaid int         `json:"total_neighbors_paid"`
	StartTime          *time.Time  `json:"start_time"`
	EndTime            *time.Time  `json:"end_time"`
	Notes              *string     `json:"notes"`
	CreatedAt          time.Time   `json:"created_at"`
}

// ToResponse converts CollectDebt to CollectDebtResponse
func (c *CollectDebt) ToResponse() CollectDebtResponse {
	return CollectDebtResponse{
		ID:                 c.ID,
		CollectDate:        c.CollectDate,
		Period:             c.Period,
		CollectorName:      c.CollectorName,
		Location:           c.Location,
		Status:             c.Status,
		TotalPayments:      c.TotalPayments,
		TotalCollected:     c.TotalCollected,
		TotalNeighborsPaid: c.TotalNeighborsPaid,
		StartTime:          c.StartTime,
		EndTime:            c.EndTime,
		Notes:              c.Notes,
		CreatedAt:          c.CreatedAt,
	}
}
