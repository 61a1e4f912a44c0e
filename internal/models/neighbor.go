package models

import (
	"strings"
	"time"
)

// Neighbor represents a resident account holder of the association
type Neighbor struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:30;not null" json:"first_name"`
	SecondName  string     `gorm:"size:30;default:''" json:"second_name"`
	LastName    string     `gorm:"size:60" json:"last_name"`
	CI          string     `gorm:"column:ci;size:10;uniqueIndex" json:"ci"`
	PhoneNumber string     `gorm:"size:15" json:"phone_number"`
	Email       *string    `gorm:"size:60" json:"email"`
	BirthDay    *time.Time `gorm:"type:date" json:"birth_day"`
	Section     string     `gorm:"size:20;default:''" json:"section"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Associations
	Meters   []NeighborMeter `gorm:"foreignKey:NeighborID" json:"meters,omitempty"`
	Debts    []DebtItem      `gorm:"foreignKey:NeighborID;constraint:OnDelete:CASCADE" json:"debts,omitempty"`
	Payments []Payment       `gorm:"foreignKey:NeighborID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}

// TableName specifies the table name for Neighbor
func (Neighbor) TableName() string {
	return "neighbors"
}

// FullName joins the name parts, skipping empty ones
func (n *Neighbor) FullName() string {
	parts := []string{n.FirstName, n.SecondName, n.LastName}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// NeighborMeter represents a water meter installed for a neighbor
type NeighborMeter struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	NeighborID          uint       `gorm:"not null;index" json:"neighbor_id"`
	MeterCode           string     `gorm:"uniqueIndex;not null" json:"meter_code"`
	Label               string     `gorm:"default:'Medidor Principal'" json:"label"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	InstallationDate    *time.Time `gorm:"type:date" json:"installation_date"`
	LastMaintenanceDate *time.Time `gorm:"type:date" json:"last_maintenance_date"`
	Notes               *string    `json:"notes"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// Associations
	Neighbor Neighbor       `gorm:"foreignKey:NeighborID" json:"neighbor,omitempty"`
	Readings []MeterReading `gorm:"foreignKey:MeterID" json:"readings,omitempty"`
}

// TableName specifies the table name for NeighborMeter
func (NeighborMeter) TableName() string {
	return "neighbor_meters"
}
