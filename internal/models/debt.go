package models

import (
	"time"

	"github.com/srodrigo23/backend-otb-control/pkg/money"
)

// DebtType is a named billing category (e.g. "Consumo de Agua"), unique by
// name and lazily created the first time the category is billed.
type DebtType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for DebtType
func (DebtType) TableName() string {
	return "debt_types"
}

// Well-known debt type names
const (
	DebtTypeWaterConsumption = "Consumo de Agua"
	DebtTypeAbsenceFine      = "Multa por Inasistencia"
	DebtTypeMaintenance      = "Mantenimiento"
)

// DebtItem is the central ledger row: one billable obligation owed by a
// neighbor. It may originate from a meter reading or from a meeting
// attendance record, never both. Balances always satisfy
// balance = amount + late_fee - discount - amount_paid.
type DebtItem struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	NeighborID     uint        `gorm:"not null;index" json:"neighbor_id"`
	DebtTypeID     uint        `gorm:"not null;index" json:"debt_type_id"`
	MeterReadingID *uint       `gorm:"uniqueIndex" json:"meter_reading_id"`
	AssistanceID   *uint       `gorm:"index" json:"assistance_id"`
	Amount         money.Money `gorm:"not null" json:"amount"`
	AmountPaid     money.Money `gorm:"not null;default:0" json:"amount_paid"`
	Balance        money.Money `gorm:"not null" json:"balance"`
	LateFee        money.Money `gorm:"not null;default:0" json:"late_fee"`
	Discount       money.Money `gorm:"not null;default:0" json:"discount"`
	Reason         string      `json:"reason"`
	Period         string      `gorm:"size:7;index" json:"period"`
	IssueDate      time.Time   `gorm:"type:date;not null" json:"issue_date"`
	DueDate        *time.Time  `gorm:"type:date;index" json:"due_date"`
	PaidDate       *time.Time  `json:"paid_date"`
	Status         string      `gorm:"default:pending;not null;index" json:"status"`
	Notes          *string     `json:"notes"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`

	// Associations
	Neighbor     Neighbor      `gorm:"foreignKey:NeighborID" json:"neighbor,omitempty"`
	DebtType     DebtType      `gorm:"foreignKey:DebtTypeID" json:"debt_type,omitempty"`
	MeterReading *MeterReading `gorm:"foreignKey:MeterReadingID" json:"meter_reading,omitempty"`
}

// TableName specifies the table name for DebtItem
func (DebtItem) TableName() string {
	return "debt_items"
}

// Debt status constants
const (
	DebtStatusPending = "pending"
	DebtStatusPartial = "partial"
	DebtStatusPaid    = "paid"
)

// OwedTotal is the full obligation: amount plus late fee minus discount.
func (d *DebtItem) OwedTotal() money.Money {
	return d.Amount.Add(d.LateFee).Sub(d.Discount)
}

// IsOverdue reports whether the debt is past its due date and still unpaid.
// Overdue is a derived view layered over pending/partial, never a status of
// its own, so a cleared debt can never fall back to pending.
func (d *DebtItem) IsOverdue() bool {
	return d.DueDate != nil && d.Status != DebtStatusPaid && time.Now().After(*d.DueDate)
}

// IsActive reports whether the debt still carries an open balance.
func (d *DebtItem) IsActive() bool {
	return d.Status == DebtStatusPending || d.Status == DebtStatusPartial
}

// MayDelete returns true if the debt can be removed: nothing has ever been
// paid against it. A debt with payment history must stay for the audit trail.
func (d *DebtItem) MayDelete() bool {
	return d.Status == DebtStatusPending && d.AmountPaid.IsZero()
}

// DebtItemResponse is the JSON response format for debts
type DebtItemResponse struct {
	ID             uint        `json:"id"`
	NeighborID     uint        `json:"neighbor_id"`
	DebtTypeID     uint        `json:"debt_type_id"`
	DebtTypeName   string      `json:"debt_type_name"`
	MeterReadingID *uint       `json:"meter_reading_id"`
	AssistanceID   *uint       `json:"assistance_id"`
	Amount         money.Money `json:"amount"`
	AmountPaid     money.Money `json:"amount_paid"`
	Balance        money.Money `json:"balance"`
	LateFee        money.Money `json:"late_fee"`
	Discount       money.Money `json:"discount"`
	Reason         string      `json:"reason"`
	Period         string      `json:"period"`
	IssueDate      time.Time   `json:"issue_date"`
	DueDate        *time.Time  `json:"due_date"`
	PaidDate       *time.Time  `json:"paid_date"`
	Status         string      `json:"status"`
	IsOverdue      bool        `json:"is_overdue"`
	Notes          *string     `json:"notes"`
}

// ToResponse converts DebtItem to DebtItemResponse. DebtType should be
// preloaded; its name falls back to "Desconocido" otherwise.
func (d *DebtItem) ToResponse() DebtItemResponse {
	typeName := "Desconocido"
	if d.DebtType.ID != 0 {
		typeName = d.DebtType.Name
	}

	return DebtItemResponse{
		ID:             d.ID,
		NeighborID:     d.NeighborID,
		DebtTypeID:     d.DebtTypeID,
		DebtTypeName:   typeName,
		MeterReadingID: d.MeterReadingID,
		AssistanceID:   d.AssistanceID,
		Amount:         d.Amount,
		AmountPaid:     d.AmountPaid,
		Balance:        d.Balance,
		LateFee:        d.LateFee,
		Discount:       d.Discount,
		Reason:         d.Reason,
		Period:         d.Period,
		IssueDate:      d.IssueDate,
		DueDate:        d.DueDate,
		PaidDate:       d.PaidDate,
		Status:         d.Status,
		IsOverdue:      d.IsOverdue(),
		Notes:          d.Notes,
	}
}

// NeighborDebtsResponse is the aggregate shape returned by the per-neighbor
// debt listings.
type NeighborDebtsResponse struct {
	NeighborID   uint               `json:"neighbor_id"`
	NeighborName string             `json:"neighbor_name"`
	TotalDebts   int                `json:"total_debts"`
	TotalAmount  money.Money        `json:"total_amount"`
	TotalBalance money.Money        `json:"total_balance"`
	DebtDetails  []DebtItemResponse `json:"debt_details"`
}
