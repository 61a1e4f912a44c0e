package models

import (
	"time"

	"github.com/srodrigo23/backend-otb-control/pkg/money"
)

// Payment is one collection event: a neighbor hands over a single total
// during a collection session and the amount is fanned out across debts.
// PaymentDetails records the exact split.
type Payment struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	NeighborID      uint        `gorm:"not null;index" json:"neighbor_id"`
	CollectDebtID   uint        `gorm:"not null;index" json:"collect_debt_id"`
	CollectorID     *uint       `gorm:"index" json:"collector_id"`
	TotalAmount     money.Money `gorm:"not null" json:"total_amount"`
	PaymentMethod   string      `gorm:"default:cash;not null" json:"payment_method"`
	PaymentDate     time.Time   `gorm:"not null" json:"payment_date"`
	ReceiptNumber   string      `gorm:"uniqueIndex;not null" json:"receipt_number"`
	ReferenceNumber *string     `json:"reference_number"`
	ReceivedBy      string      `json:"received_by"`
	Notes           *string     `json:"notes"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	// Associations
	Neighbor       Neighbor        `gorm:"foreignKey:NeighborID" json:"neighbor,omitempty"`
	CollectDebt    CollectDebt     `gorm:"foreignKey:CollectDebtID" json:"collect_debt,omitempty"`
	Collector      *User           `gorm:"foreignKey:CollectorID" json:"collector,omitempty"`
	PaymentDetails []PaymentDetail `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE" json:"payment_details,omitempty"`
}

// TableName specifies the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// Payment method constants
const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
	PaymentMethodQR       = "qr"
)

// PaymentDetail is one slice of a payment applied to a single debt. The
// previous and new balance are snapshots taken at allocation time; new
// balance is stored as computed, even when negative.
type PaymentDetail struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	PaymentID       uint        `gorm:"not null;index" json:"payment_id"`
	DebtItemID      uint        `gorm:"not null;index" json:"debt_item_id"`
	AmountApplied   money.Money `gorm:"not null" json:"amount_applied"`
	PreviousBalance money.Money `gorm:"not null" json:"previous_balance"`
	NewBalance      money.Money `gorm:"not null" json:"new_balance"`
	CreatedAt       time.Time   `json:"created_at"`

	// Associations
	DebtItem DebtItem `gorm:"foreignKey:DebtItemID" json:"debt_item,omitempty"`
}

// TableName specifies the table name for PaymentDetail
func (PaymentDetail) TableName() string {
	return "payment_details"
}

// PaymentDetailResponse is the JSON response format for a payment detail
type PaymentDetailResponse struct {
	ID              uint        `json:"id"`
	DebtItemID      uint        `json:"debt_item_id"`
	DebtTypeName    string      `json:"debt_type_name"`
	Period          string      `json:"period"`
	AmountApplied   money.Money `json:"amount_applied"`
	PreviousBalance money.Money `json:"previous_balance"`
	NewBalance      money.Money `json:"new_balance"`
}

// ToResponse converts PaymentDetail to PaymentDetailResponse. DebtItem and
// its DebtType should be preloaded.
func (pd *PaymentDetail) ToResponse() PaymentDetailResponse {
	typeName := ""
	if pd.DebtItem.DebtType.ID != 0 {
		typeName = pd.DebtItem.DebtType.Name
	}

	return PaymentDetailResponse{
		ID:              pd.ID,
		DebtItemID:      pd.DebtItemID,
		DebtTypeName:    typeName,
		Period:          pd.DebtItem.Period,
		AmountApplied:   pd.AmountApplied,
		PreviousBalance: pd.PreviousBalance,
		NewBalance:      pd.NewBalance,
	}
}

// PaymentResponse is the JSON response format for payments
type PaymentResponse struct {
	ID              uint                    `json:"id"`
	NeighborID      uint                    `json:"neighbor_id"`
	NeighborName    string                  `json:"neighbor_name"`
	CollectDebtID   uint                    `json:"collect_debt_id"`
	TotalAmount     money.Money             `json:"total_amount"`
	PaymentMethod   string                  `json:"payment_method"`
	PaymentDate     time.Time               `json:"payment_date"`
	ReceiptNumber   string                  `json:"receipt_number"`
	ReferenceNumber *string                 `json:"reference_number"`
	ReceivedBy      string                  `json:"received_by"`
	Notes           *string                 `json:"notes"`
	Details         []PaymentDetailResponse `json:"details"`
	CreatedAt       time.Time               `json:"created_at"`
}

// ToResponse converts Payment to PaymentResponse. Neighbor and
// PaymentDetails should be preloaded.
func (p *Payment) ToResponse() PaymentResponse {
	details := make([]PaymentDetailResponse, 0, len(p.PaymentDetails))
	for i := range p.PaymentDetails {
		details = append(details, p.PaymentDetails[i].ToResponse())
	}

	return PaymentResponse{
		ID:              p.ID,
		NeighborID:      p.NeighborID,
		NeighborName:    p.Neighbor.FullName(),
		CollectDebtID:   p.CollectDebtID,
		TotalAmount:     p.TotalAmount,
		PaymentMethod:   p.PaymentMethod,
		PaymentDate:     p.PaymentDate,
		ReceiptNumber:   p.ReceiptNumber,
		ReferenceNumber: p.ReferenceNumber,
		ReceivedBy:      p.ReceivedBy,
		Notes:           p.Notes,
		Details:         details,
		CreatedAt:       p.CreatedAt,
	}
}
