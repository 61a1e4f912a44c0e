package models

import "time"

// DataMigration records one-shot data fixes that must never run twice, such
// as the historical currency conversion. The unique name is the guard: a
// second attempt fails on insert before touching any ledger row.
type DataMigration struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Description  string    `json:"description"`
	RowsAffected int64     `gorm:"not null;default:0" json:"rows_affected"`
	AppliedAt    time.Time `gorm:"not null" json:"applied_at"`
}

// TableName specifies the table name for DataMigration
func (DataMigration) TableName() string {
	return "data_migrations"
}

// MigrationCentavosToBolivianos is the guard name for the one-shot
// centavos-scale currency conversion.
const MigrationCentavosToBolivianos = "centavos_to_bolivianos"
