package repository

import (
	"context"
	"errors"

	"github.com/srodrigo23/backend-otb-control/internal/models"
	"gorm.io/gorm"
)

// MigrationRepository defines the interface for one-shot data migration guards
type MigrationRepository interface {
	FindByName(ctx context.Context, name string) (*models.DataMigration, error)
	Create(ctx context.Context, migration *models.DataMigration) error
	FindAll(ctx context.Context) ([]models.DataMigration, error)
}

type migrationRepository struct {
	db *gorm.DB
}

// NewMigrationRepository creates a new data migration repository
func NewMigrationRepository(db *gorm.DB) MigrationRepository {
	return &migrationRepository{db: db}
}

func (r *migrationRepository) FindByName(ctx context.Context, name string) (*models.DataMigration, error) {
	var migration models.DataMigration
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&migration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &migration, nil
}

func (r *migrationRepository) Create(ctx context.Context, migration *models.DataMigration) error {
	return r.db.WithContext(ctx).Create(migration).Error
}

func (r *migrationRepository) FindAll(ctx context.Context) ([]models.DataMigration, error) {
	var migrations []models.DataMigration
	err := r.db.WithContext(ctx).Order("applied_at DESC").Find(&migrations).Error
	return migrations, err
}
