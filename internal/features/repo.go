package features

import (
	"context"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes feature flag persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a features repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every flag ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Feature, error) {
	var rows []models.Feature
	if err := r.db.WithContext(ctx).Order("feature_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByName loads one flag by its unique name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Feature, error) {
	var row models.Feature
	if err := r.db.WithContext(ctx).Where("feature_name = ?", name).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByNames loads all flags matching the given names in one round trip.
// Missing names are simply absent from the result.
func (r *Repository) FindByNames(ctx context.Context, names []string) ([]models.Feature, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var rows []models.Feature
	if err := r.db.WithContext(ctx).Where("feature_name IN ?", names).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert inserts the flag or updates the existing row keyed by feature_name.
func (r *Repository) Upsert(ctx context.Context, feature *models.Feature) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "feature_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_enabled", "allowed_roles", "daily_limit", "updated_at"}),
		}).
		Create(feature).Error
}
