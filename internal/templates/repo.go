package templates

import (
	"context"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes template catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a templates repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns templates ordered by name. When activeOnly is set, hidden
// templates are filtered out.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.Template, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rows []models.Template
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads one template.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	var row models.Template
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new template.
func (r *Repository) Create(ctx context.Context, template *models.Template) (*models.Template, error) {
	if err := r.db.WithContext(ctx).Create(template).Error; err != nil {
		return nil, err
	}
	return template, nil
}

// Update overwrites the stored template.
func (r *Repository) Update(ctx context.Context, template *models.Template) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// RecordAdoption bumps the used_by counter atomically.
func (r *Repository) RecordAdoption(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Template{}).
		Where("id = ?", id).
		UpdateColumn("used_by", gorm.Expr("used_by + 1")).Error
}
