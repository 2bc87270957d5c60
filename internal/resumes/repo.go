package resumes

import (
	"context"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	pkgpagination "github.com/carlosmendieta/resumeforge-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes resume persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a resumes repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new resume and returns the persisted model with its
// server-generated identifier.
func (r *Repository) Create(ctx context.Context, resume *models.Resume) (*models.Resume, error) {
	if err := r.db.WithContext(ctx).Create(resume).Error; err != nil {
		return nil, err
	}
	return resume, nil
}

// FindByID loads a resume by its UUID regardless of owner.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.WithContext(ctx).First(&resume, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resume, nil
}

// FindByIDForUser loads a resume only when it belongs to the given user.
// A resume owned by someone else surfaces as gorm.ErrRecordNotFound so
// callers cannot distinguish foreign resumes from missing ones.
func (r *Repository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&resume).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// ListByUser returns the user's resumes newest first, keyset-paginated on
// (created_at, id).
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int, cursor *pkgpagination.Cursor) ([]models.Resume, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Resume
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update overwrites the stored resume wholesale. PUT semantics: the caller
// always supplies the complete row.
func (r *Repository) Update(ctx context.Context, resume *models.Resume) error {
	return r.db.WithContext(ctx).Save(resume).Error
}

// Delete removes a resume owned by the given user. Returns
// gorm.ErrRecordNotFound when no owned row matched.
func (r *Repository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Resume{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByUser returns how many resumes the user owns.
func (r *Repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Resume{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
