package analytics

import (
	"context"
	"time"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository runs the dashboard aggregate queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an analytics repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Counts is the raw aggregate row set backing the dashboard.
type Counts struct {
	TotalUsers        int64
	ActiveUsers       int64
	TotalResumes      int64
	PublishedResumes  int64
	ActiveTemplates   int64
	ContactMessages   int64
	NewContactInbox   int64
	ResumesLast7Days  int64
}

// Collect gathers every dashboard count. since bounds the trailing window.
func (r *Repository) Collect(ctx context.Context, since time.Time) (*Counts, error) {
	counts := &Counts{}
	steps := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&counts.TotalUsers, r.db.WithContext(ctx).Model(&models.User{})},
		{&counts.ActiveUsers, r.db.WithContext(ctx).Model(&models.User{}).Where("is_active = ?", true)},
		{&counts.TotalResumes, r.db.WithContext(ctx).Model(&models.Resume{})},
		{&counts.PublishedResumes, r.db.WithContext(ctx).Model(&models.Resume{}).Where("is_published = ?", true)},
		{&counts.ActiveTemplates, r.db.WithContext(ctx).Model(&models.Template{}).Where("is_active = ?", true)},
		{&counts.ContactMessages, r.db.WithContext(ctx).Model(&models.ContactMessage{})},
		{&counts.NewContactInbox, r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("status = ?", "new")},
		{&counts.ResumesLast7Days, r.db.WithContext(ctx).Model(&models.Resume{}).Where("created_at >= ?", since)},
	}
	for _, step := range steps {
		if err := step.query.Count(step.dest).Error; err != nil {
			return nil, err
		}
	}
	return counts, nil
}
