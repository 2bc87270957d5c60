package models

import (
	"time"

	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
	"github.com/google/uuid"
)

// Resume stores one resume document owned by a single user. The document
// itself lives in a JSONB column and is replaced wholesale on every update.
type Resume struct {
	ID          uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID            `gorm:"type:uuid;column:user_id;not null;index"`
	Title       string               `gorm:"column:title;not null"`
	TemplateID  *uuid.UUID           `gorm:"type:uuid;column:template_id"`
	Document    types.ResumeDocument `gorm:"type:jsonb;column:document;not null"`
	ATSScore    *int                 `gorm:"column:ats_score"`
	IsPublished bool                 `gorm:"column:is_published;not null;default:false"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
