package models

import (
	"time"

	dbtypes "github.com/carlosmendieta/resumeforge-backend/pkg/db/types"
	"github.com/google/uuid"
)

// Feature is a named capability flag. An empty allowed_roles list means the
// feature applies to every role; daily_limit 0 means unlimited.
type Feature struct {
	ID           uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FeatureName  string              `gorm:"column:feature_name;not null;uniqueIndex"`
	IsEnabled    bool                `gorm:"column:is_enabled;not null;default:false"`
	AllowedRoles dbtypes.StringArray `gorm:"type:text[];column:allowed_roles;not null;default:'{}'"`
	DailyLimit   int                 `gorm:"column:daily_limit;not null;default:0"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
