package features

import (
	"time"

	"github.com/google/uuid"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
)

// FeatureDTO is the admin-facing transport shape of one flag.
type FeatureDTO struct {
	ID           uuid.UUID `json:"id"`
	FeatureName  string    `json:"featureName"`
	IsEnabled    bool      `json:"isEnabled"`
	AllowedRoles []string  `json:"allowedRoles"`
	DailyLimit   int       `json:"dailyLimit"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func FromModel(m *models.Feature) *FeatureDTO {
	if m == nil {
		return nil
	}
	return &FeatureDTO{
		ID:           m.ID,
		FeatureName:  m.FeatureName,
		IsEnabled:    m.IsEnabled,
		AllowedRoles: append([]string(nil), m.AllowedRoles...),
		DailyLimit:   m.DailyLimit,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
