package features

import (
	"context"
	"testing"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	dbtypes "github.com/carlosmendieta/resumeforge-backend/pkg/db/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFeaturesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	table := `
CREATE TABLE IF NOT EXISTS features (
  id TEXT PRIMARY KEY,
  feature_name TEXT NOT NULL UNIQUE,
  is_enabled INTEGER NOT NULL DEFAULT 0,
  allowed_roles TEXT NOT NULL DEFAULT '{}',
  daily_limit INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS features`).Error)
	require.NoError(t, db.Exec(table).Error)
	return db
}

func TestRepositoryUpsertInsertThenUpdate(t *testing.T) {
	db := setupFeaturesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	flag := &models.Feature{
		ID:           uuid.New(),
		FeatureName:  "pdfDownload",
		IsEnabled:    true,
		AllowedRoles: dbtypes.StringArray{},
	}
	require.NoError(t, repo.Upsert(ctx, flag))

	stored, err := repo.FindByName(ctx, "pdfDownload")
	require.NoError(t, err)
	assert.True(t, stored.IsEnabled)

	update := &models.Feature{
		ID:           uuid.New(),
		FeatureName:  "pdfDownload",
		IsEnabled:    false,
		AllowedRoles: dbtypes.StringArray{"admin"},
		DailyLimit:   3,
	}
	require.NoError(t, repo.Upsert(ctx, update))

	stored, err = repo.FindByName(ctx, "pdfDownload")
	require.NoError(t, err)
	assert.Equal(t, flag.ID, stored.ID, "conflict update must keep the original row")
	assert.False(t, stored.IsEnabled)
	assert.Equal(t, 3, stored.DailyLimit)
	assert.True(t, stored.AllowedRoles.Contains("admin"))
}

func TestRepositoryFindByNamesSkipsMissing(t *testing.T) {
	db := setupFeaturesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Feature{
		ID:          uuid.New(),
		FeatureName: "docxDownload",
		IsEnabled:   true,
	}))

	rows, err := repo.FindByNames(ctx, []string{"docxDownload", "ghost"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "docxDownload", rows[0].FeatureName)

	rows, err = repo.FindByNames(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
