package resumes

import (
	"context"
	"testing"
	"time"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	"github.com/carlosmendieta/resumeforge-backend/pkg/pagination"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupResumesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	resumesTable := `
CREATE TABLE IF NOT EXISTS resumes (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  title TEXT NOT NULL,
  template_id TEXT,
  document TEXT NOT NULL,
  ats_score INTEGER,
  is_published INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS resumes`).Error)
	require.NoError(t, db.Exec(resumesTable).Error)
	return db
}

func seedResume(t *testing.T, db *gorm.DB, userID uuid.UUID, title string, createdAt time.Time) *models.Resume {
	t.Helper()

	doc := types.NewResumeDocument()
	doc.PersonalInfo.FirstName = "Seed"
	resume := &models.Resume{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Document:  doc,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(resume).Error)
	return resume
}

func TestRepositoryCreateAndFindByIDForUser(t *testing.T) {
	db := setupResumesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	doc := types.NewResumeDocument()
	doc.PersonalInfo = types.PersonalInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Phone: "555-1234"}

	created, err := repo.Create(ctx, &models.Resume{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    "Jane Doe",
		Document: doc,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByIDForUser(ctx, created.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", found.Title)
	assert.Equal(t, "Jane", found.Document.PersonalInfo.FirstName)

	_, err = repo.FindByIDForUser(ctx, created.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateIsFullReplace(t *testing.T) {
	db := setupResumesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	resume := seedResume(t, db, userID, "Before", time.Now().UTC())

	resume.Title = "After"
	resume.Document.PersonalInfo.Summary = "Rewritten"
	require.NoError(t, repo.Update(ctx, resume))

	found, err := repo.FindByIDForUser(ctx, resume.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "After", found.Title)
	assert.Equal(t, "Rewritten", found.Document.PersonalInfo.Summary)
}

func TestRepositoryListByUserCursor(t *testing.T) {
	db := setupResumesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedResume(t, db, userID, "Resume", base.Add(time.Duration(i)*time.Hour))
	}
	seedResume(t, db, uuid.New(), "Foreign", base)

	page, err := repo.ListByUser(ctx, userID, 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, page[0].CreatedAt.After(page[1].CreatedAt))

	cursor := &pagination.Cursor{CreatedAt: page[1].CreatedAt, ID: page[1].ID}
	rest, err := repo.ListByUser(ctx, userID, 2, cursor)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.True(t, page[1].CreatedAt.After(rest[0].CreatedAt))
}

func TestRepositoryDelete(t *testing.T) {
	db := setupResumesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	resume := seedResume(t, db, userID, "Doomed", time.Now().UTC())

	err := repo.Delete(ctx, resume.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "foreign owner must not delete")

	require.NoError(t, repo.Delete(ctx, resume.ID, userID))
	_, err = repo.FindByID(ctx, resume.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryCountByUser(t *testing.T) {
	db := setupResumesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedResume(t, db, userID, "One", time.Now().UTC())
	seedResume(t, db, userID, "Two", time.Now().UTC())

	count, err := repo.CountByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
