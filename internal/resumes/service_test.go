package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	pkgpagination "github.com/carlosmendieta/resumeforge-backend/pkg/pagination"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubResumeRepo struct {
	rows    map[uuid.UUID]*models.Resume
	listErr error
}

func newStubResumeRepo() *stubResumeRepo {
	return &stubResumeRepo{rows: map[uuid.UUID]*models.Resume{}}
}

func (s *stubResumeRepo) Create(_ context.Context, resume *models.Resume) (*models.Resume, error) {
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	resume.CreatedAt = time.Now().UTC()
	resume.UpdatedAt = resume.CreatedAt
	copied := *resume
	s.rows[resume.ID] = &copied
	return resume, nil
}

func (s *stubResumeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Resume, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (s *stubResumeRepo) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*models.Resume, error) {
	row, ok := s.rows[id]
	if !ok || row.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (s *stubResumeRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int, _ *pkgpagination.Cursor) ([]models.Resume, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Resume
	for _, row := range s.rows {
		if row.UserID == userID && len(out) < limit {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (s *stubResumeRepo) Update(_ context.Context, resume *models.Resume) error {
	if _, ok := s.rows[resume.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	resume.UpdatedAt = time.Now().UTC()
	copied := *resume
	s.rows[resume.ID] = &copied
	return nil
}

func (s *stubResumeRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	row, ok := s.rows[id]
	if !ok || row.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *stubResumeRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, row := range s.rows {
		if row.UserID == userID {
			count++
		}
	}
	return count, nil
}

type stubAdoptionRecorder struct {
	recorded []uuid.UUID
}

func (s *stubAdoptionRecorder) RecordAdoption(_ context.Context, templateID uuid.UUID) error {
	s.recorded = append(s.recorded, templateID)
	return nil
}

func expectNotFound(t *testing.T, err error) {
	t.Helper()
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil, nil, 0); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceCreateReturnsServerAssignedID(t *testing.T) {
	repo := newStubResumeRepo()
	svc, err := NewService(repo, nil, 0)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	doc := types.NewResumeDocument()
	doc.PersonalInfo = types.PersonalInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Phone: "555-1234"}

	dto, err := svc.Create(context.Background(), uuid.New(), SaveResumeInput{Document: doc})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.ID == uuid.Nil {
		t.Fatal("expected a server-assigned id")
	}
	if dto.Title != "Jane Doe" {
		t.Fatalf("expected title fallback to the personal-info name, got %q", dto.Title)
	}
}

func TestServiceCreateTitlePrecedence(t *testing.T) {
	repo := newStubResumeRepo()
	svc, _ := NewService(repo, nil, 0)
	userID := uuid.New()

	doc := types.NewResumeDocument()
	doc.PersonalInfo.FirstName = "Jane"
	doc.PersonalInfo.LastName = "Doe"

	dto, err := svc.Create(context.Background(), userID, SaveResumeInput{Title: "  Senior Gopher  ", Document: doc})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Title != "Senior Gopher" {
		t.Fatalf("explicit title must win, got %q", dto.Title)
	}

	dto, err = svc.Create(context.Background(), userID, SaveResumeInput{Document: types.NewResumeDocument()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Title != types.UntitledResume {
		t.Fatalf("expected placeholder title, got %q", dto.Title)
	}
}

func TestServiceCreateRecordsTemplateAdoption(t *testing.T) {
	repo := newStubResumeRepo()
	recorder := &stubAdoptionRecorder{}
	svc, _ := NewService(repo, recorder, 0)

	templateID := uuid.New()
	_, err := svc.Create(context.Background(), uuid.New(), SaveResumeInput{
		TemplateID: &templateID,
		Document:   types.NewResumeDocument(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(recorder.recorded) != 1 || recorder.recorded[0] != templateID {
		t.Fatalf("expected one adoption for %s, got %v", templateID, recorder.recorded)
	}
}

func TestServiceCreateReportsAdvisoryProblems(t *testing.T) {
	repo := newStubResumeRepo()
	svc, _ := NewService(repo, nil, 0)
	userID := uuid.New()

	dto, err := svc.Create(context.Background(), userID, SaveResumeInput{Title: "Draft", Document: types.NewResumeDocument()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Problems["personalInfo.firstName"] == "" {
		t.Fatalf("expected missing-name problem, got %v", dto.Problems)
	}

	// Problems are advisory; the save still went through.
	if _, err := svc.GetByID(context.Background(), userID, dto.ID); err != nil {
		t.Fatalf("resume not persisted: %v", err)
	}

	doc := types.NewResumeDocument()
	doc.PersonalInfo = types.PersonalInfo{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Phone: "555-1234"}
	dto, err = svc.Create(context.Background(), userID, SaveResumeInput{Document: doc})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(dto.Problems) != 0 {
		t.Fatalf("complete document must report no problems, got %v", dto.Problems)
	}
}

func TestServiceCreateEnforcesResumeCap(t *testing.T) {
	repo := newStubResumeRepo()
	svc, _ := NewService(repo, nil, 2)
	userID := uuid.New()

	first, err := svc.Create(context.Background(), userID, SaveResumeInput{Title: "One", Document: types.NewResumeDocument()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), userID, SaveResumeInput{Title: "Two", Document: types.NewResumeDocument()}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Create(context.Background(), userID, SaveResumeInput{Title: "Three", Document: types.NewResumeDocument()})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected cap refusal, got %v", err)
	}

	_, err = svc.Duplicate(context.Background(), userID, first.ID)
	appErr = pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected cap refusal on duplicate, got %v", err)
	}

	// The cap is per account.
	if _, err := svc.Create(context.Background(), uuid.New(), SaveResumeInput{Title: "Other", Document: types.NewResumeDocument()}); err != nil {
		t.Fatalf("create for another user: %v", err)
	}
}

func TestServiceGetByIDHidesForeignResumes(t *testing.T) {
	repo := newStubResumeRepo()
	svc, _ := NewService(repo, nil, 0)

	owner := uuid.New()
	dto, err := svc.Create(context.Background(), owner, SaveResumeInput{Title: "Mine", Document: types.NewResumeDocument()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.GetByID(context.Background(), uuid.New(), dto.ID)
	expectNotFound(t, err)

	got, err := svc.GetByID(context.Background(), owner, dto.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Mine" {
		t.Fatalf("expected owned resume, got %q", got.Title)
	}
}

func TestServiceUpdateIsFullReplaceAndIdempotentFetch(t *testing.T) {
	repo := newStubResumeRepo()
	svc, _ := NewService(repo, nil, 0)
	userID := uuid.New()

	created, err := svc.Create(context.Background(), userID, SaveResumeInput{Title: "v1", Document: types.NewResumeDocument()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	next := types.NewResumeDocument()
	next.PersonalInfo = types.PersonalInfo{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com", Phone: "555-0000"}
	next, expID, _ := AddItem(next, "experience")
	next, _ = UpdateItem(next, "experience", expID, "company", "Analytical Engines Ltd")

	updated, err := svc.Update(context.Background(), userID, created.ID, SaveResumeInput{Title: "v2", Document: next})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "v2" {
		t.Fatalf("expected replaced title, got %q", updated.Title)
	}

	fetched, err := svc.GetByID(context.Background(), userID, created.ID)
	if err != nil {
		t.Fatalf("fetch after update: %v", err)
	}
	if len(fetched.Document.Experience) != 1 || fetched.Document.Experience[0].Company != "Analytical Engines Ltd" {
		t.Fatal("fetch after update must return exactly what was sent")
	}

	_, err = svc.Update(context.Background(), uuid.New(), created.ID, SaveResumeInput{Document: next})
	expectNotFound(t, err)
}

func TestServiceDuplicateAssignsFreshIDs(t *testing.T) {
	repo := newStubResumeRepo()
	svc, _ := NewService(repo, nil, 0)
	userID := uuid.New()

	doc := types.NewResumeDocument()
	doc, expID, _ := AddItem(doc, "experience")
	doc, _ = AddAchievement(doc, expID, "Did a thing")
	doc, projID, _ := AddItem(doc, "projects")

	created, err := svc.Create(context.Background(), userID, SaveResumeInput{Title: "Original", Document: doc})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	clone, err := svc.Duplicate(context.Background(), userID, created.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if clone.ID == created.ID {
		t.Fatal("duplicate must get a new resume id")
	}
	if clone.Title != "Original (Copy)" {
		t.Fatalf("unexpected clone title %q", clone.Title)
	}
	if clone.Document.Experience[0].ID == expID {
		t.Fatal("cloned experience must get a fresh id")
	}
	if clone.Document.Projects[0].ID == projID {
		t.Fatal("cloned project must get a fresh id")
	}
	if len(clone.Document.Experience[0].Achievements) != 1 {
		t.Fatal("clone must carry the source content")
	}

	_, err = svc.Duplicate(context.Background(), uuid.New(), created.ID)
	expectNotFound(t, err)
}

func TestServiceDeleteScopedToOwner(t *testing.T) {
	repo := newStubResumeRepo()
	svc, _ := NewService(repo, nil, 0)
	userID := uuid.New()

	created, _ := svc.Create(context.Background(), userID, SaveResumeInput{Title: "Doomed", Document: types.NewResumeDocument()})

	err := svc.Delete(context.Background(), uuid.New(), created.ID)
	expectNotFound(t, err)

	if err := svc.Delete(context.Background(), userID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = svc.GetByID(context.Background(), userID, created.ID)
	expectNotFound(t, err)
}

func TestServiceSetATSScoreAndPublish(t *testing.T) {
	repo := newStubResumeRepo()
	svc, _ := NewService(repo, nil, 0)
	userID := uuid.New()

	created, _ := svc.Create(context.Background(), userID, SaveResumeInput{Title: "Scored", Document: types.NewResumeDocument()})

	if err := svc.SetATSScore(context.Background(), userID, created.ID, 82); err != nil {
		t.Fatalf("set score: %v", err)
	}
	got, _ := svc.GetByID(context.Background(), userID, created.ID)
	if got.ATSScore == nil || *got.ATSScore != 82 {
		t.Fatalf("expected stored score 82, got %v", got.ATSScore)
	}

	if err := svc.SetPublished(context.Background(), created.ID, true); err != nil {
		t.Fatalf("publish: %v", err)
	}
	got, _ = svc.GetByID(context.Background(), userID, created.ID)
	if !got.IsPublished {
		t.Fatal("expected resume to be published")
	}

	err := svc.SetPublished(context.Background(), uuid.New(), true)
	expectNotFound(t, err)
}
