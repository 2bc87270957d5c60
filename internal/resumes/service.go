package resumes

import (
	"context"
	"errors"
	"fmt"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	pkgpagination "github.com/carlosmendieta/resumeforge-backend/pkg/pagination"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type resumeRepository interface {
	Create(ctx context.Context, resume *models.Resume) (*models.Resume, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Resume, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Resume, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int, cursor *pkgpagination.Cursor) ([]models.Resume, error)
	Update(ctx context.Context, resume *models.Resume) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type templateAdoptionRecorder interface {
	RecordAdoption(ctx context.Context, templateID uuid.UUID) error
}

// Service exposes resume CRUD, the server-side clone, and the section
// editor operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input SaveResumeInput) (*ResumeDTO, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*ResumeDTO, error)
	List(ctx context.Context, userID uuid.UUID, params pkgpagination.Params) (*ListResult, error)
	Update(ctx context.Context, userID, id uuid.UUID, input SaveResumeInput) (*ResumeDTO, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Duplicate(ctx context.Context, userID, id uuid.UUID) (*ResumeDTO, error)
	SetATSScore(ctx context.Context, userID, id uuid.UUID, score int) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error

	AddSectionItem(ctx context.Context, userID, id uuid.UUID, section enums.SectionName) (*SectionItemResult, error)
	UpdateSectionItem(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, itemID uuid.UUID, field string, value any) (*ResumeDTO, error)
	RemoveSectionItem(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, itemID uuid.UUID) (*ResumeDTO, error)
	ReorderSections(ctx context.Context, userID, id uuid.UUID, fromIndex, toIndex int) (*ResumeDTO, error)
	AddSectionEntry(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, parentID uuid.UUID, text string) (*ResumeDTO, error)
	UpdateSectionEntry(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, parentID uuid.UUID, entryIndex int, text string) (*ResumeDTO, error)
	RemoveSectionEntry(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, parentID uuid.UUID, entryIndex int) (*ResumeDTO, error)
}

type service struct {
	repo       resumeRepository
	templates  templateAdoptionRecorder
	maxPerUser int
}

// NewService builds a resume service. The template recorder may be nil when
// adoption counting is not wanted (tests, tooling). maxPerUser caps how many
// resumes one account may hold; zero means no cap.
func NewService(repo resumeRepository, templates templateAdoptionRecorder, maxPerUser int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("resume repository required")
	}
	return &service{repo: repo, templates: templates, maxPerUser: maxPerUser}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input SaveResumeInput) (*ResumeDTO, error) {
	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	resume := &models.Resume{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      input.Document.DisplayTitle(input.Title),
		TemplateID: input.TemplateID,
		Document:   normalizeDocument(input.Document),
	}

	created, err := s.repo.Create(ctx, resume)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create resume")
	}
	s.recordAdoption(ctx, input.TemplateID)
	return withProblems(FromModel(created)), nil
}

func (s *service) GetByID(ctx context.Context, userID, id uuid.UUID) (*ResumeDTO, error) {
	resume, err := s.fetchOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return FromModel(resume), nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params pkgpagination.Params) (*ListResult, error) {
	cursor, err := pkgpagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.ListByUser(ctx, userID, limit+1, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list resumes")
	}

	result := &ListResult{Items: make([]ResumeDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		result.Items = append(result.Items, *FromModel(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		result.Cursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return result, nil
}

// Update replaces the stored document wholesale. A fetch immediately after
// returns exactly what was sent, modulo the server-assigned fields.
func (s *service) Update(ctx context.Context, userID, id uuid.UUID, input SaveResumeInput) (*ResumeDTO, error) {
	resume, err := s.fetchOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	adopted := input.TemplateID != nil && (resume.TemplateID == nil || *resume.TemplateID != *input.TemplateID)

	resume.Title = input.Document.DisplayTitle(input.Title)
	resume.TemplateID = input.TemplateID
	resume.Document = normalizeDocument(input.Document)

	if err := s.repo.Update(ctx, resume); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update resume")
	}
	if adopted {
		s.recordAdoption(ctx, input.TemplateID)
	}
	return withProblems(FromModel(resume)), nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resumeNotFound(id)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete resume")
	}
	return nil
}

// Duplicate clones an owned resume into a new row. Every section item gets a
// fresh identifier so the copies never alias the source's items.
func (s *service) Duplicate(ctx context.Context, userID, id uuid.UUID) (*ResumeDTO, error) {
	source, err := s.fetchOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	clone := &models.Resume{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      source.Title + " (Copy)",
		TemplateID: source.TemplateID,
		Document:   withFreshItemIDs(source.Document),
	}
	created, err := s.repo.Create(ctx, clone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "duplicate resume")
	}
	return FromModel(created), nil
}

// SetATSScore stores the externally computed score on an owned resume.
func (s *service) SetATSScore(ctx context.Context, userID, id uuid.UUID, score int) error {
	resume, err := s.fetchOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	resume.ATSScore = &score
	if err := s.repo.Update(ctx, resume); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store ats score")
	}
	return nil
}

// SetPublished flips the moderation flag. Admin-only; not owner-scoped.
func (s *service) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	resume, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resumeNotFound(id)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load resume")
	}
	resume.IsPublished = published
	if err := s.repo.Update(ctx, resume); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update resume")
	}
	return nil
}

// checkQuota refuses a new resume once the account holds maxPerUser of them.
func (s *service) checkQuota(ctx context.Context, userID uuid.UUID) error {
	if s.maxPerUser <= 0 {
		return nil
	}
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count resumes")
	}
	if count >= int64(s.maxPerUser) {
		return pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("resume limit of %d reached", s.maxPerUser)).
			WithDetails(map[string]any{"maxResumes": s.maxPerUser})
	}
	return nil
}

// withProblems attaches the advisory save checks to a freshly saved resume.
func withProblems(dto *ResumeDTO) *ResumeDTO {
	if dto == nil {
		return nil
	}
	if problems := ValidateDocument(dto.Document); len(problems) > 0 {
		dto.Problems = problems
	}
	return dto
}

func (s *service) fetchOwned(ctx context.Context, userID, id uuid.UUID) (*models.Resume, error) {
	resume, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, resumeNotFound(id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load resume")
	}
	return resume, nil
}

func (s *service) recordAdoption(ctx context.Context, templateID *uuid.UUID) {
	if s.templates == nil || templateID == nil {
		return
	}
	// Adoption counting is best effort and never fails the save.
	_ = s.templates.RecordAdoption(ctx, *templateID)
}

// normalizeDocument fills the zero-value containers a sparse client payload
// leaves behind so stored documents always round-trip with the same shape.
func normalizeDocument(doc types.ResumeDocument) types.ResumeDocument {
	if doc.SectionOrder == nil {
		doc.SectionOrder = enums.DefaultSectionOrder()
	}
	if doc.Experience == nil {
		doc.Experience = []types.Experience{}
	}
	if doc.Education == nil {
		doc.Education = []types.Education{}
	}
	if doc.Skills == nil {
		doc.Skills = []types.Skill{}
	}
	if doc.Projects == nil {
		doc.Projects = []types.Project{}
	}
	if doc.Certifications == nil {
		doc.Certifications = []types.Certification{}
	}
	if doc.Languages == nil {
		doc.Languages = []types.Language{}
	}
	if doc.CustomSections == nil {
		doc.CustomSections = []types.CustomSection{}
	}
	return doc
}

func withFreshItemIDs(doc types.ResumeDocument) types.ResumeDocument {
	doc.Experience = cloneSlice(doc.Experience)
	for i := range doc.Experience {
		doc.Experience[i].ID = uuid.New()
		doc.Experience[i].Achievements = cloneSlice(doc.Experience[i].Achievements)
	}
	doc.Education = cloneSlice(doc.Education)
	for i := range doc.Education {
		doc.Education[i].ID = uuid.New()
	}
	doc.Skills = cloneSlice(doc.Skills)
	for i := range doc.Skills {
		doc.Skills[i].ID = uuid.New()
	}
	doc.Projects = cloneSlice(doc.Projects)
	for i := range doc.Projects {
		doc.Projects[i].ID = uuid.New()
		doc.Projects[i].Technologies = cloneSlice(doc.Projects[i].Technologies)
	}
	doc.Certifications = cloneSlice(doc.Certifications)
	for i := range doc.Certifications {
		doc.Certifications[i].ID = uuid.New()
	}
	doc.Languages = cloneSlice(doc.Languages)
	for i := range doc.Languages {
		doc.Languages[i].ID = uuid.New()
	}
	doc.CustomSections = cloneSlice(doc.CustomSections)
	for i := range doc.CustomSections {
		doc.CustomSections[i].ID = uuid.New()
	}
	doc.SectionOrder = cloneSlice(doc.SectionOrder)
	return doc
}

func resumeNotFound(id uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("resume %s not found", id))
}
