package resumes

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
)

// Persisted section editing. Each method loads the owned resume, applies one
// document operation, and stores the result, so the API mirrors the
// copy-on-write semantics of the document functions.

func (s *service) AddSectionItem(ctx context.Context, userID, id uuid.UUID, section enums.SectionName) (*SectionItemResult, error) {
	var itemID uuid.UUID
	dto, err := s.modifyDocument(ctx, userID, id, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		next, newID, err := AddItem(doc, section)
		itemID = newID
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return &SectionItemResult{Resume: dto, ItemID: itemID}, nil
}

func (s *service) UpdateSectionItem(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, itemID uuid.UUID, field string, value any) (*ResumeDTO, error) {
	return s.modifyDocument(ctx, userID, id, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		return UpdateItem(doc, section, itemID, field, value)
	})
}

func (s *service) RemoveSectionItem(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, itemID uuid.UUID) (*ResumeDTO, error) {
	return s.modifyDocument(ctx, userID, id, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		return RemoveItem(doc, section, itemID)
	})
}

func (s *service) ReorderSections(ctx context.Context, userID, id uuid.UUID, fromIndex, toIndex int) (*ResumeDTO, error) {
	return s.modifyDocument(ctx, userID, id, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		return MoveSection(doc, fromIndex, toIndex)
	})
}

// AddSectionEntry appends to the nested string list an item carries: the
// achievements of an experience or the technologies of a project. Other
// sections have no nested list and are refused.
func (s *service) AddSectionEntry(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, parentID uuid.UUID, text string) (*ResumeDTO, error) {
	return s.modifyDocument(ctx, userID, id, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		switch section {
		case enums.SectionExperience:
			return AddAchievement(doc, parentID, text)
		case enums.SectionProjects:
			return AddTechnology(doc, parentID, text)
		}
		return doc, noNestedList(section)
	})
}

func (s *service) UpdateSectionEntry(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, parentID uuid.UUID, entryIndex int, text string) (*ResumeDTO, error) {
	return s.modifyDocument(ctx, userID, id, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		switch section {
		case enums.SectionExperience:
			return UpdateAchievement(doc, parentID, entryIndex, text)
		case enums.SectionProjects:
			return UpdateTechnology(doc, parentID, entryIndex, text)
		}
		return doc, noNestedList(section)
	})
}

func (s *service) RemoveSectionEntry(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, parentID uuid.UUID, entryIndex int) (*ResumeDTO, error) {
	return s.modifyDocument(ctx, userID, id, func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		switch section {
		case enums.SectionExperience:
			return RemoveAchievement(doc, parentID, entryIndex)
		case enums.SectionProjects:
			return RemoveTechnology(doc, parentID, entryIndex)
		}
		return doc, noNestedList(section)
	})
}

// modifyDocument applies one editor operation to an owned resume and persists
// the outcome. A failed operation leaves the stored row untouched.
func (s *service) modifyDocument(ctx context.Context, userID, id uuid.UUID, mutate func(types.ResumeDocument) (types.ResumeDocument, error)) (*ResumeDTO, error) {
	resume, err := s.fetchOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	next, err := mutate(resume.Document)
	if err != nil {
		return nil, err
	}
	resume.Document = next

	if err := s.repo.Update(ctx, resume); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store document")
	}
	return FromModel(resume), nil
}

func noNestedList(section enums.SectionName) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("section %q has no nested entries", section))
}
