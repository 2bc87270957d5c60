package resumes

import (
	"time"

	"github.com/google/uuid"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	"github.com/carlosmendieta/resumeforge-backend/pkg/types"
)

// ResumeDTO is the transport shape of a resume. Field names match the
// document's JSON vocabulary, which the client persists verbatim.
type ResumeDTO struct {
	ID          uuid.UUID            `json:"id"`
	UserID      uuid.UUID            `json:"userId"`
	Title       string               `json:"title"`
	TemplateID  *uuid.UUID           `json:"templateId,omitempty"`
	Document    types.ResumeDocument `json:"document"`
	ATSScore    *int                 `json:"atsScore,omitempty"`
	IsPublished bool                 `json:"isPublished"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`

	// Problems is set on save responses: field path to message for every
	// document check that failed. Advisory only; the save still went through.
	Problems map[string]string `json:"problems,omitempty"`
}

// SaveResumeInput carries the client-supplied fields for create and for the
// full-document replace on update.
type SaveResumeInput struct {
	Title      string               `json:"title"`
	TemplateID *uuid.UUID           `json:"templateId"`
	Document   types.ResumeDocument `json:"document"`
}

// SectionItemResult is the answer to an item add: the updated resume plus
// the identifier assigned to the new item.
type SectionItemResult struct {
	Resume *ResumeDTO `json:"resume"`
	ItemID uuid.UUID  `json:"itemId"`
}

// ListResult is one page of resumes plus the cursor for the next page.
type ListResult struct {
	Items  []ResumeDTO `json:"items"`
	Cursor string      `json:"cursor"`
}

func FromModel(m *models.Resume) *ResumeDTO {
	if m == nil {
		return nil
	}
	return &ResumeDTO{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		TemplateID:  m.TemplateID,
		Document:    m.Document,
		ATSScore:    m.ATSScore,
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
