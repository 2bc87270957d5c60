package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	pkgpagination "github.com/carlosmendieta/resumeforge-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type contactRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) (*models.ContactMessage, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
	List(ctx context.Context, limit int, cursor *pkgpagination.Cursor) ([]models.ContactMessage, error)
	Update(ctx context.Context, message *models.ContactMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageDTO is the transport shape of one contact message.
type MessageDTO struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Subject   string              `json:"subject"`
	Message   string              `json:"message"`
	Status    enums.ContactStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// SubmitInput is the public contact form payload.
type SubmitInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// ListResult is one page of messages plus the cursor for the next page.
type ListResult struct {
	Items  []MessageDTO `json:"items"`
	Cursor string       `json:"cursor"`
}

// Service exposes the public submission endpoint and the admin inbox.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*MessageDTO, error)
	List(ctx context.Context, params pkgpagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*MessageDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo contactRepository
}

// NewService builds a contact service.
func NewService(repo contactRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contact repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*MessageDTO, error) {
	created, err := s.repo.Create(ctx, &models.ContactMessage{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
		Status:  enums.ContactStatusNew,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store contact message")
	}
	return fromModel(created), nil
}

func (s *service) List(ctx context.Context, params pkgpagination.Params) (*ListResult, error) {
	cursor, err := pkgpagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.List(ctx, limit+1, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contact messages")
	}

	result := &ListResult{Items: make([]MessageDTO, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for i := range rows {
		result.Items = append(result.Items, *fromModel(&rows[i]))
	}
	if hasMore {
		last := rows[len(rows)-1]
		result.Cursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return result, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*MessageDTO, error) {
	parsed, err := enums.ParseContactStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, messageNotFound(id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contact message")
	}

	row.Status = parsed
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contact message")
	}
	return fromModel(row), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return messageNotFound(id)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete contact message")
	}
	return nil
}

func fromModel(m *models.ContactMessage) *MessageDTO {
	return &MessageDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func messageNotFound(id uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("contact message %s not found", id))
}
