package templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type templateRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Template, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error)
	Create(ctx context.Context, template *models.Template) (*models.Template, error)
	Update(ctx context.Context, template *models.Template) error
}

// TemplateDTO is the catalog entry exposed to clients. Price is a decimal
// string; used_by is server-maintained and read-only.
type TemplateDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	IsFree    bool            `json:"isFree"`
	Price     decimal.Decimal `json:"price"`
	IsActive  bool            `json:"isActive"`
	UsedBy    int64           `json:"usedBy"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SaveTemplateInput carries the admin-editable template fields.
type SaveTemplateInput struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	IsFree   *bool  `json:"isFree"`
	Price    string `json:"price"`
	IsActive *bool  `json:"isActive"`
}

// Service exposes the template catalog.
type Service interface {
	List(ctx context.Context, role enums.UserRole) ([]TemplateDTO, error)
	Create(ctx context.Context, input SaveTemplateInput) (*TemplateDTO, error)
	Update(ctx context.Context, id uuid.UUID, input SaveTemplateInput) (*TemplateDTO, error)
}

type service struct {
	repo templateRepository
}

// NewService builds a template catalog service.
func NewService(repo templateRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("template repository required")
	}
	return &service{repo: repo}, nil
}

// List returns the catalog. Admin roles see hidden templates too.
func (s *service) List(ctx context.Context, role enums.UserRole) ([]TemplateDTO, error) {
	rows, err := s.repo.List(ctx, !role.IsAdmin())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list templates")
	}
	out := make([]TemplateDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *fromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input SaveTemplateInput) (*TemplateDTO, error) {
	row := &models.Template{
		ID:       uuid.New(),
		Name:     input.Name,
		Category: input.Category,
		IsFree:   true,
		IsActive: true,
	}
	if err := applyInput(row, input); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create template")
	}
	return fromModel(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input SaveTemplateInput) (*TemplateDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("template %s not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template")
	}

	row.Name = input.Name
	row.Category = input.Category
	if err := applyInput(row, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update template")
	}
	return fromModel(row), nil
}

func applyInput(row *models.Template, input SaveTemplateInput) error {
	if input.IsFree != nil {
		row.IsFree = *input.IsFree
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if input.Price != "" {
		price, err := decimal.NewFromString(input.Price)
		if err != nil || price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "price must be a non-negative decimal")
		}
		row.Price = price
	}
	if row.IsFree {
		row.Price = decimal.Zero
	}
	return nil
}

func fromModel(m *models.Template) *TemplateDTO {
	return &TemplateDTO{
		ID:        m.ID,
		Name:      m.Name,
		Category:  m.Category,
		IsFree:    m.IsFree,
		Price:     m.Price,
		IsActive:  m.IsActive,
		UsedBy:    m.UsedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
