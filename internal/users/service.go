package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	pkgpagination "github.com/carlosmendieta/resumeforge-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, limit int, cursor *pkgpagination.Cursor) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// Service exposes admin user management.
type Service interface {
	List(ctx context.Context, params pkgpagination.Params) (*ListResult, error)
	Update(ctx context.Context, actorRole enums.UserRole, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*UserDTO, error)
}

type service struct {
	repo userRepository
}

// NewService builds a user management service.
func NewService(repo userRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params pkgpagination.Params) (*ListResult, error) {
	cursor, err := pkgpagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	rows, err := s.repo.List(ctx, limit+1, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	result := &ListResult{Items: make([]UserDTO, 0, len(rows))}
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

// Update applies the admin mutation. Only a superadmin may grant or revoke
// the superadmin role.
func (s *service) Update(ctx context.Context, actorRole enums.UserRole, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	role, err := enums.ParseUserRole(input.Role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	user, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	touchesSuperAdmin := role == enums.UserRoleSuperAdmin || user.Role == enums.UserRoleSuperAdmin
	if touchesSuperAdmin && actorRole != enums.UserRoleSuperAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "superadmin role changes require a superadmin")
	}

	user.Name = input.Name
	user.Role = role
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return FromModel(user), nil
}

// SetBlocked toggles is_active. A blocked user fails authentication on the
// next request; existing tokens stop working at the middleware.
func (s *service) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*UserDTO, error) {
	if err := s.repo.SetActive(ctx, id, !blocked); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userNotFound(id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return s.dtoFor(ctx, id)
}

func (s *service) fetch(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userNotFound(id)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

func (s *service) dtoFor(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func userNotFound(id uuid.UUID) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("user %s not found", id))
}
