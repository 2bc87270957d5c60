package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	pkgauth "github.com/carlosmendieta/resumeforge-backend/pkg/auth"
	"github.com/carlosmendieta/resumeforge-backend/pkg/config"
	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	byEmail   map[string]*models.User
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: map[string]*models.User{}}
}

func (s *stubUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if _, exists := s.byEmail[user.Email]; exists {
		return nil, errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
	}
	copied := *user
	s.byEmail[user.Email] = &copied
	return user, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	row, ok := s.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (s *stubUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	for _, row := range s.byEmail {
		if row.ID == id {
			row.LastLoginAt = &at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "resumeforge-test",
		ExpirationMinutes: 30,
	}
}

func newTestService(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{
		Name:     "Jane Doe",
		Email:    "  Jane@X.com ",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Token == "" {
		t.Fatal("expected a token")
	}
	if registered.User.Email != "jane@x.com" {
		t.Fatalf("email must be normalized, got %q", registered.User.Email)
	}
	if registered.User.Role != enums.UserRoleUser {
		t.Fatalf("signup must grant the user role, got %s", registered.User.Role)
	}

	logged, err := svc.Login(ctx, LoginRequest{Email: "jane@x.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), logged.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != registered.User.ID || claims.Role != enums.UserRoleUser {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if logged.User.LastLoginAt == nil {
		t.Fatal("login must record last_login_at")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Name: "A", Email: "a@x.com", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(ctx, RegisterRequest{Name: "B", Email: "a@x.com", Password: "password456"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Name: "A", Email: "a@x.com", Password: "password123"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "nope"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	svc := newTestService(t, newStubUserRepo())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@x.com", Password: "whatever"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if appErr.Message() != invalidCredentialsMessage {
		t.Fatalf("unknown email must not be distinguishable, got %q", appErr.Message())
	}
}

func TestLoginBlockedUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{Name: "A", Email: "a@x.com", Password: "password123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	repo.byEmail["a@x.com"].IsActive = false

	_, err = svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "password123"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("blocked user must be rejected, got %v", err)
	}
	_ = registered
}
