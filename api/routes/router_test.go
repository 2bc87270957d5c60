package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carlosmendieta/resumeforge-backend/internal/ai"
	"github.com/carlosmendieta/resumeforge-backend/internal/analytics"
	"github.com/carlosmendieta/resumeforge-backend/internal/auth"
	"github.com/carlosmendieta/resumeforge-backend/internal/contact"
	"github.com/carlosmendieta/resumeforge-backend/internal/export"
	"github.com/carlosmendieta/resumeforge-backend/internal/features"
	"github.com/carlosmendieta/resumeforge-backend/internal/resumes"
	"github.com/carlosmendieta/resumeforge-backend/internal/templates"
	"github.com/carlosmendieta/resumeforge-backend/internal/users"
	pkgAuth "github.com/carlosmendieta/resumeforge-backend/pkg/auth"
	"github.com/carlosmendieta/resumeforge-backend/pkg/config"
	"github.com/carlosmendieta/resumeforge-backend/pkg/db/models"
	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	"github.com/carlosmendieta/resumeforge-backend/pkg/logger"
	"github.com/carlosmendieta/resumeforge-backend/pkg/metrics"
	pkgpagination "github.com/carlosmendieta/resumeforge-backend/pkg/pagination"
	"github.com/carlosmendieta/resumeforge-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubActiveChecker struct {
	active bool
}

func (s stubActiveChecker) IsActive(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.active, nil
}

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{}, nil
}

type stubResumesService struct{}

func (stubResumesService) Create(ctx context.Context, userID uuid.UUID, input resumes.SaveResumeInput) (*resumes.ResumeDTO, error) {
	panic("unimplemented")
}

func (stubResumesService) GetByID(ctx context.Context, userID, id uuid.UUID) (*resumes.ResumeDTO, error) {
	panic("unimplemented")
}

func (stubResumesService) List(ctx context.Context, userID uuid.UUID, params pkgpagination.Params) (*resumes.ListResult, error) {
	return &resumes.ListResult{}, nil
}

func (stubResumesService) Update(ctx context.Context, userID, id uuid.UUID, input resumes.SaveResumeInput) (*resumes.ResumeDTO, error) {
	panic("unimplemented")
}

func (stubResumesService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubResumesService) Duplicate(ctx context.Context, userID, id uuid.UUID) (*resumes.ResumeDTO, error) {
	panic("unimplemented")
}

func (stubResumesService) SetATSScore(ctx context.Context, userID, id uuid.UUID, score int) error {
	panic("unimplemented")
}

func (stubResumesService) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	return nil
}

func (stubResumesService) AddSectionItem(ctx context.Context, userID, id uuid.UUID, section enums.SectionName) (*resumes.SectionItemResult, error) {
	panic("unimplemented")
}

func (stubResumesService) UpdateSectionItem(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, itemID uuid.UUID, field string, value any) (*resumes.ResumeDTO, error) {
	panic("unimplemented")
}

func (stubResumesService) RemoveSectionItem(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, itemID uuid.UUID) (*resumes.ResumeDTO, error) {
	panic("unimplemented")
}

func (stubResumesService) ReorderSections(ctx context.Context, userID, id uuid.UUID, fromIndex, toIndex int) (*resumes.ResumeDTO, error) {
	panic("unimplemented")
}

func (stubResumesService) AddSectionEntry(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, parentID uuid.UUID, text string) (*resumes.ResumeDTO, error) {
	panic("unimplemented")
}

func (stubResumesService) UpdateSectionEntry(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, parentID uuid.UUID, entryIndex int, text string) (*resumes.ResumeDTO, error) {
	panic("unimplemented")
}

func (stubResumesService) RemoveSectionEntry(ctx context.Context, userID, id uuid.UUID, section enums.SectionName, parentID uuid.UUID, entryIndex int) (*resumes.ResumeDTO, error) {
	panic("unimplemented")
}

type stubTemplatesService struct{}

func (stubTemplatesService) List(ctx context.Context, role enums.UserRole) ([]templates.TemplateDTO, error) {
	return []templates.TemplateDTO{}, nil
}

func (stubTemplatesService) Create(ctx context.Context, input templates.SaveTemplateInput) (*templates.TemplateDTO, error) {
	panic("unimplemented")
}

func (stubTemplatesService) Update(ctx context.Context, id uuid.UUID, input templates.SaveTemplateInput) (*templates.TemplateDTO, error) {
	panic("unimplemented")
}

type stubFeaturesService struct{}

func (stubFeaturesService) List(ctx context.Context) ([]models.Feature, error) {
	return []models.Feature{}, nil
}

func (stubFeaturesService) Check(ctx context.Context, actor features.Actor, name string) features.Status {
	return features.Status{}
}

func (stubFeaturesService) CheckBatch(ctx context.Context, actor features.Actor, names []string) map[string]features.Status {
	return map[string]features.Status{}
}

func (stubFeaturesService) Consume(ctx context.Context, actor features.Actor, name string) error {
	return nil
}

func (stubFeaturesService) Upsert(ctx context.Context, input features.UpsertFeatureInput) (*models.Feature, error) {
	panic("unimplemented")
}

type stubContactService struct{}

func (stubContactService) Submit(ctx context.Context, input contact.SubmitInput) (*contact.MessageDTO, error) {
	return &contact.MessageDTO{ID: uuid.New()}, nil
}

func (stubContactService) List(ctx context.Context, params pkgpagination.Params) (*contact.ListResult, error) {
	return &contact.ListResult{}, nil
}

func (stubContactService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*contact.MessageDTO, error) {
	panic("unimplemented")
}

func (stubContactService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubUsersService struct{}

func (stubUsersService) List(ctx context.Context, params pkgpagination.Params) (*users.ListResult, error) {
	return &users.ListResult{}, nil
}

func (stubUsersService) Update(ctx context.Context, actorRole enums.UserRole, id uuid.UUID, input users.UpdateUserInput) (*users.UserDTO, error) {
	panic("unimplemented")
}

func (stubUsersService) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*users.UserDTO, error) {
	panic("unimplemented")
}

type stubAnalyticsService struct{}

func (stubAnalyticsService) Dashboard(ctx context.Context) (*analytics.DashboardDTO, error) {
	return &analytics.DashboardDTO{}, nil
}

type stubAIService struct{}

func (stubAIService) GenerateSummary(ctx context.Context, actor features.Actor, input ai.GenerateSummaryInput) (*ai.GeneratedText, error) {
	panic("unimplemented")
}

func (stubAIService) GenerateExperienceDescription(ctx context.Context, actor features.Actor, input ai.GenerateExperienceInput) (*ai.GeneratedText, error) {
	panic("unimplemented")
}

func (stubAIService) GenerateProjectDescription(ctx context.Context, actor features.Actor, input ai.GenerateProjectInput) (*ai.GeneratedText, error) {
	panic("unimplemented")
}

func (stubAIService) ScoreResume(ctx context.Context, actor features.Actor, resumeID uuid.UUID) (*ai.ATSResult, error) {
	panic("unimplemented")
}

type stubExportService struct{}

func (stubExportService) Export(ctx context.Context, actor features.Actor, resumeID uuid.UUID, format enums.ExportFormat) (*export.Artifact, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config, accounts stubActiveChecker) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		metrics.NewHTTPMetrics(),
		accounts,
		stubAuthService{},
		stubResumesService{},
		stubTemplatesService{},
		stubFeaturesService{},
		stubContactService{},
		stubUsersService{},
		stubAnalyticsService{},
		stubAIService{},
		stubExportService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveAlwaysAvailable(t *testing.T) {
	router := newTestRouter(testConfig(), stubActiveChecker{active: true})
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig(), stubActiveChecker{active: true})
	req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubActiveChecker{active: true})
	req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for resume list got %d", resp.Code)
	}
}

func TestBlockedAccountRejected(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubActiveChecker{active: false})
	req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for blocked account got %d", resp.Code)
	}
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubActiveChecker{active: true})

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestAnalyticsDashboardRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, stubActiveChecker{active: true})

	nonAdmin := httptest.NewRequest(http.MethodGet, "/api/analytics/dashboard", nil)
	nonAdmin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonAdmin)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin dashboard got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/analytics/dashboard", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleSuperAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for superadmin dashboard got %d", resp.Code)
	}
}

func TestPublicContactAcceptsSubmission(t *testing.T) {
	router := newTestRouter(testConfig(), stubActiveChecker{active: true})
	body := `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello there"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for contact submission got %d", resp.Code)
	}
}

func TestPublicContactRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig(), stubActiveChecker{active: true})
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestRegisterReachable(t *testing.T) {
	router := newTestRouter(testConfig(), stubActiveChecker{active: true})
	body := `{"name":"Ada","email":"ada@example.com","password":"supersecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for register got %d", resp.Code)
	}
}
