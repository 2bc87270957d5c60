package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carlosmendieta/resumeforge-backend/api/controllers"
	"github.com/carlosmendieta/resumeforge-backend/api/middleware"
	"github.com/carlosmendieta/resumeforge-backend/internal/ai"
	"github.com/carlosmendieta/resumeforge-backend/internal/analytics"
	"github.com/carlosmendieta/resumeforge-backend/internal/auth"
	"github.com/carlosmendieta/resumeforge-backend/internal/contact"
	"github.com/carlosmendieta/resumeforge-backend/internal/export"
	"github.com/carlosmendieta/resumeforge-backend/internal/features"
	"github.com/carlosmendieta/resumeforge-backend/internal/resumes"
	"github.com/carlosmendieta/resumeforge-backend/internal/templates"
	"github.com/carlosmendieta/resumeforge-backend/internal/users"
	"github.com/carlosmendieta/resumeforge-backend/pkg/config"
	"github.com/carlosmendieta/resumeforge-backend/pkg/db"
	"github.com/carlosmendieta/resumeforge-backend/pkg/logger"
	"github.com/carlosmendieta/resumeforge-backend/pkg/metrics"
	"github.com/carlosmendieta/resumeforge-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	accounts middleware.ActiveChecker,
	authService auth.Service,
	resumesService resumes.Service,
	templatesService templates.Service,
	featuresService features.Service,
	contactService contact.Service,
	usersService users.Service,
	analyticsService analytics.Service,
	aiService ai.Service,
	exportService export.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOriginList()),
		httpMetrics.Middleware(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
	})

	// Contact submission is the only unauthenticated business endpoint.
	r.Post("/api/contact", controllers.ContactSubmit(contactService, logg))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, accounts, logg))

		r.Route("/resumes", func(r chi.Router) {
			r.Post("/", controllers.ResumeCreate(resumesService, logg))
			r.Get("/", controllers.ResumeList(resumesService, logg))
			r.Get("/{resumeId}", controllers.ResumeGet(resumesService, logg))
			r.Put("/{resumeId}", controllers.ResumeUpdate(resumesService, logg))
			r.Delete("/{resumeId}", controllers.ResumeDelete(resumesService, logg))
			r.Post("/{resumeId}/duplicate", controllers.ResumeDuplicate(resumesService, logg))
			r.Get("/{resumeId}/download/{format}", controllers.ResumeDownload(exportService, logg))
			r.With(middleware.RequireAdmin(logg)).Put("/{resumeId}/publish", controllers.ResumePublish(resumesService, logg))

			r.Put("/{resumeId}/sections/order", controllers.ResumeSectionsReorder(resumesService, logg))
			r.Post("/{resumeId}/sections/{section}/items", controllers.ResumeSectionItemAdd(resumesService, logg))
			r.Put("/{resumeId}/sections/{section}/items/{itemId}", controllers.ResumeSectionItemUpdate(resumesService, logg))
			r.Delete("/{resumeId}/sections/{section}/items/{itemId}", controllers.ResumeSectionItemRemove(resumesService, logg))
			r.Post("/{resumeId}/sections/{section}/items/{itemId}/entries", controllers.ResumeSectionEntryAdd(resumesService, logg))
			r.Put("/{resumeId}/sections/{section}/items/{itemId}/entries/{entryIndex}", controllers.ResumeSectionEntryUpdate(resumesService, logg))
			r.Delete("/{resumeId}/sections/{section}/items/{itemId}/entries/{entryIndex}", controllers.ResumeSectionEntryRemove(resumesService, logg))
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", controllers.TemplateList(templatesService, logg))
			r.With(middleware.RequireAdmin(logg)).Post("/", controllers.TemplateCreate(templatesService, logg))
			r.With(middleware.RequireAdmin(logg)).Put("/{templateId}", controllers.TemplateUpdate(templatesService, logg))
		})

		r.Route("/features", func(r chi.Router) {
			r.Get("/", controllers.FeatureList(featuresService, logg))
			r.Post("/check", controllers.FeatureCheck(featuresService, logg))
			r.With(middleware.RequireAdmin(logg)).Put("/{featureName}", controllers.FeatureUpsert(featuresService, logg))
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/generateSummary", controllers.AIGenerateSummary(aiService, logg))
			r.Post("/generateExperienceDescription", controllers.AIGenerateExperienceDescription(aiService, logg))
			r.Post("/generateProjectDescription", controllers.AIGenerateProjectDescription(aiService, logg))
			r.Post("/atsScore", controllers.AIScoreResume(aiService, logg))
		})

		r.Route("/contact", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/", controllers.ContactList(contactService, logg))
			r.Put("/{messageId}", controllers.ContactUpdateStatus(contactService, logg))
			r.Delete("/{messageId}", controllers.ContactDelete(contactService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/", controllers.UserList(usersService, logg))
			r.Put("/{userId}", controllers.UserUpdate(usersService, logg))
			r.Put("/{userId}/block", controllers.UserBlock(usersService, logg))
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/dashboard", controllers.AnalyticsDashboard(analyticsService, logg))
		})
	})

	return r
}
