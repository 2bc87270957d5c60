package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/carlosmendieta/resumeforge-backend/api/responses"
	"github.com/carlosmendieta/resumeforge-backend/pkg/config"
	"github.com/carlosmendieta/resumeforge-backend/pkg/db"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/carlosmendieta/resumeforge-backend/pkg/logger"
	"github.com/carlosmendieta/resumeforge-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ResumeForge-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady answers ready only when every backing store responds.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ResumeForge-Env", cfg.App.Env)

		var probeErr error
		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				probeErr = multierr.Append(probeErr, err)
			}
		}
		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				probeErr = multierr.Append(probeErr, err)
			}
		}

		if probeErr != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, probeErr, "readiness probe"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
