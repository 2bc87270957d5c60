package controllers

import (
	"net/http"

	"github.com/carlosmendieta/resumeforge-backend/api/responses"
	"github.com/carlosmendieta/resumeforge-backend/internal/analytics"
	"github.com/carlosmendieta/resumeforge-backend/pkg/logger"
)

func AnalyticsDashboard(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
