package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carlosmendieta/resumeforge-backend/api/middleware"
	"github.com/carlosmendieta/resumeforge-backend/api/responses"
	"github.com/carlosmendieta/resumeforge-backend/api/validators"
	"github.com/carlosmendieta/resumeforge-backend/internal/features"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/carlosmendieta/resumeforge-backend/pkg/logger"
)

// FeatureList returns every flag row. Available to any authenticated user so
// the client can hide gated UI up front.
func FeatureList(svc features.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]features.FeatureDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *features.FromModel(&rows[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

type featureCheckRequest struct {
	FeatureNames []string `json:"featureNames" validate:"required,min=1"`
}

// FeatureCheck answers a batch of gate questions in one round trip.
func FeatureCheck(svc features.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := middleware.ActorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body featureCheckRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, svc.CheckBatch(r.Context(), actor, body.FeatureNames))
	}
}

type featureUpsertRequest struct {
	FeatureName  string   `json:"featureName"`
	IsEnabled    bool     `json:"isEnabled"`
	AllowedRoles []string `json:"allowedRoles"`
	DailyLimit   int      `json:"dailyLimit" validate:"gte=0"`
}

// FeatureUpsert is the admin mutation for one flag, keyed by route name.
func FeatureUpsert(svc features.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(chi.URLParam(r, "featureName"))
		if name == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "feature name is required"))
			return
		}

		var body featureUpsertRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if body.FeatureName != "" && body.FeatureName != name {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "feature name mismatch"))
			return
		}

		row, err := svc.Upsert(r.Context(), features.UpsertFeatureInput{
			FeatureName:  name,
			IsEnabled:    body.IsEnabled,
			AllowedRoles: body.AllowedRoles,
			DailyLimit:   body.DailyLimit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, features.FromModel(row))
	}
}
