package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carlosmendieta/resumeforge-backend/api/middleware"
	"github.com/carlosmendieta/resumeforge-backend/api/responses"
	"github.com/carlosmendieta/resumeforge-backend/api/validators"
	"github.com/carlosmendieta/resumeforge-backend/internal/features"
	"github.com/carlosmendieta/resumeforge-backend/internal/resumes"
	"github.com/carlosmendieta/resumeforge-backend/pkg/enums"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
	"github.com/carlosmendieta/resumeforge-backend/pkg/logger"
)

// Section editor endpoints. Each one applies a single document operation to
// an owned resume and returns the stored result, so clients can edit item by
// item without resending the whole document.

type sectionItemUpdateRequest struct {
	Field string `json:"field" validate:"required"`
	Value any    `json:"value"`
}

type sectionReorderRequest struct {
	FromIndex int `json:"fromIndex" validate:"gte=0"`
	ToIndex   int `json:"toIndex" validate:"gte=0"`
}

type sectionEntryRequest struct {
	Text string `json:"text" validate:"required"`
}

func ResumeSectionItemAdd(svc resumes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, section, err := sectionRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddSectionItem(r.Context(), actor.UserID, id, section)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func ResumeSectionItemUpdate(svc resumes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, section, err := sectionRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body sectionItemUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateSectionItem(r.Context(), actor.UserID, id, section, itemID, body.Field, body.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func ResumeSectionItemRemove(svc resumes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, section, err := sectionRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RemoveSectionItem(r.Context(), actor.UserID, id, section, itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func ResumeSectionsReorder(svc resumes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := middleware.ActorFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := parseIDParam(r, "resumeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body sectionReorderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ReorderSections(r.Context(), actor.UserID, id, body.FromIndex, body.ToIndex)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func ResumeSectionEntryAdd(svc resumes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, section, err := sectionRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body sectionEntryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddSectionEntry(r.Context(), actor.UserID, id, section, itemID, body.Text)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func ResumeSectionEntryUpdate(svc resumes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, section, err := sectionRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entryIndex, err := parseIndexParam(r, "entryIndex")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body sectionEntryRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateSectionEntry(r.Context(), actor.UserID, id, section, itemID, entryIndex, body.Text)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func ResumeSectionEntryRemove(svc resumes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, id, section, err := sectionRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := parseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entryIndex, err := parseIndexParam(r, "entryIndex")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RemoveSectionEntry(r.Context(), actor.UserID, id, section, itemID, entryIndex)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// sectionRequest pulls the actor, resume ID, and section name every editor
// endpoint starts from.
func sectionRequest(r *http.Request) (features.Actor, uuid.UUID, enums.SectionName, error) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		return actor, uuid.Nil, "", err
	}
	id, err := parseIDParam(r, "resumeId")
	if err != nil {
		return actor, uuid.Nil, "", err
	}
	section, err := enums.ParseSectionName(strings.TrimSpace(chi.URLParam(r, "section")))
	if err != nil {
		return actor, uuid.Nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid section").WithDetails(map[string]any{"field": "section"})
	}
	return actor, id, section, nil
}

func parseIndexParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid index").WithDetails(map[string]any{"field": name})
	}
	return index, nil
}
