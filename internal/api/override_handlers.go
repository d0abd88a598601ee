package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wellingtonshopee/analitics/internal/constants"
	"github.com/wellingtonshopee/analitics/internal/services"
)

type overrideRequest struct {
	Action string `json:"action"`
	User   string `json:"user"`
}

type overrideResponse struct {
	TrackingNumber string `json:"tracking_number"`
	Action         string `json:"action,omitempty"`
	Deleted        bool   `json:"deleted,omitempty"`
}

// SetOverrideHandler handles PUT /api/v1/overrides/{trackingNumber}.
func SetOverrideHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trackingNumber := chi.URLParam(r, "trackingNumber")

		var req overrideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		err := deps.Services.Overrides.Set(r.Context(), trackingNumber, req.Action, req.User)
		if errors.Is(err, services.ErrInvalidOverrideAction) {
			respondWithError(w, http.StatusBadRequest, constants.GetErrorMessage(constants.ErrCodeInvalidAction))
			return
		}
		if err != nil {
			respondWithError(w, http.StatusServiceUnavailable, "Failed to persist override: "+err.Error())
			return
		}

		respondWithSuccess(w, http.StatusOK, &overrideResponse{
			TrackingNumber: trackingNumber,
			Action:         req.Action,
		})
	}
}

// ClearOverrideHandler handles DELETE /api/v1/overrides/{trackingNumber}.
// Clearing an absent override answers 404, not an error payload crash; the
// tracking number simply reverts to automatic classification.
func ClearOverrideHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trackingNumber := chi.URLParam(r, "trackingNumber")

		deleted, err := deps.Services.Overrides.Clear(r.Context(), trackingNumber)
		if err != nil {
			respondWithError(w, http.StatusServiceUnavailable, "Failed to clear override: "+err.Error())
			return
		}
		if !deleted {
			respondWithError(w, http.StatusNotFound, constants.GetErrorMessage(constants.ErrCodeOverrideMissing))
			return
		}

		respondWithSuccess(w, http.StatusOK, &overrideResponse{
			TrackingNumber: trackingNumber,
			Deleted:        true,
		})
	}
}
