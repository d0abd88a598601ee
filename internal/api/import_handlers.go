package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wellingtonshopee/analitics/internal/services"
)

// Uploads top out in the tens of thousands of rows; 32 MiB of form memory
// is comfortable headroom.
const maxUploadMemory = 32 << 20

// ImportHandler handles POST /api/v1/imports/{kind} with a multipart "file"
// field and an optional reference_date form value (defaults to today).
func ImportHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := chi.URLParam(r, "kind")

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Missing file field")
			return
		}
		defer file.Close()

		referenceDate := time.Now().Truncate(24 * time.Hour)
		if raw := r.FormValue("reference_date"); raw != "" {
			parsed, err := time.Parse(dateLayout, raw)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "reference_date must be YYYY-MM-DD")
				return
			}
			referenceDate = parsed
		}

		user := r.Header.Get("X-User")

		summary, err := deps.Services.Imports.Import(r.Context(), kind, header.Filename, file, referenceDate, user)
		if errors.Is(err, services.ErrUnknownImportKind) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, services.ErrNoValidRows) {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Import failed: "+err.Error())
			return
		}

		respondWithSuccess(w, http.StatusCreated, summary)
	}
}
