package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rchoud/task-manager-api/internal/api/shared"
	"github.com/rchoud/task-manager-api/internal/domain"
	"github.com/rchoud/task-manager-api/internal/platform/logger"
)

// maxUploadBytes is the size ceiling for a single uploaded image file.
const maxUploadBytes = 1_000_000

// allowedUploadExtensions are the accepted file extensions for image
// uploads, matched case-insensitively against the uploaded file name.
var allowedUploadExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// requireUser extracts the authenticated user from the request context,
// writing a 401 response if the auth middleware did not run.
func requireUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())
		log.Warn("user not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return user, true
}

// getPathUUID extracts a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid format", domain.ErrValidation, paramName)
	}

	return id, nil
}

// readImageUpload pulls a single image file out of a multipart request,
// enforcing the size ceiling and the file extension allow-list before any
// decoding happens. On failure an error response has already been written.
func readImageUpload(w http.ResponseWriter, r *http.Request, field string) ([]byte, bool) {
	// Leave headroom for the multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+64*1024)

	file, header, err := r.FormFile(field)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			fmt.Sprintf("A %q file upload is required and must be at most %d bytes", field, maxUploadBytes))
		return nil, false
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close uploaded file", "error", err)
		}
	}()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedUploadExtensions[ext]; !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Please upload an image file (jpg, jpeg or png)")
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Failed to read uploaded file")
		return nil, false
	}
	if len(data) > maxUploadBytes {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			fmt.Sprintf("Uploaded file exceeds the %d byte limit", maxUploadBytes))
		return nil, false
	}

	return data, true
}
