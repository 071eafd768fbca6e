// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/savory/api/pkg/errors"
)

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError renders err as an error body. Anything that is not an AppError
// becomes a 500.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr := errors.Wrap(err, "An unexpected error occurred")
	status := appErr.StatusCode()

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("code", string(appErr.Code)),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	writeJSON(w, logger, status, errors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context())))
}

// decodeJSON reads the request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case stderrors.As(err, &maxErr):
			return errors.NewBadRequestError("request body too large")
		case stderrors.Is(err, io.EOF):
			return errors.NewBadRequestError("request body is required")
		default:
			return errors.NewBadRequestError("invalid JSON payload").WithCause(err)
		}
	}
	return nil
}
