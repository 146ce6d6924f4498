package web

// errors.go provides unified error response handling for the web layer.
//
// Every error is logged with its technical detail and request ID, then
// returned to the client as a JSON UserMessage from core.MapError.

import (
	"context"
	"errors"
	"net/http"

	"github.com/JonMunkholm/csvingest/internal/core"
	"github.com/JonMunkholm/csvingest/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes its user-facing message with statusCode.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", errorDetail(err),
		"code", userMsg.Code,
	)

	writeJSON(w, statusCode, ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// errorDetail returns the innermost cause text, since a ReadError only ever
// says "Failed to read file".
func errorDetail(err error) string {
	var re *core.ReadError
	if errors.As(err, &re) && re.Err != nil {
		return re.Error() + ": " + re.Err.Error()
	}
	return err.Error()
}

// statusFor picks the HTTP status for an ingest error.
func statusFor(err error) int {
	var mbe *http.MaxBytesError
	switch {
	case errors.Is(err, core.ErrUnknownDataset):
		return http.StatusNotFound
	case errors.Is(err, core.ErrTooManyIngests):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrFileTooLarge), errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrNoFile), errors.Is(err, core.ErrUnsupportedEncoding):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	var re *core.ReadError
	if errors.As(err, &re) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
