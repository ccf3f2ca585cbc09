package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//   - Formatted as JSON for API routes and as an HTML alert for pages
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, statusCode)
//  3. Error is mapped via core.MapError to get user-friendly message
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is rendered in appropriate format for the client

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/dataset"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/logging"
	"github.com/gabrielpastega/delish-express-data-visualization/internal/web/templates"
)

// errRateLimited is reported when a client exceeds its request budget.
var errRateLimited = errors.New("rate limit exceeded")

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns a JSON or HTML
// response depending on the request.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Warn("request error", attrs...)
	}

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, statusCode)
	} else {
		respondErrorHTML(w, r, userMsg, statusCode)
	}
}

// statusFor picks the HTTP status of a handler error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dataset.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, dataset.ErrUnknownView), errors.Is(err, dataset.ErrUnknownTable):
		return http.StatusNotFound
	case errors.Is(err, errInvalidCutoff), errors.Is(err, core.ErrUnknownTraffic), errors.Is(err, errBadExport):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// respondErrorHTML renders the error alert as a page.
func respondErrorHTML(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)

	page := templates.Layout("Something went wrong", templates.Nav(""),
		templates.ErrorAlert(msg.Message, msg.Action, msg.Code))
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render error page", "error", err)
	}
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	// API routes default to JSON
	if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/healthz" {
		return true
	}

	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
