package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/duvalivy/planrh/internal"
	"github.com/duvalivy/planrh/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// Envelope is the success wire shape shared by every endpoint.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// WriteEnvelope writes the {message, data} success envelope.
func (h *BaseHandler) WriteEnvelope(w http.ResponseWriter, status int, message string, data any) {
	h.writeJSON(w, status, Envelope{Message: message, Data: data})
}

// WriteList writes a list envelope with the count field set.
func (h *BaseHandler) WriteList(w http.ResponseWriter, status int, message string, data any, count int) {
	h.writeJSON(w, status, Envelope{Message: message, Data: data, Count: &count})
}

/// WriteError writes an error response as {"detail": message}.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "detail", message)
	h.writeJSON(w, status, map[string]string{"detail": message})
}

// HandleServiceError maps service errors onto HTTP statuses. Unknown errors
// become 500s with the error text in the detail field.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.WriteError(w, http.StatusInternalServerError, err.Error())
}

func (h *BaseHandler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// BearerToken extracts the bearer token from the Authorization header, or ""
// when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}
	return authHeader[7:]
}
