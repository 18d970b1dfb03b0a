package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// TimeNow is overridden in tests.
var TimeNow = time.Now

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler reports that the process is serving. It has no
// dependency on the user repository.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Routes registers the health route on the given chi router.
func (h *HealthHandler) Routes(r chi.Router) {
	r.Get("/", h.Health)
}

// Health always answers 200.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Success:   true,
		Message:   "API is running",
		Timestamp: TimeNow().UTC().Format(time.RFC3339),
	})
}
