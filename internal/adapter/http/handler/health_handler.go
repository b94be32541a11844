package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/splitnest/internal/domain"
)

// LedgerLoader is the readiness probe's view of the ledger store.
type LedgerLoader interface {
	Load(ctx context.Context) (*domain.Ledger, error)
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	store   LedgerLoader
	backend string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store LedgerLoader, backend string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		backend: backend,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 if the ledger document can be loaded.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.store.Load(ctx); err != nil {
		writeError(w, http.StatusServiceUnavailable, h.backend+" store unhealthy", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"store":   "ok",
		"backend": h.backend,
	})
}
