package handlers

import (
	"net/http"
)

// HealthHandler reports whether the database is reachable and migrated.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	health, err := h.TablesService.Health(r.Context())
	if err != nil {
		h.Log.Error("health check failed", "error", err)
		writeError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, health, http.StatusOK)
}
