package api

import (
	"net/http"

	"github.com/t-cool/naturalist/internal/api/respond"
	"github.com/t-cool/naturalist/internal/connectivity"
	"github.com/t-cool/naturalist/internal/store"
)

// HealthHandler reports store reachability and the current gate reading.
type HealthHandler struct {
	store store.RecordStore
	gate  connectivity.Gate
}

func NewHealthHandler(st store.RecordStore, gate connectivity.Gate) *HealthHandler {
	return &HealthHandler{store: st, gate: gate}
}

// CheckHealth GET /api/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.HealthCheck(r.Context()); err != nil {
		respond.WriteServiceUnavailable(w, "store unavailable: "+err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"online": h.gate.Online(r.Context()),
	})
}
