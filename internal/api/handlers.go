package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/t-cool/naturalist/internal/api/respond"
	"github.com/t-cool/naturalist/internal/model"
	"github.com/t-cool/naturalist/internal/service"
)

// RecordHandler exposes the record lifecycle over HTTP. The collection
// itself never leaves the service; list responses carry snapshots.
type RecordHandler struct {
	svc *service.RecordService
}

func NewRecordHandler(svc *service.RecordService) *RecordHandler {
	return &RecordHandler{svc: svc}
}

// CreateRecord POST /api/records
func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Memo string `json:"memo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Memo) == "" {
		respond.WriteBadRequest(w, "memo must not be empty")
		return
	}

	rec, err := h.svc.CreateRecord(r.Context(), req.Memo)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, rec)
}

// ListRecords GET /api/records
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records := h.svc.Records()
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// RefreshRecord POST /api/records/{recordId}/refresh
func (h *RecordHandler) RefreshRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["recordId"]
	rec, err := h.svc.RefreshAddress(r.Context(), id)
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, "record not found")
	case errors.Is(err, model.ErrOffline):
		respond.WriteServiceUnavailable(w, "network unreachable; try again when online")
	case err != nil:
		respond.WriteInternalError(w, err.Error())
	default:
		respond.WriteJSON(w, http.StatusOK, rec)
	}
}

// DeleteRecord DELETE /api/records/{recordId}
func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["recordId"]
	if err := h.svc.DeleteRecord(r.Context(), id); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	// deletion is idempotent, unknown ids fall through here too
	w.WriteHeader(http.StatusNoContent)
}

// ExportRecords GET /api/records/export
func (h *RecordHandler) ExportRecords(w http.ResponseWriter, r *http.Request) {
	csv, err := h.svc.ExportCSV()
	if errors.Is(err, model.ErrEmptyExport) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="history.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}
