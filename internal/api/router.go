package api

import (
	"github.com/gorilla/mux"

	"github.com/t-cool/naturalist/internal/api/recovery"
	"github.com/t-cool/naturalist/internal/connectivity"
	"github.com/t-cool/naturalist/internal/service"
	"github.com/t-cool/naturalist/internal/store"
)

// NewRouter wires all API routes to handlers.
func NewRouter(svc *service.RecordService, st store.RecordStore, gate connectivity.Gate) *mux.Router {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)

	recordHandler := NewRecordHandler(svc)
	healthHandler := NewHealthHandler(st, gate)

	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	router.HandleFunc("/api/records", recordHandler.CreateRecord).Methods("POST")
	router.HandleFunc("/api/records", recordHandler.ListRecords).Methods("GET")
	router.HandleFunc("/api/records/export", recordHandler.ExportRecords).Methods("GET")
	router.HandleFunc("/api/records/{recordId:[0-9a-fA-F-]{36}}/refresh", recordHandler.RefreshRecord).Methods("POST")
	router.HandleFunc("/api/records/{recordId:[0-9a-fA-F-]{36}}", recordHandler.DeleteRecord).Methods("DELETE")

	return router
}
