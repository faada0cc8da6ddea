package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chris/payout-reconciliation/pkg/middleware"
	"github.com/chris/payout-reconciliation/pkg/storage"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultListLimit = 20

// Server exposes the operator surface of the worker: a liveness probe and a
// read-only view of recent reversal ledger entries.
type Server struct {
	Store  storage.LedgerReader
	Logger zerolog.Logger
}

// NewServer creates a new admin Server.
func NewServer(store storage.LedgerReader, logger zerolog.Logger) *Server {
	return &Server{Store: store, Logger: logger}
}

// Router builds the chi router for the admin endpoints.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.NewStructuredLogger(s.Logger))
	r.Get("/healthz", s.handleHealth)
	r.Get("/ledger/reversals", s.handleListReversals)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleListReversals(w http.ResponseWriter, r *http.Request) {
	limit := int32(defaultListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, fmt.Sprintf("Invalid limit: %q", raw), http.StatusBadRequest)
			return
		}
		limit = int32(parsed)
	}

	entries, err := s.Store.ListReversalEntries(r.Context(), limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve reversal entries: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
