package storage

import (
	"encoding/json"
	"net/http"

	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

// HistoryHandler provides REST endpoints for archived call history
type HistoryHandler struct {
	store  Store
	logger zerolog.Logger
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(store Store, logger zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		store:  store,
		logger: logger.With().Str("component", "call_history").Logger(),
	}
}

// GetCalls returns archived calls for a date, optionally filtered by
// customer.
// GET /api/archive?date=YYYY-MM-DD&customerId=
func (h *HistoryHandler) GetCalls(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "date query parameter is required (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	var records []types.ArchivedCall
	var err error

	if customerID := r.URL.Query().Get("customerId"); customerID != "" {
		records, err = h.store.GetCustomerCallsByDate(customerID, date)
	} else {
		records, err = h.store.GetArchivedCalls(date)
	}
	if err != nil {
		h.logger.Error().Err(err).Str("date", date).Msg("failed to get archived calls")
		http.Error(w, "failed to retrieve archived calls", http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []types.ArchivedCall{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
