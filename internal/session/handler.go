package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mglaser/bankdesk/internal/callgen"
	"github.com/mglaser/bankdesk/internal/metrics"
	"github.com/mglaser/bankdesk/internal/store"
	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

// Handler exposes the call session and call list over HTTP
type Handler struct {
	ctrl      *Controller
	store     *store.CallStore
	generator *callgen.Generator
	logger    zerolog.Logger
}

// NewHandler creates a session Handler
func NewHandler(ctrl *Controller, callStore *store.CallStore, generator *callgen.Generator, logger zerolog.Logger) *Handler {
	return &Handler{
		ctrl:      ctrl,
		store:     callStore,
		generator: generator,
		logger:    logger,
	}
}

// sessionResponse is the operator-facing view of the state machine
type sessionResponse struct {
	State          State             `json:"state"`
	IncomingCall   *types.CallRecord `json:"incomingCall,omitempty"`
	TimeLeft       int               `json:"timeLeft,omitempty"`
	ActiveCall     *types.CallRecord `json:"activeCall,omitempty"`
	ElapsedSeconds int               `json:"elapsedSeconds,omitempty"`
}

// callActionRequest identifies the alert an accept/reject acts on
type callActionRequest struct {
	CallID string `json:"callId"`
}

// HandleState handles GET /api/session
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	resp := sessionResponse{State: h.ctrl.State()}

	if alert, ok := h.ctrl.CurrentAlert(); ok {
		resp.IncomingCall = &alert
		resp.TimeLeft = h.ctrl.TimeLeft()
	}
	if active, elapsed, ok := h.ctrl.ActiveCall(); ok {
		resp.ActiveCall = &active
		resp.ElapsedSeconds = elapsed
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleAccept handles POST /api/session/accept
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var req callActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CallID == "" {
		http.Error(w, "missing callId", http.StatusBadRequest)
		return
	}

	if err := h.ctrl.Accept(r.Context(), req.CallID); err != nil {
		h.writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted", "callId": req.CallID})
}

// HandleReject handles POST /api/session/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	var req callActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CallID == "" {
		http.Error(w, "missing callId", http.StatusBadRequest)
		return
	}

	if err := h.ctrl.Reject(r.Context(), req.CallID); err != nil {
		h.writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected", "callId": req.CallID})
}

// HandleEnd handles POST /api/session/end
func (h *Handler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.EndCall(r.Context()); err != nil {
		h.writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

// HandleListCalls handles GET /api/calls?q=
func (h *Handler) HandleListCalls(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))

	calls := h.store.Filter(func(c types.CallRecord) bool {
		if query == "" {
			return true
		}
		return strings.Contains(strings.ToLower(c.CustomerName), query) ||
			strings.Contains(c.Phone, query) ||
			strings.Contains(strings.ToLower(c.CustomerID), query)
	})

	writeJSON(w, http.StatusOK, calls)
}

// HandleOverview handles GET /api/calls/overview
func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"inQueue":    h.store.CountByStatus(types.CallStatusInQueue),
		"inProgress": h.store.CountByStatus(types.CallStatusInProgress),
		"completed":  h.store.CountByStatus(types.CallStatusCompleted),
		"missed":     h.store.CountByStatus(types.CallStatusMissed),
	})
}

// HandleSimulateQueued handles POST /api/calls/simulate. It drops a
// synthetic call straight into the store without raising an alert.
func (h *Handler) HandleSimulateQueued(w http.ResponseWriter, r *http.Request) {
	call := h.generator.Generate()
	h.store.InsertFront(call)
	metrics.Get().RecordCallGenerated()

	h.logger.Info().Str("call_id", call.ID).Msg("simulated queue call added")
	writeJSON(w, http.StatusOK, call)
}

// HandleSimulateIncoming handles POST /api/session/simulate. It raises a
// synthetic incoming-call alert, subject to the single-alert invariant.
func (h *Handler) HandleSimulateIncoming(w http.ResponseWriter, r *http.Request) {
	call := h.generator.Generate()
	metrics.Get().RecordCallGenerated()

	if !h.ctrl.RaiseAlert(call) {
		http.Error(w, "operator busy", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, call)
}

func (h *Handler) writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoPendingAlert), errors.Is(err, ErrNoActiveCall):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		// Recoverable remote failure; the operator may retry.
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
