// Package intake accepts client-side call requests. A request becomes
// a remote active_calls row with status requesting; the database
// notification it triggers is what the bridge turns into an operator
// alert.
package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

// Inserter creates a call request row in the remote backend
type Inserter interface {
	InsertCall(ctx context.Context, req types.CallRequest) error
}

// Handler handles the client call-request endpoint
type Handler struct {
	backend Inserter
	logger  zerolog.Logger
}

// NewHandler creates an intake Handler
func NewHandler(backend Inserter, logger zerolog.Logger) *Handler {
	return &Handler{
		backend: backend,
		logger:  logger.With().Str("component", "intake").Logger(),
	}
}

// intakeRequest is the client-facing request body
type intakeRequest struct {
	CustomerPhone string `json:"customerPhone"`
	CustomerName  string `json:"customerName"`
	IssueType     string `json:"issueType"`
}

// HandleRequestCall handles POST /api/intake
func (h *Handler) HandleRequestCall(w http.ResponseWriter, r *http.Request) {
	var body intakeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if body.CustomerPhone == "" || body.CustomerName == "" {
		http.Error(w, "missing customerPhone or customerName", http.StatusBadRequest)
		return
	}

	req := types.CallRequest{
		ID:            uuid.New().String(),
		CustomerPhone: body.CustomerPhone,
		CustomerName:  body.CustomerName,
		IssueType:     body.IssueType,
		Status:        types.RemoteStatusRequesting,
		CreatedAt:     time.Now(),
	}

	if err := h.backend.InsertCall(r.Context(), req); err != nil {
		h.logger.Error().Err(err).Msg("failed to insert call request")
		http.Error(w, "failed to create call request", http.StatusBadGateway)
		return
	}

	h.logger.Info().
		Str("request_id", req.ID).
		Str("customer", req.CustomerName).
		Msg("call request created")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}
