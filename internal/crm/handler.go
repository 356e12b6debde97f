package crm

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

// Handler exposes the CRM repository over HTTP
type Handler struct {
	repo   *Repository
	logger zerolog.Logger
}

// NewHandler creates a CRM Handler
func NewHandler(repo *Repository, logger zerolog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger.With().Str("component", "crm").Logger(),
	}
}

// Routes mounts the CRM endpoints on a chi router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.HandleListCustomers)
		r.Post("/", h.HandleCreateCustomer)
		r.Get("/{id}", h.HandleGetCustomer)
		r.Put("/{id}", h.HandleUpdateCustomer)
		r.Delete("/{id}", h.HandleDeleteCustomer)
		r.Get("/{id}/interactions", h.HandleCustomerInteractions)
	})

	r.Route("/complaints", func(r chi.Router) {
		r.Get("/", h.HandleListComplaints)
		r.Post("/", h.HandleCreateComplaint)
		r.Get("/{id}", h.HandleGetComplaint)
		r.Patch("/{id}", h.HandleUpdateComplaint)
	})

	r.Post("/interactions", h.HandleAddInteraction)
	r.Get("/dashboard/metrics", h.HandleDashboardMetrics)

	return r
}

// HandleListCustomers handles GET /api/customers?q=
func (h *Handler) HandleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers := h.repo.ListCustomers(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, customers)
}

// HandleGetCustomer handles GET /api/customers/{id}
func (h *Handler) HandleGetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.repo.GetCustomer(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

// HandleCreateCustomer handles POST /api/customers
func (h *Handler) HandleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer types.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if customer.Name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	created := h.repo.CreateCustomer(customer)
	h.logger.Info().Str("customer_id", created.ID).Msg("customer created")
	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdateCustomer handles PUT /api/customers/{id}
func (h *Handler) HandleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer types.Customer
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	updated, err := h.repo.UpdateCustomer(chi.URLParam(r, "id"), customer)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDeleteCustomer handles DELETE /api/customers/{id}
func (h *Handler) HandleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.repo.DeleteCustomer(id); err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info().Str("customer_id", id).Msg("customer deleted")
	w.WriteHeader(http.StatusNoContent)
}

// HandleCustomerInteractions handles GET /api/customers/{id}/interactions
func (h *Handler) HandleCustomerInteractions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repo.ListInteractions(chi.URLParam(r, "id")))
}

// HandleListComplaints handles GET /api/complaints?status=&priority=
func (h *Handler) HandleListComplaints(w http.ResponseWriter, r *http.Request) {
	status := types.ComplaintStatus(r.URL.Query().Get("status"))
	priority := types.ComplaintPriority(r.URL.Query().Get("priority"))
	writeJSON(w, http.StatusOK, h.repo.ListComplaints(status, priority))
}

// HandleGetComplaint handles GET /api/complaints/{id}
func (h *Handler) HandleGetComplaint(w http.ResponseWriter, r *http.Request) {
	complaint, err := h.repo.GetComplaint(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, complaint)
}

// HandleCreateComplaint handles POST /api/complaints
func (h *Handler) HandleCreateComplaint(w http.ResponseWriter, r *http.Request) {
	var complaint types.Complaint
	if err := json.NewDecoder(r.Body).Decode(&complaint); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if complaint.CustomerID == "" || complaint.IssueDescription == "" {
		http.Error(w, "missing customerId or issueDescription", http.StatusBadRequest)
		return
	}

	created := h.repo.CreateComplaint(complaint)
	h.logger.Info().
		Str("complaint_id", created.ID).
		Str("customer_id", created.CustomerID).
		Msg("complaint created")
	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdateComplaint handles PATCH /api/complaints/{id}
func (h *Handler) HandleUpdateComplaint(w http.ResponseWriter, r *http.Request) {
	var patch ComplaintPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	updated, err := h.repo.UpdateComplaint(chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleAddInteraction handles POST /api/interactions
func (h *Handler) HandleAddInteraction(w http.ResponseWriter, r *http.Request) {
	var interaction types.Interaction
	if err := json.NewDecoder(r.Body).Decode(&interaction); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if interaction.CustomerID == "" {
		http.Error(w, "missing customerId", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, h.repo.AddInteraction(interaction))
}

// HandleDashboardMetrics handles GET /api/dashboard/metrics
func (h *Handler) HandleDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repo.Metrics())
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
