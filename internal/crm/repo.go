// Package crm holds the customer relationship surfaces: customers,
// complaint tickets, and the per-customer interaction timeline.
package crm

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mglaser/bankdesk/internal/types"
)

// ErrNotFound is returned when a record id does not exist
var ErrNotFound = errors.New("record not found")

// Repository is the in-memory CRM store. All methods are safe for
// concurrent use.
type Repository struct {
	mu           sync.RWMutex
	customers    map[string]types.Customer
	complaints   map[string]types.Complaint
	interactions []types.Interaction
	now          func() time.Time
}

// NewRepository creates an empty repository
func NewRepository() *Repository {
	return &Repository{
		customers:  make(map[string]types.Customer),
		complaints: make(map[string]types.Complaint),
		now:        time.Now,
	}
}

// NewSeededRepository creates a repository preloaded with the reference
// customers, complaints, and interactions.
func NewSeededRepository() *Repository {
	r := NewRepository()
	for _, c := range seedCustomers() {
		r.customers[c.ID] = c
	}
	for _, c := range seedComplaints() {
		r.complaints[c.ID] = c
	}
	r.interactions = seedInteractions()
	return r
}

// ListCustomers returns customers matching the query, newest first.
// An empty query returns everything. The query matches name, email,
// phone, and loan id case-insensitively.
func (r *Repository) ListCustomers(query string) []types.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]types.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		if q == "" || customerMatches(c, q) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func customerMatches(c types.Customer, q string) bool {
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Email), q) ||
		strings.Contains(strings.ToLower(c.Phone), q) ||
		strings.Contains(strings.ToLower(c.LoanID), q)
}

// GetCustomer returns the customer with the given id
func (r *Repository) GetCustomer(id string) (types.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.customers[id]
	if !ok {
		return types.Customer{}, ErrNotFound
	}
	return c, nil
}

// CreateCustomer stores a new customer. A missing id is generated and
// a missing status defaults to Active.
func (r *Repository) CreateCustomer(c types.Customer) types.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = "CUST-" + uuid.New().String()[:8]
	}
	if c.Status == "" {
		c.Status = types.CustomerActive
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now()
	}
	r.customers[c.ID] = c
	return c
}

// UpdateCustomer replaces the stored customer with the given id
func (r *Repository) UpdateCustomer(id string, c types.Customer) (types.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.customers[id]
	if !ok {
		return types.Customer{}, ErrNotFound
	}
	c.ID = id
	c.CreatedAt = existing.CreatedAt
	r.customers[id] = c
	return c, nil
}

// DeleteCustomer removes the customer with the given id
func (r *Repository) DeleteCustomer(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

// ListComplaints returns complaints, newest first, optionally filtered
// by status and priority.
func (r *Repository) ListComplaints(status types.ComplaintStatus, priority types.ComplaintPriority) []types.Complaint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.Complaint, 0, len(r.complaints))
	for _, c := range r.complaints {
		if status != "" && c.Status != status {
			continue
		}
		if priority != "" && c.Priority != priority {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// GetComplaint returns the complaint with the given id
func (r *Repository) GetComplaint(id string) (types.Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.complaints[id]
	if !ok {
		return types.Complaint{}, ErrNotFound
	}
	return c, nil
}

// CreateComplaint stores a new complaint ticket. Defaults: generated
// id, status Open, priority Medium, customer name resolved from the
// customer record when present.
func (r *Repository) CreateComplaint(c types.Complaint) types.Complaint {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = "COMP-" + uuid.New().String()[:8]
	}
	if c.Status == "" {
		c.Status = types.ComplaintOpen
	}
	if c.Priority == "" {
		c.Priority = types.PriorityMedium
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now()
	}
	if c.CustomerName == "" {
		if cust, ok := r.customers[c.CustomerID]; ok {
			c.CustomerName = cust.Name
		}
	}
	r.complaints[c.ID] = c
	return c
}

// ComplaintPatch holds the mutable complaint fields. Nil pointers
// leave the stored value untouched.
type ComplaintPatch struct {
	Status          *types.ComplaintStatus   `json:"status,omitempty"`
	Priority        *types.ComplaintPriority `json:"priority,omitempty"`
	ResolutionNotes *string                  `json:"resolutionNotes,omitempty"`
	AssignedTo      *string                  `json:"assignedTo,omitempty"`
}

// UpdateComplaint applies a partial update to the complaint
func (r *Repository) UpdateComplaint(id string, patch ComplaintPatch) (types.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.complaints[id]
	if !ok {
		return types.Complaint{}, ErrNotFound
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.Priority != nil {
		c.Priority = *patch.Priority
	}
	if patch.ResolutionNotes != nil {
		c.ResolutionNotes = *patch.ResolutionNotes
	}
	if patch.AssignedTo != nil {
		c.AssignedTo = *patch.AssignedTo
	}
	r.complaints[id] = c
	return c, nil
}

// ListInteractions returns the interaction timeline for a customer,
// newest first. An empty customerID returns all interactions.
func (r *Repository) ListInteractions(customerID string) []types.Interaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.Interaction, 0, len(r.interactions))
	for _, it := range r.interactions {
		if customerID == "" || it.CustomerID == customerID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// AddInteraction appends a timeline entry. A missing id and date are
// filled in.
func (r *Repository) AddInteraction(it types.Interaction) types.Interaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	if it.ID == "" {
		it.ID = "INT-" + uuid.New().String()[:8]
	}
	if it.Date.IsZero() {
		it.Date = r.now()
	}
	r.interactions = append(r.interactions, it)
	return it
}

// AddCallInteraction records a finished call on the customer's
// timeline. Calls for unknown customers are skipped; generated callers
// are not CRM customers.
func (r *Repository) AddCallInteraction(customerID, notes, agentName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[customerID]; !ok {
		return
	}
	if notes == "" {
		notes = "Handled support call"
	}
	r.interactions = append(r.interactions, types.Interaction{
		ID:         "INT-" + uuid.New().String()[:8],
		CustomerID: customerID,
		Type:       types.InteractionCall,
		Date:       r.now(),
		Notes:      notes,
		AgentName:  agentName,
	})
}

// Metrics aggregates the dashboard counts
func (r *Repository) Metrics() types.DashboardMetrics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var m types.DashboardMetrics
	m.TotalCustomers = len(r.customers)
	for _, c := range r.customers {
		switch c.Status {
		case types.CustomerActive:
			m.ActiveCustomers++
		case types.CustomerInactive:
			m.InactiveCustomers++
		}
	}
	for _, c := range r.complaints {
		switch c.Status {
		case types.ComplaintOpen:
			m.OpenComplaints++
		case types.ComplaintInProgress:
			m.InProgressComplaints++
		case types.ComplaintResolved:
			m.ResolvedComplaints++
		}
	}
	m.RecentInteractions = len(r.interactions)
	return m
}
