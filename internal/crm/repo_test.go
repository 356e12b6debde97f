package crm

import (
	"testing"

	"github.com/mglaser/bankdesk/internal/types"
)

func TestSeededRepository(t *testing.T) {
	repo := NewSeededRepository()

	if got := len(repo.ListCustomers("")); got != 5 {
		t.Errorf("expected 5 seeded customers, got %d", got)
	}
	if got := len(repo.ListComplaints("", "")); got != 5 {
		t.Errorf("expected 5 seeded complaints, got %d", got)
	}
	if got := len(repo.ListInteractions("")); got != 7 {
		t.Errorf("expected 7 seeded interactions, got %d", got)
	}

	customer, err := repo.GetCustomer("CUST001")
	if err != nil {
		t.Fatalf("expected CUST001 to exist: %v", err)
	}
	if customer.Name != "Rahul Sharma" {
		t.Errorf("expected Rahul Sharma, got %s", customer.Name)
	}
	if customer.LoanID != "LOAN001" {
		t.Errorf("expected LOAN001, got %s", customer.LoanID)
	}
}

func TestListCustomersQuery(t *testing.T) {
	repo := NewSeededRepository()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"by name", "priya", 1},
		{"by email fragment", "example.in", 5},
		{"by phone", "91234", 1},
		{"by loan id", "LOAN004", 1},
		{"no match", "nonexistent", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(repo.ListCustomers(tt.query)); got != tt.want {
				t.Errorf("query %q: expected %d customers, got %d", tt.query, tt.want, got)
			}
		})
	}
}

func TestCustomerCRUD(t *testing.T) {
	repo := NewRepository()

	created := repo.CreateCustomer(types.Customer{Name: "Test Customer", Email: "test@example.in"})
	if created.ID == "" {
		t.Fatal("expected generated customer id")
	}
	if created.Status != types.CustomerActive {
		t.Errorf("expected default status Active, got %s", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set")
	}

	created.Phone = "+91-00000-00000"
	updated, err := repo.UpdateCustomer(created.ID, created)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Phone != "+91-00000-00000" {
		t.Errorf("expected updated phone, got %s", updated.Phone)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("expected createdAt to be preserved on update")
	}

	if err := repo.DeleteCustomer(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetCustomer(created.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUpdateUnknownCustomer(t *testing.T) {
	repo := NewRepository()

	if _, err := repo.UpdateCustomer("nope", types.Customer{Name: "X"}); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteCustomer("nope"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestComplaintFilters(t *testing.T) {
	repo := NewSeededRepository()

	open := repo.ListComplaints(types.ComplaintOpen, "")
	if len(open) != 2 {
		t.Errorf("expected 2 open complaints, got %d", len(open))
	}

	highInProgress := repo.ListComplaints(types.ComplaintInProgress, types.PriorityHigh)
	if len(highInProgress) != 1 {
		t.Fatalf("expected 1 high in-progress complaint, got %d", len(highInProgress))
	}
	if highInProgress[0].ID != "COMP004" {
		t.Errorf("expected COMP004, got %s", highInProgress[0].ID)
	}
}

func TestCreateComplaintDefaults(t *testing.T) {
	repo := NewSeededRepository()

	created := repo.CreateComplaint(types.Complaint{
		CustomerID:       "CUST001",
		IssueDescription: "ATM withdrawal not credited",
	})

	if created.ID == "" {
		t.Fatal("expected generated complaint id")
	}
	if created.Status != types.ComplaintOpen {
		t.Errorf("expected default status Open, got %s", created.Status)
	}
	if created.Priority != types.PriorityMedium {
		t.Errorf("expected default priority Medium, got %s", created.Priority)
	}
	if created.CustomerName != "Rahul Sharma" {
		t.Errorf("expected customer name resolved from record, got %q", created.CustomerName)
	}
}

func TestUpdateComplaintPatch(t *testing.T) {
	repo := NewSeededRepository()

	status := types.ComplaintResolved
	notes := "Corrected the statement and confirmed with customer"
	updated, err := repo.UpdateComplaint("COMP001", ComplaintPatch{
		Status:          &status,
		ResolutionNotes: &notes,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != types.ComplaintResolved {
		t.Errorf("expected Resolved, got %s", updated.Status)
	}
	if updated.ResolutionNotes != notes {
		t.Errorf("expected resolution notes to be set")
	}
	// Untouched fields survive
	if updated.Priority != types.PriorityHigh {
		t.Errorf("expected priority preserved, got %s", updated.Priority)
	}

	if _, err := repo.UpdateComplaint("nope", ComplaintPatch{}); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInteractionTimeline(t *testing.T) {
	repo := NewSeededRepository()

	timeline := repo.ListInteractions("CUST001")
	if len(timeline) != 3 {
		t.Fatalf("expected 3 interactions for CUST001, got %d", len(timeline))
	}
	// Newest first
	if timeline[0].ID != "INT007" {
		t.Errorf("expected INT007 first, got %s", timeline[0].ID)
	}
}

func TestAddCallInteraction(t *testing.T) {
	repo := NewSeededRepository()

	before := len(repo.ListInteractions("CUST002"))
	repo.AddCallInteraction("CUST002", "Resolved documentation question", "agent-1")

	timeline := repo.ListInteractions("CUST002")
	if len(timeline) != before+1 {
		t.Fatalf("expected %d interactions, got %d", before+1, len(timeline))
	}
	if timeline[0].Type != types.InteractionCall {
		t.Errorf("expected Call interaction, got %s", timeline[0].Type)
	}
	if timeline[0].AgentName != "agent-1" {
		t.Errorf("expected agent-1, got %s", timeline[0].AgentName)
	}
}

func TestAddCallInteractionUnknownCustomer(t *testing.T) {
	repo := NewSeededRepository()

	total := len(repo.ListInteractions(""))
	repo.AddCallInteraction("CUST-999", "Generated caller", "agent-1")

	if got := len(repo.ListInteractions("")); got != total {
		t.Errorf("expected unknown customer call to be skipped, got %d interactions", got)
	}
}

func TestDashboardMetrics(t *testing.T) {
	repo := NewSeededRepository()

	m := repo.Metrics()
	if m.TotalCustomers != 5 || m.ActiveCustomers != 4 || m.InactiveCustomers != 1 {
		t.Errorf("unexpected customer counts: %+v", m)
	}
	if m.OpenComplaints != 2 || m.InProgressComplaints != 2 || m.ResolvedComplaints != 1 {
		t.Errorf("unexpected complaint counts: %+v", m)
	}
	if m.RecentInteractions != 7 {
		t.Errorf("expected 7 interactions, got %d", m.RecentInteractions)
	}
}
