package crm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) (*httptest.Server, *Repository) {
	t.Helper()
	repo := NewSeededRepository()
	handler := NewHandler(repo, zerolog.Nop())
	srv := httptest.NewServer(handler.Routes())
	t.Cleanup(srv.Close)
	return srv, repo
}

func TestListCustomersEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/customers?q=priya")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var customers []types.Customer
	if err := json.NewDecoder(resp.Body).Decode(&customers); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(customers) != 1 || customers[0].ID != "CUST002" {
		t.Errorf("expected CUST002, got %+v", customers)
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/customers/CUST-999")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", resp.StatusCode)
	}
}

func TestCreateCustomerEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)

	body := `{"name":"Anita Rao","email":"anita.rao@example.in","phone":"+91-12345-67890"}`
	resp, err := http.Post(srv.URL+"/customers", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}

	var created types.Customer
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated id")
	}
	if _, err := repo.GetCustomer(created.ID); err != nil {
		t.Errorf("expected created customer in repo: %v", err)
	}
}

func TestCreateCustomerValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/customers", "application/json", strings.NewReader(`{"email":"x@example.in"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestUpdateComplaintEndpoint(t *testing.T) {
	srv, repo := newTestServer(t)

	body := `{"status":"Resolved","resolutionNotes":"Issued corrected statement"}`
	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/complaints/COMP001", strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	stored, err := repo.GetComplaint("COMP001")
	if err != nil {
		t.Fatalf("complaint lookup failed: %v", err)
	}
	if stored.Status != types.ComplaintResolved {
		t.Errorf("expected Resolved, got %s", stored.Status)
	}
}

func TestCustomerInteractionsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/customers/CUST001/interactions")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var timeline []types.Interaction
	if err := json.NewDecoder(resp.Body).Decode(&timeline); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(timeline) != 3 {
		t.Errorf("expected 3 interactions, got %d", len(timeline))
	}
}

func TestDashboardMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/dashboard/metrics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var m types.DashboardMetrics
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if m.TotalCustomers != 5 {
		t.Errorf("expected 5 customers, got %d", m.TotalCustomers)
	}
}
