package types

import "time"

// CustomerStatus marks whether a customer relationship is live
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "Active"
	CustomerInactive CustomerStatus = "Inactive"
)

// Customer is a bank customer record
type Customer struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	LoanID         string         `json:"loanId"`
	BusinessRating string         `json:"businessRating"`
	Status         CustomerStatus `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// ComplaintStatus is the complaint workflow state
type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "Open"
	ComplaintInProgress ComplaintStatus = "In Progress"
	ComplaintResolved   ComplaintStatus = "Resolved"
)

// ComplaintPriority ranks complaint urgency
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "Low"
	PriorityMedium ComplaintPriority = "Medium"
	PriorityHigh   ComplaintPriority = "High"
)

// Complaint is a customer complaint ticket
type Complaint struct {
	ID               string            `json:"id"`
	CustomerID       string            `json:"customerId"`
	CustomerName     string            `json:"customerName,omitempty"`
	LoanID           string            `json:"loanId"`
	IssueDescription string            `json:"issueDescription"`
	Status           ComplaintStatus   `json:"status"`
	Priority         ComplaintPriority `json:"priority"`
	ResolutionNotes  string            `json:"resolutionNotes,omitempty"`
	AssignedTo       string            `json:"assignedTo,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// InteractionType classifies a timeline entry
type InteractionType string

const (
	InteractionCall      InteractionType = "Call"
	InteractionEmail     InteractionType = "Email"
	InteractionComplaint InteractionType = "Complaint"
)

// Interaction is one entry in a customer's contact timeline
type Interaction struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customerId"`
	Type       InteractionType `json:"type"`
	Date       time.Time       `json:"date"`
	Notes      string          `json:"notes"`
	AgentName  string          `json:"agentName"`
}

// ChatMessage is a single message in a chatbot conversation
type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"` // "user" or "bot"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// DashboardMetrics aggregates CRM counts for the dashboard screen
type DashboardMetrics struct {
	TotalCustomers       int `json:"totalCustomers"`
	ActiveCustomers      int `json:"activeCustomers"`
	InactiveCustomers    int `json:"inactiveCustomers"`
	OpenComplaints       int `json:"openComplaints"`
	InProgressComplaints int `json:"inProgressComplaints"`
	ResolvedComplaints   int `json:"resolvedComplaints"`
	RecentInteractions   int `json:"recentInteractions"`
}
