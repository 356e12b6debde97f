package types

import "time"

// CallStatus represents the lifecycle state of an IVR call
type CallStatus string

const (
	CallStatusInQueue    CallStatus = "In Queue"    // waiting for the operator's decision
	CallStatusInProgress CallStatus = "In Progress" // connected to the operator
	CallStatusCompleted  CallStatus = "Completed"   // ended normally
	CallStatusMissed     CallStatus = "Missed"      // rejected or auto-rejected before answer
)

// IsTerminal reports whether the status permits no further transitions.
func (s CallStatus) IsTerminal() bool {
	return s == CallStatusCompleted || s == CallStatusMissed
}

// CallRecord represents one IVR call, queued, live, or historical
type CallRecord struct {
	ID           string     `json:"id"`
	CustomerID   string     `json:"customerId"`
	CustomerName string     `json:"customerName"`
	Phone        string     `json:"phone"`
	Status       CallStatus `json:"status"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Duration     int        `json:"duration,omitempty"` // whole seconds, final once terminal
	Notes        string     `json:"notes,omitempty"`    // call reason
}

// RemoteStatus is the status vocabulary of the remote call-state backend
type RemoteStatus string

const (
	RemoteStatusRequesting RemoteStatus = "requesting"
	RemoteStatusInProgress RemoteStatus = "in_progress"
	RemoteStatusCompleted  RemoteStatus = "completed"
	RemoteStatusRejected   RemoteStatus = "rejected"
)

// CallPatch carries the fields of a remote update-by-id. Zero fields
// other than Status are not written.
type CallPatch struct {
	Status   RemoteStatus `json:"status"`
	AgentID  string       `json:"agent_id,omitempty"`
	Duration *int         `json:"duration,omitempty"`
	EndedAt  *time.Time   `json:"ended_at,omitempty"`
}

// CallRequest is an intake row in the remote active_calls table
type CallRequest struct {
	ID            string       `json:"id"`
	CustomerPhone string       `json:"customer_phone"`
	CustomerName  string       `json:"customer_name"`
	IssueType     string       `json:"issue_type"`
	Status        RemoteStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}

// ToCallRecord maps an intake row into the internal call shape
func (r CallRequest) ToCallRecord() CallRecord {
	return CallRecord{
		ID:           r.ID,
		CustomerID:   r.CustomerPhone,
		CustomerName: r.CustomerName,
		Phone:        r.CustomerPhone,
		Status:       CallStatusInQueue,
		StartTime:    r.CreatedAt,
		Notes:        r.IssueType,
	}
}

// ArchivedCall is a terminal call record shaped for DynamoDB persistence
type ArchivedCall struct {
	DateKey      string `json:"dateKey" dynamodbav:"DateKey"` // YYYY-MM-DD (partition key)
	CallID       string `json:"callId" dynamodbav:"CallID"`   // sort key
	CustomerID   string `json:"customerId" dynamodbav:"CustomerID"`
	CustomerName string `json:"customerName" dynamodbav:"CustomerName"`
	Phone        string `json:"phone" dynamodbav:"Phone"`
	Status       string `json:"status" dynamodbav:"Status"`
	StartTime    string `json:"startTime" dynamodbav:"StartTime"` // RFC3339
	EndTime      string `json:"endTime,omitempty" dynamodbav:"EndTime"`
	Duration     int    `json:"duration" dynamodbav:"Duration"` // seconds
	Notes        string `json:"notes,omitempty" dynamodbav:"Notes"`
}

// ToArchivedCall converts a terminal CallRecord for archival
func ToArchivedCall(c CallRecord) ArchivedCall {
	rec := ArchivedCall{
		DateKey:      c.StartTime.Format("2006-01-02"),
		CallID:       c.ID,
		CustomerID:   c.CustomerID,
		CustomerName: c.CustomerName,
		Phone:        c.Phone,
		Status:       string(c.Status),
		StartTime:    c.StartTime.Format(time.RFC3339),
		Duration:     c.Duration,
		Notes:        c.Notes,
	}
	if c.EndTime != nil {
		rec.EndTime = c.EndTime.Format(time.RFC3339)
	}
	return rec
}
