package crm

import (
	"time"

	"github.com/mglaser/bankdesk/internal/types"
)

func seedTime(value string) time.Time {
	t, _ := time.Parse("2006-01-02T15:04:05", value)
	return t
}

// seedCustomers returns the reference customer set
func seedCustomers() []types.Customer {
	return []types.Customer{
		{
			ID:             "CUST001",
			Name:           "Rahul Sharma",
			Email:          "rahul.sharma@example.in",
			Phone:          "+91-98765-43210",
			Address:        "123 MG Road, Andheri East, Mumbai",
			LoanID:         "LOAN001",
			BusinessRating: "A",
			Status:         types.CustomerActive,
			CreatedAt:      seedTime("2025-01-15T09:30:00"),
		},
		{
			ID:             "CUST002",
			Name:           "Priya Mehra",
			Email:          "priya.mehra@example.in",
			Phone:          "+91-87654-32109",
			Address:        "456 Brigade Road, Indiranagar, Bangalore",
			LoanID:         "LOAN002",
			BusinessRating: "B+",
			Status:         types.CustomerActive,
			CreatedAt:      seedTime("2025-02-10T14:20:00"),
		},
		{
			ID:             "CUST003",
			Name:           "Vikram Desai",
			Email:          "vikram.desai@example.in",
			Phone:          "+91-91234-56789",
			Address:        "789 SG Highway, Satellite, Ahmedabad",
			LoanID:         "LOAN003",
			BusinessRating: "A-",
			Status:         types.CustomerInactive,
			CreatedAt:      seedTime("2025-01-05T11:15:00"),
		},
		{
			ID:             "CUST004",
			Name:           "Amitabh Verma",
			Email:          "amitabh.verma@example.in",
			Phone:          "+91-99887-77665",
			Address:        "101 Park Street, Salt Lake, Kolkata",
			LoanID:         "LOAN004",
			BusinessRating: "A+",
			Status:         types.CustomerActive,
			CreatedAt:      seedTime("2025-03-20T16:45:00"),
		},
		{
			ID:             "CUST005",
			Name:           "Sneha Iyer",
			Email:          "sneha.iyer@example.in",
			Phone:          "+91-90909-80808",
			Address:        "202 Anna Salai, T. Nagar, Chennai",
			LoanID:         "LOAN005",
			BusinessRating: "B",
			Status:         types.CustomerActive,
			CreatedAt:      seedTime("2025-02-25T10:10:00"),
		},
	}
}

// seedComplaints returns the reference complaint set
func seedComplaints() []types.Complaint {
	return []types.Complaint{
		{
			ID:               "COMP001",
			CustomerID:       "CUST001",
			CustomerName:     "Rahul Sharma",
			LoanID:           "LOAN001",
			IssueDescription: "Incorrect interest rate calculation on recent statement",
			Status:           types.ComplaintOpen,
			Priority:         types.PriorityHigh,
			CreatedAt:        seedTime("2025-04-10T09:15:00"),
		},
		{
			ID:               "COMP002",
			CustomerID:       "CUST002",
			CustomerName:     "Priya Mehra",
			LoanID:           "LOAN002",
			IssueDescription: "Missing documentation for loan application",
			Status:           types.ComplaintInProgress,
			Priority:         types.PriorityMedium,
			ResolutionNotes:  "Contacted customer to request missing documents",
			CreatedAt:        seedTime("2025-04-08T14:30:00"),
		},
		{
			ID:               "COMP003",
			CustomerID:       "CUST004",
			CustomerName:     "Amitabh Verma",
			LoanID:           "LOAN004",
			IssueDescription: "Unable to access online banking portal",
			Status:           types.ComplaintResolved,
			Priority:         types.PriorityLow,
			ResolutionNotes:  "Reset customer password and provided login instructions",
			CreatedAt:        seedTime("2025-04-05T11:20:00"),
		},
		{
			ID:               "COMP004",
			CustomerID:       "CUST005",
			CustomerName:     "Sneha Iyer",
			LoanID:           "LOAN005",
			IssueDescription: "Loan application has been pending for over 2 weeks",
			Status:           types.ComplaintInProgress,
			Priority:         types.PriorityHigh,
			ResolutionNotes:  "Escalated to loan department for expedited processing",
			CreatedAt:        seedTime("2025-04-12T16:05:00"),
		},
		{
			ID:               "COMP005",
			CustomerID:       "CUST003",
			CustomerName:     "Vikram Desai",
			LoanID:           "LOAN003",
			IssueDescription: "Disagrees with business rating assessment",
			Status:           types.ComplaintOpen,
			Priority:         types.PriorityMedium,
			CreatedAt:        seedTime("2025-04-15T10:45:00"),
		},
	}
}

// seedInteractions returns the reference interaction timeline
func seedInteractions() []types.Interaction {
	return []types.Interaction{
		{
			ID:         "INT001",
			CustomerID: "CUST001",
			Type:       types.InteractionCall,
			Date:       seedTime("2025-04-15T10:30:00"),
			Notes:      "Discussed interest rate discrepancy on loan statement",
			AgentName:  "Aarav Singh",
		},
		{
			ID:         "INT002",
			CustomerID: "CUST001",
			Type:       types.InteractionEmail,
			Date:       seedTime("2025-04-16T14:20:00"),
			Notes:      "Sent revised loan statement with corrected calculations",
			AgentName:  "Aarav Singh",
		},
		{
			ID:         "INT003",
			CustomerID: "CUST002",
			Type:       types.InteractionCall,
			Date:       seedTime("2025-04-08T11:15:00"),
			Notes:      "Requested missing documentation for loan application",
			AgentName:  "Riya Kapoor",
		},
		{
			ID:         "INT004",
			CustomerID: "CUST004",
			Type:       types.InteractionEmail,
			Date:       seedTime("2025-04-05T09:45:00"),
			Notes:      "Sent password reset instructions for online banking portal",
			AgentName:  "Devansh Mehta",
		},
		{
			ID:         "INT005",
			CustomerID: "CUST005",
			Type:       types.InteractionComplaint,
			Date:       seedTime("2025-04-12T15:30:00"),
			Notes:      "Filed complaint about loan application processing delay",
			AgentName:  "Aarav Singh",
		},
		{
			ID:         "INT006",
			CustomerID: "CUST003",
			Type:       types.InteractionCall,
			Date:       seedTime("2025-04-15T10:00:00"),
			Notes:      "Discussed business rating assessment methodology",
			AgentName:  "Devansh Mehta",
		},
		{
			ID:         "INT007",
			CustomerID: "CUST001",
			Type:       types.InteractionEmail,
			Date:       seedTime("2025-04-18T09:20:00"),
			Notes:      "Customer confirmed satisfaction with revised statement",
			AgentName:  "Aarav Singh",
		},
	}
}
