package store

import (
	"time"

	"github.com/mglaser/bankdesk/internal/types"
)

// seedCalls returns the fixed historical reference records loaded once at
// startup, oldest last.
func seedCalls() []types.CallRecord {
	end1 := time.Date(2025, 4, 19, 10, 35, 40, 0, time.UTC)
	return []types.CallRecord{
		{
			ID:           "IVR004",
			CustomerID:   "CUST005",
			CustomerName: "Sneha Iyer",
			Phone:        "+91-90909-80808",
			Status:       types.CallStatusInQueue,
			StartTime:    time.Date(2025, 4, 20, 11, 18, 0, 0, time.UTC),
		},
		{
			ID:           "IVR003",
			CustomerID:   "CUST004",
			CustomerName: "Amitabh Verma",
			Phone:        "+91-99887-77665",
			Status:       types.CallStatusInProgress,
			StartTime:    time.Date(2025, 4, 20, 11, 15, 0, 0, time.UTC),
		},
		{
			ID:           "IVR002",
			CustomerID:   "CUST003",
			CustomerName: "Vikram Desai",
			Phone:        "+91-91234-56789",
			Status:       types.CallStatusMissed,
			StartTime:    time.Date(2025, 4, 19, 14, 20, 0, 0, time.UTC),
		},
		{
			ID:           "IVR001",
			CustomerID:   "CUST001",
			CustomerName: "Rahul Sharma",
			Phone:        "+91-98765-43210",
			Status:       types.CallStatusCompleted,
			StartTime:    time.Date(2025, 4, 19, 10, 30, 0, 0, time.UTC),
			EndTime:      &end1,
			Duration:     340,
			Notes:        "Asked about loan statement. Transferred to agent.",
		},
	}
}
