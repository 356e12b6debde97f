// Package callgen produces synthetic incoming-call payloads for the IVR
// simulation, drawing from fixed identity and reason pools.
package callgen

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/mglaser/bankdesk/internal/types"
)

// identity is one synthetic caller in the fixed pool
type identity struct {
	CustomerID string
	Name       string
	Phone      string
}

var identities = []identity{
	{CustomerID: "CUST-101", Name: "Kim Min-jae", Phone: "010-1234-5678"},
	{CustomerID: "CUST-102", Name: "Park Ji-sung", Phone: "010-8765-4321"},
	{CustomerID: "CUST-103", Name: "Son Heung-min", Phone: "010-2468-1357"},
}

var reasons = []string{
	"Loan application status",
	"Technical issue",
	"General inquiry",
}

// Generator creates random call records. Safe for use from multiple
// goroutines.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// New creates a Generator seeded from the current time
func New() *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// NewWithSource creates a Generator with a fixed source and clock
func NewWithSource(src rand.Source, now func() time.Time) *Generator {
	return &Generator{
		rng: rand.New(src),
		now: now,
	}
}

// Generate draws a random identity and reason and returns a fresh call
// record in queue status.
func (g *Generator) Generate() types.CallRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	who := identities[g.rng.Intn(len(identities))]
	reason := reasons[g.rng.Intn(len(reasons))]
	now := g.now()

	return types.CallRecord{
		ID:           g.newCallID(now),
		CustomerID:   who.CustomerID,
		CustomerName: who.Name,
		Phone:        who.Phone,
		Status:       types.CallStatusInQueue,
		StartTime:    now,
		Duration:     0,
		Notes:        reason,
	}
}

// newCallID derives an id from the clock plus a random suffix. Good
// enough for a simulation; collisions across the same millisecond are
// broken by the suffix.
func (g *Generator) newCallID(now time.Time) string {
	millis := now.UnixMilli() % 1000000
	return fmt.Sprintf("CALL-%06d-%03d", millis, g.rng.Intn(1000))
}
