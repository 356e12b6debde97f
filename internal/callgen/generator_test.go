package callgen

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/mglaser/bankdesk/internal/types"
)

func TestGenerateShape(t *testing.T) {
	g := New()
	call := g.Generate()

	if call.ID == "" || !strings.HasPrefix(call.ID, "CALL-") {
		t.Errorf("expected CALL- prefixed id, got %q", call.ID)
	}
	if call.Status != types.CallStatusInQueue {
		t.Errorf("expected In Queue status, got %s", call.Status)
	}
	if call.Duration != 0 {
		t.Errorf("expected zero duration, got %d", call.Duration)
	}
	if call.StartTime.IsZero() {
		t.Error("expected start time to be set")
	}
	if call.Notes == "" {
		t.Error("expected a call reason")
	}
}

func TestGenerateDrawsFromPools(t *testing.T) {
	g := NewWithSource(rand.NewSource(42), time.Now)

	names := make(map[string]bool)
	for i := 0; i < 100; i++ {
		call := g.Generate()
		names[call.CustomerName] = true

		found := false
		for _, who := range identities {
			if call.CustomerName == who.Name {
				if call.Phone != who.Phone || call.CustomerID != who.CustomerID {
					t.Errorf("identity tuple mismatch for %s: %s / %s", who.Name, call.Phone, call.CustomerID)
				}
				found = true
			}
		}
		if !found {
			t.Errorf("unknown identity %q", call.CustomerName)
		}
	}

	// With 100 draws every identity in the pool should appear
	if len(names) != len(identities) {
		t.Errorf("expected all %d identities drawn, got %d", len(identities), len(names))
	}
}

func TestGenerateUniqueIDs(t *testing.T) {
	fixed := time.Date(2025, 4, 20, 12, 0, 0, 0, time.UTC)
	g := NewWithSource(rand.NewSource(1), func() time.Time { return fixed })

	seen := make(map[string]bool)
	dupes := 0
	for i := 0; i < 50; i++ {
		id := g.Generate().ID
		if seen[id] {
			dupes++
		}
		seen[id] = true
	}
	// Same-millisecond ids rely on the random suffix only; a handful of
	// collisions over 50 draws from 1000 suffixes would be suspicious.
	if dupes > 3 {
		t.Errorf("too many id collisions within one millisecond: %d", dupes)
	}
}
