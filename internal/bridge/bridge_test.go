package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/mglaser/bankdesk/internal/session"
	"github.com/mglaser/bankdesk/internal/store"
	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

// chanSource feeds payloads from a channel
type chanSource struct {
	payloads chan []byte
}

func (s *chanSource) Subscribe(ctx context.Context, deliver func(payload []byte)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case p, ok := <-s.payloads:
			if !ok {
				return nil
			}
			deliver(p)
		}
	}
}

type okBackend struct{}

func (okBackend) UpdateCall(ctx context.Context, id string, patch types.CallPatch) error {
	return nil
}
func (okBackend) InsertCall(ctx context.Context, req types.CallRequest) error { return nil }

type recordingNotifier struct {
	sounds chan struct{}
}

func (n *recordingNotifier) PushCall(string, types.CallRecord) {}
func (n *recordingNotifier) PushTick(string, string, int)      {}
func (n *recordingNotifier) PushToast(string, string)          {}
func (n *recordingNotifier) PushSound(string) {
	select {
	case n.sounds <- struct{}{}:
	default:
	}
}

func setup(t *testing.T) (*Bridge, *session.Controller, *store.CallStore, *chanSource, *recordingNotifier, context.CancelFunc) {
	t.Helper()
	s := store.New()
	n := &recordingNotifier{sounds: make(chan struct{}, 8)}
	ctrl := session.NewController(s, okBackend{}, n, zerolog.Nop(), session.Options{
		TickInterval:      5 * time.Millisecond,
		AutoRejectSeconds: 1000,
	})
	src := &chanSource{payloads: make(chan []byte, 8)}
	b := New(src, ctrl, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go b.Start(ctx)
	return b, ctrl, s, src, n, cancel
}

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}

func TestBridgeRaisesAlertWhenIdle(t *testing.T) {
	_, ctrl, _, src, n, cancel := setup(t)
	defer cancel()

	src.payloads <- []byte(`{
		"id": "req-1",
		"customer_phone": "010-1234-5678",
		"customer_name": "Kim Min-jae",
		"issue_type": "Loan application status",
		"status": "requesting",
		"created_at": "2025-04-20T11:18:00Z"
	}`)

	if !waitFor(t, func() bool { return ctrl.State() == session.StateAlertPending }) {
		t.Fatal("expected bridge delivery to raise an alert")
	}

	alert, _ := ctrl.CurrentAlert()
	if alert.ID != "req-1" {
		t.Errorf("expected alert for req-1, got %s", alert.ID)
	}
	if alert.CustomerID != "010-1234-5678" || alert.Phone != "010-1234-5678" {
		t.Errorf("customer id and phone must both map from customer_phone, got %s / %s", alert.CustomerID, alert.Phone)
	}
	if alert.Notes != "Loan application status" {
		t.Errorf("issue_type must map to notes, got %q", alert.Notes)
	}
	if alert.Status != types.CallStatusInQueue {
		t.Errorf("expected In Queue, got %s", alert.Status)
	}

	// The audible alert fires alongside the alert
	select {
	case <-n.sounds:
	case <-time.After(time.Second):
		t.Error("expected a sound push on delivery")
	}
}

func TestBridgeDoesNotPreemptActiveCall(t *testing.T) {
	_, ctrl, s, src, _, cancel := setup(t)
	defer cancel()

	// Put the controller into an active call first
	ctrl.RaiseAlert(types.CallRecord{ID: "CALL-1", CustomerName: "Kim Min-jae", Status: types.CallStatusInQueue})
	if err := ctrl.Accept(context.Background(), "CALL-1"); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	src.payloads <- []byte(`{
		"id": "req-2",
		"customer_phone": "010-8765-4321",
		"customer_name": "Park Ji-sung",
		"issue_type": "Technical issue",
		"status": "requesting",
		"created_at": "2025-04-20T11:20:00Z"
	}`)

	if !waitFor(t, func() bool { _, ok := s.FindByID("req-2"); return ok }) {
		t.Fatal("expected delivered call in store")
	}

	got, _ := s.FindByID("req-2")
	if got.Status != types.CallStatusInQueue {
		t.Errorf("queued delivery must be In Queue, got %s", got.Status)
	}
	if _, ok := ctrl.CurrentAlert(); ok {
		t.Error("delivery must not raise an alert while a call is active")
	}
	active, _, _ := ctrl.ActiveCall()
	if active.ID != "CALL-1" {
		t.Errorf("active call must be untouched, got %s", active.ID)
	}
}

func TestBridgeDropsMalformedPayload(t *testing.T) {
	_, ctrl, s, src, _, cancel := setup(t)
	defer cancel()

	src.payloads <- []byte(`{not json`)
	src.payloads <- []byte(`{"customer_name": "No ID"}`)

	// A good payload after the bad ones proves the subscription survived
	src.payloads <- []byte(`{
		"id": "req-3",
		"customer_phone": "010-2468-1357",
		"customer_name": "Son Heung-min",
		"issue_type": "General inquiry",
		"status": "requesting",
		"created_at": "2025-04-20T11:25:00Z"
	}`)

	if !waitFor(t, func() bool { return ctrl.State() == session.StateAlertPending }) {
		t.Fatal("bridge must keep running after malformed payloads")
	}

	alert, _ := ctrl.CurrentAlert()
	if alert.ID != "req-3" {
		t.Errorf("expected alert for req-3, got %s", alert.ID)
	}
	if s.Len() != 0 {
		t.Errorf("malformed payloads must not create store records, got %d", s.Len())
	}
}
