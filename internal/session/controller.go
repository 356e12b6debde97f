// Package session owns the operator's call lifecycle: the single pending
// incoming-call alert, the single active call, and the timers bound to
// them. All transitions are serialized through the Controller, which is
// the only arbiter of legal state changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mglaser/bankdesk/internal/metrics"
	"github.com/mglaser/bankdesk/internal/store"
	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

// State is the controller's position in the call lifecycle
type State string

const (
	StateNoCall       State = "no_call"
	StateAlertPending State = "alert_pending"
	StateActiveCall   State = "active_call"
)

var (
	// ErrNoPendingAlert is returned when accept/reject finds no alert,
	// or a different alert than the one the caller saw.
	ErrNoPendingAlert = errors.New("no pending alert")
	// ErrNoActiveCall is returned when endCall finds no active call
	ErrNoActiveCall = errors.New("no active call")
)

// Backend is the remote call-state store consulted before every local
// transition commit.
type Backend interface {
	UpdateCall(ctx context.Context, id string, patch types.CallPatch) error
	InsertCall(ctx context.Context, req types.CallRequest) error
}

// Notifier pushes events to the operator UI. Implementations must not
// block; delivery is best-effort.
type Notifier interface {
	PushCall(msgType string, call types.CallRecord)
	PushTick(msgType, callID string, seconds int)
	PushToast(severity, text string)
	PushSound(sound string)
}

// ArchiveStore persists terminal call records. Saves are asynchronous
// and failures never block a transition.
type ArchiveStore interface {
	SaveArchivedCall(record types.ArchivedCall) error
}

// InteractionSink records a finished call on the customer's timeline
type InteractionSink interface {
	AddCallInteraction(customerID, notes, agentName string)
}

// alertState is the transient projection of a call awaiting a decision
type alertState struct {
	record   types.CallRecord
	timeLeft int
	gen      uint64
	cancel   context.CancelFunc
}

// activeState wraps the accepted call plus its running elapsed counter
type activeState struct {
	record  types.CallRecord
	elapsed int
	gen     uint64
	cancel  context.CancelFunc
}

// Options configures a Controller
type Options struct {
	OperatorID        string
	AutoRejectSeconds int
	// TickInterval is the wall-clock length of one simulated second.
	// Defaults to time.Second; tests shorten it.
	TickInterval time.Duration
	Archive      ArchiveStore
	Interactions InteractionSink
}

// Controller is the call session state machine
type Controller struct {
	mu       sync.Mutex
	state    State
	alert    *alertState
	active   *activeState
	gen      uint64 // bumped whenever an alert or session is created
	store    *store.CallStore
	backend  Backend
	notifier Notifier
	opts     Options
	logger   zerolog.Logger
}

// NewController creates a Controller in NoCall state
func NewController(callStore *store.CallStore, backend Backend, notifier Notifier, logger zerolog.Logger, opts Options) *Controller {
	if opts.AutoRejectSeconds <= 0 {
		opts.AutoRejectSeconds = 15
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.OperatorID == "" {
		opts.OperatorID = "agent-1"
	}
	return &Controller{
		state:    StateNoCall,
		store:    callStore,
		backend:  backend,
		notifier: notifier,
		opts:     opts,
		logger:   logger,
	}
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentAlert returns the pending alert, if any
func (c *Controller) CurrentAlert() (types.CallRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.alert == nil {
		return types.CallRecord{}, false
	}
	return c.alert.record, true
}

// TimeLeft returns the countdown seconds remaining for the pending alert
func (c *Controller) TimeLeft() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.alert == nil {
		return 0
	}
	return c.alert.timeLeft
}

// ActiveCall returns the connected call and its elapsed seconds, if any
func (c *Controller) ActiveCall() (types.CallRecord, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return types.CallRecord{}, 0, false
	}
	return c.active.record, c.active.elapsed, true
}

// RaiseAlert presents a call to the operator. Valid only in NoCall; a
// call raised while an alert or active call exists is silently dropped
// (at most one alert at a time is a hard invariant). Returns whether the
// alert was raised.
func (c *Controller) RaiseAlert(record types.CallRecord) bool {
	c.mu.Lock()

	if c.state != StateNoCall {
		c.mu.Unlock()
		c.logger.Debug().
			Str("call_id", record.ID).
			Str("state", string(c.state)).
			Msg("alert suppressed, controller busy")
		return false
	}

	if record.Status == "" {
		record.Status = types.CallStatusInQueue
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.gen++
	c.alert = &alertState{
		record:   record,
		timeLeft: c.opts.AutoRejectSeconds,
		gen:      c.gen,
		cancel:   cancel,
	}
	c.state = StateAlertPending
	gen := c.gen
	c.mu.Unlock()

	go c.runCountdown(ctx, record.ID, gen)

	c.notifier.PushCall(types.MsgIncomingCall, record)
	c.notifier.PushSound("notification")

	c.logger.Info().
		Str("call_id", record.ID).
		Str("customer", record.CustomerName).
		Msg("incoming call alert raised")
	return true
}

// Accept answers the pending alert. The remote backend is updated first;
// only on its acknowledgment does the call become the active session.
func (c *Controller) Accept(ctx context.Context, callID string) error {
	c.mu.Lock()
	if c.state != StateAlertPending || c.alert == nil || c.alert.record.ID != callID {
		c.mu.Unlock()
		return ErrNoPendingAlert
	}
	record := c.alert.record
	gen := c.alert.gen
	c.mu.Unlock()

	patch := types.CallPatch{
		Status:  types.RemoteStatusInProgress,
		AgentID: c.opts.OperatorID,
	}
	if err := c.backend.UpdateCall(ctx, callID, patch); err != nil {
		metrics.Get().RecordRemoteFailure()
		c.notifier.PushToast("error", "Failed to accept call")
		c.logger.Error().Err(err).Str("call_id", callID).Msg("remote accept failed")
		return fmt.Errorf("accept call %s: %w", callID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A racing reject or countdown may have cleared the alert while the
	// remote call was in flight. Become a no-op instead of
	// double-transitioning.
	if c.alert == nil || c.alert.gen != gen {
		c.logger.Warn().Str("call_id", callID).Msg("accept lost race, alert already resolved")
		return ErrNoPendingAlert
	}

	c.alert.cancel()
	c.alert = nil

	record.Status = types.CallStatusInProgress
	c.store.Upsert(record)

	sessCtx, cancel := context.WithCancel(context.Background())
	c.gen++
	c.active = &activeState{
		record: record,
		gen:    c.gen,
		cancel: cancel,
	}
	c.state = StateActiveCall
	go c.runDurationTicker(sessCtx, record.ID, c.gen)

	metrics.Get().RecordCallAccepted()
	c.notifier.PushCall(types.MsgCallUpdate, record)
	c.notifier.PushToast("success", "Call with "+record.CustomerName+" connected")

	c.logger.Info().
		Str("call_id", callID).
		Str("customer", record.CustomerName).
		Msg("call accepted")
	return nil
}

// Reject declines the pending alert manually
func (c *Controller) Reject(ctx context.Context, callID string) error {
	return c.reject(ctx, callID, false)
}

// reject is shared by the manual path and the countdown expiry path
func (c *Controller) reject(ctx context.Context, callID string, auto bool) error {
	c.mu.Lock()
	if c.state != StateAlertPending || c.alert == nil || c.alert.record.ID != callID {
		c.mu.Unlock()
		return ErrNoPendingAlert
	}
	record := c.alert.record
	gen := c.alert.gen
	c.mu.Unlock()

	patch := types.CallPatch{Status: types.RemoteStatusRejected}
	if err := c.backend.UpdateCall(ctx, callID, patch); err != nil {
		metrics.Get().RecordRemoteFailure()
		c.notifier.PushToast("error", "Failed to reject call")
		c.logger.Error().Err(err).
			Str("call_id", callID).
			Bool("auto", auto).
			Msg("remote reject failed")
		// The countdown, if it was the trigger, is consumed regardless;
		// the alert stays pending for manual action.
		return fmt.Errorf("reject call %s: %w", callID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.alert == nil || c.alert.gen != gen {
		c.logger.Warn().Str("call_id", callID).Msg("reject lost race, alert already resolved")
		return ErrNoPendingAlert
	}

	c.alert.cancel()
	c.alert = nil
	c.state = StateNoCall

	record.Status = types.CallStatusMissed
	c.store.Upsert(record)

	if auto {
		metrics.Get().RecordCallMissed()
	} else {
		metrics.Get().RecordCallRejected()
	}
	c.notifier.PushCall(types.MsgCallUpdate, record)
	c.notifier.PushToast("info", "Call from "+record.CustomerName+" was rejected")
	c.archiveCall(record)

	c.logger.Info().
		Str("call_id", callID).
		Bool("auto", auto).
		Msg("call rejected")
	return nil
}

// EndCall completes the active call, writing the final duration and end
// timestamp remotely before committing them locally.
func (c *Controller) EndCall(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateActiveCall || c.active == nil {
		c.mu.Unlock()
		return ErrNoActiveCall
	}
	record := c.active.record
	elapsed := c.active.elapsed
	gen := c.active.gen
	c.mu.Unlock()

	endedAt := time.Now()
	patch := types.CallPatch{
		Status:   types.RemoteStatusCompleted,
		Duration: &elapsed,
		EndedAt:  &endedAt,
	}
	if err := c.backend.UpdateCall(ctx, record.ID, patch); err != nil {
		metrics.Get().RecordRemoteFailure()
		c.notifier.PushToast("error", "Failed to end call")
		c.logger.Error().Err(err).Str("call_id", record.ID).Msg("remote end failed")
		// Call remains active; the operator may retry and the duration
		// ticker keeps running.
		return fmt.Errorf("end call %s: %w", record.ID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil || c.active.gen != gen {
		return ErrNoActiveCall
	}

	// Commit the duration the remote acknowledged; seconds ticked during
	// the round-trip would otherwise leave the two stores disagreeing.
	c.active.cancel()
	c.active = nil
	c.state = StateNoCall

	record.Status = types.CallStatusCompleted
	record.Duration = elapsed
	record.EndTime = &endedAt
	c.store.Upsert(record)

	metrics.Get().RecordCallCompleted()
	c.notifier.PushCall(types.MsgCallUpdate, record)
	c.notifier.PushToast("info", fmt.Sprintf("Call with %s ended after %s", record.CustomerName, formatDuration(elapsed)))
	c.archiveCall(record)

	c.logger.Info().
		Str("call_id", record.ID).
		Int("duration", elapsed).
		Msg("call ended")
	return nil
}

// Deliver hands a bridge- or scheduler-originated call to the state
// machine. In NoCall it becomes the pending alert; otherwise it is
// stored In Queue without preempting the current alert or active call.
// Returns whether an alert was raised.
func (c *Controller) Deliver(record types.CallRecord) bool {
	// RaiseAlert performs its own busy check under the lock, so a record
	// that loses the race for the alert slot still falls through to the
	// queue instead of vanishing.
	if c.RaiseAlert(record) {
		return true
	}

	record.Status = types.CallStatusInQueue
	c.store.InsertFront(record)
	metrics.Get().RecordBridgeQueued()
	c.notifier.PushCall(types.MsgCallQueued, record)

	c.logger.Info().
		Str("call_id", record.ID).
		Msg("call queued, operator busy")
	return false
}

// archiveCall persists a terminal record and records the interaction.
// Called with c.mu held; the save itself runs in the background.
func (c *Controller) archiveCall(record types.CallRecord) {
	if c.opts.Interactions != nil && record.Status == types.CallStatusCompleted {
		c.opts.Interactions.AddCallInteraction(record.CustomerID, record.Notes, c.opts.OperatorID)
	}
	if c.opts.Archive == nil {
		return
	}
	archived := types.ToArchivedCall(record)
	go func() {
		if err := c.opts.Archive.SaveArchivedCall(archived); err != nil {
			c.logger.Error().Err(err).Str("call_id", archived.CallID).Msg("failed to archive call record")
		}
	}()
}

func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
