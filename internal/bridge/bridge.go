// Package bridge turns externally created call requests, delivered over
// a realtime notification channel, into incoming-call alerts for the
// operator.
package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mglaser/bankdesk/internal/metrics"
	"github.com/mglaser/bankdesk/internal/session"
	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

// Source is a realtime feed of intake notifications. Subscribe blocks
// until the context is cancelled or the feed fails; reconnection is the
// supervisor's job, not the bridge's.
type Source interface {
	Subscribe(ctx context.Context, deliver func(payload []byte)) error
}

// Bridge subscribes once for the session's lifetime and hands every
// well-formed call request to the session controller.
type Bridge struct {
	source Source
	ctrl   *session.Controller
	logger zerolog.Logger
}

// New creates a Bridge
func New(source Source, ctrl *session.Controller, logger zerolog.Logger) *Bridge {
	return &Bridge{
		source: source,
		ctrl:   ctrl,
		logger: logger,
	}
}

// Start runs the subscription until the context is cancelled. A feed
// failure is logged and ends the bridge; the rest of the system keeps
// running without realtime deliveries.
func (b *Bridge) Start(ctx context.Context) {
	b.logger.Info().Msg("remote event bridge started")
	if err := b.source.Subscribe(ctx, b.handle); err != nil {
		b.logger.Error().Err(err).Msg("event bridge subscription ended")
	}
}

// handle processes one notification payload
func (b *Bridge) handle(payload []byte) {
	metrics.Get().RecordBridgeDelivery()

	var req types.CallRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		metrics.Get().RecordBridgeDropped()
		b.logger.Warn().Err(err).Msg("dropping malformed bridge payload")
		return
	}
	if req.ID == "" || req.CustomerName == "" {
		metrics.Get().RecordBridgeDropped()
		b.logger.Warn().
			Str("call_id", req.ID).
			Msg("dropping bridge payload with missing fields")
		return
	}

	record := req.ToCallRecord()
	if record.StartTime.IsZero() {
		record.StartTime = time.Now()
	}

	// Deliver raises the alert when the operator is idle, or stores the
	// call In Queue without preempting the current alert/active call.
	raised := b.ctrl.Deliver(record)

	b.logger.Info().
		Str("call_id", record.ID).
		Str("customer", record.CustomerName).
		Bool("alert_raised", raised).
		Msg("bridge delivered call request")
}
