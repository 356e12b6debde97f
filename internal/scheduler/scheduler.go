// Package scheduler spawns synthetic incoming calls at random while the
// operator is idle. It is a best-effort background nuisance-call
// simulator, not a guarantee of call arrival.
package scheduler

import (
	"context"
	"math/rand"
	"time"

	"github.com/mglaser/bankdesk/internal/callgen"
	"github.com/mglaser/bankdesk/internal/metrics"
	"github.com/mglaser/bankdesk/internal/session"
	"github.com/rs/zerolog"
)

// Scheduler rolls a probability check on a fixed interval and raises an
// incoming-call alert when the roll succeeds and the controller is idle.
type Scheduler struct {
	ctrl        *session.Controller
	generator   *callgen.Generator
	interval    time.Duration
	probability float64
	rng         *rand.Rand
	logger      zerolog.Logger
}

// New creates a Scheduler
func New(ctrl *session.Controller, generator *callgen.Generator, interval time.Duration, probability float64, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		ctrl:        ctrl,
		generator:   generator,
		interval:    interval,
		probability: probability,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:      logger,
	}
}

// Start runs the scheduler loop until the context is cancelled. The
// ticker itself is never paused; a tick that finds the operator busy
// simply does nothing, and the next tick re-evaluates.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", s.interval).
		Float64("probability", s.probability).
		Msg("incoming call scheduler started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("incoming call scheduler stopped")
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick performs one scheduling pass
func (s *Scheduler) tick() {
	// Armed only when no alert and no active call exist. Checking state
	// here is advisory; RaiseAlert re-checks under the controller's
	// lock, so a lost race just means a suppressed alert.
	if s.ctrl.State() != session.StateNoCall {
		return
	}

	roll := s.rng.Float64()
	if roll >= s.probability {
		s.logger.Debug().Float64("roll", roll).Msg("no call this cycle")
		return
	}

	call := s.generator.Generate()
	metrics.Get().RecordCallGenerated()

	if s.ctrl.RaiseAlert(call) {
		s.logger.Info().
			Str("call_id", call.ID).
			Str("customer", call.CustomerName).
			Msg("scheduler raised incoming call")
	}
}
