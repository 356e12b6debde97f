package session

import (
	"context"
	"time"

	"github.com/mglaser/bankdesk/internal/types"
)

// runCountdown decrements the pending alert's remaining seconds once per
// tick and triggers the rejection path when it reaches zero. It exits as
// soon as the alert it was started for is no longer current.
func (c *Controller) runCountdown(ctx context.Context, callID string, gen uint64) {
	ticker := time.NewTicker(c.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, ok := c.countdownTick(gen)
			if !ok {
				return
			}
			if expired {
				// The same rejection path as a manual reject. A failed
				// remote update consumes the countdown; no retry.
				rejectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				_ = c.reject(rejectCtx, callID, true)
				cancel()
				return
			}
		}
	}
}

// countdownTick applies one countdown second. Returns expired=true once
// timeLeft hits zero, and ok=false when the alert is gone or replaced.
func (c *Controller) countdownTick(gen uint64) (expired, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.alert == nil || c.alert.gen != gen {
		return false, false
	}

	c.alert.timeLeft--
	if c.alert.timeLeft < 0 {
		c.alert.timeLeft = 0
	}
	c.notifier.PushTick(types.MsgCountdownTick, c.alert.record.ID, c.alert.timeLeft)

	return c.alert.timeLeft == 0, true
}

// runDurationTicker increments the active call's elapsed seconds once
// per tick for as long as the session it was started for holds.
func (c *Controller) runDurationTicker(ctx context.Context, callID string, gen uint64) {
	ticker := time.NewTicker(c.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !c.durationTick(gen) {
				return
			}
		}
	}
}

// durationTick applies one elapsed second to the active session.
// Returns false when the session is gone or replaced.
func (c *Controller) durationTick(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil || c.active.gen != gen {
		return false
	}

	c.active.elapsed++
	c.notifier.PushTick(types.MsgDurationTick, c.active.record.ID, c.active.elapsed)
	return true
}
