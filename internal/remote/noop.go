package remote

import (
	"context"

	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

// NoopBackend accepts every update without talking to anything. Used
// when no DATABASE_URL is configured and the IVR runs as a local-only
// simulation.
type NoopBackend struct {
	logger zerolog.Logger
}

// NewNoopBackend creates a NoopBackend
func NewNoopBackend(logger zerolog.Logger) *NoopBackend {
	logger.Info().Msg("remote backend disabled, running local-only simulation")
	return &NoopBackend{logger: logger}
}

// UpdateCall acknowledges the patch without persisting it
func (b *NoopBackend) UpdateCall(ctx context.Context, id string, patch types.CallPatch) error {
	b.logger.Debug().
		Str("call_id", id).
		Str("status", string(patch.Status)).
		Msg("noop remote update")
	return nil
}

// InsertCall acknowledges the insert without persisting it
func (b *NoopBackend) InsertCall(ctx context.Context, req types.CallRequest) error {
	b.logger.Debug().Str("call_id", req.ID).Msg("noop remote insert")
	return nil
}
