package remote

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Listener subscribes to a Postgres NOTIFY channel carrying new intake
// rows as JSON payloads. It holds a dedicated connection for the
// lifetime of the subscription and does not reconnect on its own;
// supervision is the caller's responsibility.
type Listener struct {
	databaseURL string
	channel     string
	logger      zerolog.Logger
}

// NewListener creates a Listener for the given channel
func NewListener(databaseURL, channel string, logger zerolog.Logger) *Listener {
	return &Listener{
		databaseURL: databaseURL,
		channel:     channel,
		logger:      logger,
	}
}

// Subscribe listens until the context is cancelled, invoking deliver for
// every notification payload in arrival order.
func (l *Listener) Subscribe(ctx context.Context, deliver func(payload []byte)) error {
	conn, err := pgx.Connect(ctx, l.databaseURL)
	if err != nil {
		return fmt.Errorf("connect listener: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen on %s: %w", l.channel, err)
	}

	l.logger.Info().Str("channel", l.channel).Msg("subscribed to call request notifications")

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info().Str("channel", l.channel).Msg("listener unsubscribed")
				return nil
			}
			return fmt.Errorf("wait for notification: %w", err)
		}
		deliver([]byte(notification.Payload))
	}
}
