package notify

import (
	"encoding/json"
	"time"

	"github.com/mglaser/bankdesk/internal/types"
	"github.com/rs/zerolog"
)

// Notifier pushes call lifecycle events to the hub. All pushes are
// non-blocking; a full hub queue drops the message rather than stalling
// the session controller.
type Notifier struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewNotifier creates a Notifier backed by the given hub
func NewNotifier(hub *Hub, logger zerolog.Logger) *Notifier {
	return &Notifier{hub: hub, logger: logger}
}

// PushCall broadcasts a call record wrapped in the given message type
func (n *Notifier) PushCall(msgType string, call types.CallRecord) {
	n.push(types.CallMessage{
		Type:      msgType,
		Call:      call,
		Timestamp: time.Now(),
	})
}

// PushTick broadcasts a countdown or duration tick
func (n *Notifier) PushTick(msgType, callID string, seconds int) {
	n.push(types.TickMessage{
		Type:    msgType,
		CallID:  callID,
		Seconds: seconds,
	})
}

// PushToast broadcasts a transient user notification
func (n *Notifier) PushToast(severity, text string) {
	n.push(types.ToastMessage{
		Type:     types.MsgToast,
		Severity: severity,
		Text:     text,
	})
}

// PushSound asks connected UIs to play a notification sound
func (n *Notifier) PushSound(sound string) {
	n.push(types.SoundMessage{
		Type:  types.MsgPlaySound,
		Sound: sound,
	})
}

func (n *Notifier) push(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		n.logger.Error().Err(err).Msg("failed to marshal hub message")
		return
	}
	n.hub.Broadcast(data)
}
