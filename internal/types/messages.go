package types

import "time"

// Message types pushed to the operator UI over the websocket hub.
const (
	MsgIncomingCall  = "incoming_call"  // new alert awaiting accept/reject
	MsgCallQueued    = "call_queued"    // bridge delivery stored while busy
	MsgCallUpdate    = "call_update"    // record changed state
	MsgCountdownTick = "countdown_tick" // auto-reject seconds remaining
	MsgDurationTick  = "duration_tick"  // active call elapsed seconds
	MsgPlaySound     = "play_sound"     // audible alert trigger
	MsgToast         = "toast"          // transient user notification
)

// CallMessage wraps a call record for the operator UI
type CallMessage struct {
	Type      string     `json:"type"`
	Call      CallRecord `json:"call"`
	Timestamp time.Time  `json:"timestamp"`
}

// TickMessage reports a countdown or duration tick for a call
type TickMessage struct {
	Type    string `json:"type"`
	CallID  string `json:"callId"`
	Seconds int    `json:"seconds"`
}

// SoundMessage asks the UI to play a notification sound. Playback is
// best-effort on the client; the server never learns whether it worked.
type SoundMessage struct {
	Type  string `json:"type"`
	Sound string `json:"sound"`
}

// ToastMessage is a transient, non-blocking user notification
type ToastMessage struct {
	Type     string `json:"type"`
	Severity string `json:"severity"` // "info", "success", "error"
	Text     string `json:"text"`
}
