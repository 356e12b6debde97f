package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Metrics holds all application metrics
type Metrics struct {
	mu sync.RWMutex

	// Call lifecycle
	CallsGeneratedTotal int64
	CallsAcceptedTotal  int64
	CallsRejectedTotal  int64
	CallsMissedTotal    int64 // auto-reject countdown expiries
	CallsCompletedTotal int64

	// Bridge
	BridgeDeliveriesTotal int64
	BridgeQueuedTotal     int64 // deliveries stored while operator was busy
	BridgeDroppedTotal    int64 // malformed payloads

	// Remote backend
	RemoteFailuresTotal int64

	// WebSocket
	WebSocketConnectionsTotal    int64
	WebSocketDisconnectionsTotal int64
	activeConnections            int64

	startTime time.Time
}

// Global metrics instance
var instance *Metrics
var once sync.Once

// Get returns the singleton metrics instance
func Get() *Metrics {
	once.Do(func() {
		instance = &Metrics{startTime: time.Now()}
	})
	return instance
}

// RecordCallGenerated increments the generated-call counter
func (m *Metrics) RecordCallGenerated() {
	m.mu.Lock()
	m.CallsGeneratedTotal++
	m.mu.Unlock()
}

// RecordCallAccepted increments the accepted-call counter
func (m *Metrics) RecordCallAccepted() {
	m.mu.Lock()
	m.CallsAcceptedTotal++
	m.mu.Unlock()
}

// RecordCallRejected increments the rejected-call counter
func (m *Metrics) RecordCallRejected() {
	m.mu.Lock()
	m.CallsRejectedTotal++
	m.mu.Unlock()
}

// RecordCallMissed increments the countdown-expiry counter
func (m *Metrics) RecordCallMissed() {
	m.mu.Lock()
	m.CallsMissedTotal++
	m.mu.Unlock()
}

// RecordCallCompleted increments the completed-call counter
func (m *Metrics) RecordCallCompleted() {
	m.mu.Lock()
	m.CallsCompletedTotal++
	m.mu.Unlock()
}

// RecordBridgeDelivery increments the bridge delivery counter
func (m *Metrics) RecordBridgeDelivery() {
	m.mu.Lock()
	m.BridgeDeliveriesTotal++
	m.mu.Unlock()
}

// RecordBridgeQueued increments the queued-while-busy counter
func (m *Metrics) RecordBridgeQueued() {
	m.mu.Lock()
	m.BridgeQueuedTotal++
	m.mu.Unlock()
}

// RecordBridgeDropped increments the malformed-payload counter
func (m *Metrics) RecordBridgeDropped() {
	m.mu.Lock()
	m.BridgeDroppedTotal++
	m.mu.Unlock()
}

// RecordRemoteFailure increments the remote-backend failure counter
func (m *Metrics) RecordRemoteFailure() {
	m.mu.Lock()
	m.RemoteFailuresTotal++
	m.mu.Unlock()
}

// RecordWebSocketConnect increments connection counters
func (m *Metrics) RecordWebSocketConnect() {
	m.mu.Lock()
	m.WebSocketConnectionsTotal++
	m.activeConnections++
	m.mu.Unlock()
}

// RecordWebSocketDisconnect increments disconnection counter
func (m *Metrics) RecordWebSocketDisconnect() {
	m.mu.Lock()
	m.WebSocketDisconnectionsTotal++
	m.activeConnections--
	m.mu.Unlock()
}

// GetActiveConnections returns current WebSocket connections
func (m *Metrics) GetActiveConnections() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeConnections
}

// Handler returns an HTTP handler for the /internal/metrics endpoint
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m.mu.RLock()
		defer m.mu.RUnlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		write := func(name string, value int64) {
			w.Write([]byte(name + " " + strconv.FormatInt(value, 10) + "\n"))
		}

		write("bankdesk_calls_generated_total", m.CallsGeneratedTotal)
		write("bankdesk_calls_accepted_total", m.CallsAcceptedTotal)
		write("bankdesk_calls_rejected_total", m.CallsRejectedTotal)
		write("bankdesk_calls_missed_total", m.CallsMissedTotal)
		write("bankdesk_calls_completed_total", m.CallsCompletedTotal)
		write("bankdesk_bridge_deliveries_total", m.BridgeDeliveriesTotal)
		write("bankdesk_bridge_queued_total", m.BridgeQueuedTotal)
		write("bankdesk_bridge_dropped_total", m.BridgeDroppedTotal)
		write("bankdesk_remote_failures_total", m.RemoteFailuresTotal)
		write("bankdesk_websocket_connections_total", m.WebSocketConnectionsTotal)
		write("bankdesk_websocket_disconnections_total", m.WebSocketDisconnectionsTotal)
		write("bankdesk_websocket_active_connections", m.activeConnections)
		write("bankdesk_uptime_seconds", int64(time.Since(m.startTime).Seconds()))
	}
}
