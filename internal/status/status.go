// Package status provides a thread-safe status tracker for the arm-controller daemon.
// It is read by the HTTP handlers and by the MQTT lifecycle events.
package status

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/sweeney/arm-controller/internal/logic"
)

// NetworkInfo contains network state.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	PollMs      int64
	DebounceMs  int64
	HeartbeatMs int64
	Smoothing   float64
	Broker      string
	HTTPAddr    string
	WSBroker    string // Websocket broker URL for browser MQTT (empty = disabled)
}

// Reading is what the control loop reports after each tick.
type Reading struct {
	X, Y      float64
	Pose      logic.Pose
	Baselined bool
	Angles    logic.Angles
	Flips     int
	Counts    logic.EventCounts
	Axes      logic.AxisStats
	Driver    logic.DriverStats
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Reading
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	clock clock.Clock

	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker that starts now according to clk.
func NewTracker(clk clock.Clock, cfg Config) *Tracker {
	return &Tracker{
		clock: clk,
		snap: Snapshot{
			StartTime: clk.Now(),
			Config:    cfg,
		},
	}
}

// Update records the latest control loop reading.
// Called from the control loop on every tick.
func (t *Tracker) Update(r Reading) {
	t.mu.Lock()
	t.snap.Reading = r
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set from the tracker's clock at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.clock.Now()
	return s
}
