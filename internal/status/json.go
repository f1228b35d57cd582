package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Ready         bool         `json:"ready"`
	Arm           ArmJSON      `json:"arm"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"event_counts"`
	Health        HealthJSON   `json:"health"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// ArmJSON is the live input and joint state.
type ArmJSON struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pose     string  `json:"pose"`
	Shoulder float64 `json:"shoulder_deg"`
	Elbow    float64 `json:"elbow_deg"`
	Wrist    float64 `json:"wrist_deg"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	PoseDown int `json:"pose_down"`
	PoseUp   int `json:"pose_up"`
	Toggles  int `json:"toggles"`
}

// HealthJSON carries the hardware counters.
type HealthJSON struct {
	Refreshes      int `json:"refreshes"`
	ClampedSamples int `json:"clamped_samples"`
	ReadErrors     int `json:"read_errors"`
	ServoWrites    int `json:"servo_writes"`
	ClampedAngles  int `json:"clamped_angles"`
	WriteErrors    int `json:"write_errors"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs      int64   `json:"tick_ms"`
	PollMs      int64   `json:"poll_ms"`
	DebounceMs  int64   `json:"debounce_ms"`
	HeartbeatMs int64   `json:"heartbeat_ms"`
	Smoothing   float64 `json:"smoothing"`
	Broker      string  `json:"broker"`
	HTTPAddr    string  `json:"http_addr"`
	WSBroker    string  `json:"ws_broker,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	pose := string(snap.Pose)
	if pose == "" {
		pose = "UNKNOWN"
	}

	return StatusInner{
		Ready: snap.Baselined,
		Arm: ArmJSON{
			X:        snap.X,
			Y:        snap.Y,
			Pose:     pose,
			Shoulder: snap.Angles.Shoulder,
			Elbow:    snap.Angles.Elbow,
			Wrist:    snap.Angles.Wrist,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			PoseDown: snap.Counts.PoseDown,
			PoseUp:   snap.Counts.PoseUp,
			Toggles:  snap.Flips,
		},
		Health: HealthJSON{
			Refreshes:      snap.Axes.Refreshes,
			ClampedSamples: snap.Axes.Clamped,
			ReadErrors:     snap.Axes.ReadErrors,
			ServoWrites:    snap.Driver.Writes,
			ClampedAngles:  snap.Driver.Clamped,
			WriteErrors:    snap.Driver.WriteErrors,
		},
		Config: ConfigJSON{
			TickMs:      snap.Config.TickMs,
			PollMs:      snap.Config.PollMs,
			DebounceMs:  snap.Config.DebounceMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Smoothing:   snap.Config.Smoothing,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			WSBroker:    snap.Config.WSBroker,
		},
	}
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
