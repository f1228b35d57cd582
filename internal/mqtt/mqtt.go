// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/arm-controller/internal/logic"
)

// Topic is the MQTT topic for arm pose events.
const Topic = "robot/arm/controller/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "robot/arm/controller/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a pose event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT", "OFFLINE"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Arm ArmPayload `json:"arm"`
}

// ArmPayload contains the pose event details.
type ArmPayload struct {
	Timestamp string  `json:"timestamp"`
	Event     string  `json:"event"`
	Pose      string  `json:"pose"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// FormatPayload creates the JSON payload for a pose event.
func FormatPayload(event logic.Event) ([]byte, error) {
	payload := Payload{
		Arm: ArmPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Pose:      string(event.Pose),
			X:         event.X,
			Y:         event.Y,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (will, RECONNECTED) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp,omitempty"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
// A zero Timestamp is omitted, which is how the broker-published will is built.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	inner := SystemPayloadInner{
		Event:  event.Event,
		Reason: event.Reason,
	}
	if !event.Timestamp.IsZero() {
		inner.Timestamp = event.Timestamp.UTC().Format(time.RFC3339)
	}
	return json.Marshal(SystemPayload{System: inner})
}

// WillEvent is published by the broker when the controller drops off without
// a clean disconnect.
var WillEvent = SystemEvent{
	Event:    "OFFLINE",
	Reason:   "CONNECTION_LOST",
	Retained: true,
}
