// Package logic contains the pure signal-conditioning and command-translation
// core of the arm controller.
// This package has NO external dependencies (no GPIO, I2C, MQTT, OS, or time.Sleep).
// Time is always injected, either as elapsed time.Duration deltas or as
// time.Time parameters.
package logic

import "time"

// Pose is the binary position of the wrist (pen) joint.
type Pose string

const (
	PoseUp   Pose = "UP"
	PoseDown Pose = "DOWN"
)

// PoseFor maps the toggle output onto a Pose.
func PoseFor(down bool) Pose {
	if down {
		return PoseDown
	}
	return PoseUp
}

// EventType represents a pose transition event.
type EventType string

const (
	EventPoseDown EventType = "POSE_DOWN"
	EventPoseUp   EventType = "POSE_UP"
)

// Event represents a pose transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Pose      Pose
	// Normalized stick position at the moment of the transition.
	X float64
	Y float64
}

// Input represents a single control-loop sample of conditioned inputs.
type Input struct {
	PoseDown bool
	X        float64
	Y        float64
	Time     time.Time
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	PoseDown int
	PoseUp   int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}

// Angles are the last commanded joint angles in degrees, after trim and clamp.
type Angles struct {
	Shoulder float64
	Elbow    float64
	Wrist    float64
}
