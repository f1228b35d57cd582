package logic

import "time"

// Detector turns the debounced pose toggle into transition events and keeps
// event counts for heartbeats.
type Detector struct {
	pose          Pose
	baselined     bool
	startTime     time.Time
	eventCounts   EventCounts
	lastHeartbeat time.Time
}

// NewDetector creates a new pose transition detector.
// The startTime is used for calculating uptime in heartbeat events.
func NewDetector(startTime time.Time) *Detector {
	return &Detector{
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process takes a new input sample and returns any events that should be emitted.
// The first sample establishes the baseline pose and never produces an event.
func (d *Detector) Process(input Input) []Event {
	pose := PoseFor(input.PoseDown)

	if !d.baselined {
		d.pose = pose
		d.baselined = true
		return nil
	}

	if pose == d.pose {
		return nil
	}
	d.pose = pose

	event := Event{
		Timestamp: input.Time,
		Type:      eventTypeFor(pose),
		Pose:      pose,
		X:         input.X,
		Y:         input.Y,
	}

	switch event.Type {
	case EventPoseDown:
		d.eventCounts.PoseDown++
	case EventPoseUp:
		d.eventCounts.PoseUp++
	}

	return []Event{event}
}

func eventTypeFor(to Pose) EventType {
	if to == PoseDown {
		return EventPoseDown
	}
	return EventPoseUp
}

// IsBaselined returns whether the detector has seen its first sample.
func (d *Detector) IsBaselined() bool {
	return d.baselined
}

// CurrentPose returns the last observed pose, or "" before the baseline.
func (d *Detector) CurrentPose() Pose {
	return d.pose
}

// EventCounts returns a copy of the event counters.
func (d *Detector) EventCounts() EventCounts {
	return d.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if not yet baselined, if the
// interval has not elapsed, or if interval is <= 0 (disabled).
func (d *Detector) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if !d.baselined {
		return nil
	}

	if now.Sub(d.lastHeartbeat) < interval {
		return nil
	}

	d.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(d.startTime),
		Counts:    d.eventCounts,
	}
}
