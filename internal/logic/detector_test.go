package logic

import (
	"testing"
	"time"
)

func TestNewDetector(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDetector(startTime)
	if d == nil {
		t.Fatal("NewDetector returned nil")
	}
	if d.baselined {
		t.Error("new detector should not be baselined")
	}
	if !d.startTime.Equal(startTime) {
		t.Errorf("expected startTime %v, got %v", startTime, d.startTime)
	}
	if !d.lastHeartbeat.Equal(startTime) {
		t.Errorf("expected lastHeartbeat %v, got %v", startTime, d.lastHeartbeat)
	}
	if d.CurrentPose() != "" {
		t.Errorf("expected empty pose before baseline, got %q", d.CurrentPose())
	}
}

func TestBaselineEstablishment(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDetector(now)

	events := d.Process(Input{PoseDown: true, Time: now})
	if len(events) != 0 {
		t.Errorf("expected no events at baseline, got %d", len(events))
	}
	if !d.IsBaselined() {
		t.Error("should be baselined after first sample")
	}
	if d.CurrentPose() != PoseDown {
		t.Errorf("expected pose DOWN, got %s", d.CurrentPose())
	}
}

func setupBaselinedDetector(t *testing.T, down bool) *Detector {
	t.Helper()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDetector(now)

	d.Process(Input{PoseDown: down, Time: now})

	if !d.IsBaselined() {
		t.Fatal("failed to establish baseline")
	}

	return d
}

func TestNoEventsForStablePose(t *testing.T) {
	d := setupBaselinedDetector(t, false)
	now := time.Date(2026, 1, 1, 12, 1, 0, 0, time.UTC)

	for i := 0; i < 10; i++ {
		events := d.Process(Input{PoseDown: false, Time: now.Add(time.Duration(i) * 20 * time.Millisecond)})
		if len(events) != 0 {
			t.Errorf("iteration %d: expected no events for stable pose, got %d", i, len(events))
		}
	}
}

func TestTransitionUpToDown(t *testing.T) {
	d := setupBaselinedDetector(t, false)
	now := time.Date(2026, 1, 1, 12, 1, 0, 0, time.UTC)

	events := d.Process(Input{PoseDown: true, X: 0.25, Y: 0.75, Time: now})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	e := events[0]
	if e.Type != EventPoseDown {
		t.Errorf("expected POSE_DOWN, got %s", e.Type)
	}
	if e.Pose != PoseDown {
		t.Errorf("expected pose DOWN, got %s", e.Pose)
	}
	if e.X != 0.25 || e.Y != 0.75 {
		t.Errorf("expected position (0.25, 0.75), got (%v, %v)", e.X, e.Y)
	}
	if !e.Timestamp.Equal(now) {
		t.Errorf("expected timestamp %v, got %v", now, e.Timestamp)
	}
}

func TestTransitionDownToUp(t *testing.T) {
	d := setupBaselinedDetector(t, true)
	now := time.Date(2026, 1, 1, 12, 1, 0, 0, time.UTC)

	events := d.Process(Input{PoseDown: false, Time: now})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != EventPoseUp {
		t.Errorf("expected POSE_UP, got %s", events[0].Type)
	}
	if d.CurrentPose() != PoseUp {
		t.Errorf("expected pose UP, got %s", d.CurrentPose())
	}
}

func TestPoseFor(t *testing.T) {
	if PoseFor(true) != PoseDown {
		t.Error("PoseFor(true) should be DOWN")
	}
	if PoseFor(false) != PoseUp {
		t.Error("PoseFor(false) should be UP")
	}
}

func TestEventCountsIncrementOnTransition(t *testing.T) {
	d := setupBaselinedDetector(t, false)
	now := time.Date(2026, 1, 1, 12, 1, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		d.Process(Input{PoseDown: i%2 == 0, Time: now.Add(time.Duration(i) * time.Second)})
	}

	counts := d.EventCounts()
	if counts.PoseDown != 3 {
		t.Errorf("expected PoseDown=3, got %d", counts.PoseDown)
	}
	if counts.PoseUp != 2 {
		t.Errorf("expected PoseUp=2, got %d", counts.PoseUp)
	}
}

func TestCheckHeartbeatDisabledWithZeroInterval(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDetector(startTime)
	d.Process(Input{Time: startTime})

	// Should return nil with zero interval (disabled)
	if hb := d.CheckHeartbeat(startTime.Add(15*time.Minute), 0); hb != nil {
		t.Error("should not return heartbeat when interval is 0 (disabled)")
	}

	// Should also return nil with negative interval
	if hb := d.CheckHeartbeat(startTime.Add(15*time.Minute), -1*time.Minute); hb != nil {
		t.Error("should not return heartbeat when interval is negative")
	}
}

func TestCheckHeartbeatBeforeBaseline(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDetector(startTime)

	if hb := d.CheckHeartbeat(startTime.Add(15*time.Minute), 15*time.Minute); hb != nil {
		t.Error("should not return heartbeat before baseline")
	}
}

func TestCheckHeartbeatBeforeInterval(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDetector(startTime)
	d.Process(Input{Time: startTime})

	if hb := d.CheckHeartbeat(startTime.Add(14*time.Minute), 15*time.Minute); hb != nil {
		t.Error("should not return heartbeat before interval")
	}
}

func TestCheckHeartbeatUpdatesLastTime(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDetector(startTime)
	d.Process(Input{Time: startTime})

	t1 := startTime.Add(15 * time.Minute)
	hb1 := d.CheckHeartbeat(t1, 15*time.Minute)
	if hb1 == nil {
		t.Fatal("should return first heartbeat")
	}
	if !hb1.Timestamp.Equal(t1) {
		t.Errorf("expected timestamp %v, got %v", t1, hb1.Timestamp)
	}
	if hb1.Uptime != 15*time.Minute {
		t.Errorf("expected uptime 15m, got %v", hb1.Uptime)
	}

	// Check immediately after - should return nil
	if hb := d.CheckHeartbeat(t1.Add(time.Second), 15*time.Minute); hb != nil {
		t.Error("should not return heartbeat immediately after previous")
	}

	// Second heartbeat after interval from first
	if hb := d.CheckHeartbeat(t1.Add(15*time.Minute), 15*time.Minute); hb == nil {
		t.Fatal("should return second heartbeat")
	}
}

func TestMultipleHeartbeatsAccumulateCounts(t *testing.T) {
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewDetector(startTime)
	d.Process(Input{PoseDown: false, Time: startTime})

	d.Process(Input{PoseDown: true, Time: startTime.Add(time.Second)})

	hb1 := d.CheckHeartbeat(startTime.Add(15*time.Minute), 15*time.Minute)
	if hb1 == nil {
		t.Fatal("should return first heartbeat")
	}
	if hb1.Counts.PoseDown != 1 {
		t.Errorf("first heartbeat: expected PoseDown=1, got %d", hb1.Counts.PoseDown)
	}

	d.Process(Input{PoseDown: false, Time: startTime.Add(16 * time.Minute)})

	hb2 := d.CheckHeartbeat(startTime.Add(30*time.Minute), 15*time.Minute)
	if hb2 == nil {
		t.Fatal("should return second heartbeat")
	}
	if hb2.Counts.PoseDown != 1 {
		t.Errorf("second heartbeat: expected PoseDown=1, got %d", hb2.Counts.PoseDown)
	}
	if hb2.Counts.PoseUp != 1 {
		t.Errorf("second heartbeat: expected PoseUp=1, got %d", hb2.Counts.PoseUp)
	}
}
