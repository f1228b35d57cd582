package logic

import (
	"errors"
	"math"
	"testing"
	"time"
)

// scriptedChannel returns queued raw samples, repeating the last one.
type scriptedChannel struct {
	samples []int32
	scale   int32
	reads   int
	err     error
}

func (c *scriptedChannel) ReadRaw() (int32, error) {
	if c.err != nil {
		return 0, c.err
	}
	i := c.reads
	if i >= len(c.samples) {
		i = len(c.samples) - 1
	}
	c.reads++
	return c.samples[i], nil
}

func (c *scriptedChannel) FullScale() int32 {
	return c.scale
}

func constant(raw int32) *scriptedChannel {
	return &scriptedChannel{samples: []int32{raw}, scale: 65535}
}

func newPair(t *testing.T, x, y AnalogChannel, poll time.Duration) *AxisPair {
	t.Helper()
	a, err := NewAxisPair(x, y, AxisConfig{PollInterval: poll})
	if err != nil {
		t.Fatalf("NewAxisPair: %v", err)
	}
	return a
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{-0.0001, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.02, 1},
		{1e9, 1},
		{math.Inf(-1), 0},
		{math.Inf(1), 1},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAlwaysInRange(t *testing.T) {
	for raw := int32(-70000); raw <= 140000; raw += 997 {
		v := Normalize(raw, 65535)
		if v < 0 || v > 1 {
			t.Fatalf("Normalize(%d) = %v, outside [0, 1]", raw, v)
		}
	}

	if got := Normalize(65535, 65535); got != 1 {
		t.Errorf("full scale: got %v, want 1", got)
	}
	if got := Normalize(0, 65535); got != 0 {
		t.Errorf("zero: got %v, want 0", got)
	}
	if got := Normalize(100, 0); got != 0 {
		t.Errorf("zero full scale: got %v, want 0", got)
	}
}

func TestNewAxisPairSeedsFromRead(t *testing.T) {
	a := newPair(t, constant(16384), constant(49151), 100*time.Millisecond)

	x, y := a.Get()
	if math.Abs(x-16384.0/65535) > 1e-12 {
		t.Errorf("x: got %v, want %v", x, 16384.0/65535)
	}
	if math.Abs(y-49151.0/65535) > 1e-12 {
		t.Errorf("y: got %v, want %v", y, 49151.0/65535)
	}
	if x == 0 || y == 0 {
		t.Error("seed should not be a zero default")
	}
}

func TestNewAxisPairSeedClampsOutOfRange(t *testing.T) {
	x := &scriptedChannel{samples: []int32{-120}, scale: 32767}
	y := &scriptedChannel{samples: []int32{33000}, scale: 32767}
	a := newPair(t, x, y, 100*time.Millisecond)

	gx, gy := a.Get()
	if gx != 0 || gy != 1 {
		t.Errorf("expected (0, 1), got (%v, %v)", gx, gy)
	}
	if a.Stats().Clamped != 2 {
		t.Errorf("expected 2 clamped samples, got %d", a.Stats().Clamped)
	}
}

func TestNewAxisPairSeedError(t *testing.T) {
	bad := &scriptedChannel{err: errors.New("i2c nack"), scale: 65535}

	if _, err := NewAxisPair(bad, constant(0), AxisConfig{}); err == nil {
		t.Error("expected error when x seed read fails")
	}
	if _, err := NewAxisPair(constant(0), bad, AxisConfig{}); err == nil {
		t.Error("expected error when y seed read fails")
	}
}

func TestNewAxisPairRejectsBadSmoothing(t *testing.T) {
	for _, s := range []float64{-0.1, 1.01, math.NaN()} {
		if _, err := NewAxisPair(constant(0), constant(0), AxisConfig{Smoothing: s}); err == nil {
			t.Errorf("smoothing %v: expected error", s)
		}
	}
	if _, err := NewAxisPair(constant(0), constant(0), AxisConfig{Smoothing: 1}); err != nil {
		t.Errorf("smoothing 1: unexpected error %v", err)
	}
}

func TestRefreshAppliesEMA(t *testing.T) {
	x := &scriptedChannel{samples: []int32{0, 65535}, scale: 65535}
	y := &scriptedChannel{samples: []int32{65535, 0}, scale: 65535}
	a := newPair(t, x, y, 0)

	if err := a.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	gx, gy := a.Get()
	if math.Abs(gx-DefaultSmoothing) > 1e-12 {
		t.Errorf("x: got %v, want %v", gx, DefaultSmoothing)
	}
	if math.Abs(gy-(1-DefaultSmoothing)) > 1e-12 {
		t.Errorf("y: got %v, want %v", gy, 1-DefaultSmoothing)
	}
}

func TestEMAConvergesWithoutOvershoot(t *testing.T) {
	x := &scriptedChannel{samples: []int32{13107, 45875}, scale: 65535} // 0.2 then 0.7
	y := &scriptedChannel{samples: []int32{52428, 6553}, scale: 65535}  // 0.8 then 0.1
	a := newPair(t, x, y, 0)

	targetX := Normalize(45875, 65535)
	targetY := Normalize(6553, 65535)
	prevX, prevY := a.Get()

	for i := 0; i < 200; i++ {
		if err := a.Refresh(); err != nil {
			t.Fatalf("refresh %d: %v", i, err)
		}
		gx, gy := a.Get()
		if gx < prevX || gx > targetX {
			t.Fatalf("refresh %d: x=%v not monotone toward %v (prev %v)", i, gx, targetX, prevX)
		}
		if gy > prevY || gy < targetY {
			t.Fatalf("refresh %d: y=%v not monotone toward %v (prev %v)", i, gy, targetY, prevY)
		}
		prevX, prevY = gx, gy
	}

	if math.Abs(prevX-targetX) > 1e-6 {
		t.Errorf("x did not converge: got %v, want %v", prevX, targetX)
	}
	if math.Abs(prevY-targetY) > 1e-6 {
		t.Errorf("y did not converge: got %v, want %v", prevY, targetY)
	}
}

func TestRefreshKeepsValueOnReadError(t *testing.T) {
	x := constant(32768)
	y := constant(65535)
	a := newPair(t, x, y, 0)
	beforeX, _ := a.Get()

	x.err = errors.New("bus timeout")
	if err := a.Refresh(); err == nil {
		t.Fatal("expected read error from Refresh")
	}

	gx, gy := a.Get()
	if gx != beforeX {
		t.Errorf("x changed on read error: %v -> %v", beforeX, gx)
	}
	if gy != 1 {
		t.Errorf("y should still refresh, got %v", gy)
	}
	if a.Stats().ReadErrors != 1 {
		t.Errorf("expected 1 read error, got %d", a.Stats().ReadErrors)
	}
}

func TestUpdatePollingCadence(t *testing.T) {
	x, y := constant(1000), constant(2000)
	a, err := NewAxisPair(x, y, AxisConfig{PollInterval: 100 * time.Millisecond, Smoothing: 0.15})
	if err != nil {
		t.Fatalf("NewAxisPair: %v", err)
	}

	wantRefreshes := []int{0, 0, 1}
	for i, want := range wantRefreshes {
		if err := a.Update(40 * time.Millisecond); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		if got := a.Stats().Refreshes; got != want {
			t.Errorf("after update %d: refreshes = %d, want %d", i, got, want)
		}
	}

	// Seed read plus exactly one refresh.
	if x.reads != 2 || y.reads != 2 {
		t.Errorf("expected 2 reads per channel, got x=%d y=%d", x.reads, y.reads)
	}
}

func TestUpdateTimerResetsAfterRefresh(t *testing.T) {
	a := newPair(t, constant(1000), constant(2000), 100*time.Millisecond)

	a.Update(150 * time.Millisecond) // refresh, timer reset to zero (not 50ms)
	a.Update(60 * time.Millisecond)
	if got := a.Stats().Refreshes; got != 1 {
		t.Errorf("expected 1 refresh, got %d", got)
	}
	a.Update(40 * time.Millisecond)
	if got := a.Stats().Refreshes; got != 2 {
		t.Errorf("expected 2 refreshes, got %d", got)
	}
}

func TestUpdateNonPositiveElapsedIsNoop(t *testing.T) {
	x := &scriptedChannel{samples: []int32{1000, 60000}, scale: 65535}
	y := &scriptedChannel{samples: []int32{2000, 50000}, scale: 65535}
	a := newPair(t, x, y, 100*time.Millisecond)
	a.Update(90 * time.Millisecond)

	beforeX, beforeY := a.Get()
	beforeStats := a.Stats()
	beforeTimer := a.timer

	for _, d := range []time.Duration{0, -5 * time.Millisecond, -time.Hour} {
		if err := a.Update(d); err != nil {
			t.Fatalf("Update(%v): %v", d, err)
		}
	}

	gx, gy := a.Get()
	if gx != beforeX || gy != beforeY {
		t.Errorf("values changed: (%v, %v) -> (%v, %v)", beforeX, beforeY, gx, gy)
	}
	if a.Stats() != beforeStats {
		t.Errorf("stats changed: %+v -> %+v", beforeStats, a.Stats())
	}
	if a.timer != beforeTimer {
		t.Errorf("timer changed: %v -> %v", beforeTimer, a.timer)
	}
}

func TestGetIsPure(t *testing.T) {
	x := constant(30000)
	a := newPair(t, x, constant(40000), 100*time.Millisecond)

	x1, y1 := a.Get()
	for i := 0; i < 5; i++ {
		x2, y2 := a.Get()
		if x1 != x2 || y1 != y2 {
			t.Fatalf("Get changed between calls: (%v, %v) -> (%v, %v)", x1, y1, x2, y2)
		}
	}
	if x.reads != 1 {
		t.Errorf("Get should not read hardware, reads=%d", x.reads)
	}
}
