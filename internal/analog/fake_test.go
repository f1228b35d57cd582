package analog

import (
	"errors"
	"testing"

	"github.com/sweeney/arm-controller/internal/logic"
)

var _ logic.AnalogChannel = (*FakeChannel)(nil)
var _ logic.AnalogChannel = (*RealChannel)(nil)

func TestFakeChannelReadRaw(t *testing.T) {
	f := NewFakeChannel(100, -5, 70000)

	want := []int32{100, -5, 70000, 70000}
	for i, w := range want {
		got, err := f.ReadRaw()
		if err != nil {
			t.Fatalf("sample %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Errorf("sample %d: got %d, want %d", i, got, w)
		}
	}
}

func TestFakeChannelFullScale(t *testing.T) {
	f := NewFakeChannel(0)
	if f.FullScale() != FullScale16 {
		t.Errorf("default full scale: got %d, want %d", f.FullScale(), FullScale16)
	}
	f.Scale = 32767
	if f.FullScale() != 32767 {
		t.Errorf("custom full scale: got %d, want 32767", f.FullScale())
	}
}

func TestFakeChannelErrors(t *testing.T) {
	if _, err := NewFakeChannel().ReadRaw(); err == nil {
		t.Error("expected error with no samples")
	}

	f := NewFakeChannel(1)
	f.ReadError = errors.New("simulated error")
	if _, err := f.ReadRaw(); err == nil {
		t.Error("expected error to be returned")
	}
}

func TestFakeChannelDrivesAxisPair(t *testing.T) {
	x := NewFakeChannel(-40, 32768)
	y := NewFakeChannel(FullScale16+300, 0)

	a, err := logic.NewAxisPair(x, y, logic.AxisConfig{})
	if err != nil {
		t.Fatalf("NewAxisPair: %v", err)
	}

	gx, gy := a.Get()
	if gx != 0 || gy != 1 {
		t.Errorf("seed should be clamped to (0, 1), got (%v, %v)", gx, gy)
	}

	if err := a.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	gx, gy = a.Get()
	if gx <= 0 || gx >= 0.5 {
		t.Errorf("x should move toward 0.5, got %v", gx)
	}
	if gy >= 1 || gy <= 0 {
		t.Errorf("y should move toward 0, got %v", gy)
	}
}
