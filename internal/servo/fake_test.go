package servo

import (
	"errors"
	"testing"

	"github.com/sweeney/arm-controller/internal/logic"
)

var _ logic.PWMOutput = (*FakeOutput)(nil)
var _ logic.PWMOutput = (*Channel)(nil)

func TestFakeOutputRecords(t *testing.T) {
	f := NewFakeOutput()

	if _, ok := f.Last(); ok {
		t.Error("Last should report nothing written")
	}

	f.SetFrequency(50)
	f.SetDuty(1638)
	f.SetDuty(8192)

	if f.FrequencyHz != 50 {
		t.Errorf("frequency: got %d, want 50", f.FrequencyHz)
	}
	if len(f.Duties) != 2 {
		t.Fatalf("expected 2 duties, got %d", len(f.Duties))
	}
	if d, ok := f.Last(); !ok || d != 8192 {
		t.Errorf("Last: got (%d, %v), want (8192, true)", d, ok)
	}
}

func TestFakeOutputErrors(t *testing.T) {
	f := NewFakeOutput()
	f.FrequencyError = errors.New("freq")
	f.DutyError = errors.New("duty")

	if err := f.SetFrequency(50); err == nil {
		t.Error("expected frequency error")
	}
	if err := f.SetDuty(1); err == nil {
		t.Error("expected duty error")
	}
	if len(f.Duties) != 0 {
		t.Error("failed writes should not be recorded")
	}
}

func TestFakeOutputReset(t *testing.T) {
	f := NewFakeOutput()
	f.SetFrequency(50)
	f.SetDuty(100)
	f.DutyError = errors.New("duty")

	f.Reset()

	if f.FrequencyHz != 0 || f.Duties != nil || f.DutyError != nil {
		t.Errorf("Reset did not clear state: %+v", f)
	}
}

func TestFakeOutputsWithDriver(t *testing.T) {
	shoulder, elbow, wrist := NewFakeOutput(), NewFakeOutput(), NewFakeOutput()

	d, err := logic.NewDriver(shoulder, elbow, wrist, logic.DefaultDriverConfig())
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	for _, f := range []*FakeOutput{shoulder, elbow, wrist} {
		if f.FrequencyHz != logic.DefaultFrequencyHz {
			t.Errorf("frequency: got %d, want %d", f.FrequencyHz, logic.DefaultFrequencyHz)
		}
	}

	d.SetAxisAngles(200, 90)
	d.SetPose(true)

	if got, _ := shoulder.Last(); got != d.Translate(180) {
		t.Errorf("shoulder: got %d, want %d", got, d.Translate(180))
	}
	if got, _ := elbow.Last(); got != d.Translate(90) {
		t.Errorf("elbow: got %d, want %d", got, d.Translate(90))
	}
	if got, _ := wrist.Last(); got != d.Translate(logic.DefaultWristDown) {
		t.Errorf("wrist: got %d, want %d", got, d.Translate(logic.DefaultWristDown))
	}
}
