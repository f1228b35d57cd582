package servo

// FakeOutput records servo commands for test assertions.
type FakeOutput struct {
	// FrequencyHz is the last frequency set.
	FrequencyHz int

	// Duties contains every duty command written, in order.
	Duties []uint16

	// FrequencyError, if set, will be returned by SetFrequency.
	FrequencyError error

	// DutyError, if set, will be returned by SetDuty.
	DutyError error
}

// NewFakeOutput creates a FakeOutput for testing.
func NewFakeOutput() *FakeOutput {
	return &FakeOutput{}
}

// SetFrequency records the frequency.
func (f *FakeOutput) SetFrequency(hz int) error {
	if f.FrequencyError != nil {
		return f.FrequencyError
	}
	f.FrequencyHz = hz
	return nil
}

// SetDuty records the duty command.
func (f *FakeOutput) SetDuty(duty uint16) error {
	if f.DutyError != nil {
		return f.DutyError
	}
	f.Duties = append(f.Duties, duty)
	return nil
}

// Last returns the most recent duty and whether any was written.
func (f *FakeOutput) Last() (uint16, bool) {
	if len(f.Duties) == 0 {
		return 0, false
	}
	return f.Duties[len(f.Duties)-1], true
}

// Reset clears recorded commands.
func (f *FakeOutput) Reset() {
	f.FrequencyHz = 0
	f.Duties = nil
	f.FrequencyError = nil
	f.DutyError = nil
}
