package analog

import "errors"

// FakeChannel is a test double that returns scripted raw counts.
type FakeChannel struct {
	// Samples contains scripted raw values.
	// Each call to ReadRaw() consumes the next sample.
	Samples []int32

	// Scale is returned by FullScale. Zero means FullScale16.
	Scale int32

	// index tracks current position in Samples
	index int

	// Reads counts calls to ReadRaw
	Reads int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by ReadRaw()
	ReadError error
}

// NewFakeChannel creates a FakeChannel with the given samples.
func NewFakeChannel(samples ...int32) *FakeChannel {
	return &FakeChannel{Samples: samples}
}

// ReadRaw returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeChannel) ReadRaw() (int32, error) {
	f.Reads++
	if f.ReadError != nil {
		return 0, f.ReadError
	}

	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return sample, nil
}

// FullScale returns Scale, or FullScale16 if unset.
func (f *FakeChannel) FullScale() int32 {
	if f.Scale == 0 {
		return FullScale16
	}
	return f.Scale
}

// Close marks the channel as closed.
func (f *FakeChannel) Close() error {
	f.Closed = true
	return nil
}
