package logic

import "time"

// DigitalInput reports whether a button is currently held down.
// Line polarity is resolved by the implementation.
type DigitalInput interface {
	Pressed() (bool, error)
}

// Toggle debounces a push button and flips a durable boolean on every
// qualifying press.
//
// The timer counts time since the last observed raw transition. A press flips
// the output only on the first tick it is seen, and only if the line was quiet
// for at least the debounce window before it. Contact chatter therefore resets
// the timer and never qualifies.
type Toggle struct {
	in          DigitalInput
	window      time.Duration
	sinceEdge   time.Duration
	lastPressed bool
	on          bool
	flips       int
}

// NewToggle creates a Toggle reading from in. The output starts off and the
// line is assumed released.
func NewToggle(in DigitalInput, window time.Duration) *Toggle {
	return &Toggle{
		in:     in,
		window: window,
	}
}

// Update advances the debounce timer by elapsed and samples the input once.
// Non-positive elapsed values are ignored. On a read error the elapsed time
// still counts but the previous observation is kept.
func (t *Toggle) Update(elapsed time.Duration) error {
	if elapsed <= 0 {
		return nil
	}
	t.sinceEdge += elapsed

	pressed, err := t.in.Pressed()
	if err != nil {
		return err
	}

	if pressed != t.lastPressed {
		if pressed && t.sinceEdge >= t.window {
			t.on = !t.on
			t.flips++
		}
		t.sinceEdge = 0
	}
	t.lastPressed = pressed
	return nil
}

// Get returns the current toggle output.
func (t *Toggle) Get() bool {
	return t.on
}

// Flips returns how many times the output has changed.
func (t *Toggle) Flips() int {
	return t.flips
}
