// Package gpio provides the push-button input with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Button reads the pen toggle push button. It satisfies logic.DigitalInput.
type Button interface {
	// Pressed returns the logical state of the button after applying the
	// line polarity.
	Pressed() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Defaults for a Raspberry Pi header.
const (
	DefaultChip = "gpiochip0"
	DefaultLine = 12 // BCM numbering
)

// IsPressed converts a raw line level into the logical pressed state.
// An active-low button is wired to ground with a pull-up, so a low level
// means pressed.
func IsPressed(level int, activeLow bool) bool {
	if activeLow {
		return level == 0
	}
	return level != 0
}
