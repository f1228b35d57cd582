//go:build linux

package gpio

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealButton reads the button from actual hardware using the Linux GPIO
// character device.
type RealButton struct {
	chip      *gpiocdev.Chip
	line      *gpiocdev.Line
	activeLow bool
}

// NewRealButton requests offset on the named chip as an input. Active-low
// buttons get a pull-up, active-high buttons a pull-down.
func NewRealButton(chipName string, offset int, activeLow bool) (*RealButton, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(offset, gpiocdev.AsInput, biasFor(activeLow))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button line %d: %w", offset, err)
	}

	return &RealButton{
		chip:      chip,
		line:      line,
		activeLow: activeLow,
	}, nil
}

func biasFor(activeLow bool) gpiocdev.LineReqOption {
	if activeLow {
		return gpiocdev.WithPullUp
	}
	return gpiocdev.WithPullDown
}

// Pressed returns the logical button state.
func (b *RealButton) Pressed() (bool, error) {
	level, err := b.line.Value()
	if err != nil {
		return false, fmt.Errorf("read button line: %w", err)
	}
	return IsPressed(level, b.activeLow), nil
}

// Close releases GPIO resources.
// Reconfigures the line to input with pull-down (matching Pi boot defaults)
// before closing to ensure clean state for system shutdown/reboot.
func (b *RealButton) Close() error {
	var errs []error

	if b.line != nil {
		if err := b.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure button line: %w", err))
		}
		if err := b.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button line: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	return errors.Join(errs...)
}
