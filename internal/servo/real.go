package servo

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/pca9685"
	"periph.io/x/host/v3"
)

// Board is an open PCA9685 controller. The chip has a single prescaler, so
// every channel shares one frequency.
type Board struct {
	bus  i2c.BusCloser
	dev  *pca9685.Dev
	freq int
}

// OpenPCA9685 initializes the periph host drivers and opens the controller at
// addr on the named I2C bus.
func OpenPCA9685(busName string, addr uint16) (*Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	dev, err := pca9685.NewI2C(bus, addr)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("open pca9685 at %#x: %w", addr, err)
	}

	return &Board{bus: bus, dev: dev}, nil
}

// Channel returns output n (0-15).
func (b *Board) Channel(n int) (*Channel, error) {
	if n < 0 || n >= NumChannels {
		return nil, fmt.Errorf("pca9685 channel %d out of range 0-%d", n, NumChannels-1)
	}
	return &Channel{board: b, n: n}, nil
}

func (b *Board) setFrequency(hz int) error {
	if b.freq == hz {
		return nil
	}
	if err := b.dev.SetPwmFreq(physic.Frequency(hz) * physic.Hertz); err != nil {
		return fmt.Errorf("set pca9685 frequency %d Hz: %w", hz, err)
	}
	b.freq = hz
	return nil
}

// Close turns every output off and releases the I2C bus.
func (b *Board) Close() error {
	var errs []error
	if err := b.dev.SetAllPwm(0, 0); err != nil {
		errs = append(errs, fmt.Errorf("stop outputs: %w", err))
	}
	if err := b.bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close i2c bus: %w", err))
	}
	return errors.Join(errs...)
}

// Channel is one PCA9685 output.
type Channel struct {
	board *Board
	n     int
}

// SetFrequency sets the shared board frequency. Repeating the current value
// does not touch the chip.
func (c *Channel) SetFrequency(hz int) error {
	return c.board.setFrequency(hz)
}

// SetDuty writes a 16-bit duty command, truncated to the chip's 12 bits.
func (c *Channel) SetDuty(duty uint16) error {
	if err := c.board.dev.SetPwm(c.n, 0, gpio.Duty(duty>>4)); err != nil {
		return fmt.Errorf("set pca9685 channel %d: %w", c.n, err)
	}
	return nil
}
