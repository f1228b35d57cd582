package analog

import (
	"fmt"
	"math"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/host/v3"
)

// Supply is the potentiometer reference voltage.
const Supply = 3300 * physic.MilliVolt

// sampleRate is the ADS1115 data rate used for single-shot conversions.
const sampleRate = 128 * physic.Hertz

// ADS1115 is an open ADS1115 converter.
type ADS1115 struct {
	bus i2c.BusCloser
	dev *ads1x15.Dev
}

// OpenADS1115 initializes the periph host drivers and opens the converter at
// addr on the named I2C bus.
func OpenADS1115(busName string, addr uint16) (*ADS1115, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	dev, err := ads1x15.NewADS1115(bus, &ads1x15.Opts{I2cAddress: addr})
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("open ads1115 at %#x: %w", addr, err)
	}

	return &ADS1115{bus: bus, dev: dev}, nil
}

var channels = [...]ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

// Channel returns the single-ended input n (0-3).
func (a *ADS1115) Channel(n int) (*RealChannel, error) {
	if n < 0 || n >= len(channels) {
		return nil, fmt.Errorf("ads1115 channel %d out of range 0-%d", n, len(channels)-1)
	}

	pin, err := a.dev.PinForChannel(channels[n], Supply, sampleRate, ads1x15.BestQuality)
	if err != nil {
		return nil, fmt.Errorf("ads1115 channel %d: %w", n, err)
	}
	return &RealChannel{pin: pin, n: n}, nil
}

// Close releases the I2C bus.
func (a *ADS1115) Close() error {
	if err := a.bus.Close(); err != nil {
		return fmt.Errorf("close i2c bus: %w", err)
	}
	return nil
}

// RealChannel reads one ADS1115 input.
type RealChannel struct {
	pin ads1x15.PinADC
	n   int
}

// ReadRaw returns the measured voltage as a 16-bit count of Supply.
// Noise near the rails can put the count slightly below zero or above
// FullScale16.
func (c *RealChannel) ReadRaw() (int32, error) {
	s, err := c.pin.Read()
	if err != nil {
		return 0, fmt.Errorf("read ads1115 channel %d: %w", c.n, err)
	}
	return int32(math.Round(float64(s.V) / float64(Supply) * FullScale16)), nil
}

// FullScale returns FullScale16.
func (c *RealChannel) FullScale() int32 {
	return FullScale16
}

// Close halts any running conversion.
func (c *RealChannel) Close() error {
	if err := c.pin.Halt(); err != nil {
		return fmt.Errorf("halt ads1115 channel %d: %w", c.n, err)
	}
	return nil
}
