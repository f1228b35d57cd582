// Package analog provides the potentiometer inputs with hardware abstraction.
// The real implementation reads an ADS1115 converter over I2C using periph.io.
// The fake implementation allows testing without hardware.
package analog

// Channel is one raw analog input. It satisfies logic.AnalogChannel.
type Channel interface {
	ReadRaw() (int32, error)
	FullScale() int32
	Close() error
}

// FullScale16 is the count reported for a reading at the supply voltage.
const FullScale16 = 65535

// Defaults for an ADS1115 breakout on the Pi's first I2C bus.
const (
	DefaultBus      = "I2C1"
	DefaultAddress  = 0x48
	DefaultChannelX = 0
	DefaultChannelY = 1
)
