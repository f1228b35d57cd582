// Package servo provides PWM servo outputs with hardware abstraction.
// The real implementation drives a PCA9685 controller over I2C using periph.io.
// The fake implementation records commands for tests.
package servo

// Output is one servo channel. It satisfies logic.PWMOutput.
type Output interface {
	SetFrequency(hz int) error
	SetDuty(duty uint16) error
}

// Defaults for a PCA9685 breakout on the Pi's first I2C bus.
const (
	DefaultBus      = "I2C1"
	DefaultAddress  = 0x40
	DefaultShoulder = 0
	DefaultElbow    = 1
	DefaultWrist    = 2
)

// NumChannels is the number of outputs on one PCA9685.
const NumChannels = 16
