package logic

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Servo travel limits in degrees.
const (
	MinAngle = 0.0
	MaxAngle = 180.0
)

// Defaults for a hobby servo on a 50 Hz frame.
const (
	DefaultFrequencyHz = 50
	DefaultMinPulse    = 500 * time.Microsecond
	DefaultMaxPulse    = 2500 * time.Microsecond
	DefaultWristDown   = 30.0
	DefaultWristUp     = 0.0
)

// MaxDuty is the full-scale 16-bit duty command.
const MaxDuty = math.MaxUint16

// PWMOutput is a single servo output channel.
type PWMOutput interface {
	SetFrequency(hz int) error
	SetDuty(duty uint16) error
}

// DriverConfig holds the fixed parameters of a Driver.
type DriverConfig struct {
	FrequencyHz int
	// Pulse widths commanded at MinAngle and MaxAngle.
	MinPulse time.Duration
	MaxPulse time.Duration
	// Wrist presets in degrees.
	WristDown float64
	WristUp   float64
	// Mounting trims added to the shoulder and elbow angles before clamping.
	ShoulderTrim float64
	ElbowTrim    float64
}

// DefaultDriverConfig returns the standard 50 Hz, 500-2500us configuration.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		FrequencyHz: DefaultFrequencyHz,
		MinPulse:    DefaultMinPulse,
		MaxPulse:    DefaultMaxPulse,
		WristDown:   DefaultWristDown,
		WristUp:     DefaultWristUp,
	}
}

// Validate checks that the pulse range fits inside one PWM period.
func (c DriverConfig) Validate() error {
	if c.FrequencyHz <= 0 {
		return fmt.Errorf("frequency %d Hz must be positive", c.FrequencyHz)
	}
	if c.MinPulse < 0 || c.MaxPulse <= c.MinPulse {
		return fmt.Errorf("pulse range %v-%v is empty", c.MinPulse, c.MaxPulse)
	}
	if period := time.Second / time.Duration(c.FrequencyHz); c.MaxPulse > period {
		return fmt.Errorf("max pulse %v exceeds %v period", c.MaxPulse, period)
	}
	return nil
}

// DriverStats counts commands since construction.
type DriverStats struct {
	Writes      int
	Clamped     int // angles that were saturated into [MinAngle, MaxAngle]
	WriteErrors int
}

// Driver translates joint angles into duty commands for the shoulder, elbow
// and wrist servos. All three outputs share one drive frequency.
type Driver struct {
	shoulder PWMOutput
	elbow    PWMOutput
	wrist    PWMOutput
	cfg      DriverConfig
	period   time.Duration
	last     Angles
	stats    DriverStats
}

// NewDriver configures the drive frequency on every output.
func NewDriver(shoulder, elbow, wrist PWMOutput, cfg DriverConfig) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	outputs := []struct {
		name string
		out  PWMOutput
	}{
		{"shoulder", shoulder},
		{"elbow", elbow},
		{"wrist", wrist},
	}
	for _, o := range outputs {
		if err := o.out.SetFrequency(cfg.FrequencyHz); err != nil {
			return nil, fmt.Errorf("set %s frequency: %w", o.name, err)
		}
	}

	return &Driver{
		shoulder: shoulder,
		elbow:    elbow,
		wrist:    wrist,
		cfg:      cfg,
		period:   time.Second / time.Duration(cfg.FrequencyHz),
	}, nil
}

// ClampAngle saturates deg into [MinAngle, MaxAngle]. NaN maps to MinAngle.
func ClampAngle(deg float64) float64 {
	switch {
	case math.IsNaN(deg), deg < MinAngle:
		return MinAngle
	case deg > MaxAngle:
		return MaxAngle
	}
	return deg
}

// TranslateAngle maps deg, clamped to [MinAngle, MaxAngle], linearly onto the
// pulse range and returns it as a 16-bit fraction of period.
func TranslateAngle(deg float64, minPulse, maxPulse, period time.Duration) uint16 {
	deg = ClampAngle(deg)
	pulse := float64(minPulse) + deg/MaxAngle*float64(maxPulse-minPulse)
	duty := math.Round(pulse / float64(period) * MaxDuty)
	if duty > MaxDuty {
		return MaxDuty
	}
	return uint16(duty)
}

// Translate converts an angle into this driver's duty command.
func (d *Driver) Translate(deg float64) uint16 {
	return TranslateAngle(deg, d.cfg.MinPulse, d.cfg.MaxPulse, d.period)
}

func (d *Driver) command(out PWMOutput, deg float64) (float64, error) {
	clamped := ClampAngle(deg)
	if clamped != deg {
		d.stats.Clamped++
	}
	d.stats.Writes++
	if err := out.SetDuty(d.Translate(clamped)); err != nil {
		d.stats.WriteErrors++
		return clamped, err
	}
	return clamped, nil
}

// SetAxisAngles drives the shoulder to alpha and the elbow to beta, both in
// degrees. Trims are applied before the clamp.
func (d *Driver) SetAxisAngles(alpha, beta float64) error {
	var errs []error

	shoulder, err := d.command(d.shoulder, alpha+d.cfg.ShoulderTrim)
	if err != nil {
		errs = append(errs, fmt.Errorf("shoulder: %w", err))
	}
	d.last.Shoulder = shoulder

	elbow, err := d.command(d.elbow, beta+d.cfg.ElbowTrim)
	if err != nil {
		errs = append(errs, fmt.Errorf("elbow: %w", err))
	}
	d.last.Elbow = elbow

	return errors.Join(errs...)
}

// SetPose drives the wrist to the down or up preset.
func (d *Driver) SetPose(down bool) error {
	if down {
		return d.SetWristAngle(d.cfg.WristDown)
	}
	return d.SetWristAngle(d.cfg.WristUp)
}

// SetWristAngle drives the wrist to an arbitrary angle. No trim applies.
func (d *Driver) SetWristAngle(deg float64) error {
	wrist, err := d.command(d.wrist, deg)
	d.last.Wrist = wrist
	if err != nil {
		return fmt.Errorf("wrist: %w", err)
	}
	return nil
}

// Angles returns the last commanded joint angles.
func (d *Driver) Angles() Angles {
	return d.last
}

// Stats returns a copy of the command counters.
func (d *Driver) Stats() DriverStats {
	return d.stats
}
