// Package config holds the arm-controller settings: built-in defaults, an
// optional YAML file, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/arm-controller/internal/analog"
	"github.com/sweeney/arm-controller/internal/gpio"
	"github.com/sweeney/arm-controller/internal/logic"
	"github.com/sweeney/arm-controller/internal/servo"
)

// Config is the complete daemon configuration.
type Config struct {
	Analog  AnalogConfig  `yaml:"analog"`
	Button  ButtonConfig  `yaml:"button"`
	Servo   ServoConfig   `yaml:"servo"`
	Control ControlConfig `yaml:"control"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	HTTP    HTTPConfig    `yaml:"http"`
}

// AnalogConfig locates the potentiometer converter.
type AnalogConfig struct {
	Bus      string `yaml:"bus"`
	Address  uint16 `yaml:"address"`
	ChannelX int    `yaml:"channel_x"`
	ChannelY int    `yaml:"channel_y"`
}

// ButtonConfig locates the pen toggle button.
type ButtonConfig struct {
	Chip      string `yaml:"chip"`
	Line      int    `yaml:"line"`
	ActiveLow bool   `yaml:"active_low"`
}

// ServoConfig locates the PWM controller and sets the servo geometry.
type ServoConfig struct {
	Bus          string        `yaml:"bus"`
	Address      uint16        `yaml:"address"`
	Shoulder     int           `yaml:"shoulder"`
	Elbow        int           `yaml:"elbow"`
	Wrist        int           `yaml:"wrist"`
	FrequencyHz  int           `yaml:"frequency_hz"`
	MinPulse     time.Duration `yaml:"min_pulse"`
	MaxPulse     time.Duration `yaml:"max_pulse"`
	ShoulderTrim float64       `yaml:"shoulder_trim"`
	ElbowTrim    float64       `yaml:"elbow_trim"`
	WristDown    float64       `yaml:"wrist_down"`
	WristUp      float64       `yaml:"wrist_up"`
}

// RangeConfig is a joint angle range in degrees.
type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ControlConfig holds the loop timing and signal conditioning parameters.
type ControlConfig struct {
	Tick          time.Duration `yaml:"tick"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	Debounce      time.Duration `yaml:"debounce"`
	Smoothing     float64       `yaml:"smoothing"`
	ShoulderRange RangeConfig   `yaml:"shoulder_range"`
	ElbowRange    RangeConfig   `yaml:"elbow_range"`
}

// MQTTConfig holds the telemetry broker settings.
type MQTTConfig struct {
	Broker    string        `yaml:"broker"`
	ClientID  string        `yaml:"client_id"`
	Heartbeat time.Duration `yaml:"heartbeat"`
	// WSBroker is the websocket URL for the live status page. "=broker"
	// derives it from Broker and "off" disables it.
	WSBroker string `yaml:"ws_broker"`
}

// HTTPConfig holds the status server settings.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	drv := logic.DefaultDriverConfig()
	return Config{
		Analog: AnalogConfig{
			Bus:      analog.DefaultBus,
			Address:  analog.DefaultAddress,
			ChannelX: analog.DefaultChannelX,
			ChannelY: analog.DefaultChannelY,
		},
		Button: ButtonConfig{
			Chip:      gpio.DefaultChip,
			Line:      gpio.DefaultLine,
			ActiveLow: true,
		},
		Servo: ServoConfig{
			Bus:         servo.DefaultBus,
			Address:     servo.DefaultAddress,
			Shoulder:    servo.DefaultShoulder,
			Elbow:       servo.DefaultElbow,
			Wrist:       servo.DefaultWrist,
			FrequencyHz: drv.FrequencyHz,
			MinPulse:    drv.MinPulse,
			MaxPulse:    drv.MaxPulse,
			WristDown:   drv.WristDown,
			WristUp:     drv.WristUp,
		},
		Control: ControlConfig{
			Tick:          20 * time.Millisecond,
			PollInterval:  50 * time.Millisecond,
			Debounce:      50 * time.Millisecond,
			Smoothing:     logic.DefaultSmoothing,
			ShoulderRange: RangeConfig{Min: logic.MinAngle, Max: logic.MaxAngle},
			ElbowRange:    RangeConfig{Min: logic.MinAngle, Max: logic.MaxAngle},
		},
		MQTT: MQTTConfig{
			Broker:    "tcp://192.168.1.200:1883",
			ClientID:  "arm-controller",
			Heartbeat: 15 * time.Minute,
			WSBroker:  "=broker",
		},
		HTTP: HTTPConfig{
			Addr: ":80",
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	if c.Control.Tick <= 0 {
		errs = append(errs, fmt.Errorf("control.tick %v must be positive", c.Control.Tick))
	}
	if c.Control.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("control.poll_interval %v must be positive", c.Control.PollInterval))
	}
	if c.Control.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("control.debounce %v must be positive", c.Control.Debounce))
	}
	if !(c.Control.Smoothing > 0 && c.Control.Smoothing <= 1) {
		errs = append(errs, fmt.Errorf("control.smoothing %v outside (0, 1]", c.Control.Smoothing))
	}
	if c.Analog.ChannelX == c.Analog.ChannelY {
		errs = append(errs, fmt.Errorf("analog channels x and y are both %d", c.Analog.ChannelX))
	}
	if c.Servo.Shoulder == c.Servo.Elbow || c.Servo.Shoulder == c.Servo.Wrist || c.Servo.Elbow == c.Servo.Wrist {
		errs = append(errs, errors.New("servo channels must be distinct"))
	}
	if err := c.DriverConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("servo: %w", err))
	}
	if c.MQTT.Heartbeat < 0 {
		errs = append(errs, fmt.Errorf("mqtt.heartbeat %v must not be negative", c.MQTT.Heartbeat))
	}

	return errors.Join(errs...)
}

// AxisConfig returns the AxisPair parameters.
func (c Config) AxisConfig() logic.AxisConfig {
	return logic.AxisConfig{
		PollInterval: c.Control.PollInterval,
		Smoothing:    c.Control.Smoothing,
	}
}

// DriverConfig returns the Driver parameters.
func (c Config) DriverConfig() logic.DriverConfig {
	return logic.DriverConfig{
		FrequencyHz:  c.Servo.FrequencyHz,
		MinPulse:     c.Servo.MinPulse,
		MaxPulse:     c.Servo.MaxPulse,
		WristDown:    c.Servo.WristDown,
		WristUp:      c.Servo.WristUp,
		ShoulderTrim: c.Servo.ShoulderTrim,
		ElbowTrim:    c.Servo.ElbowTrim,
	}
}

// ShoulderMap maps the x axis onto the shoulder range.
func (c Config) ShoulderMap() logic.AxisMap {
	return logic.AxisMap{MinDeg: c.Control.ShoulderRange.Min, MaxDeg: c.Control.ShoulderRange.Max}
}

// ElbowMap maps the y axis onto the elbow range.
func (c Config) ElbowMap() logic.AxisMap {
	return logic.AxisMap{MinDeg: c.Control.ElbowRange.Min, MaxDeg: c.Control.ElbowRange.Max}
}
