package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sweeney/arm-controller/internal/config"
)

// options are the command-line settings that are not part of the config file.
type options struct {
	configPath string
	printState bool
	sweep      bool
	center     bool
	debug      bool
}

// bindFlags registers a flag for each commonly tuned config field, with the
// current field value as its default.
func bindFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.DurationVar(&cfg.Control.Tick, "tick", cfg.Control.Tick, "Control loop period")
	fs.DurationVar(&cfg.Control.PollInterval, "poll", cfg.Control.PollInterval, "Potentiometer polling interval")
	fs.DurationVar(&cfg.Control.Debounce, "debounce", cfg.Control.Debounce, "Button debounce window")
	fs.Float64Var(&cfg.Control.Smoothing, "smoothing", cfg.Control.Smoothing, "EMA smoothing factor in (0, 1]")
	fs.Float64Var(&cfg.Servo.ShoulderTrim, "shoulder-trim", cfg.Servo.ShoulderTrim, "Shoulder trim in degrees")
	fs.Float64Var(&cfg.Servo.ElbowTrim, "elbow-trim", cfg.Servo.ElbowTrim, "Elbow trim in degrees")
	fs.StringVar(&cfg.Button.Chip, "button-chip", cfg.Button.Chip, "GPIO chip for the pen button")
	fs.IntVar(&cfg.Button.Line, "button-line", cfg.Button.Line, "GPIO line (BCM) for the pen button")
	fs.StringVar(&cfg.MQTT.Broker, "broker", cfg.MQTT.Broker, "MQTT broker address")
	fs.StringVar(&cfg.MQTT.ClientID, "client-id", cfg.MQTT.ClientID, "MQTT client ID")
	fs.DurationVar(&cfg.MQTT.Heartbeat, "heartbeat", cfg.MQTT.Heartbeat, "Heartbeat interval (0 to disable)")
	fs.StringVar(&cfg.MQTT.WSBroker, "ws-broker", cfg.MQTT.WSBroker, `MQTT websocket URL for live UI ("=broker" derives from --broker, "off" disables)`)
	fs.StringVar(&cfg.HTTP.Addr, "http", cfg.HTTP.Addr, "HTTP status address (empty to disable)")
}

// parseFlags builds the effective configuration. Values come from the
// defaults, then the -config file, then flags given on the command line.
func parseFlags(args []string, stderr io.Writer) (config.Config, options, error) {
	cfg := config.Default()
	var opts options

	fs := flag.NewFlagSet("arm-controller", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.BoolVar(&opts.printState, "print-state", false, "Print potentiometer and button state and exit")
	fs.BoolVar(&opts.sweep, "sweep", false, "Step shoulder and elbow through their range and exit")
	fs.BoolVar(&opts.center, "center", false, "Drive all joints to 90 degrees and exit")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	bindFlags(fs, &cfg)

	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}

	if opts.configPath != "" {
		// The bound fields are about to be replaced, so remember what the
		// command line asked for first.
		explicit := map[string]string{}
		fs.Visit(func(f *flag.Flag) {
			explicit[f.Name] = f.Value.String()
		})

		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, opts, err
		}
		cfg = loaded

		for name, value := range explicit {
			if err := fs.Set(name, value); err != nil {
				return cfg, opts, fmt.Errorf("reapply -%s: %w", name, err)
			}
		}
	}

	modes := 0
	for _, on := range []bool{opts.printState, opts.sweep, opts.center} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return cfg, opts, errors.New("-print-state, -sweep and -center are mutually exclusive")
	}

	return cfg, opts, nil
}
