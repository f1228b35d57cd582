package main

import (
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/sweeney/arm-controller/internal/config"
	"github.com/sweeney/arm-controller/internal/logic"
)

// Sweep range for servo calibration.
const (
	sweepStart = 20.0
	sweepEnd   = 180.0
	sweepStep  = 10.0
	sweepDwell = 2 * time.Second
)

// printState reads the potentiometers and the button once and prints them
// together with the joint angles they map to.
func printState(w io.Writer, hw *hardware, cfg config.Config) error {
	axes, err := logic.NewAxisPair(hw.x, hw.y, cfg.AxisConfig())
	if err != nil {
		return fmt.Errorf("read analog: %w", err)
	}
	pressed, err := hw.button.Pressed()
	if err != nil {
		return fmt.Errorf("read gpio: %w", err)
	}

	x, y := axes.Get()
	button := "released"
	if pressed {
		button = "pressed"
	}
	fmt.Fprintf(w, "X: %.3f, Y: %.3f, Button: %s\n", x, y, button)
	fmt.Fprintf(w, "Shoulder: %.1f, Elbow: %.1f\n", cfg.ShoulderMap().Angle(x), cfg.ElbowMap().Angle(y))
	return nil
}

func sweepAngles() []float64 {
	var out []float64
	for deg := sweepStart; deg <= sweepEnd; deg += sweepStep {
		out = append(out, deg)
	}
	return out
}

// sweep steps the shoulder and elbow together through sweepAngles, holding
// each position for dwell so it can be measured.
func sweep(clk clock.Clock, driver *logic.Driver, dwell time.Duration, logger *zap.SugaredLogger) error {
	for _, deg := range sweepAngles() {
		if err := driver.SetAxisAngles(deg, deg); err != nil {
			return fmt.Errorf("sweep to %.0f: %w", deg, err)
		}
		a := driver.Angles()
		logger.Infow("sweep", "command", deg, "shoulder", a.Shoulder, "elbow", a.Elbow)
		clk.Sleep(dwell)
	}
	return nil
}

// center drives every joint to mid travel for mounting servo horns.
func center(driver *logic.Driver, logger *zap.SugaredLogger) error {
	const mid = (logic.MinAngle + logic.MaxAngle) / 2

	if err := driver.SetAxisAngles(mid, mid); err != nil {
		return fmt.Errorf("center arm: %w", err)
	}
	if err := driver.SetWristAngle(mid); err != nil {
		return fmt.Errorf("center wrist: %w", err)
	}
	logger.Infow("centered", "angles", driver.Angles())
	return nil
}
