package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sweeney/arm-controller/internal/analog"
	"github.com/sweeney/arm-controller/internal/config"
	"github.com/sweeney/arm-controller/internal/gpio"
	"github.com/sweeney/arm-controller/internal/servo"
)

// hardware bundles the arm's inputs and outputs.
type hardware struct {
	x, y     analog.Channel
	button   gpio.Button
	shoulder servo.Output
	elbow    servo.Output
	wrist    servo.Output

	// closers are released in reverse order by Close.
	closers []io.Closer
}

// openHardware opens the ADS1115, the pen button and the PCA9685 described
// by cfg. Anything opened before a failure is closed again.
func openHardware(cfg config.Config) (hw *hardware, err error) {
	hw = &hardware{}
	defer func() {
		if err != nil {
			err = errors.Join(err, hw.Close())
			hw = nil
		}
	}()

	adc, err := analog.OpenADS1115(cfg.Analog.Bus, cfg.Analog.Address)
	if err != nil {
		return hw, fmt.Errorf("init analog: %w", err)
	}
	hw.closers = append(hw.closers, adc)

	x, err := adc.Channel(cfg.Analog.ChannelX)
	if err != nil {
		return hw, fmt.Errorf("init analog x: %w", err)
	}
	hw.closers = append(hw.closers, x)
	hw.x = x

	y, err := adc.Channel(cfg.Analog.ChannelY)
	if err != nil {
		return hw, fmt.Errorf("init analog y: %w", err)
	}
	hw.closers = append(hw.closers, y)
	hw.y = y

	button, err := gpio.NewRealButton(cfg.Button.Chip, cfg.Button.Line, cfg.Button.ActiveLow)
	if err != nil {
		return hw, fmt.Errorf("init gpio: %w", err)
	}
	hw.closers = append(hw.closers, button)
	hw.button = button

	board, err := servo.OpenPCA9685(cfg.Servo.Bus, cfg.Servo.Address)
	if err != nil {
		return hw, fmt.Errorf("init servo: %w", err)
	}
	hw.closers = append(hw.closers, board)

	outputs := []struct {
		n   int
		dst *servo.Output
	}{
		{cfg.Servo.Shoulder, &hw.shoulder},
		{cfg.Servo.Elbow, &hw.elbow},
		{cfg.Servo.Wrist, &hw.wrist},
	}
	for _, o := range outputs {
		ch, err := board.Channel(o.n)
		if err != nil {
			return hw, fmt.Errorf("init servo channel %d: %w", o.n, err)
		}
		*o.dst = ch
	}

	return hw, nil
}

// Close releases everything openHardware acquired.
func (h *hardware) Close() error {
	var errs []error
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	h.closers = nil
	return errors.Join(errs...)
}
