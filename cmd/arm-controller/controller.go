package main

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sweeney/arm-controller/internal/config"
	"github.com/sweeney/arm-controller/internal/logic"
	"github.com/sweeney/arm-controller/internal/mqtt"
	"github.com/sweeney/arm-controller/internal/status"
)

// controller runs one control step per tick: condition the inputs, command
// the joints, then report.
type controller struct {
	axes     *logic.AxisPair
	toggle   *logic.Toggle
	driver   *logic.Driver
	detector *logic.Detector
	shoulder logic.AxisMap
	elbow    logic.AxisMap

	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus // may be nil
	tracker    *status.Tracker
	heartbeat  time.Duration
	logger     *zap.SugaredLogger

	last time.Time
	// failing holds the last error text per hardware source so a stuck
	// fault is logged once rather than every tick.
	failing map[string]string
}

func newController(hw *hardware, cfg config.Config, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, start time.Time, logger *zap.SugaredLogger) (*controller, error) {
	axes, err := logic.NewAxisPair(hw.x, hw.y, cfg.AxisConfig())
	if err != nil {
		return nil, fmt.Errorf("init axes: %w", err)
	}
	driver, err := logic.NewDriver(hw.shoulder, hw.elbow, hw.wrist, cfg.DriverConfig())
	if err != nil {
		return nil, fmt.Errorf("init driver: %w", err)
	}

	return &controller{
		axes:       axes,
		toggle:     logic.NewToggle(hw.button, cfg.Control.Debounce),
		driver:     driver,
		detector:   logic.NewDetector(start),
		shoulder:   cfg.ShoulderMap(),
		elbow:      cfg.ElbowMap(),
		publisher:  publisher,
		mqttStatus: mqttStatus,
		tracker:    tracker,
		heartbeat:  cfg.MQTT.Heartbeat,
		logger:     logger,
		last:       start,
		failing:    map[string]string{},
	}, nil
}

// report logs a hardware error when it first appears or changes, and logs
// once more when the source recovers.
func (c *controller) report(source string, err error) {
	prev, failing := c.failing[source]
	switch {
	case err != nil && (!failing || prev != err.Error()):
		c.logger.Warnw("hardware error", "source", source, "error", err)
		c.failing[source] = err.Error()
	case err == nil && failing:
		c.logger.Infow("hardware recovered", "source", source)
		delete(c.failing, source)
	}
}

// step advances the controller to now.
func (c *controller) step(now time.Time) {
	elapsed := now.Sub(c.last)
	c.last = now

	c.report("analog", c.axes.Update(elapsed))
	c.report("button", c.toggle.Update(elapsed))

	x, y := c.axes.Get()
	down := c.toggle.Get()

	c.report("servo", c.driver.SetAxisAngles(c.shoulder.Angle(x), c.elbow.Angle(y)))
	c.report("wrist", c.driver.SetPose(down))

	events := c.detector.Process(logic.Input{PoseDown: down, X: x, Y: y, Time: now})
	for _, event := range events {
		c.logger.Infow("event", "type", event.Type, "pose", event.Pose, "x", event.X, "y", event.Y)
		if err := c.publisher.Publish(event); err != nil {
			// Don't crash on publish failure
			c.logger.Warnw("publish error", "error", err)
		}
	}

	c.updateTracker()

	if hb := c.detector.CheckHeartbeat(now, c.heartbeat); hb != nil {
		c.logger.Infow("heartbeat", "uptime", hb.Uptime, "pose_down", hb.Counts.PoseDown, "pose_up", hb.Counts.PoseUp)
		if net := readNetworkInfo(); net != nil {
			c.tracker.SetNetwork(net)
		}
		event := mqtt.SystemEvent{
			Timestamp:  hb.Timestamp,
			Event:      "HEARTBEAT",
			RawPayload: status.FormatStatusEvent(c.tracker.Snapshot(), "HEARTBEAT", ""),
		}
		if err := c.publisher.PublishSystem(event); err != nil {
			c.logger.Warnw("heartbeat publish error", "error", err)
		}
	}
}

func (c *controller) updateTracker() {
	x, y := c.axes.Get()
	c.tracker.Update(status.Reading{
		X:         x,
		Y:         y,
		Pose:      c.detector.CurrentPose(),
		Baselined: c.detector.IsBaselined(),
		Angles:    c.driver.Angles(),
		Flips:     c.toggle.Flips(),
		Counts:    c.detector.EventCounts(),
		Axes:      c.axes.Stats(),
		Driver:    c.driver.Stats(),
	})
	if c.mqttStatus != nil {
		c.tracker.SetMQTTConnected(c.mqttStatus.IsConnected())
	}
}

// shutdown lifts the pen and announces the shutdown.
func (c *controller) shutdown(reason string) {
	if err := c.driver.SetPose(false); err != nil {
		c.logger.Warnw("lift pen on shutdown", "error", err)
	}
	c.updateTracker()

	snap := c.tracker.Snapshot()
	event := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "SHUTDOWN",
		Reason:     reason,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", reason),
	}
	if err := c.publisher.PublishSystem(event); err != nil {
		c.logger.Warnw("failed to publish shutdown event", "error", err)
	} else {
		c.logger.Info("published shutdown event")
	}
}

func runLoop(c *controller, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			c.logger.Infow("shutting down", "signal", s)
			c.shutdown(signalName(s))
			return nil

		case t := <-tick:
			c.step(t)
		}
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
