// Command arm-controller drives a three-joint drawing arm from two
// potentiometers and a pen button, and publishes its state to MQTT.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/sweeney/arm-controller/internal/config"
	"github.com/sweeney/arm-controller/internal/logic"
	"github.com/sweeney/arm-controller/internal/mqtt"
	"github.com/sweeney/arm-controller/internal/status"
	"github.com/sweeney/arm-controller/internal/web"
)

func main() {
	cfg, opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "arm-controller: %v\n", err)
		os.Exit(2)
	}

	logger, err := newLogger(opts.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arm-controller: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, opts, logger); err != nil {
		logger.Fatalf("fatal: %v", err)
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	zc := zap.NewProductionConfig()
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func run(cfg config.Config, opts options, logger *zap.SugaredLogger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	hw, err := openHardware(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := hw.Close(); err != nil {
			logger.Warnw("close hardware", "error", err)
		}
	}()

	clk := clock.New()

	if opts.printState {
		return printState(os.Stdout, hw, cfg)
	}
	if opts.sweep || opts.center {
		driver, err := logic.NewDriver(hw.shoulder, hw.elbow, hw.wrist, cfg.DriverConfig())
		if err != nil {
			return fmt.Errorf("init driver: %w", err)
		}
		if opts.center {
			return center(driver, logger)
		}
		return sweep(clk, driver, sweepDwell, logger)
	}

	// Initialize MQTT
	publisher, err := mqtt.NewRealPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID, logger.Named("mqtt"))
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(clk, statusConfig(cfg, logger))
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}
	tracker.SetMQTTConnected(publisher.IsConnected())

	ctrl, err := newController(hw, cfg, publisher, publisher, tracker, clk.Now(), logger)
	if err != nil {
		return err
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		logger.Warnw("failed to publish startup event", "error", err)
	} else {
		logger.Info("published startup event")
	}

	// Start HTTP status server
	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker, logger.Named("http"))
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warnw("http server error", "error", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Infow("http status server listening", "addr", cfg.HTTP.Addr)
	}

	logger.Infow("started",
		"tick", cfg.Control.Tick,
		"poll", cfg.Control.PollInterval,
		"debounce", cfg.Control.Debounce,
		"smoothing", cfg.Control.Smoothing,
		"broker", cfg.MQTT.Broker,
		"heartbeat", cfg.MQTT.Heartbeat,
	)

	ticker := clk.Ticker(cfg.Control.Tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctrl, ticker.C, sigCh)
}

func statusConfig(cfg config.Config, logger *zap.SugaredLogger) status.Config {
	return status.Config{
		TickMs:      cfg.Control.Tick.Milliseconds(),
		PollMs:      cfg.Control.PollInterval.Milliseconds(),
		DebounceMs:  cfg.Control.Debounce.Milliseconds(),
		HeartbeatMs: cfg.MQTT.Heartbeat.Milliseconds(),
		Smoothing:   cfg.Control.Smoothing,
		Broker:      cfg.MQTT.Broker,
		HTTPAddr:    cfg.HTTP.Addr,
		WSBroker:    resolveWSBroker(cfg.MQTT.WSBroker, cfg.MQTT.Broker, logger),
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

// resolveWSBroker converts the ws-broker setting into a concrete URL.
// "=broker" derives ws://host:9001 from the TCP broker address; "off" or
// empty disables.
func resolveWSBroker(ws, broker string, logger *zap.SugaredLogger) string {
	if ws == "off" || ws == "" {
		return ""
	}
	if ws != "=broker" {
		return ws
	}
	u, err := url.Parse(broker)
	if err != nil {
		logger.Warnw("ws-broker: cannot parse broker", "broker", broker, "error", err)
		return ""
	}
	u.Scheme = "ws"
	u.Host = u.Hostname() + ":9001"
	return u.String()
}
