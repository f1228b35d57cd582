package logic

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultSmoothing is the EMA weight given to each new reading.
const DefaultSmoothing = 0.15

// AnalogChannel is a raw analog input owned by an AxisPair.
type AnalogChannel interface {
	// ReadRaw returns one sample at the channel's native resolution.
	ReadRaw() (int32, error)
	// FullScale is the largest value ReadRaw is expected to return.
	FullScale() int32
}

// AxisConfig holds the fixed parameters of an AxisPair.
type AxisConfig struct {
	// PollInterval is the accumulated time between refreshes.
	PollInterval time.Duration
	// Smoothing is the EMA factor in (0, 1]. Zero selects DefaultSmoothing.
	Smoothing float64
}

// AxisStats counts conditioning activity since construction.
type AxisStats struct {
	Refreshes  int
	Clamped    int // samples that were saturated into [0, 1]
	ReadErrors int
}

type axis struct {
	ch    AnalogChannel
	value float64
}

// AxisPair reads two analog channels, clamps and smooths them, and caches the
// result. It only resamples once per poll interval of accumulated time.
type AxisPair struct {
	x, y         axis
	pollInterval time.Duration
	smoothing    float64
	timer        time.Duration
	stats        AxisStats
}

// NewAxisPair creates an AxisPair and seeds both cached values from an
// immediate read of each channel.
func NewAxisPair(x, y AnalogChannel, cfg AxisConfig) (*AxisPair, error) {
	if cfg.Smoothing == 0 {
		cfg.Smoothing = DefaultSmoothing
	}
	if !(cfg.Smoothing > 0 && cfg.Smoothing <= 1) {
		return nil, fmt.Errorf("smoothing factor %v outside (0, 1]", cfg.Smoothing)
	}
	if cfg.PollInterval < 0 {
		return nil, fmt.Errorf("negative poll interval %v", cfg.PollInterval)
	}

	a := &AxisPair{
		x:            axis{ch: x},
		y:            axis{ch: y},
		pollInterval: cfg.PollInterval,
		smoothing:    cfg.Smoothing,
	}

	var err error
	if a.x.value, err = a.readRaw(x); err != nil {
		return nil, fmt.Errorf("seed x axis: %w", err)
	}
	if a.y.value, err = a.readRaw(y); err != nil {
		return nil, fmt.Errorf("seed y axis: %w", err)
	}
	return a, nil
}

// Clamp01 saturates v into [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Normalize converts a raw sample into a ratio of fullScale clamped to [0, 1].
func Normalize(raw, fullScale int32) float64 {
	if fullScale <= 0 {
		return 0
	}
	return Clamp01(float64(raw) / float64(fullScale))
}

func (a *AxisPair) readRaw(ch AnalogChannel) (float64, error) {
	raw, err := ch.ReadRaw()
	if err != nil {
		a.stats.ReadErrors++
		return 0, err
	}
	v := Normalize(raw, ch.FullScale())
	if raw < 0 || raw > ch.FullScale() {
		a.stats.Clamped++
	}
	return v, nil
}

// Refresh re-reads both channels and folds the readings into the cached values
// with an exponential moving average. A channel that fails to read keeps its
// previous value.
func (a *AxisPair) Refresh() error {
	a.stats.Refreshes++

	var errs []error
	for _, ax := range []*axis{&a.x, &a.y} {
		v, err := a.readRaw(ax.ch)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ax.value = ema(ax.value, v, a.smoothing)
	}
	return errors.Join(errs...)
}

// ema never leaves the interval between prev and sample.
func ema(prev, sample, alpha float64) float64 {
	v := alpha*sample + (1-alpha)*prev
	lo, hi := math.Min(prev, sample), math.Max(prev, sample)
	return math.Min(math.Max(v, lo), hi)
}

// Update advances the poll timer by elapsed and refreshes once the poll
// interval is reached. Non-positive elapsed values are ignored.
func (a *AxisPair) Update(elapsed time.Duration) error {
	if elapsed <= 0 {
		return nil
	}

	a.timer += elapsed
	if a.timer < a.pollInterval {
		return nil
	}
	a.timer = 0
	return a.Refresh()
}

// Get returns the cached (x, y) pair.
func (a *AxisPair) Get() (float64, float64) {
	return a.x.value, a.y.value
}

// Stats returns a copy of the conditioning counters.
func (a *AxisPair) Stats() AxisStats {
	return a.stats
}
