// Package thermal drives the lighting from live CPU temperature samples.
// It owns exactly two scalars between ticks: the exponentially smoothed
// temperature and a running-minimum estimate of ambient temperature.
package thermal

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SymenMulders/cputemp2rgb/pkg/blackbody"
	"github.com/SymenMulders/cputemp2rgb/pkg/sensors"
)

const (
	// DefaultInterval is the cadence of the sample/compute/push cycle.
	DefaultInterval = 5 * time.Second

	// roomTempGuess seeds the ambient offset. Most machines have no
	// ambient sensor, so start from a guess and let the running minimum
	// take over when the CPU ever reads cooler.
	roomTempGuess = 20.0
)

// ColorSetter pushes one color to the lighting hardware.
type ColorSetter interface {
	SetColor(r, g, b uint8) error
}

// Options configures a Loop. The zero value gets defaults.
type Options struct {
	// ColorShift biases the whole gradient: negative shifts red (hotter
	// look), positive shifts blue (cooler look). Default 0 puts pure
	// white around 85 C.
	ColorShift float64
	// Interval between ticks. Default 5 s.
	Interval time.Duration
	// Logger for per-tick diagnostics. Default slog.Default().
	Logger *slog.Logger
}

// Loop is the sampling and smoothing control loop. Single-goroutine; the
// two state scalars are never shared.
type Loop struct {
	sampler    sensors.Sampler
	light      ColorSetter
	colorShift float64
	interval   time.Duration
	logger     *slog.Logger

	smoothed float64 // exponentially smoothed temperature (C)
	offset   float64 // running minimum, stands in for ambient (C)
}

// New primes a loop with one sample from the sensor. Failure to obtain
// that first sample is a startup precondition violation and is returned
// as a fatal error.
func New(sampler sensors.Sampler, light ColorSetter, opts Options) (*Loop, error) {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	first, err := sampler.Sample()
	if err != nil {
		return nil, fmt.Errorf("startup temperature sample: %w", err)
	}

	return &Loop{
		sampler:    sampler,
		light:      light,
		colorShift: opts.ColorShift,
		interval:   opts.Interval,
		logger:     opts.Logger,
		smoothed:   first,
		offset:     math.Min(roomTempGuess, first),
	}, nil
}

// State returns the current smoothed temperature and ambient offset.
func (l *Loop) State() (smoothed, offset float64) {
	return l.smoothed, l.offset
}

// Run ticks until the context is cancelled. It never terminates on its
// own; sensor and device failures mid-run are logged and survived.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("thermal loop started",
		"interval", l.interval,
		"colorshift", l.colorShift,
		"initial_temp", l.smoothed,
		"initial_offset", l.offset)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		l.tick()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// tick performs one sample/smooth/push cycle. Ordering matters: the
// ambient offset is updated against the PREVIOUS smoothed value before
// the new sample is folded in.
func (l *Loop) tick() {
	raw, err := l.sampler.Sample()
	if err != nil {
		// Skip the tick entirely: no state mutation, no color push.
		// The previous color stays on the hardware.
		l.logger.Warn("temperature sample failed, skipping tick", "error", err)
		return
	}

	if l.smoothed < l.offset {
		l.offset = l.smoothed
	}
	// Average of previous estimate and new sample, so every read has a
	// decay time and the color ramps instead of jumping.
	l.smoothed = (l.smoothed + raw) / 2
	shifted := l.smoothed - l.offset + l.colorShift

	r, g, b := blackbody.Convert(shifted)
	if err := l.light.SetColor(r, g, b); err != nil {
		// State is already updated; the next successful push will
		// reflect the current temperature.
		l.logger.Warn("color push failed", "error", err)
		return
	}

	l.logger.Debug("tick",
		"raw", raw,
		"smoothed", l.smoothed,
		"offset", l.offset,
		"shifted", shifted,
		"r", r, "g", g, "b", b)
}
