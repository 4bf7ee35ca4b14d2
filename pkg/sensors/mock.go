package sensors

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// SimulatedConfig tunes the simulated CPU temperature curve.
type SimulatedConfig struct {
	Base   float64       // idle temperature (C)
	Swing  float64       // peak-to-peak load swing (C)
	Period time.Duration // one full load cycle
	Noise  float64       // gaussian noise amplitude (C)
}

// Simulated produces a plausible CPU temperature without hardware: a slow
// sinusoidal load cycle on top of a base temperature, with a little noise.
// Useful for developing against the lighting hardware on machines whose
// sensors are not exposed, or for exercising the daemon end to end.
type Simulated struct {
	cfg   SimulatedConfig
	start time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated creates a simulated sampler. Zero config fields get
// sensible defaults.
func NewSimulated(cfg SimulatedConfig) *Simulated {
	if cfg.Base == 0 {
		cfg.Base = 42.0
	}
	if cfg.Swing == 0 {
		cfg.Swing = 18.0
	}
	if cfg.Period == 0 {
		cfg.Period = 3 * time.Minute
	}
	return &Simulated{
		cfg:   cfg,
		start: time.Now(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sample returns the simulated temperature at the current instant.
func (s *Simulated) Sample() (float64, error) {
	elapsed := time.Since(s.start).Seconds()
	phase := 2 * math.Pi * elapsed / s.cfg.Period.Seconds()

	s.mu.Lock()
	noise := s.cfg.Noise * s.rng.NormFloat64()
	s.mu.Unlock()

	return s.cfg.Base + s.cfg.Swing/2*math.Sin(phase) + noise, nil
}
