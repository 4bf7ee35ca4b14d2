// Package sensors reads the host's CPU temperature through the operating
// system's thermal sensor interface.
package sensors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// DefaultChips is the allow-list of known CPU sensor chip identifiers.
// coretemp covers Intel, k10temp covers AMD.
var DefaultChips = []string{"coretemp", "k10temp"}

var (
	// ErrNoSensors means the host reported no temperature sensors at all.
	// At startup this is fatal.
	ErrNoSensors = errors.New("no temperature sensors available")
	// ErrNoCPUSensor means sensors exist but none matched the CPU chip
	// allow-list. Distinct from a genuine 0 degree reading.
	ErrNoCPUSensor = errors.New("no CPU temperature sensor matched")
)

// Sampler yields one raw temperature sample in Celsius per call.
type Sampler interface {
	Sample() (float64, error)
}

// Ensure both sampler implementations satisfy the interface.
var _ Sampler = (*CPU)(nil)
var _ Sampler = (*Simulated)(nil)

// CPU samples the host CPU temperature. The highest current reading across
// all allow-listed sensor chips is returned, since multi-core packages
// report one value per core.
type CPU struct {
	chips []string
	read  func() ([]host.TemperatureStat, error)
}

// NewCPU creates a CPU sampler restricted to the given chip identifiers.
// An empty list falls back to DefaultChips.
func NewCPU(chips []string) *CPU {
	if len(chips) == 0 {
		chips = DefaultChips
	}
	return &CPU{
		chips: chips,
		read:  host.SensorsTemperatures,
	}
}

// Sample reads all thermal sensors and returns the hottest CPU reading.
func (c *CPU) Sample() (float64, error) {
	stats, err := c.read()
	if len(stats) == 0 {
		if err != nil {
			return 0, fmt.Errorf("read temperature sensors: %w", err)
		}
		return 0, ErrNoSensors
	}
	// gopsutil may return partial results together with per-sensor
	// warnings. Partial data is still usable.
	return maxCPUTemp(stats, c.chips)
}

// maxCPUTemp picks the maximum current reading among sensors whose key
// starts with one of the allow-listed chip identifiers.
func maxCPUTemp(stats []host.TemperatureStat, chips []string) (float64, error) {
	var (
		temp    float64
		matched bool
	)
	for _, s := range stats {
		key := strings.ToLower(s.SensorKey)
		for _, chip := range chips {
			if !strings.HasPrefix(key, strings.ToLower(chip)) {
				continue
			}
			if !matched || s.Temperature > temp {
				temp = s.Temperature
			}
			matched = true
			break
		}
	}
	if !matched {
		return 0, ErrNoCPUSensor
	}
	return temp, nil
}
