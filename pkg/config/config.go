// Package config loads the daemon configuration from a YAML file, filling
// in defaults for anything missing.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// ColorShift biases the gradient toward red (negative) or blue
	// (positive). With the default 0 the output is pure white around
	// 85 C; negative values raise that point, positive values lower it.
	ColorShift float64 `yaml:"colorshift"`
	// IntervalSeconds is the time between lighting updates.
	IntervalSeconds float64 `yaml:"interval_seconds"`
	// PIDFile is where the daemonized process records its PID.
	PIDFile  string `yaml:"pidfile"`
	LogLevel string `yaml:"log_level"`

	OpenRGB OpenRGBConfig `yaml:"openrgb"`
	Sensors SensorsConfig `yaml:"sensors"`
	Mock    MockConfig    `yaml:"mock"`
}

// OpenRGBConfig locates the OpenRGB SDK server.
type OpenRGBConfig struct {
	Address    string `yaml:"address"`
	ClientName string `yaml:"client_name"`
}

// SensorsConfig restricts which sensor chips count as CPU temperature.
type SensorsConfig struct {
	Chips []string `yaml:"chips"`
}

// MockConfig tunes the simulated temperature sensor used with --mock.
type MockConfig struct {
	Base          float64 `yaml:"base"`
	Swing         float64 `yaml:"swing"`
	PeriodSeconds float64 `yaml:"period_seconds"`
	Noise         float64 `yaml:"noise"`
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		ColorShift:      0,
		IntervalSeconds: 5.0,
		PIDFile:         "/tmp/cputemp2rgb.pid",
		LogLevel:        "info",
		OpenRGB: OpenRGBConfig{
			Address:    "127.0.0.1:6742",
			ClientName: "cputemp2rgb",
		},
		Sensors: SensorsConfig{
			Chips: []string{"coretemp", "k10temp"},
		},
		Mock: MockConfig{
			Base:          42.0,
			Swing:         18.0,
			PeriodSeconds: 180,
			Noise:         0.4,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, default values are used.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()
	return cfg, nil
}

// Interval converts the configured cadence to a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds * float64(time.Second))
}

// MockPeriod converts the simulated load cycle length to a duration.
func (c *Config) MockPeriod() time.Duration {
	return time.Duration(c.Mock.PeriodSeconds * float64(time.Second))
}

// ensureDefaults ensures that all required fields have default values if
// missing. ColorShift is intentionally left alone: zero is a valid choice.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.IntervalSeconds <= 0 {
		c.IntervalSeconds = def.IntervalSeconds
	}
	if c.PIDFile == "" {
		c.PIDFile = def.PIDFile
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}

	if c.OpenRGB.Address == "" {
		c.OpenRGB.Address = def.OpenRGB.Address
	}
	if c.OpenRGB.ClientName == "" {
		c.OpenRGB.ClientName = def.OpenRGB.ClientName
	}

	if len(c.Sensors.Chips) == 0 {
		c.Sensors.Chips = def.Sensors.Chips
	}

	if c.Mock.Base == 0 {
		c.Mock.Base = def.Mock.Base
	}
	if c.Mock.Swing == 0 {
		c.Mock.Swing = def.Mock.Swing
	}
	if c.Mock.PeriodSeconds <= 0 {
		c.Mock.PeriodSeconds = def.Mock.PeriodSeconds
	}
}
