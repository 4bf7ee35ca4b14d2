package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, float64(0), cfg.ColorShift)
	assert.Equal(t, float64(5), cfg.IntervalSeconds)
	assert.Equal(t, 5*time.Second, cfg.Interval())
	assert.Equal(t, "/tmp/cputemp2rgb.pid", cfg.PIDFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:6742", cfg.OpenRGB.Address)
	assert.Equal(t, "cputemp2rgb", cfg.OpenRGB.ClientName)
	assert.Equal(t, []string{"coretemp", "k10temp"}, cfg.Sensors.Chips)
	assert.Equal(t, 3*time.Minute, cfg.MockPeriod())
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, float64(5), cfg.IntervalSeconds)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
colorshift: -7.5
interval_seconds: 2.5
pidfile: /run/cputemp2rgb.pid
log_level: debug

openrgb:
  address: 192.168.1.20:6742
  client_name: temp-lights

sensors:
  chips: [zenpower]

mock:
  base: 35
  swing: 25
  period_seconds: 60
  noise: 1.5
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, -7.5, cfg.ColorShift)
	assert.Equal(t, 2500*time.Millisecond, cfg.Interval())
	assert.Equal(t, "/run/cputemp2rgb.pid", cfg.PIDFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "192.168.1.20:6742", cfg.OpenRGB.Address)
	assert.Equal(t, "temp-lights", cfg.OpenRGB.ClientName)
	assert.Equal(t, []string{"zenpower"}, cfg.Sensors.Chips)
	assert.Equal(t, 35.0, cfg.Mock.Base)
	assert.Equal(t, time.Minute, cfg.MockPeriod())
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_PartialYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
colorshift: 3
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, 3.0, cfg.ColorShift)

	// Everything else falls back to defaults.
	assert.Equal(t, float64(5), cfg.IntervalSeconds)
	assert.Equal(t, "127.0.0.1:6742", cfg.OpenRGB.Address)
	assert.Equal(t, []string{"coretemp", "k10temp"}, cfg.Sensors.Chips)
}

func TestEnsureDefaults_RejectsNonsense(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("interval_seconds: -2\nmock:\n  period_seconds: 0\n")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, float64(5), cfg.IntervalSeconds, "non-positive interval falls back to default")
	assert.Equal(t, 3*time.Minute, cfg.MockPeriod())
}

func TestColorShiftZeroIsPreserved(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("colorshift: 0\n")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, float64(0), cfg.ColorShift)
}
