// cputemp2rgb synchronizes motherboard RGB lighting to CPU temperature.
//
// The daemon samples the CPU temperature on a fixed cadence, smooths it,
// maps it to a blackbody radiation color and pushes the color to the first
// motherboard controller reported by a running OpenRGB SDK server. Stop it
// with a signal to the PID recorded in the pidfile:
//
//	kill $(cat /tmp/cputemp2rgb.pid)
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sevlyar/go-daemon"
	"github.com/spf13/pflag"

	"github.com/SymenMulders/cputemp2rgb/pkg/config"
	"github.com/SymenMulders/cputemp2rgb/pkg/openrgb"
	"github.com/SymenMulders/cputemp2rgb/pkg/sensors"
	"github.com/SymenMulders/cputemp2rgb/pkg/thermal"
)

func main() {
	var (
		configFlag     = pflag.String("config", "/etc/cputemp2rgb.yaml", "Configuration file path")
		colorShiftFlag = pflag.Float64("colorshift", 0, "Gradient bias: negative toward red, positive toward blue")
		intervalFlag   = pflag.Float64("interval", 0, "Seconds between lighting updates (overrides config)")
		addressFlag    = pflag.String("address", "", "OpenRGB SDK server address (overrides config)")
		pidfileFlag    = pflag.String("pidfile", "", "PID file path (overrides config)")
		logLevelFlag   = pflag.String("log-level", "", "Log level (debug, info, warn, error)")
		foregroundFlag = pflag.Bool("foreground", false, "Run in the foreground instead of daemonizing")
		mockFlag       = pflag.Bool("mock", false, "Use a simulated temperature sensor")
	)
	pflag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if pflag.CommandLine.Changed("colorshift") {
		cfg.ColorShift = *colorShiftFlag
	}
	if *intervalFlag > 0 {
		cfg.IntervalSeconds = *intervalFlag
	}
	if *addressFlag != "" {
		cfg.OpenRGB.Address = *addressFlag
	}
	if *pidfileFlag != "" {
		cfg.PIDFile = *pidfileFlag
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	sampler := buildSampler(cfg, *mockFlag)

	// Probe the sensors before daemonizing so a host without any usable
	// thermal data fails loudly on the terminal, not silently in the
	// background.
	if _, err := sampler.Sample(); err != nil {
		logger.Error("Unable to read temperature sensors", "error", err)
		os.Exit(1)
	}

	if !*foregroundFlag {
		dctx := &daemon.Context{
			PidFileName: cfg.PIDFile,
			PidFilePerm: 0644,
			Umask:       027,
		}
		child, err := dctx.Reborn()
		if err != nil {
			logger.Error("Unable to daemonize", "error", err)
			os.Exit(1)
		}
		if child != nil {
			// Parent: the daemon is running, its PID is on file.
			return
		}
		defer dctx.Release()
	}

	if err := run(cfg, sampler, logger); err != nil {
		logger.Error("Daemon failed", "error", err)
		os.Exit(1)
	}
}

// run wires the collaborators together and drives the thermal loop until a
// termination signal arrives.
func run(cfg *config.Config, sampler sensors.Sampler, logger *slog.Logger) error {
	logger.Info("Starting cputemp2rgb",
		"openrgb", cfg.OpenRGB.Address,
		"interval", cfg.Interval(),
		"colorshift", cfg.ColorShift,
		"chips", cfg.Sensors.Chips)

	client, err := openrgb.Connect(cfg.OpenRGB.Address, cfg.OpenRGB.ClientName)
	if err != nil {
		return err
	}
	defer client.Close()

	// Turn everything off first, so the lighting is in a known state,
	// then bring the motherboard up from black.
	if err := client.Clear(); err != nil {
		return fmt.Errorf("clear lighting: %w", err)
	}
	board, err := client.FirstOfType(openrgb.DeviceMotherboard)
	if err != nil {
		return err
	}
	logger.Info("Lighting target selected",
		"name", board.Controller().Name,
		"leds", board.Controller().NumLEDs)
	if err := board.SetColor(0, 0, 0); err != nil {
		return fmt.Errorf("initialize lighting: %w", err)
	}

	loop, err := thermal.New(sampler, board, thermal.Options{
		ColorShift: cfg.ColorShift,
		Interval:   cfg.Interval(),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("Shutdown signal received")
		return nil
	}
	return err
}

// buildSampler selects the real CPU sensor or the simulated one.
func buildSampler(cfg *config.Config, mock bool) sensors.Sampler {
	if mock {
		return sensors.NewSimulated(sensors.SimulatedConfig{
			Base:   cfg.Mock.Base,
			Swing:  cfg.Mock.Swing,
			Period: cfg.MockPeriod(),
			Noise:  cfg.Mock.Noise,
		})
	}
	return sensors.NewCPU(cfg.Sensors.Chips)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
