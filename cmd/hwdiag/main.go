// Copyright © 2024 Mutker Telag <witty.text5011@fastmail.com>
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/hwdiag/internal/config"
	"codeberg.org/mutker/hwdiag/internal/device"
	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/gpu"
	"codeberg.org/mutker/hwdiag/internal/hardware"
	"codeberg.org/mutker/hwdiag/internal/logger"
	"codeberg.org/mutker/hwdiag/internal/menu"
	"codeberg.org/mutker/hwdiag/internal/monitor"
	"codeberg.org/mutker/hwdiag/internal/pid"
	"codeberg.org/mutker/hwdiag/internal/render"
	"codeberg.org/mutker/hwdiag/internal/source"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.Init(level, logger.IsService())
	logger.Debug().Msg("Config loaded")

	if err := run(cfg); err != nil {
		logger.ErrorWithCode(err).Msg("hwdiag failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := logger.Default()

	src := source.NewSystem(
		source.WithRoot(cfg.Root),
		source.WithTimeout(time.Duration(cfg.CommandTimeout)*time.Second),
		source.WithLogger(log),
	)
	enum := device.NewEnumerator(src, cfg.Battery)
	probe := hardware.New(src, enum,
		hardware.WithLogger(log),
		hardware.WithSmartctl(cfg.Smartctl, cfg.Sudo),
		hardware.WithRoot(cfg.Root),
	)
	out := render.New(os.Stdout, render.WithColor(!cfg.NoColor))

	var sensor gpu.Sensor
	if cfg.GPU {
		g, err := gpu.New()
		if err != nil {
			logger.Debug().Err(err).Msg("GPU temperature unavailable")
		} else {
			sensor = g
			defer func() {
				if err := g.Shutdown(); err != nil {
					logger.ErrorWithCode(err).Msg("failed to shut down NVML")
				}
			}()
		}
	}

	// Each session owns the interrupt signal while it runs, so Ctrl+C
	// ends the session rather than the process.
	startMonitor := func(ctx context.Context) error {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		m := monitor.New(probe, enum, out,
			monitor.WithInterval(time.Duration(cfg.Interval)*time.Second),
			monitor.WithGPU(sensor),
			monitor.WithLogger(log),
		)
		return m.Run(ctx)
	}

	if cfg.Monitor {
		lock, err := pid.Acquire("", pid.DefaultName)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.ErrorWithCode(err).Msg("failed to remove PID file")
			}
		}()

		logger.Info().Msg("Monitor mode activated")
		return startMonitor(context.Background())
	}

	return menu.New(os.Stdin, out, probe, startMonitor, log).Run(context.Background())
}
