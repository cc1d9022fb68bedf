// Package menu implements the interactive numbered-menu shell.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/hardware"
	"codeberg.org/mutker/hwdiag/internal/logger"
	"codeberg.org/mutker/hwdiag/internal/render"
	"codeberg.org/mutker/hwdiag/internal/telemetry"
	"codeberg.org/mutker/hwdiag/internal/units"
)

// Prober supplies the one-shot hardware views.
type Prober interface {
	CPU(ctx context.Context) (hardware.CPUInfo, error)
	Memory(ctx context.Context) (units.Memory, error)
	Filesystems(ctx context.Context) ([]hardware.Filesystem, error)
	SMARTAvailable() error
	SMARTDevices(ctx context.Context) ([]telemetry.Device, error)
	SMART(ctx context.Context, dev telemetry.Device) (hardware.SMARTReport, error)
	Battery(ctx context.Context) (hardware.BatteryReport, error)
}

// MonitorFunc runs one temperature monitoring session and returns when
// it is stopped.
type MonitorFunc func(ctx context.Context) error

type Shell struct {
	in      *bufio.Scanner
	r       *render.Renderer
	probe   Prober
	monitor MonitorFunc
	log     logger.Logger
}

func New(in io.Reader, r *render.Renderer, probe Prober, monitor MonitorFunc, log logger.Logger) *Shell {
	if log == nil {
		log = logger.Default()
	}

	return &Shell{
		in:      bufio.NewScanner(in),
		r:       r,
		probe:   probe,
		monitor: monitor,
		log:     log,
	}
}

type entry struct {
	label string
	run   func(ctx context.Context) error
}

// Run shows the main menu until the operator exits, input ends or ctx
// is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	err := s.loop(ctx, "Linux Hardware Diagnostics", []entry{
		{"Hardware information", s.hardwareMenu},
		{"Health checks", s.healthMenu},
		{"Temperature monitor", s.temperatureMenu},
		{"Help", s.helpMenu},
	}, "Exit")
	if errors.Is(err, io.EOF) {
		s.log.Debug().Msg("Input closed, exiting")
		return nil
	}

	return err
}

func (s *Shell) hardwareMenu(ctx context.Context) error {
	return s.loop(ctx, "Hardware Information", []entry{
		{"CPU", s.cpu},
		{"Memory", s.memory},
		{"Disks", s.disks},
	}, "Back")
}

func (s *Shell) healthMenu(ctx context.Context) error {
	return s.loop(ctx, "Health Checks", []entry{
		{"SMART disk check", s.smart},
		{"Battery health", s.battery},
	}, "Back")
}

func (s *Shell) temperatureMenu(ctx context.Context) error {
	return s.loop(ctx, "Temperature Monitor", []entry{
		{"Start monitoring (Ctrl+C to stop)", s.temperature},
	}, "Back")
}

func (s *Shell) helpMenu(ctx context.Context) error {
	return s.loop(ctx, "Help", []entry{
		{"User manual", func(context.Context) error { return s.show(s.r.Manual) }},
		{"Useful commands", func(context.Context) error { return s.show(s.r.Commands) }},
	}, "Back")
}

// loop repeats a menu until 0 is chosen. Invalid input is reported and
// the prompt repeats.
func (s *Shell) loop(ctx context.Context, title string, entries []entry, back string) error {
	items := make([]render.Item, 0, len(entries)+1)
	for i, e := range entries {
		items = append(items, render.Item{Key: strconv.Itoa(i + 1), Label: e.label})
	}
	items = append(items, render.Item{Key: "0", Label: back})

	for ctx.Err() == nil {
		if err := s.r.Menu(title, items); err != nil {
			return err
		}

		choice, err := s.choose(fmt.Sprintf("Select an option (0-%d): ", len(entries)), 0, len(entries))
		if errors.HasCode(err, errors.ErrInvalidSelection) {
			if err := s.r.Notice(err); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if choice == 0 {
			return nil
		}

		if err := entries[choice-1].run(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (s *Shell) choose(prompt string, lo, hi int) (int, error) {
	if err := s.r.Prompt(prompt); err != nil {
		return 0, err
	}
	line, err := s.readLine()
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(line)
	if err != nil || n < lo || n > hi {
		return 0, errors.New().WithData(errors.ErrInvalidSelection, strconv.Quote(line))
	}

	return n, nil
}

func (s *Shell) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	return strings.TrimSpace(s.in.Text()), nil
}

// show renders a view and waits for Enter.
func (s *Shell) show(view func() error) error {
	if err := view(); err != nil {
		return err
	}
	if err := s.r.Continue(); err != nil {
		return err
	}
	_, err := s.readLine()

	return err
}

func (s *Shell) notice(err error) error {
	s.log.Debug().Err(err).Str("code", string(errors.CodeOf(err))).Msg("View unavailable")
	return s.r.Notice(err)
}
