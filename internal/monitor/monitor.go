// Package monitor runs the periodic temperature polling session.
package monitor

import (
	"context"
	"strconv"
	"time"

	"codeberg.org/mutker/hwdiag/internal/classify"
	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/gpu"
	"codeberg.org/mutker/hwdiag/internal/hardware"
	"codeberg.org/mutker/hwdiag/internal/logger"
	"codeberg.org/mutker/hwdiag/internal/telemetry"
)

const DefaultInterval = 2 * time.Second

type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Session is the state carried from one tick to the next.
type Session struct {
	Ticks          int
	Interval       time.Duration
	Virtualization hardware.Virtualization
}

// Elapsed is the nominal running time, ticks × interval.
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.Ticks) * s.Interval
}

// Sample is one classified reading.
type Sample struct {
	Device  telemetry.Device
	Label   string
	Reading telemetry.Reading
	Band    classify.Band
}

// Snapshot is everything rendered for one tick.
type Snapshot struct {
	Tick           int
	Elapsed        time.Duration
	Interval       time.Duration
	Virtualization hardware.Virtualization
	CPU            Sample
	GPU            *Sample // nil without a GPU sensor
	Disks          []Sample
	DiskErr        error
}

// NoDisks reports whether disk enumeration succeeded but found no disk
// to sample.
func (s Snapshot) NoDisks() bool {
	return s.DiskErr == nil && len(s.Disks) == 0
}

type Monitor struct {
	sampler  Sampler
	disks    DiskLister
	display  Display
	gpu      gpu.Sensor
	interval time.Duration
	log      logger.Logger
	state    State
}

type Option func(*Monitor)

func WithInterval(d time.Duration) Option {
	return func(m *Monitor) { m.interval = d }
}

// WithGPU adds an optional GPU sensor. A nil sensor is ignored.
func WithGPU(sensor gpu.Sensor) Option {
	return func(m *Monitor) { m.gpu = sensor }
}

func WithLogger(log logger.Logger) Option {
	return func(m *Monitor) { m.log = log }
}

func New(sampler Sampler, disks DiskLister, display Display, opts ...Option) *Monitor {
	m := &Monitor{
		sampler:  sampler,
		disks:    disks,
		display:  display,
		interval: DefaultInterval,
		log:      logger.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Monitor) State() State {
	return m.state
}

// Run polls until ctx is cancelled. The first snapshot is shown
// immediately, then one per interval. A monitor runs once.
func (m *Monitor) Run(ctx context.Context) error {
	errFactory := errors.New()

	if m.interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, m.interval)
	}
	if m.state != Idle {
		return errFactory.WithMessage(errors.ErrMainLoop, "monitor already "+m.state.String())
	}

	m.state = Running
	defer func() { m.state = Stopped }()

	sess := &Session{
		Interval:       m.interval,
		Virtualization: m.sampler.DetectVirtualization(ctx),
	}
	if sess.Virtualization.Virtual {
		m.log.Info().Str("vendor", sess.Virtualization.Vendor).Msg("Running under virtualization")
	}
	m.log.Debug().Dur("interval", m.interval).Msg("Monitor started")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if err := m.display.Show(m.Tick(ctx, sess)); err != nil {
			return errFactory.Wrap(errors.ErrMainLoop, err)
		}

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			m.log.Debug().Int("ticks", sess.Ticks).Msg("Monitor stopped")
			return nil
		}
		sess.Ticks++
	}
}

// Tick samples every sensor once and classifies the readings.
func (m *Monitor) Tick(ctx context.Context, sess *Session) Snapshot {
	snap := Snapshot{
		Tick:           sess.Ticks,
		Elapsed:        sess.Elapsed(),
		Interval:       sess.Interval,
		Virtualization: sess.Virtualization,
	}

	disks, err := m.disks.Disks(ctx)
	if err != nil {
		m.log.Debug().Err(err).Msg("disk enumeration failed")
		snap.DiskErr = err
	}

	cpu := telemetry.Device{Kind: telemetry.KindCPU, ID: "cpu"}
	snap.CPU = classified(cpu, "CPU", m.sampler.CPUTemperature(ctx))

	if m.gpu != nil {
		s := classified(telemetry.Device{Kind: telemetry.KindGPU, ID: "gpu0"}, m.gpu.Name(), m.gpuReading())
		snap.GPU = &s
	}

	for _, dev := range disks {
		snap.Disks = append(snap.Disks, classified(dev, dev.Path(), m.sampler.DiskTemperature(ctx, dev)))
	}

	return snap
}

func (m *Monitor) gpuReading() telemetry.Reading {
	t, err := m.gpu.Temperature()
	if err != nil {
		m.log.Debug().Err(err).Msg("GPU temperature unavailable")
		return telemetry.Unavailable("nvml", err)
	}

	return telemetry.Reading{
		Source:    "nvml",
		Raw:       strconv.FormatFloat(t, 'f', -1, 64),
		Value:     t,
		Valid:     true,
		Unit:      telemetry.UnitCelsius,
		Timestamp: time.Now(),
	}
}

func classified(dev telemetry.Device, label string, r telemetry.Reading) Sample {
	s := Sample{Device: dev, Label: label, Reading: r}
	if r.Available() {
		s.Band = classify.Temperature(dev.Kind, r.Value)
	}

	return s
}
