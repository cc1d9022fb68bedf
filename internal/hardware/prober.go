// Package hardware builds the one-shot views (processor, memory,
// storage, SMART, battery) and the thermal samples the monitor polls.
package hardware

import (
	"context"

	"codeberg.org/mutker/hwdiag/internal/device"
	"codeberg.org/mutker/hwdiag/internal/logger"
	"codeberg.org/mutker/hwdiag/internal/source"
	"codeberg.org/mutker/hwdiag/internal/units"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
)

const DefaultSmartctl = "smartctl"

// StatFunc returns the capacity of the filesystem mounted at path.
type StatFunc func(path string) (units.Capacity, error)

// Prober reads hardware state through a source.Reader.
type Prober struct {
	src      source.Reader
	enum     *device.Enumerator
	log      logger.Logger
	statfs   StatFunc
	smartctl string
	sudo     bool
	root     string

	logicalCPUs func(ctx context.Context, logical bool) (int, error)
	hostVirt    func(ctx context.Context) (string, string, error)
}

// Option configures a Prober.
type Option func(*Prober)

func WithLogger(log logger.Logger) Option {
	return func(p *Prober) { p.log = log }
}

func WithStatFunc(fn StatFunc) Option {
	return func(p *Prober) { p.statfs = fn }
}

// WithSmartctl sets the smartctl binary and whether to try "sudo -n"
// before running it directly.
func WithSmartctl(path string, sudo bool) Option {
	return func(p *Prober) {
		if path != "" {
			p.smartctl = path
		}
		p.sudo = sudo
	}
}

// WithRoot resolves mount points under root before querying their
// capacity, matching a source.System built with the same root.
func WithRoot(root string) Option {
	return func(p *Prober) {
		if root != "" {
			p.root = root
		}
	}
}

// WithCPUCounter replaces the kernel logical CPU counter.
func WithCPUCounter(fn func(ctx context.Context, logical bool) (int, error)) Option {
	return func(p *Prober) { p.logicalCPUs = fn }
}

// WithVirtualizationDetector replaces the fallback used when
// systemd-detect-virt is unavailable.
func WithVirtualizationDetector(fn func(ctx context.Context) (string, string, error)) Option {
	return func(p *Prober) { p.hostVirt = fn }
}

func New(src source.Reader, enum *device.Enumerator, opts ...Option) *Prober {
	p := &Prober{
		src:         src,
		enum:        enum,
		log:         logger.Default(),
		statfs:      statfs,
		smartctl:    DefaultSmartctl,
		root:        "/",
		logicalCPUs: cpu.CountsWithContext,
		hostVirt:    host.VirtualizationWithContext,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Enumerator returns the device enumerator the prober uses.
func (p *Prober) Enumerator() *device.Enumerator {
	return p.enum
}
