package monitor

import (
	"context"

	"codeberg.org/mutker/hwdiag/internal/hardware"
	"codeberg.org/mutker/hwdiag/internal/telemetry"
)

// Sampler reads the temperatures shown on each tick.
type Sampler interface {
	CPUTemperature(ctx context.Context) telemetry.Reading
	DiskTemperature(ctx context.Context, dev telemetry.Device) telemetry.Reading
	DetectVirtualization(ctx context.Context) hardware.Virtualization
}

// DiskLister enumerates disks. It is called on every tick.
type DiskLister interface {
	Disks(ctx context.Context) ([]telemetry.Device, error)
}

// Display presents a snapshot.
type Display interface {
	Show(s Snapshot) error
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(s Snapshot) error

func (f DisplayFunc) Show(s Snapshot) error {
	return f(s)
}
