// Package telemetry holds the ephemeral values that flow from the
// source readers through classification into rendering.
package telemetry

import (
	"time"
)

// DeviceKind identifies what a Device is.
type DeviceKind string

const (
	KindCPU     DeviceKind = "cpu"
	KindDisk    DeviceKind = "disk"
	KindBattery DeviceKind = "battery"
	KindGPU     DeviceKind = "gpu"
)

// Device is enumerated per session or per menu action and never cached,
// since hot-plug may change the topology between runs.
type Device struct {
	Kind DeviceKind
	ID   string // e.g. "sda", "BAT0", "/sys/class/thermal/thermal_zone0/temp"
}

// Path returns the device node for disks and the ID otherwise.
func (d Device) Path() string {
	if d.Kind == KindDisk {
		return "/dev/" + d.ID
	}
	return d.ID
}

// Reading is a single sampled value. It is created per poll tick and
// discarded after rendering.
type Reading struct {
	Source    string // path or command line the value came from
	Raw       string
	Value     float64
	Valid     bool
	Unit      string
	Timestamp time.Time
	Err       error
}

// Available reports whether the reading carries a usable value.
func (r Reading) Available() bool {
	return r.Valid && r.Err == nil
}

// Unavailable builds a Reading that records why no value exists.
func Unavailable(source string, err error) Reading {
	return Reading{
		Source:    source,
		Timestamp: time.Now(),
		Err:       err,
	}
}

const UnitCelsius = "°C"
