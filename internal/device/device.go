// Package device enumerates the storage and battery units the views
// report on.
package device

import (
	"context"
	"path"
	"strings"

	"codeberg.org/mutker/hwdiag/internal/source"
	"codeberg.org/mutker/hwdiag/internal/telemetry"
)

const (
	lsblk            = "lsblk"
	powerSupplyClass = "/sys/class/power_supply"
	DefaultBattery   = "BAT0"
)

// diskPrefixes are the kernel names of disk-like block devices.
var diskPrefixes = []string{"sd", "nvme"}

// Enumerator lists devices. Results are never cached.
type Enumerator struct {
	src     source.Reader
	battery string
}

func NewEnumerator(src source.Reader, battery string) *Enumerator {
	if battery == "" {
		battery = DefaultBattery
	}

	return &Enumerator{src: src, battery: battery}
}

// Disks lists whole disks named sd* or nvme*. An empty list is not an
// error; callers render it as "no devices found". A missing lsblk is
// reported as errors.ErrSourceUnavailable.
func (e *Enumerator) Disks(ctx context.Context) ([]telemetry.Device, error) {
	lines, err := e.src.Run(ctx, lsblk, "-d", "-n", "-o", "NAME")
	if err != nil {
		return nil, err
	}

	return FilterDisks(lines), nil
}

// FilterDisks keeps names that look like whole disks.
func FilterDisks(names []string) []telemetry.Device {
	var devices []telemetry.Device
	for _, name := range names {
		name = strings.TrimSpace(name)
		if !isDisk(name) {
			continue
		}
		devices = append(devices, telemetry.Device{Kind: telemetry.KindDisk, ID: name})
	}

	return devices
}

func isDisk(name string) bool {
	for _, prefix := range diskPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Battery returns the configured battery and whether its power-supply
// node exists.
func (e *Enumerator) Battery() (telemetry.Device, bool) {
	dev := telemetry.Device{Kind: telemetry.KindBattery, ID: e.battery}
	return dev, e.src.Exists(BatteryPath(e.battery))
}

// BatteryPath returns the sysfs directory of a power-supply node.
func BatteryPath(name string) string {
	return path.Join(powerSupplyClass, name)
}
