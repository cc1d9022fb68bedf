// Package classify maps normalized readings onto qualitative bands.
// Every function here is a pure lookup against fixed tables.
package classify

import "codeberg.org/mutker/hwdiag/internal/telemetry"

// Band is an ordered thermal classification.
type Band int

const (
	Normal Band = iota
	Warning
	Critical
)

func (b Band) String() string {
	switch b {
	case Normal:
		return "normal"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Thresholds holds the inclusive lower bound of the warning and
// critical bands.
type Thresholds struct {
	Warning  float64
	Critical float64
}

var (
	CPUThermal  = Thresholds{Warning: 70, Critical: 80}
	DiskThermal = Thresholds{Warning: 45, Critical: 55}
)

// Classify places v in a band. A value equal to a boundary belongs to
// the band starting there.
func (t Thresholds) Classify(v float64) Band {
	switch {
	case v >= t.Critical:
		return Critical
	case v >= t.Warning:
		return Warning
	default:
		return Normal
	}
}

// ThermalFor returns the table for a device kind. GPUs share the
// processor table.
func ThermalFor(kind telemetry.DeviceKind) Thresholds {
	if kind == telemetry.KindDisk {
		return DiskThermal
	}
	return CPUThermal
}

// Temperature classifies a temperature for the given device kind.
func Temperature(kind telemetry.DeviceKind, celsius float64) Band {
	return ThermalFor(kind).Classify(celsius)
}

// Health is an ordered wear classification, best first.
type Health int

const (
	Good Health = iota
	Fair
	Poor
)

func (h Health) String() string {
	switch h {
	case Good:
		return "good"
	case Fair:
		return "fair"
	case Poor:
		return "poor"
	default:
		return "unknown"
	}
}

const (
	batteryGood = 80
	batteryFair = 60

	// HighCycleCount marks batteries whose runtime has likely shortened.
	HighCycleCount = 500
)

// BatteryHealth classifies a full/design capacity percentage.
func BatteryHealth(pct float64) Health {
	switch {
	case pct >= batteryGood:
		return Good
	case pct >= batteryFair:
		return Fair
	default:
		return Poor
	}
}

// AtRisk reports whether a SMART attribute's current normalized value
// has reached its own threshold.
func AtRisk(current, threshold int) bool {
	return current <= threshold
}
