// Package units converts raw kernel readings into display units. All
// conversions are fixed.
package units

const (
	kbPerGB        = 1024 * 1024
	bytesPerGB     = 1024 * 1024 * 1024
	microPerUnit   = 1_000_000
	microPerMilli  = 1_000
	milliPerDegree = 1_000
	percent        = 100
)

// KBToGB converts kibibytes to gibibytes.
func KBToGB(kb uint64) float64 {
	return float64(kb) / kbPerGB
}

// BytesToGB converts bytes to gibibytes.
func BytesToGB(b uint64) float64 {
	return float64(b) / bytesPerGB
}

// Percent returns part/total*100, or 0 when total is 0.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * percent
}

// sub returns a-b, or 0 when b exceeds a.
func sub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

// Memory holds /proc/meminfo values in kB.
type Memory struct {
	Total     uint64
	Free      uint64
	Available uint64
	Buffers   uint64
	Cached    uint64
	SwapTotal uint64
	SwapFree  uint64
}

// Used returns total - free - buffers - cached in kB.
func (m Memory) Used() uint64 {
	return sub(sub(sub(m.Total, m.Free), m.Buffers), m.Cached)
}

// UsedPercent returns the physical memory usage percentage.
func (m Memory) UsedPercent() float64 {
	return Percent(float64(m.Used()), float64(m.Total))
}

// SwapUsed returns swap total - swap free in kB.
func (m Memory) SwapUsed() uint64 {
	return sub(m.SwapTotal, m.SwapFree)
}

// SwapUsedPercent returns the swap usage percentage, 0 without swap.
func (m Memory) SwapUsedPercent() float64 {
	return Percent(float64(m.SwapUsed()), float64(m.SwapTotal))
}

// Capacity holds filesystem block counts as reported by statfs.
type Capacity struct {
	Blocks       uint64
	Free         uint64 // free blocks, including those reserved for root
	Available    uint64 // free blocks available to unprivileged users
	FragmentSize uint64
}

// TotalBytes returns blocks × fragment size.
func (c Capacity) TotalBytes() uint64 {
	return c.Blocks * c.FragmentSize
}

// AvailableBytes returns the unprivileged free space in bytes.
func (c Capacity) AvailableBytes() uint64 {
	return c.Available * c.FragmentSize
}

// UsedBytes returns total minus all free blocks, matching df.
func (c Capacity) UsedBytes() uint64 {
	return sub(c.TotalBytes(), c.Free*c.FragmentSize)
}

// UsedPercent returns used/total*100, or 0 for an empty filesystem.
func (c Capacity) UsedPercent() float64 {
	return Percent(float64(c.UsedBytes()), float64(c.TotalBytes()))
}

// MicroToUnit converts µV to V or µWh to Wh.
func MicroToUnit(v int64) float64 {
	return float64(v) / microPerUnit
}

// MicroToMilli converts µA to mA.
func MicroToMilli(v int64) float64 {
	return float64(v) / microPerMilli
}

// MilliCelsius converts a sysfs thermal reading to °C.
func MilliCelsius(raw int64) float64 {
	return float64(raw) / milliPerDegree
}

// BatteryHealth returns full/design*100, or 0 when design is unknown.
func BatteryHealth(full, design int64) float64 {
	if design <= 0 {
		return 0
	}
	return Percent(float64(full), float64(design))
}
