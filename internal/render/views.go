package render

import (
	"strconv"

	"codeberg.org/mutker/hwdiag/internal/classify"
	"codeberg.org/mutker/hwdiag/internal/hardware"
	"codeberg.org/mutker/hwdiag/internal/telemetry"
	"codeberg.org/mutker/hwdiag/internal/units"
	"github.com/dustin/go-humanize"
)

func (r *Renderer) CPU(info hardware.CPUInfo) error {
	var p page
	r.title(&p, "CPU")
	p.line("Model:      %s", info.Model)
	for _, m := range info.Models[min(1, len(info.Models)):] {
		p.line("            %s", m)
	}
	p.line("Cores:      %d", info.Cores)
	if info.CoreCountMismatch() {
		p.line("%s", r.st.dim.Render("            (kernel reports "+strconv.Itoa(info.LogicalCPUs)+" logical CPUs)"))
	}
	p.line("Frequency:  %s MHz", info.FrequencyMHz)
	p.line("Cache size: %s", info.CacheSize)

	if info.LoadValid {
		p.blank()
		p.line("%s", r.st.header.Render("Load averages:"))
		p.line("  1 min:  %.2f", info.Load[0])
		p.line("  5 min:  %.2f", info.Load[1])
		p.line("  15 min: %.2f", info.Load[2])
	}

	return r.flush(&p)
}

func (r *Renderer) Memory(m units.Memory) error {
	var p page
	r.title(&p, "Memory")
	p.line("Total:      %.2f GB", units.KBToGB(m.Total))
	p.line("Used:       %.2f GB", units.KBToGB(m.Used()))
	p.line("Available:  %.2f GB", units.KBToGB(m.Available))
	p.line("Buffers:    %.2f GB", units.KBToGB(m.Buffers))
	p.line("Cached:     %.2f GB", units.KBToGB(m.Cached))

	r.title(&p, "Swap")
	p.line("Total:      %.2f GB", units.KBToGB(m.SwapTotal))
	p.line("Used:       %.2f GB", units.KBToGB(m.SwapUsed()))
	p.line("Free:       %.2f GB", units.KBToGB(m.SwapFree))

	r.title(&p, "Usage")
	p.line("Memory:     %.1f%%", m.UsedPercent())
	p.line("Swap:       %.1f%%", m.SwapUsedPercent())

	return r.flush(&p)
}

func (r *Renderer) Filesystems(fs []hardware.Filesystem) error {
	var p page
	r.title(&p, "Disks")
	p.blank()
	p.line("%s", r.st.header.Render(
		padRight("Device", 12)+" "+padRight("Mount point", 20)+" "+padRight("Type", 12)+
			" "+padLeft("Total (GB)", 15)+" "+padLeft("Avail (GB)", 15)+" "+padLeft("Use", 10)))
	p.line("%s", repeat('-', 89))
	for _, f := range fs {
		p.line("%-12s %-20.20s %-12s %15.2f %15.2f %9.1f%%",
			f.ShortDevice(), f.MountPoint, f.FSType,
			units.BytesToGB(f.TotalBytes()), units.BytesToGB(f.AvailableBytes()), f.UsedPercent())
	}
	if len(fs) == 0 {
		p.line("No mounted filesystems found")
	}

	return r.flush(&p)
}

// SMARTDevices lists the disks to choose from, numbered from 1.
func (r *Renderer) SMARTDevices(devs []telemetry.Device) error {
	var p page
	p.blank()
	p.line("Detected disks:")
	for i, d := range devs {
		p.line("%d. %s", i+1, d.Path())
	}

	return r.flush(&p)
}

func (r *Renderer) SMART(report hardware.SMARTReport) error {
	var p page
	r.title(&p, "SMART "+report.Device.Path())

	switch {
	case !report.HealthKnown:
		p.line("Health status:       unknown")
	case report.Healthy():
		p.line("Health status:       %s", r.st.ok.Render(report.Health))
	default:
		p.line("Health status:       %s", r.st.crit.Render(report.Health))
	}
	p.line("Current temperature: %s", reading(report.Temperature))
	p.line("Trip temperature:    %s", reading(report.TripTemp))

	p.blank()
	p.line("Health: OK/PASSED means the drive works normally. FAILED means it")
	p.line("may have a serious problem; back up your data promptly.")
	p.line("Temperature: normal 0-45%s, warning 46-55%s, critical above 55%s.",
		telemetry.UnitCelsius, telemetry.UnitCelsius, telemetry.UnitCelsius)

	if len(report.Attributes) > 0 {
		r.title(&p, "Important SMART attributes")
		p.line("%s", r.st.header.Render(
			padRight("ID", 8)+" "+padRight("Attribute", 30)+" "+padRight("Value", 10)+" "+
				padRight("Worst", 10)+" "+padRight("Thresh", 10)+" "+"Raw"))
		p.line("%s", repeat('-', 89))
		for _, a := range report.Attributes {
			row := padRight(strconv.Itoa(a.ID), 8) + " " + padRight(a.Name, 30) + " " +
				padRight(strconv.Itoa(a.Value), 10) + " " + padRight(strconv.Itoa(a.Worst), 10) + " " +
				padRight(strconv.Itoa(a.Threshold), 10) + " " + rawValue(a.Raw)
			if a.AtRisk() {
				row += " " + r.st.crit.Render("[at risk]")
			}
			p.line("%s", row)
		}
	}

	return r.flush(&p)
}

func (r *Renderer) Battery(b hardware.BatteryReport) error {
	unit := b.CapacityUnit()

	var p page
	r.title(&p, "Battery "+b.Device.ID)
	p.line("Status:          %s", b.Status)
	p.line("Charge:          %d%%", b.Capacity)
	p.line("Cycle count:     %s", humanize.Comma(b.CycleCount))
	p.line("Voltage:         %.2f V", b.Voltage)
	p.line("Current:         %.2f mA", b.Current)
	if b.CapacityKnown {
		p.line("Full capacity:   %.2f %s", b.Full, unit)
		p.line("Design capacity: %.2f %s", b.Design, unit)
		p.line("Health:          %.1f%%", b.HealthPct)
	} else {
		p.line("Full capacity:   unavailable")
		p.line("Design capacity: unavailable")
		p.line("Health:          unavailable")
	}

	r.title(&p, "Battery assessment")
	if b.CapacityKnown {
		h := b.Health()
		p.line("Condition: %s", r.health(h))
		switch h {
		case classify.Fair:
			p.line("Advice: keep using it, but expect shorter runtime.")
		case classify.Poor:
			p.line("Advice: consider replacing the battery.")
		}
	} else {
		p.line("Condition: unknown (no capacity counters)")
	}
	if b.HighCycles() {
		p.line("%s", r.st.warn.Render("Note: the high cycle count may shorten battery runtime."))
	}

	return r.flush(&p)
}

// Notice renders a recoverable condition as a single line.
func (r *Renderer) Notice(err error) error {
	var p page
	p.blank()
	p.line("%s", r.st.warn.Render(err.Error()))

	return r.flush(&p)
}

func reading(rd telemetry.Reading) string {
	if !rd.Available() {
		return "unavailable"
	}
	return strconv.FormatFloat(rd.Value, 'f', 0, 64) + " " + rd.Unit
}

// rawValue groups plain integer raw values, leaving vendor formats
// such as "38 (Min/Max 18/45)" untouched.
func rawValue(raw string) string {
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return humanize.Comma(v)
	}
	return raw
}
