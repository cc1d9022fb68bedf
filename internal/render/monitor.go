package render

import (
	"fmt"
	"time"

	"codeberg.org/mutker/hwdiag/internal/classify"
	"codeberg.org/mutker/hwdiag/internal/monitor"
	"codeberg.org/mutker/hwdiag/internal/telemetry"
)

var _ monitor.Display = (*Renderer)(nil)

// Show draws one monitor snapshot, replacing the previous one on a
// terminal.
func (r *Renderer) Show(s monitor.Snapshot) error {
	r.Clear()

	var p page
	r.title(&p, "Hardware Temperature Monitor")
	p.line("Elapsed: %s   Interval: %s", s.Elapsed.Round(time.Second), s.Interval)

	if s.Virtualization.Virtual {
		p.blank()
		p.line("%s", r.st.warn.Render(fmt.Sprintf("Warning: running under virtualization (%s).", s.Virtualization.Vendor)))
		p.line("CPU temperature may not be readable. Disk temperature monitoring still works.")
	}

	p.blank()
	p.line("%s", r.st.header.Render("CPU temperature:"))
	if s.CPU.Reading.Available() {
		r.sample(&p, "Core", s.CPU)
	} else {
		p.line("  CPU temperature unavailable (possibly a virtual machine)")
	}

	if s.GPU != nil {
		p.blank()
		p.line("%s", r.st.header.Render("GPU temperature:"))
		if s.GPU.Reading.Available() {
			r.sample(&p, s.GPU.Label, *s.GPU)
		} else {
			p.line("  %s: unavailable", s.GPU.Label)
		}
	}

	p.blank()
	p.line("%s", r.st.header.Render("Disk temperatures:"))
	switch {
	case s.DiskErr != nil:
		p.line("  Disk list unavailable: %v", s.DiskErr)
	case s.NoDisks():
		p.line("  No disks found")
	}
	for _, d := range s.Disks {
		if d.Reading.Available() {
			r.sample(&p, d.Label, d)
		} else {
			p.line("  %s: unavailable", d.Label)
		}
	}

	r.legend(&p)
	p.blank()
	p.line("%s", r.st.dim.Render("Press Ctrl+C to stop monitoring"))

	return r.flush(&p)
}

func (r *Renderer) sample(p *page, label string, s monitor.Sample) {
	p.line("  %s: %.1f%s %s", label, s.Reading.Value, telemetry.UnitCelsius, r.band(s.Band))
}

func (r *Renderer) legend(p *page) {
	p.blank()
	p.line("Temperature bands:")
	p.line("  CPU/GPU: normal < %s <= warning < %s <= critical",
		degrees(classify.CPUThermal.Warning), degrees(classify.CPUThermal.Critical))
	p.line("  Disk:    normal < %s <= warning < %s <= critical",
		degrees(classify.DiskThermal.Warning), degrees(classify.DiskThermal.Critical))
}

func degrees(v float64) string {
	return fmt.Sprintf("%.0f%s", v, telemetry.UnitCelsius)
}
