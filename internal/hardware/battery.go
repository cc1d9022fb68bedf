package hardware

import (
	"context"
	"path"

	"codeberg.org/mutker/hwdiag/internal/classify"
	"codeberg.org/mutker/hwdiag/internal/device"
	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/extract"
	"codeberg.org/mutker/hwdiag/internal/telemetry"
	"codeberg.org/mutker/hwdiag/internal/units"
)

type BatteryReport struct {
	Device     telemetry.Device
	Status     string
	Capacity   int64 // percent charge
	CycleCount int64
	Voltage    float64 // V
	Current    float64 // mA
	Full       float64 // Wh, or mAh when Charge is set
	Design     float64
	Charge     bool // capacity figures come from charge_* (µAh) files
	HealthPct  float64

	// CapacityKnown is false when the node exposes neither energy_* nor
	// charge_* counters.
	CapacityKnown bool
}

func (b BatteryReport) Health() classify.Health {
	return classify.BatteryHealth(b.HealthPct)
}

// HighCycles reports whether the cycle count warrants an advisory.
func (b BatteryReport) HighCycles() bool {
	return b.CycleCount > classify.HighCycleCount
}

// CapacityUnit is "Wh" for energy counters and "mAh" for charge ones.
// It is meaningless unless CapacityKnown is set.
func (b BatteryReport) CapacityUnit() string {
	if b.Charge {
		return "mAh"
	}
	return "Wh"
}

// Battery reads the configured power-supply node. Individual missing
// attributes read as zero. A missing node is NoDevicesFound.
func (p *Prober) Battery(_ context.Context) (BatteryReport, error) {
	dev, ok := p.enum.Battery()
	if !ok {
		return BatteryReport{}, errors.New().WithData(errors.ErrNoDevicesFound, dev.ID)
	}

	dir := device.BatteryPath(dev.ID)
	report := BatteryReport{
		Device:     dev,
		Capacity:   p.sysfsInt(dir, "capacity"),
		CycleCount: p.sysfsInt(dir, "cycle_count"),
		Voltage:    units.MicroToUnit(p.sysfsInt(dir, "voltage_now")),
		Current:    units.MicroToMilli(p.sysfsInt(dir, "current_now")),
	}
	if lines, err := p.src.ReadLines(path.Join(dir, "status")); err == nil {
		report.Status, _ = extract.Word(lines)
	}

	full, design := p.sysfsInt(dir, "energy_full"), p.sysfsInt(dir, "energy_full_design")
	switch {
	case full != 0 || design != 0:
		report.CapacityKnown = true
		report.Full = units.MicroToUnit(full)
		report.Design = units.MicroToUnit(design)
	case p.src.Exists(path.Join(dir, "charge_full")) || p.src.Exists(path.Join(dir, "charge_full_design")):
		full, design = p.sysfsInt(dir, "charge_full"), p.sysfsInt(dir, "charge_full_design")
		report.CapacityKnown = true
		report.Charge = true
		report.Full = units.MicroToMilli(full)
		report.Design = units.MicroToMilli(design)
	}
	report.HealthPct = units.BatteryHealth(full, design)

	return report, nil
}

func (p *Prober) sysfsInt(dir, name string) int64 {
	lines, err := p.src.ReadLines(path.Join(dir, name))
	if err != nil {
		return 0
	}
	v, err := extract.Int(lines)
	if err != nil {
		p.log.Debug().Str("attribute", name).Err(err).Msg("unparsable battery attribute")
		return 0
	}

	return v
}
