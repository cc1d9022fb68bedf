package hardware

import (
	"context"
	"strings"
	"time"

	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/extract"
	"codeberg.org/mutker/hwdiag/internal/telemetry"
)

// SMARTRemediation is shown when smartctl is not installed.
const SMARTRemediation = "install smartmontools (e.g. dnf install smartmontools or apt install smartmontools)"

type SMARTReport struct {
	Device      telemetry.Device
	Health      string
	HealthKnown bool
	Temperature telemetry.Reading
	TripTemp    telemetry.Reading
	Attributes  []extract.Attribute // important attributes only
}

// Healthy reports whether the drive passed its self-assessment.
func (r SMARTReport) Healthy() bool {
	return r.HealthKnown && extract.HealthOK(r.Health)
}

// AtRisk returns the attributes whose value has reached the threshold.
func (r SMARTReport) AtRisk() []extract.Attribute {
	var risky []extract.Attribute
	for _, a := range r.Attributes {
		if a.AtRisk() {
			risky = append(risky, a)
		}
	}

	return risky
}

// SMARTAvailable returns a SourceUnavailable error carrying the
// remediation hint when smartctl cannot be found.
func (p *Prober) SMARTAvailable() error {
	if _, err := p.src.LookPath(p.smartctl); err != nil {
		return errors.New().WithMessage(errors.ErrSourceUnavailable, "smartctl not found: "+SMARTRemediation)
	}

	return nil
}

// SMARTDevices lists the disks available for a SMART check. Unlike the
// enumerator, an empty list is reported as NoDevicesFound.
func (p *Prober) SMARTDevices(ctx context.Context) ([]telemetry.Device, error) {
	disks, err := p.enum.Disks(ctx)
	if err != nil {
		return nil, err
	}
	if len(disks) == 0 {
		return nil, errors.New().New(errors.ErrNoDevicesFound)
	}

	return disks, nil
}

// SMART reads the health verdict, temperatures and important
// attributes of one disk.
func (p *Prober) SMART(ctx context.Context, dev telemetry.Device) (SMARTReport, error) {
	lines, err := p.smartctlRun(ctx, "-H", "-A", dev.Path())
	if err != nil {
		return SMARTReport{}, err
	}

	attrs := extract.SMARTAttributes(lines)
	report := SMARTReport{Device: dev}
	if health, err := extract.SMARTHealth(lines); err == nil {
		report.Health = health
		report.HealthKnown = true
	}

	source := p.smartctl + " " + dev.Path()
	temp, err := extract.SMARTTemperature(lines)
	report.Temperature = celsius(source, temp, err)
	trip, err := extract.LabelledTemperature(lines, "Drive Trip Temperature:")
	report.TripTemp = celsius(source, trip, err)

	for _, a := range attrs {
		if extract.Important(a) {
			report.Attributes = append(report.Attributes, a)
		}
	}

	// smartctl prints its banner even when it cannot open the device,
	// so output with nothing parseable in it is a failed read.
	if !report.HealthKnown && !report.Temperature.Available() && !report.TripTemp.Available() && len(attrs) == 0 {
		return SMARTReport{}, errors.New().
			WithMessage(errors.ErrSourceUnavailable, "smartctl could not read "+dev.Path()+" (try running as root)").
			WithData(lastLine(lines))
	}

	return report, nil
}

// DiskTemperature reads the current temperature of one disk. Failures
// yield an unavailable reading.
func (p *Prober) DiskTemperature(ctx context.Context, dev telemetry.Device) telemetry.Reading {
	source := p.smartctl + " -A " + dev.Path()
	lines, err := p.smartctlRun(ctx, "-A", dev.Path())
	if err != nil {
		return telemetry.Unavailable(source, err)
	}

	temp, err := extract.SMARTTemperature(lines)
	return celsius(source, temp, err)
}

// smartctlRun tries "sudo -n smartctl" first when enabled so that a
// password prompt can never block, then smartctl directly.
func (p *Prober) smartctlRun(ctx context.Context, args ...string) ([]string, error) {
	if p.sudo {
		lines, err := p.src.Run(ctx, "sudo", append([]string{"-n", p.smartctl}, args...)...)
		if err == nil && len(lines) > 0 {
			return lines, nil
		}
		p.log.Debug().Err(err).Msg("sudo smartctl failed, retrying directly")
	}

	lines, err := p.src.Run(ctx, p.smartctl, args...)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New().WithData(errors.ErrSourceUnavailable, p.smartctl+" produced no output")
	}

	return lines, nil
}

func lastLine(lines []string) string {
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

func celsius(source string, t extract.Temperature, err error) telemetry.Reading {
	if err != nil {
		return telemetry.Unavailable(source, err)
	}

	return telemetry.Reading{
		Source:    source,
		Raw:       t.Raw,
		Value:     t.Celsius,
		Valid:     true,
		Unit:      telemetry.UnitCelsius,
		Timestamp: time.Now(),
	}
}
