package hardware

import (
	"context"
	"strconv"

	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/extract"
	"codeberg.org/mutker/hwdiag/internal/telemetry"
	"codeberg.org/mutker/hwdiag/internal/units"
)

const (
	absoluteZero = -273.15
	maxPlausible = 200.0
)

// CPUThermalPaths is the ordered list of CPU temperature sources. The
// first one that yields a value wins.
var CPUThermalPaths = []string{
	"/sys/class/thermal/thermal_zone0/temp",
	"/sys/class/hwmon/hwmon0/temp1_input",
	"/sys/class/hwmon/hwmon1/temp1_input",
	"/sys/class/hwmon/hwmon2/temp1_input",
}

// CPUTemperature walks CPUThermalPaths and returns the first valid
// reading. When none yields a value the reading is unavailable.
func (p *Prober) CPUTemperature(_ context.Context) telemetry.Reading {
	for _, path := range CPUThermalPaths {
		lines, err := p.src.ReadLines(path)
		if err != nil {
			continue
		}
		raw, err := extract.Int(lines)
		if err != nil {
			p.log.Debug().Str("path", path).Err(err).Msg("unparsable thermal value")
			continue
		}
		if r := millicelsius(path, raw); r.Available() {
			return r
		}
	}

	return telemetry.Unavailable("cpu", errors.New().New(telemetry.ErrSensorUnavailable))
}

// millicelsius converts a sysfs thermal value, rejecting readings that
// cannot be a real temperature.
func millicelsius(source string, raw int64) telemetry.Reading {
	c := units.MilliCelsius(raw)
	if c <= absoluteZero || c > maxPlausible {
		return telemetry.Unavailable(source, errors.New().WithData(telemetry.ErrInvalidReading, source))
	}

	return celsius(source, extract.Temperature{Celsius: c, Raw: strconv.FormatInt(raw, 10)}, nil)
}
