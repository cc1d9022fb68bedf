package extract

import (
	"strconv"
	"strings"

	"codeberg.org/mutker/hwdiag/internal/classify"
	"codeberg.org/mutker/hwdiag/internal/errors"
)

// Attribute is one row of an ATA SMART attribute table.
type Attribute struct {
	ID        int
	Name      string
	Value     int
	Worst     int
	Threshold int
	Raw       string
}

// AtRisk reports whether the normalized value has reached its own
// failure threshold.
func (a Attribute) AtRisk() bool {
	return classify.AtRisk(a.Value, a.Threshold)
}

// importantAttributes are the name fragments shown in the health view.
var importantAttributes = []string{
	"Reallocated",
	"Spin",
	"Seek",
	"Power_On",
	"Start_Stop",
	"Load_Cycle",
}

// Important reports whether a is one of the attributes the health view
// lists.
func Important(a Attribute) bool {
	for _, frag := range importantAttributes {
		if strings.Contains(a.Name, frag) {
			return true
		}
	}
	return false
}

// SMARTAttributes parses attribute table rows. Both the smartctl layout
// (ID, name, FLAG, value, worst, thresh, type, updated, when_failed, raw)
// and the compact layout without the FLAG column and trailing metadata
// are accepted. Header and non-table lines are skipped.
func SMARTAttributes(lines []string) []Attribute {
	var attrs []Attribute
	for _, line := range lines {
		if a, ok := parseAttribute(line); ok {
			attrs = append(attrs, a)
		}
	}

	return attrs
}

func parseAttribute(line string) (Attribute, bool) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return Attribute{}, false
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return Attribute{}, false
	}

	off, rawAt := 2, 5
	if strings.HasPrefix(fields[2], "0x") {
		off, rawAt = 3, 9
	}
	if len(fields) < off+3 {
		return Attribute{}, false
	}

	value, err := strconv.Atoi(fields[off])
	if err != nil {
		return Attribute{}, false
	}
	worst, err := strconv.Atoi(fields[off+1])
	if err != nil {
		return Attribute{}, false
	}
	thresh, err := parseThreshold(fields[off+2])
	if err != nil {
		return Attribute{}, false
	}

	a := Attribute{
		ID:        id,
		Name:      fields[1],
		Value:     value,
		Worst:     worst,
		Threshold: thresh,
	}
	if len(fields) > rawAt {
		a.Raw = strings.Join(fields[rawAt:], " ")
	}

	return a, true
}

// smartctl prints "---" for attributes without a failure threshold.
func parseThreshold(s string) (int, error) {
	if s == "---" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// SMARTHealth returns the overall health verdict, e.g. "OK" (SCSI) or
// "PASSED" (ATA/NVMe).
func SMARTHealth(lines []string) (string, error) {
	for _, line := range lines {
		for _, label := range []string{
			"SMART Health Status:",
			"SMART overall-health self-assessment test result:",
		} {
			if i := strings.Index(line, label); i >= 0 {
				if fields := strings.Fields(line[i+len(label):]); len(fields) > 0 {
					return fields[0], nil
				}
			}
		}
	}

	return "", errors.New().WithData(errors.ErrFieldNotFound, "SMART health status")
}

// HealthOK reports whether a SMART verdict means the drive passed.
func HealthOK(status string) bool {
	return status == "OK" || status == "PASSED"
}

// Temperature is a parsed drive temperature together with the text it
// was read from.
type Temperature struct {
	Celsius float64
	Raw     string
}

// SMARTTemperature returns the current drive temperature in °C. It
// prefers attribute 194, then 190, then the NVMe health log line, then
// the SCSI "Current Drive Temperature" line.
func SMARTTemperature(lines []string) (Temperature, error) {
	attrs := SMARTAttributes(lines)
	for _, name := range []string{"Temperature_Celsius", "Airflow_Temperature_Cel"} {
		for _, a := range attrs {
			if a.Name != name {
				continue
			}
			if t, ok := leadingNumber(a.Raw); ok {
				return t, nil
			}
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Temperature:") && strings.Contains(trimmed, "Celsius") {
			if t, ok := leadingNumber(strings.TrimPrefix(trimmed, "Temperature:")); ok {
				return t, nil
			}
		}
	}

	if t, err := LabelledTemperature(lines, "Current Drive Temperature:"); err == nil {
		return t, nil
	}

	return Temperature{}, errors.New().WithData(errors.ErrFieldNotFound, "drive temperature")
}

// LabelledTemperature returns the numeric value of a SCSI temperature
// line such as "Drive Trip Temperature:        68 C".
func LabelledTemperature(lines []string, label string) (Temperature, error) {
	for _, line := range lines {
		if i := strings.Index(line, label); i >= 0 {
			if t, ok := leadingNumber(line[i+len(label):]); ok {
				return t, nil
			}
		}
	}

	return Temperature{}, errors.New().WithData(errors.ErrFieldNotFound, label)
}

func leadingNumber(s string) (Temperature, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Temperature{}, false
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Temperature{}, false
	}

	return Temperature{Celsius: v, Raw: strings.TrimSpace(s)}, true
}
