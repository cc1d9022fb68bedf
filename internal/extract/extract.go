// Package extract pulls labelled fields out of the line-oriented text
// produced by kernel virtual files and diagnostic commands.
package extract

import (
	"strconv"
	"strings"

	"codeberg.org/mutker/hwdiag/internal/errors"
)

// Value returns the text after the first ':' on the first line that
// starts with label, trimmed.
func Value(lines []string, label string) (string, error) {
	for _, line := range lines {
		if !strings.HasPrefix(line, label) {
			continue
		}
		if _, val, ok := strings.Cut(line, ":"); ok {
			return strings.TrimSpace(val), nil
		}
	}

	return "", errors.New().WithData(errors.ErrFieldNotFound, label)
}

// Distinct returns every distinct value for label in first-seen order.
func Distinct(lines []string, label string) []string {
	seen := make(map[string]bool)
	var values []string

	for _, line := range lines {
		if !strings.HasPrefix(line, label) {
			continue
		}
		_, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		if seen[val] {
			continue
		}
		seen[val] = true
		values = append(values, val)
	}

	return values
}

// Count returns how many lines carry label. Processor core count is
// derived this way (one "model name" line per logical CPU). It is
// brittle: irregular cpuinfo layouts, such as some ARM kernels that
// print no "model name" at all, undercount silently.
func Count(lines []string, label string) int {
	n := 0
	for _, line := range lines {
		if strings.HasPrefix(line, label) && strings.Contains(line, ":") {
			n++
		}
	}

	return n
}

// KB returns the numeric value of a "Label:   1234 kB" line.
func KB(lines []string, label string) (uint64, error) {
	val, err := Value(lines, label)
	if err != nil {
		return 0, err
	}

	return parseUint(strings.TrimSuffix(val, " kB"), label)
}

// Uint returns the unsigned integer value of label.
func Uint(lines []string, label string) (uint64, error) {
	val, err := Value(lines, label)
	if err != nil {
		return 0, err
	}

	return parseUint(val, label)
}

// Int parses the first whitespace-separated token of a single-value
// sysfs file such as temp1_input or voltage_now.
func Int(lines []string) (int64, error) {
	errFactory := errors.New()

	if len(lines) == 0 {
		return 0, errFactory.WithData(errors.ErrFieldNotFound, "empty source")
	}
	fields := strings.Fields(lines[0])
	if len(fields) == 0 {
		return 0, errFactory.WithData(errors.ErrFieldNotFound, "empty line")
	}

	v, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrFieldNotFound, err)
	}

	return v, nil
}

// Word returns the first whitespace-separated token of a single-value
// file such as a battery status node.
func Word(lines []string) (string, error) {
	for _, line := range lines {
		if fields := strings.Fields(line); len(fields) > 0 {
			return fields[0], nil
		}
	}

	return "", errors.New().WithData(errors.ErrFieldNotFound, "empty source")
}

// LoadAverages parses the 1, 5 and 15 minute averages of /proc/loadavg.
func LoadAverages(lines []string) ([3]float64, error) {
	var loads [3]float64
	errFactory := errors.New()

	if len(lines) == 0 {
		return loads, errFactory.WithData(errors.ErrFieldNotFound, "loadavg")
	}
	fields := strings.Fields(lines[0])
	if len(fields) < 3 {
		return loads, errFactory.WithData(errors.ErrFieldNotFound, "loadavg")
	}

	for i := range loads {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return loads, errFactory.Wrap(errors.ErrFieldNotFound, err)
		}
		loads[i] = v
	}

	return loads, nil
}

func parseUint(s, label string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.New().WithData(errors.ErrFieldNotFound, label+": "+err.Error())
	}

	return v, nil
}
