package telemetry

import "codeberg.org/mutker/hwdiag/internal/errors"

const (
	ErrSensorUnavailable = errors.ErrorCode("telemetry_sensor_unavailable")
	ErrInvalidReading    = errors.ErrorCode("telemetry_invalid_reading")
)
