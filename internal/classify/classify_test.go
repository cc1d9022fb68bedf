package classify_test

import (
	"testing"

	"codeberg.org/mutker/hwdiag/internal/classify"
	"codeberg.org/mutker/hwdiag/internal/telemetry"
	"github.com/stretchr/testify/assert"
)

func TestCPUThermalBoundaries(t *testing.T) {
	tests := []struct {
		temp float64
		want classify.Band
	}{
		{25.0, classify.Normal},
		{69.9, classify.Normal},
		{70.0, classify.Warning},
		{79.9, classify.Warning},
		{80.0, classify.Critical},
		{105.0, classify.Critical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classify.Temperature(telemetry.KindCPU, tt.temp), "%.1f°C", tt.temp)
	}
}

func TestDiskThermalBoundaries(t *testing.T) {
	tests := []struct {
		temp float64
		want classify.Band
	}{
		{44.9, classify.Normal},
		{45.0, classify.Warning},
		{54.9, classify.Warning},
		{55.0, classify.Critical},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classify.Temperature(telemetry.KindDisk, tt.temp), "%.1f°C", tt.temp)
	}
}

func TestThermalMonotonic(t *testing.T) {
	for _, kind := range []telemetry.DeviceKind{telemetry.KindCPU, telemetry.KindDisk, telemetry.KindGPU} {
		prev := classify.Normal
		for tenths := -100; tenths <= 1200; tenths++ {
			band := classify.Temperature(kind, float64(tenths)/10)
			assert.GreaterOrEqual(t, int(band), int(prev), "%s at %d", kind, tenths)
			prev = band
		}
	}
}

func TestGPUUsesProcessorTable(t *testing.T) {
	assert.Equal(t, classify.CPUThermal, classify.ThermalFor(telemetry.KindGPU))
	assert.Equal(t, classify.DiskThermal, classify.ThermalFor(telemetry.KindDisk))
}

func TestBatteryHealth(t *testing.T) {
	tests := []struct {
		pct  float64
		want classify.Health
	}{
		{100.0, classify.Good},
		{80.0, classify.Good},
		{79.9, classify.Fair},
		{60.0, classify.Fair},
		{59.9, classify.Poor},
		{0.0, classify.Poor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classify.BatteryHealth(tt.pct), "%.1f%%", tt.pct)
	}
}

func TestAtRisk(t *testing.T) {
	assert.True(t, classify.AtRisk(36, 36))
	assert.True(t, classify.AtRisk(10, 36))
	assert.False(t, classify.AtRisk(100, 36))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "warning", classify.Warning.String())
	assert.Equal(t, "fair", classify.Fair.String())
}
