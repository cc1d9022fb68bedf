package gpu

import "github.com/NVIDIA/go-nvml/pkg/nvml"

// Sensor reads the temperature of one GPU.
type Sensor interface {
	Name() string
	Temperature() (float64, error)
	Shutdown() error
}

// thermalDevice is the subset of nvml.Device the probe uses.
type thermalDevice interface {
	GetName() (string, nvml.Return)
	GetTemperature(sensor nvml.TemperatureSensors) (uint32, nvml.Return)
}
