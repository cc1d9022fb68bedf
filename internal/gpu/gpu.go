// Package gpu reads NVIDIA GPU temperatures through NVML. It is
// optional: on hosts without the driver New fails softly and the
// monitor simply omits the GPU line.
package gpu

import (
	"sync"

	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/logger"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// GPU reads the temperature of the first NVIDIA device.
type GPU struct {
	drv    driver
	device thermalDevice
	name   string
	mu     sync.Mutex
}

var _ Sensor = (*GPU)(nil)

// New initializes NVML and binds to device 0.
func New() (*GPU, error) {
	return newGPU(nvmlDriver{})
}

func newGPU(drv driver) (*GPU, error) {
	if err := drv.open(); err != nil {
		return nil, err
	}

	device, err := drv.firstDevice()
	if err != nil {
		_ = drv.close()
		return nil, err
	}

	g := &GPU{drv: drv, device: device, name: "GPU 0"}
	if name, ret := device.GetName(); ret == nvml.SUCCESS {
		g.name = name
		logger.Info().Msgf("Detected GPU: %v", name)
	} else {
		logger.Warn().Msgf("Failed to get GPU name: %v", nvml.ErrorString(ret))
	}

	return g, nil
}

func (g *GPU) Name() string {
	return g.name
}

// Temperature returns the core temperature in °C.
func (g *GPU) Temperature() (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.device == nil {
		return 0, errors.New().New(ErrNotInitialized)
	}

	temp, ret := g.device.GetTemperature(nvml.TEMPERATURE_GPU)
	if ret != nvml.SUCCESS {
		return 0, errors.New().Wrap(ErrTemperatureReadFailed, nvmlError{ret})
	}

	return float64(temp), nil
}

// Shutdown releases NVML. Later reads fail with ErrNotInitialized.
func (g *GPU) Shutdown() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.device = nil
	return g.drv.close()
}
