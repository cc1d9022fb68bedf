package gpu

import (
	"codeberg.org/mutker/hwdiag/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// driver is the slice of the NVML library lifecycle the temperature
// probe needs. Tests replace it.
type driver interface {
	open() error
	close() error
	firstDevice() (thermalDevice, error)
}

type nvmlDriver struct{}

// open loads libnvidia-ml dynamically; hosts without the driver fail
// with ERROR_LIBRARY_NOT_FOUND.
func (nvmlDriver) open() error {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return errors.New().Wrap(ErrInitFailed, nvmlError{ret})
	}
	return nil
}

func (nvmlDriver) close() error {
	if ret := nvml.Shutdown(); ret != nvml.SUCCESS {
		return errors.New().Wrap(ErrShutdownFailed, nvmlError{ret})
	}
	return nil
}

// firstDevice binds to index 0. Multi-GPU hosts report only that one.
func (nvmlDriver) firstDevice() (thermalDevice, error) {
	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		return nil, errors.New().Wrap(ErrDeviceNotFound, nvmlError{ret})
	}
	if count == 0 {
		return nil, errors.New().New(ErrDeviceNotFound)
	}

	dev, ret := nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		return nil, errors.New().Wrap(ErrDeviceNotFound, nvmlError{ret})
	}

	return dev, nil
}
