//go:build !linux

package hardware

import (
	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/units"
)

func statfs(path string) (units.Capacity, error) {
	return units.Capacity{}, errors.New().WithData(errors.ErrSourceUnavailable, "statfs "+path)
}
