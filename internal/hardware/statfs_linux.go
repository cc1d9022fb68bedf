//go:build linux

package hardware

import (
	"codeberg.org/mutker/hwdiag/internal/units"
	"golang.org/x/sys/unix"
)

func statfs(path string) (units.Capacity, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return units.Capacity{}, err
	}

	frsize := uint64(st.Frsize)
	if frsize == 0 {
		frsize = uint64(st.Bsize)
	}

	return units.Capacity{
		Blocks:       st.Blocks,
		Free:         st.Bfree,
		Available:    st.Bavail,
		FragmentSize: frsize,
	}, nil
}
