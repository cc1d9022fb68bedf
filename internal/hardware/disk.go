package hardware

import (
	"context"
	"path/filepath"

	"codeberg.org/mutker/hwdiag/internal/extract"
	"codeberg.org/mutker/hwdiag/internal/units"
)

const mountsPath = "/proc/mounts"

// Filesystem is the capacity of one mounted filesystem.
type Filesystem struct {
	extract.Mount
	units.Capacity
}

// Filesystems lists the capacity of every mounted real filesystem.
// Pseudo filesystems and loop devices are skipped before any statfs
// call. Mounts that cannot be queried are left out.
func (p *Prober) Filesystems(_ context.Context) ([]Filesystem, error) {
	lines, err := p.src.ReadLines(mountsPath)
	if err != nil {
		return nil, err
	}

	var result []Filesystem
	for _, m := range extract.FilterMounts(extract.Mounts(lines)) {
		capacity, err := p.statfs(filepath.Join(p.root, m.MountPoint))
		if err != nil {
			p.log.Debug().Str("mount_point", m.MountPoint).Err(err).Msg("statfs failed")
			continue
		}
		result = append(result, Filesystem{Mount: m, Capacity: capacity})
	}

	return result, nil
}
