package hardware

import (
	"context"

	"codeberg.org/mutker/hwdiag/internal/extract"
	"codeberg.org/mutker/hwdiag/internal/units"
)

const meminfoPath = "/proc/meminfo"

// Memory reads /proc/meminfo. Missing fields read as zero.
func (p *Prober) Memory(_ context.Context) (units.Memory, error) {
	lines, err := p.src.ReadLines(meminfoPath)
	if err != nil {
		return units.Memory{}, err
	}

	var m units.Memory
	for _, f := range []struct {
		label string
		dst   *uint64
	}{
		{"MemTotal:", &m.Total},
		{"MemFree:", &m.Free},
		{"MemAvailable:", &m.Available},
		{"Buffers:", &m.Buffers},
		{"Cached:", &m.Cached},
		{"SwapTotal:", &m.SwapTotal},
		{"SwapFree:", &m.SwapFree},
	} {
		v, err := extract.KB(lines, f.label)
		if err != nil {
			p.log.Debug().Str("field", f.label).Err(err).Msg("meminfo field missing")
			continue
		}
		*f.dst = v
	}

	return m, nil
}
