package hardware

import (
	"context"

	"codeberg.org/mutker/hwdiag/internal/extract"
)

const (
	cpuinfoPath = "/proc/cpuinfo"
	loadavgPath = "/proc/loadavg"
)

type CPUInfo struct {
	Model        string
	Models       []string // distinct models, more than one on hybrid parts
	Cores        int      // count of "model name" lines
	LogicalCPUs  int      // kernel count, 0 when unknown
	FrequencyMHz string
	CacheSize    string
	Load         [3]float64
	LoadValid    bool
}

// CoreCountMismatch reports whether the label-counting heuristic
// disagrees with the kernel's logical CPU count.
func (c CPUInfo) CoreCountMismatch() bool {
	return c.LogicalCPUs > 0 && c.LogicalCPUs != c.Cores
}

// CPU reads /proc/cpuinfo and /proc/loadavg. Only an unreadable
// cpuinfo is an error; absent fields are left empty.
func (p *Prober) CPU(ctx context.Context) (CPUInfo, error) {
	lines, err := p.src.ReadLines(cpuinfoPath)
	if err != nil {
		return CPUInfo{}, err
	}

	info := CPUInfo{
		Models: extract.Distinct(lines, "model name"),
		Cores:  extract.Count(lines, "model name"),
	}
	if len(info.Models) > 0 {
		info.Model = info.Models[0]
	}
	info.FrequencyMHz, _ = extract.Value(lines, "cpu MHz")
	info.CacheSize, _ = extract.Value(lines, "cache size")

	if n, err := p.logicalCPUs(ctx, true); err == nil {
		info.LogicalCPUs = n
	} else {
		p.log.Debug().Err(err).Msg("logical CPU count unavailable")
	}
	if info.CoreCountMismatch() {
		p.log.Debug().
			Int("model_name_lines", info.Cores).
			Int("logical_cpus", info.LogicalCPUs).
			Msg("core count heuristic disagrees with kernel")
	}

	if load, err := p.src.ReadLines(loadavgPath); err == nil {
		if info.Load, err = extract.LoadAverages(load); err == nil {
			info.LoadValid = true
		}
	}

	return info, nil
}
