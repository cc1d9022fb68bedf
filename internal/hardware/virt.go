package hardware

import (
	"context"
	"strings"
)

// Virtualization describes the detected hypervisor, if any.
type Virtualization struct {
	Virtual bool
	Vendor  string
	Method  string // which detector answered
}

var hypervisorVendors = []string{"vmware", "virtualbox", "kvm", "qemu", "xen", "microsoft", "parallels", "bochs"}

// DetectVirtualization asks systemd-detect-virt, then the DMI system
// manufacturer, then the kernel-level host detector. A detector that
// cannot run is skipped. The result only drives an advisory.
func (p *Prober) DetectVirtualization(ctx context.Context) Virtualization {
	if lines, err := p.src.Run(ctx, "systemd-detect-virt"); err == nil && len(lines) > 0 {
		vendor := strings.TrimSpace(lines[0])
		return Virtualization{Virtual: vendor != "" && vendor != "none", Vendor: vendor, Method: "systemd-detect-virt"}
	}

	if lines, err := p.src.Run(ctx, "dmidecode", "-s", "system-manufacturer"); err == nil && len(lines) > 0 {
		vendor := strings.TrimSpace(lines[0])
		lower := strings.ToLower(vendor)
		for _, v := range hypervisorVendors {
			if strings.Contains(lower, v) {
				return Virtualization{Virtual: true, Vendor: vendor, Method: "dmidecode"}
			}
		}
		return Virtualization{Vendor: vendor, Method: "dmidecode"}
	}

	system, role, err := p.hostVirt(ctx)
	if err != nil {
		p.log.Debug().Err(err).Msg("virtualization detection failed")
		return Virtualization{}
	}

	return Virtualization{Virtual: role == "guest", Vendor: system, Method: "host"}
}
