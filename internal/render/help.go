package render

type section struct {
	title string
	lines []string
}

var manual = []section{
	{"1. About", []string{
		"hwdiag inspects and monitors hardware on Linux systems.",
		"It reads hardware information, checks component health and",
		"monitors temperatures.",
	}},
	{"2. Features", []string{
		"a) Hardware information",
		"   - CPU: model, core count, frequency and cache size",
		"   - Memory: physical memory and swap usage",
		"   - Disks: capacity and usage of mounted filesystems",
		"b) Health checks",
		"   - SMART: disk health status and failing attributes",
		"   - Battery: laptop battery wear and usage",
		"c) Temperature monitor",
		"   - Live CPU, GPU and disk temperatures",
		"   - Warning and critical bands",
	}},
	{"3. Usage", []string{
		"- Type the number of an entry and press Enter",
		"- 0 returns to the previous menu",
		"- Some features need root privileges",
		"- Press Ctrl+C to stop the temperature monitor",
		"- Run with --monitor to start monitoring directly",
	}},
	{"4. Notes", []string{
		"- SMART checks need smartmontools installed",
		"- The temperature monitor needs no extra packages",
		"- CPU temperature may be unavailable in virtual machines",
		"- Check hardware health regularly",
		"- Act promptly when temperatures reach the critical band",
	}},
	{"5. Troubleshooting", []string{
		"Q: Some hardware information is missing?",
		"A: Run as root or install the required tools.",
		"Q: Temperatures look wrong?",
		"A: Make sure the system exposes thermal sensors.",
		"Q: The SMART check fails?",
		"A: Install smartmontools and run as root.",
	}},
}

var commands = []section{
	{"CPU", []string{
		"lscpu                - CPU architecture",
		"cat /proc/cpuinfo    - CPU details",
		"top                  - CPU usage and processes",
		"mpstat               - CPU statistics",
		"nproc                - number of CPUs",
	}},
	{"Memory", []string{
		"free -h              - memory usage",
		"cat /proc/meminfo    - memory details",
		"vmstat               - virtual memory statistics",
		"swapon -s            - swap devices",
	}},
	{"Disks", []string{
		"df -h                - filesystem usage",
		"fdisk -l             - partition tables (root)",
		"lsblk                - block devices",
		"smartctl -a /dev/sdX - SMART data (root)",
		"hdparm -i /dev/sdX   - drive parameters (root)",
	}},
	{"General hardware", []string{
		"lshw                 - hardware configuration (root)",
		"dmidecode            - DMI/SMBIOS tables (root)",
		"lspci                - PCI devices",
		"lsusb                - USB devices",
		"sensors              - hardware sensors",
	}},
	{"Monitoring", []string{
		"htop                 - interactive process viewer",
		"iotop                - disk I/O per process (root)",
		"powertop             - power consumption (root)",
		"s-tui                - terminal stress and monitoring UI",
	}},
	{"Network hardware", []string{
		"ip addr              - addresses",
		"ip link              - interfaces",
		"iw dev               - wireless interfaces",
		"ethtool              - NIC settings (root)",
	}},
	{"Installing tools", []string{
		"sudo dnf install smartmontools - disk health tools",
		"sudo dnf install htop          - htop",
		"sudo dnf install powertop      - power diagnostics",
	}},
	{"Other", []string{
		"uname -a             - kernel and system",
		"uptime               - uptime and load",
		"dmesg                - kernel messages",
	}},
}

// Manual renders the user manual.
func (r *Renderer) Manual() error {
	return r.sections("User Manual", manual)
}

// Commands renders the command cheat-sheet.
func (r *Renderer) Commands() error {
	return r.sections("Useful Hardware Commands", commands)
}

func (r *Renderer) sections(title string, secs []section) error {
	r.Clear()

	var p page
	r.title(&p, title)
	for _, s := range secs {
		p.blank()
		p.line("%s", r.st.header.Render(s.title))
		p.line("%s", repeat('-', 20))
		for _, l := range s.lines {
			p.line("%s", l)
		}
	}

	return r.flush(&p)
}
