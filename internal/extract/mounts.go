package extract

import (
	"strconv"
	"strings"
)

// Mount is one /proc/mounts entry.
type Mount struct {
	Device     string
	MountPoint string
	FSType     string
}

// ShortDevice returns the last path element of the device.
func (m Mount) ShortDevice() string {
	if i := strings.LastIndexByte(m.Device, '/'); i >= 0 {
		return m.Device[i+1:]
	}
	return m.Device
}

// pseudoFS lists filesystem types that never back real storage.
var pseudoFS = map[string]bool{
	"proc":   true,
	"sysfs":  true,
	"devpts": true,
	"tmpfs":  true,
}

const loopPrefix = "/dev/loop"

// Mounts tokenizes mount table lines into device, mount point and
// filesystem type. Malformed lines are skipped.
func Mounts(lines []string) []Mount {
	var mounts []Mount
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		mounts = append(mounts, Mount{
			Device:     unescape(fields[0]),
			MountPoint: unescape(fields[1]),
			FSType:     fields[2],
		})
	}

	return mounts
}

// Excluded reports whether m is a pseudo filesystem or a loop device.
func Excluded(m Mount) bool {
	return pseudoFS[m.FSType] || strings.HasPrefix(m.Device, loopPrefix)
}

// FilterMounts drops excluded entries and keeps the order of the rest.
func FilterMounts(mounts []Mount) []Mount {
	var kept []Mount
	for _, m := range mounts {
		if Excluded(m) {
			continue
		}
		kept = append(kept, m)
	}

	return kept
}

// unescape decodes the octal escapes the kernel uses for blanks in
// mount table fields, e.g. "\040" for a space.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+4 <= len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+4], 8, 8); err == nil {
				b.WriteByte(byte(v))
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
	}

	return b.String()
}
