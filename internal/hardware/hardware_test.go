package hardware_test

import (
	"context"
	"testing"

	"codeberg.org/mutker/hwdiag/internal/device"
	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/hardware"
	"codeberg.org/mutker/hwdiag/internal/logger"
	"codeberg.org/mutker/hwdiag/internal/source/sourcetest"
	"codeberg.org/mutker/hwdiag/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProber(src *sourcetest.Fake, opts ...hardware.Option) *hardware.Prober {
	opts = append([]hardware.Option{
		hardware.WithLogger(logger.Nop()),
		hardware.WithSmartctl("smartctl", false),
		hardware.WithCPUCounter(func(context.Context, bool) (int, error) {
			return 0, errors.New().New(errors.ErrSourceUnavailable)
		}),
		hardware.WithVirtualizationDetector(func(context.Context) (string, string, error) {
			return "", "", errors.New().New(errors.ErrSourceUnavailable)
		}),
	}, opts...)

	return hardware.New(src, device.NewEnumerator(src, ""), opts...)
}

const cpuinfo = `processor	: 0
model name	: Intel(R) Core(TM) i7-8550U CPU @ 1.80GHz
cpu MHz		: 1992.000
cache size	: 8192 KB

processor	: 1
model name	: Intel(R) Core(TM) i7-8550U CPU @ 1.80GHz
cpu MHz		: 2100.000
cache size	: 8192 KB
`

func TestCPU(t *testing.T) {
	src := sourcetest.New().
		File("/proc/cpuinfo", cpuinfo).
		File("/proc/loadavg", "0.52 0.58 0.59 1/467 12345\n")
	p := newProber(src, hardware.WithCPUCounter(func(context.Context, bool) (int, error) {
		return 8, nil
	}))

	info, err := p.CPU(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Intel(R) Core(TM) i7-8550U CPU @ 1.80GHz", info.Model)
	assert.Len(t, info.Models, 1)
	assert.Equal(t, 2, info.Cores)
	assert.Equal(t, "1992.000", info.FrequencyMHz)
	assert.Equal(t, "8192 KB", info.CacheSize)
	assert.True(t, info.LoadValid)
	assert.Equal(t, [3]float64{0.52, 0.58, 0.59}, info.Load)
	assert.Equal(t, 8, info.LogicalCPUs)
	assert.True(t, info.CoreCountMismatch())
}

func TestCPUMissingFieldsAreEmpty(t *testing.T) {
	src := sourcetest.New().File("/proc/cpuinfo", "processor\t: 0\n")

	info, err := newProber(src).CPU(context.Background())
	require.NoError(t, err)

	assert.Empty(t, info.Model)
	assert.Zero(t, info.Cores)
	assert.Empty(t, info.FrequencyMHz)
	assert.False(t, info.LoadValid)
	assert.False(t, info.CoreCountMismatch())
}

func TestCPUUnreadable(t *testing.T) {
	_, err := newProber(sourcetest.New()).CPU(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrSourceUnavailable))
}

func TestMemory(t *testing.T) {
	src := sourcetest.New().File("/proc/meminfo", `MemTotal:       16304700 kB
MemFree:         1234567 kB
MemAvailable:    8000000 kB
Buffers:          200000 kB
Cached:          4000000 kB
SwapTotal:       2097148 kB
`)

	m, err := newProber(src).Memory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, units.Memory{
		Total:     16304700,
		Free:      1234567,
		Available: 8000000,
		Buffers:   200000,
		Cached:    4000000,
		SwapTotal: 2097148,
	}, m)
	assert.Equal(t, uint64(2097148), m.SwapUsed())
}

const mounts = `proc /proc proc rw,nosuid,nodev,noexec,relatime 0 0
sysfs /sys sysfs rw,nosuid,nodev,noexec,relatime 0 0
tmpfs /run tmpfs rw,nosuid,nodev 0 0
/dev/loop0 /snap/core/1 squashfs ro 0 0
/dev/sda1 / ext4 rw,relatime 0 0
/dev/sdb1 /data xfs rw,relatime 0 0
`

func TestFilesystems(t *testing.T) {
	src := sourcetest.New().File("/proc/mounts", mounts)
	var queried []string
	statfs := func(path string) (units.Capacity, error) {
		queried = append(queried, path)
		if path == "/data" {
			return units.Capacity{}, errors.New().New(errors.ErrSourceUnavailable)
		}
		return units.Capacity{Blocks: 1000, Free: 250, Available: 200, FragmentSize: 4096}, nil
	}

	fs, err := newProber(src, hardware.WithStatFunc(statfs)).Filesystems(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"/", "/data"}, queried)
	require.Len(t, fs, 1)
	assert.Equal(t, "sda1", fs[0].ShortDevice())
	assert.Equal(t, "ext4", fs[0].FSType)
	assert.InDelta(t, 75.0, fs[0].UsedPercent(), 0.001)
}

func TestFilesystemsUnderRoot(t *testing.T) {
	src := sourcetest.New().File("/proc/mounts", mounts)
	var queried []string
	statfs := func(path string) (units.Capacity, error) {
		queried = append(queried, path)
		return units.Capacity{Blocks: 10, FragmentSize: 4096}, nil
	}

	fs, err := newProber(src, hardware.WithStatFunc(statfs), hardware.WithRoot("/mnt/host")).
		Filesystems(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"/mnt/host", "/mnt/host/data"}, queried)
	require.Len(t, fs, 2)
	assert.Equal(t, "/data", fs[1].MountPoint)
}

func TestSMARTAvailable(t *testing.T) {
	err := newProber(sourcetest.New()).SMARTAvailable()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "smartmontools")

	assert.NoError(t, newProber(sourcetest.New().Binary("smartctl")).SMARTAvailable())
}

func TestSMARTDevicesNone(t *testing.T) {
	src := sourcetest.New().Command("sr0\n", "lsblk", "-d", "-n", "-o", "NAME")

	_, err := newProber(src).SMARTDevices(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrNoDevicesFound))
}

const smartATA = `=== START OF READ SMART DATA SECTION ===
SMART overall-health self-assessment test result: PASSED

ID# ATTRIBUTE_NAME          FLAG     VALUE WORST THRESH TYPE      UPDATED  WHEN_FAILED RAW_VALUE
  1 Raw_Read_Error_Rate     0x000f   117   099   006    Pre-fail  Always       -       160120232
  3 Spin_Up_Time            0x0003   097   097   000    Pre-fail  Always       -       0
  5 Reallocated_Sector_Ct   0x0033   036   036   036    Pre-fail  Always   FAILING_NOW 2816
  9 Power_On_Hours          0x0032   085   085   000    Old_age   Always       -       13622
194 Temperature_Celsius     0x0022   038   055   000    Old_age   Always       -       38 (0 17 0 0 0)
`

func TestSMART(t *testing.T) {
	src := sourcetest.New().Command(smartATA, "smartctl", "-H", "-A", "/dev/sda")
	dev := device.FilterDisks([]string{"sda"})[0]

	report, err := newProber(src).SMART(context.Background(), dev)
	require.NoError(t, err)

	assert.Equal(t, "PASSED", report.Health)
	assert.True(t, report.Healthy())
	require.True(t, report.Temperature.Available())
	assert.InDelta(t, 38.0, report.Temperature.Value, 0.001)
	assert.Equal(t, "38 (0 17 0 0 0)", report.Temperature.Raw)
	assert.False(t, report.TripTemp.Available())

	var names []string
	for _, a := range report.Attributes {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Spin_Up_Time", "Reallocated_Sector_Ct", "Power_On_Hours"}, names)

	risky := report.AtRisk()
	require.Len(t, risky, 1)
	assert.Equal(t, "Reallocated_Sector_Ct", risky[0].Name)
}

func TestSMARTFallsBackFromSudo(t *testing.T) {
	src := sourcetest.New().Command(
		"Current Drive Temperature:     41 C\nDrive Trip Temperature:        68 C\n",
		"smartctl", "-A", "/dev/sdb",
	)
	p := newProber(src, hardware.WithSmartctl("smartctl", true))
	dev := device.FilterDisks([]string{"sdb"})[0]

	r := p.DiskTemperature(context.Background(), dev)
	require.True(t, r.Available())
	assert.InDelta(t, 41.0, r.Value, 0.001)
	assert.Equal(t, []string{
		"sudo -n smartctl -A /dev/sdb",
		"smartctl -A /dev/sdb",
	}, src.Calls)
}

const smartOpenFailed = `smartctl 7.4 2023-08-01 r5530 [x86_64-linux-6.8.0] (local build)
Copyright (C) 2002-23, Bruce Allen, Christian Franke, www.smartmontools.org

Smartctl open device: /dev/sda failed: Permission denied
`

func TestSMARTOpenFailureIsUnavailable(t *testing.T) {
	src := sourcetest.New().Command(smartOpenFailed, "smartctl", "-H", "-A", "/dev/sda")
	dev := device.FilterDisks([]string{"sda"})[0]

	_, err := newProber(src).SMART(context.Background(), dev)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "try running as root")
	assert.Contains(t, err.Error(), "Smartctl open device: /dev/sda failed: Permission denied")
}

func TestDiskTemperatureUnavailable(t *testing.T) {
	dev := device.FilterDisks([]string{"sda"})[0]

	r := newProber(sourcetest.New()).DiskTemperature(context.Background(), dev)
	assert.False(t, r.Available())
	assert.True(t, errors.HasCode(r.Err, errors.ErrSourceUnavailable))
}

func TestBatteryEnergy(t *testing.T) {
	dir := device.BatteryPath("BAT0")
	src := sourcetest.New().
		File(dir+"/status", "Discharging\n").
		File(dir+"/capacity", "87\n").
		File(dir+"/cycle_count", "612\n").
		File(dir+"/voltage_now", "12600000\n").
		File(dir+"/current_now", "1500000\n").
		File(dir+"/energy_full", "45000000\n").
		File(dir+"/energy_full_design", "50000000\n")
	src.Dirs[dir] = true

	b, err := newProber(src).Battery(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Discharging", b.Status)
	assert.Equal(t, int64(87), b.Capacity)
	assert.InDelta(t, 12.6, b.Voltage, 0.0001)
	assert.InDelta(t, 1500.0, b.Current, 0.0001)
	assert.InDelta(t, 45.0, b.Full, 0.0001)
	assert.InDelta(t, 50.0, b.Design, 0.0001)
	assert.True(t, b.CapacityKnown)
	assert.Equal(t, "Wh", b.CapacityUnit())
	assert.InDelta(t, 90.0, b.HealthPct, 0.0001)
	assert.Equal(t, "good", b.Health().String())
	assert.True(t, b.HighCycles())
}

func TestBatteryChargeFallback(t *testing.T) {
	dir := device.BatteryPath("BAT0")
	src := sourcetest.New().
		File(dir+"/charge_full", "3000000\n").
		File(dir+"/charge_full_design", "4000000\n").
		File(dir+"/cycle_count", "500\n")
	src.Dirs[dir] = true

	b, err := newProber(src).Battery(context.Background())
	require.NoError(t, err)

	assert.True(t, b.CapacityKnown)
	assert.True(t, b.Charge)
	assert.Equal(t, "mAh", b.CapacityUnit())
	assert.InDelta(t, 3000.0, b.Full, 0.0001)
	assert.InDelta(t, 75.0, b.HealthPct, 0.0001)
	assert.Equal(t, "fair", b.Health().String())
	assert.False(t, b.HighCycles())
}

func TestBatteryWithoutCapacityCounters(t *testing.T) {
	dir := device.BatteryPath("BAT0")
	src := sourcetest.New().
		File(dir+"/status", "Unknown\n").
		File(dir+"/capacity", "50\n")
	src.Dirs[dir] = true

	b, err := newProber(src).Battery(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(50), b.Capacity)
	assert.False(t, b.CapacityKnown)
	assert.False(t, b.Charge)
	assert.Zero(t, b.HealthPct)
}

func TestBatteryAbsent(t *testing.T) {
	_, err := newProber(sourcetest.New()).Battery(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrNoDevicesFound))
}
