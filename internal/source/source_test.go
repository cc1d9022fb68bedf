package source_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/logger"
	"codeberg.org/mutker/hwdiag/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSystem(t *testing.T) (*source.System, string) {
	t.Helper()

	root := t.TempDir()
	return source.NewSystem(source.WithRoot(root), source.WithLogger(logger.Nop())), root
}

func TestReadLinesUnderRoot(t *testing.T) {
	sys, root := newSystem(t)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "proc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "proc", "loadavg"), []byte("0.52 0.58 0.59 1/467 12345\n"), 0o600))

	lines, err := sys.ReadLines("/proc/loadavg")
	require.NoError(t, err)
	assert.Equal(t, []string{"0.52 0.58 0.59 1/467 12345"}, lines)
	assert.True(t, sys.Exists("/proc/loadavg"))
}

func TestReadLinesMissing(t *testing.T) {
	sys, _ := newSystem(t)

	_, err := sys.ReadLines("/sys/class/thermal/thermal_zone0/temp")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrSourceUnavailable))
	assert.False(t, sys.Exists("/sys/class/thermal/thermal_zone0/temp"))
}

func TestRunCapturesOutput(t *testing.T) {
	sys, _ := newSystem(t)

	lines, err := sys.Run(context.Background(), "sh", "-c", "printf 'sda\\nnvme0n1\\n'")
	require.NoError(t, err)
	assert.Equal(t, []string{"sda", "nvme0n1"}, lines)
}

func TestRunNonZeroWithOutput(t *testing.T) {
	sys, _ := newSystem(t)

	lines, err := sys.Run(context.Background(), "sh", "-c", "echo partial; exit 4")
	require.NoError(t, err)
	assert.Equal(t, []string{"partial"}, lines)
}

func TestRunNonZeroWithoutOutput(t *testing.T) {
	sys, _ := newSystem(t)

	_, err := sys.Run(context.Background(), "sh", "-c", "exit 2")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrSourceUnavailable))
}

func TestRunMissingBinary(t *testing.T) {
	sys, _ := newSystem(t)

	_, err := sys.Run(context.Background(), "hwdiag-no-such-binary")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrSourceUnavailable))

	_, err = sys.LookPath("hwdiag-no-such-binary")
	assert.True(t, errors.HasCode(err, errors.ErrSourceUnavailable))
}

func TestRunTimeout(t *testing.T) {
	sys := source.NewSystem(source.WithTimeout(50*time.Millisecond), source.WithLogger(logger.Nop()))

	start := time.Now()
	_, err := sys.Run(context.Background(), "sleep", "5")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrSourceUnavailable))
	assert.Less(t, time.Since(start), 4*time.Second)
}
