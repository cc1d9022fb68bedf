// Package pid keeps a single monitor instance per host.
package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"codeberg.org/mutker/hwdiag/internal/errors"
)

const DefaultName = "hwdiag-monitor.pid"

// Lock is a held PID file.
type Lock struct {
	path string
}

// Acquire writes the current PID to dir/name. It fails with
// ErrAlreadyRunning when the file names a live process. A file left
// behind by a dead process is replaced.
func Acquire(dir, name string) (*Lock, error) {
	errFactory := errors.New()
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, name)

	if holder, ok := readPID(path); ok && holder != os.Getpid() && alive(holder) {
		return nil, errFactory.WithData(errors.ErrAlreadyRunning, holder)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
		return nil, errFactory.Wrap(errors.ErrInternal, err)
	}

	return &Lock{path: path}, nil
}

func (l *Lock) Path() string {
	return l.path
}

// Release removes the PID file. Releasing twice is harmless.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return errors.New().Wrap(errors.ErrInternal, err)
	}

	return nil
}

func readPID(path string) (int, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}

func alive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	return process.Signal(syscall.Signal(0)) == nil
}
