// Package source reads the raw text every view is built from: kernel
// virtual files and the output of external diagnostic commands.
package source

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/logger"
)

const DefaultTimeout = 5 * time.Second

// Reader is the narrow boundary between hwdiag and the host. Every
// failure to obtain text is reported as errors.ErrSourceUnavailable.
type Reader interface {
	// ReadLines returns the lines of a virtual file.
	ReadLines(path string) ([]string, error)

	// Run executes a command and returns its stdout lines.
	Run(ctx context.Context, name string, args ...string) ([]string, error)

	// Exists reports whether a node is present.
	Exists(path string) bool

	// LookPath resolves a binary on PATH.
	LookPath(name string) (string, error)
}

// System reads from the running host.
type System struct {
	root    string
	timeout time.Duration
	log     logger.Logger
}

// Option configures a System reader.
type Option func(*System)

// WithRoot resolves virtual file paths under root instead of "/".
func WithRoot(root string) Option {
	return func(s *System) {
		if root != "" {
			s.root = root
		}
	}
}

// WithTimeout bounds each command invocation.
func WithTimeout(d time.Duration) Option {
	return func(s *System) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(s *System) {
		s.log = log
	}
}

func NewSystem(opts ...Option) *System {
	s := &System{
		root:    "/",
		timeout: DefaultTimeout,
		log:     logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *System) resolve(path string) string {
	if s.root == "/" {
		return path
	}
	return filepath.Join(s.root, path)
}

func (s *System) ReadLines(path string) ([]string, error) {
	errFactory := errors.New()

	f, err := os.Open(s.resolve(path))
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrSourceUnavailable, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errFactory.Wrap(errors.ErrSourceUnavailable, err)
	}

	return lines, nil
}

func (s *System) Run(ctx context.Context, name string, args ...string) ([]string, error) {
	errFactory := errors.New()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout

	err := cmd.Run()
	out := strings.TrimRight(stdout.String(), "\n")

	if err != nil {
		command := CommandLine(name, args...)
		if ctx.Err() != nil {
			return nil, errFactory.WithData(errors.ErrSourceUnavailable, command+": "+ctx.Err().Error())
		}
		// Exit bitmasks (smartctl) still come with usable output.
		if out == "" {
			return nil, errFactory.WithData(errors.ErrSourceUnavailable, command+": "+err.Error())
		}
		s.log.Debug().Str("command", command).Err(err).Msg("command exited non-zero with output")
	}

	if out == "" {
		return nil, nil
	}

	return strings.Split(out, "\n"), nil
}

func (s *System) Exists(path string) bool {
	_, err := os.Stat(s.resolve(path))
	return err == nil
}

func (*System) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.New().Wrap(errors.ErrSourceUnavailable, err)
	}

	return path, nil
}

// CommandLine renders name and args the way they are logged.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
