// Package sourcetest provides an in-memory source.Reader for tests.
package sourcetest

import (
	"context"
	"strings"

	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/source"
)

// Fake serves files and command output from maps. Anything absent is
// reported as errors.ErrSourceUnavailable, like a missing node on a host.
type Fake struct {
	Files    map[string]string
	Dirs     map[string]bool
	Commands map[string]string // keyed by source.CommandLine
	Binaries map[string]string // name -> resolved path

	Calls []string
}

var _ source.Reader = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		Files:    map[string]string{},
		Dirs:     map[string]bool{},
		Commands: map[string]string{},
		Binaries: map[string]string{},
	}
}

// File registers a virtual file.
func (f *Fake) File(path, content string) *Fake {
	f.Files[path] = content
	return f
}

// Command registers the stdout of a command line.
func (f *Fake) Command(out string, name string, args ...string) *Fake {
	f.Commands[source.CommandLine(name, args...)] = out
	return f
}

// Binary makes name resolvable through LookPath.
func (f *Fake) Binary(name string) *Fake {
	f.Binaries[name] = "/usr/bin/" + name
	return f
}

func (f *Fake) ReadLines(path string) ([]string, error) {
	content, ok := f.Files[path]
	if !ok {
		return nil, errors.New().WithData(errors.ErrSourceUnavailable, path)
	}

	return split(content), nil
}

func (f *Fake) Run(_ context.Context, name string, args ...string) ([]string, error) {
	line := source.CommandLine(name, args...)
	f.Calls = append(f.Calls, line)

	out, ok := f.Commands[line]
	if !ok {
		return nil, errors.New().WithData(errors.ErrSourceUnavailable, line)
	}

	return split(out), nil
}

func (f *Fake) Exists(path string) bool {
	if f.Dirs[path] {
		return true
	}
	_, ok := f.Files[path]
	return ok
}

func (f *Fake) LookPath(name string) (string, error) {
	path, ok := f.Binaries[name]
	if !ok {
		return "", errors.New().WithData(errors.ErrSourceUnavailable, name)
	}

	return path, nil
}

func split(content string) []string {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
