// Package render formats hardware views and monitor snapshots as
// terminal text.
package render

import (
	"fmt"
	"io"
	"strings"

	"codeberg.org/mutker/hwdiag/internal/classify"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	colorRed    = lipgloss.Color("#FF5555")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorGreen  = lipgloss.Color("#50FA7B")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorGray   = lipgloss.Color("#6272A4")
)

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	dim    lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	crit   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(colorCyan),
		header: r.NewStyle().Bold(true),
		dim:    r.NewStyle().Foreground(colorGray),
		ok:     r.NewStyle().Foreground(colorGreen),
		warn:   r.NewStyle().Foreground(colorYellow).Bold(true),
		crit:   r.NewStyle().Foreground(colorRed).Bold(true),
	}
}

// Renderer writes views to one output. Colour and screen clearing are
// only used when the output is a terminal.
type Renderer struct {
	w           io.Writer
	out         *termenv.Output
	interactive bool
	st          styles
}

type options struct {
	color       bool
	interactive *bool
}

type Option func(*options)

// WithColor enables or disables colour. Colour is on by default and is
// still suppressed on non-terminals and by NO_COLOR.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = enabled }
}

// WithInteractive overrides terminal detection.
func WithInteractive(interactive bool) Option {
	return func(o *options) { o.interactive = &interactive }
}

func New(w io.Writer, opts ...Option) *Renderer {
	o := options{color: true}
	for _, opt := range opts {
		opt(&o)
	}

	interactive := isTerminal(w)
	if o.interactive != nil {
		interactive = *o.interactive
	}

	out := termenv.NewOutput(w)
	profile := termenv.Ascii
	if o.color && interactive {
		profile = out.EnvColorProfile()
	}

	lip := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	lip.SetColorProfile(profile)

	return &Renderer{
		w:           w,
		out:         out,
		interactive: interactive,
		st:          newStyles(lip),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Clear clears a terminal. On other outputs it separates views with a
// blank line.
func (r *Renderer) Clear() {
	if r.interactive {
		r.out.ClearScreen()
		return
	}
	fmt.Fprintln(r.w)
}

func (r *Renderer) band(b classify.Band) string {
	label := "[" + b.String() + "]"
	switch b {
	case classify.Critical:
		return r.st.crit.Render(label)
	case classify.Warning:
		return r.st.warn.Render(label)
	default:
		return r.st.ok.Render(label)
	}
}

func (r *Renderer) health(h classify.Health) string {
	switch h {
	case classify.Poor:
		return r.st.crit.Render(h.String())
	case classify.Fair:
		return r.st.warn.Render(h.String())
	default:
		return r.st.ok.Render(h.String())
	}
}

// page accumulates one view and writes it in a single call.
type page struct {
	strings.Builder
}

func (p *page) line(format string, args ...any) {
	fmt.Fprintf(p, format, args...)
	p.WriteByte('\n')
}

func (p *page) blank() {
	p.WriteByte('\n')
}

func (r *Renderer) title(p *page, text string) {
	p.blank()
	p.line("%s", r.st.title.Render("=== "+text+" ==="))
}

func (r *Renderer) flush(p *page) error {
	_, err := io.WriteString(r.w, p.String())
	return err
}
