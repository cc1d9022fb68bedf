package render

import (
	"fmt"
	"io"
)

// Item is one numbered menu entry.
type Item struct {
	Key   string
	Label string
}

func (r *Renderer) Menu(title string, items []Item) error {
	var p page
	r.title(&p, title)
	for _, it := range items {
		p.line("%s. %s", it.Key, it.Label)
	}

	return r.flush(&p)
}

// Prompt writes text without a trailing newline.
func (r *Renderer) Prompt(text string) error {
	_, err := io.WriteString(r.w, text)
	return err
}

// Continue asks the operator to press Enter.
func (r *Renderer) Continue() error {
	_, err := fmt.Fprint(r.w, "\nPress Enter to return...")
	return err
}
