package components

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// Markup writes HTML fragments and keeps the first write error.
type Markup struct {
	w   io.Writer
	err error
}

// NewMarkup wraps w.
func NewMarkup(w io.Writer) *Markup {
	return &Markup{w: w}
}

// Raw writes s unescaped.
func (m *Markup) Raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

// Rawf formats into the output unescaped. Callers escape user values with
// Esc.
func (m *Markup) Rawf(format string, args ...any) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.w, format, args...)
}

// Text writes s HTML-escaped.
func (m *Markup) Text(s string) {
	m.Raw(templ.EscapeString(s))
}

// Component renders c in place.
func (m *Markup) Component(ctx context.Context, c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(ctx, m.w)
}

// Err returns the first error hit while writing.
func (m *Markup) Err() error {
	return m.err
}

// Esc escapes a value for text or attribute positions.
func Esc(s string) string {
	return templ.EscapeString(s)
}

// URL sanitises a stored link for href and src attributes. Schemes other than
// http, https, mailto and tel, javascript: included, are replaced with templ's
// failed-sanitisation URL.
func URL(s string) string {
	return templ.EscapeString(string(templ.URL(s)))
}

// Segment escapes an identifier for use as one path segment.
func Segment(s string) string {
	return templ.EscapeString(url.PathEscape(s))
}
