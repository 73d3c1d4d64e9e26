// Package shared holds the building blocks every dashboard component uses:
// an escaping HTML writer, the pager and the modal frame.
package shared

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// Writer writes HTML fragments and keeps the first error. String arguments to
// Printf are escaped; trusted markup goes through Raw.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (hw *Writer) Raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *Writer) Text(s string) {
	hw.Raw(templ.EscapeString(s))
}

func (hw *Writer) Printf(format string, args ...any) {
	if hw.err != nil {
		return
	}
	escaped := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case string:
			escaped[i] = templ.EscapeString(v)
		case templ.SafeURL:
			escaped[i] = templ.EscapeString(string(v))
		default:
			escaped[i] = v
		}
	}
	_, hw.err = fmt.Fprintf(hw.w, format, escaped...)
}

func (hw *Writer) Component(ctx context.Context, c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

func (hw *Writer) Err() error {
	return hw.err
}

// Component adapts a write function to templ.Component.
func Component(fn func(ctx context.Context, hw *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		fn(ctx, hw)
		return hw.Err()
	})
}

// ResourcePath joins base and a path-escaped id.
func ResourcePath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
