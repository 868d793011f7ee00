// Package output provides context-aware primary output for renum.
// Stdout carries the rename report and dry-run tables so it can be piped;
// diagnostics go to stderr through the log package.
package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/raphi011/renum/internal/ui/static"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
type Printer struct {
	w io.Writer
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, &Printer{w: w})
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Table renders rows under headers. Nothing is written for zero rows.
func (p *Printer) Table(headers []string, rows [][]string) {
	fmt.Fprint(p.w, static.RenderTable(headers, rows))
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
