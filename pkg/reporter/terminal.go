package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdrender/internal/ui/pretty"
)

// TerminalReporter writes styled output through a pretty.Printer.
type TerminalReporter struct {
	opts     Options
	bw       *bufio.Writer
	reported int
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter(opts Options) *TerminalReporter {
	return &TerminalReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TerminalReporter) Report(_ context.Context, doc *Document) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if doc == nil {
		return nil
	}

	// Width and color are probed on the real writer; the buffer is never a TTY.
	width := r.opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(r.opts.Writer, pretty.DefaultWidth)
	}
	printer := pretty.NewPrinter(r.bw, pretty.Options{
		Width:      width,
		Color:      pretty.IsColorEnabled(r.opts.Color, r.opts.Writer),
		Hyperlinks: r.opts.Hyperlinks,
	})

	if r.opts.ShowPath {
		if r.reported > 0 {
			if _, err := r.bw.WriteString("\n"); err != nil {
				return fmt.Errorf("write %s: %w", doc.Path, err)
			}
		}
		if err := printer.Title(doc.Path); err != nil {
			return fmt.Errorf("print %s: %w", doc.Path, err)
		}
	}
	r.reported++

	if err := printer.Print(doc.Result); err != nil {
		return fmt.Errorf("print %s: %w", doc.Path, err)
	}
	return nil
}
