// Package reporter writes rendered documents in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdrender/pkg/config"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// Document is one rendered input.
type Document struct {
	// Path is the input path, or "-" for standard input.
	Path string

	// Result is the render output.
	Result *render.Result
}

// Reporter formats and writes rendered documents.
type Reporter interface {
	// Report writes doc. It returns only write errors.
	Report(ctx context.Context, doc *Document) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = config.FormatTerminal
	}

	switch format {
	case config.FormatTerminal:
		return NewTerminalReporter(opts), nil
	case config.FormatPlain:
		return NewPlainReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
