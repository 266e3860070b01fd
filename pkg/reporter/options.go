package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gomdrender/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized terminal output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Width is the wrap width for terminal and plain output.
	// Zero means the terminal width, or 80 when the writer is not a terminal.
	Width int

	// Hyperlinks wraps resolved terminal links in OSC 8 sequences.
	Hyperlinks bool

	// Compact uses minified JSON.
	Compact bool

	// ShowPath precedes every terminal or plain document with a line
	// naming its path. JSON output always carries the path.
	ShowPath bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:     os.Stdout,
		Format:     config.FormatTerminal,
		Color:      string(config.ColorAuto),
		Hyperlinks: true,
	}
}
