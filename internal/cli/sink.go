package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/gomdrender/internal/logging"
	"github.com/yaklabco/gomdrender/pkg/fsutil"
)

// sink receives reporter output. Without a path it passes writes straight
// to the command's output; with one it collects them and replaces the file
// atomically on Commit, leaving it untouched when nothing changed.
type sink struct {
	path string
	out  io.Writer
	buf  bytes.Buffer
}

func newSink(out io.Writer, path string) *sink {
	return &sink{path: path, out: out}
}

// Writer returns the writer reporters should use.
func (s *sink) Writer() io.Writer {
	if s.path == "" {
		return s.out
	}
	return &s.buf
}

// Commit writes the collected output to the file and starts a new buffer.
func (s *sink) Commit(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	defer s.buf.Reset()

	written, err := fsutil.WriteAtomicIfChanged(ctx, s.path, s.buf.Bytes(), fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write output %s: %w", s.path, err)
	}
	logging.FromContext(ctx).Debug("output committed",
		logging.FieldOutput, s.path,
		"changed", written,
	)
	return nil
}
