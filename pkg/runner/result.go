package runner

import (
	"errors"
	"time"

	"github.com/yaklabco/gomdrender/pkg/fsutil"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// FileOutcome is the result of rendering one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Info describes the source as it was read. Nil when reading failed.
	Info *fsutil.FileInfo

	// Result is the rendered document. Nil when Error is set.
	Result *render.Result

	// Error is set if the file could not be read or parsed.
	Error error

	// Duration is the time spent reading and rendering.
	Duration time.Duration
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesRendered   int
	FilesErrored    int

	// Blocks is the total number of rendered blocks.
	Blocks int

	// Links is the total number of reference table entries.
	Links int

	// Unresolved is the total number of links left without a destination.
	Unresolved int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any file failed to render.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Err joins the errors of every failed file, or returns nil.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errors.Join(errs...)
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesRendered++
	r.Stats.Blocks += len(outcome.Result.Blocks)
	if outcome.Result.Refs != nil {
		r.Stats.Links += outcome.Result.Refs.Len()
	}
	r.Stats.Unresolved += len(outcome.Result.Unresolved)
}
