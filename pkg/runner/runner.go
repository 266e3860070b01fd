package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/gomdrender/internal/logging"
	"github.com/yaklabco/gomdrender/pkg/fsutil"
	"github.com/yaklabco/gomdrender/pkg/render"
)

// Runner renders many files with one parser and one renderer. Both are
// shared between workers; every render owns its own reference table.
type Runner struct {
	Parser   render.Parser
	Renderer *render.Renderer
}

// New creates a Runner.
func New(parser render.Parser, renderer *render.Renderer) *Runner {
	return &Runner{Parser: parser, Renderer: renderer}
}

// Run discovers files under opts.Paths and renders them concurrently.
// Outcomes are returned in path order regardless of completion order.
// Per-file failures are recorded in the outcome, not returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("rendering files",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
	)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// RenderFile reads and renders a single file.
func (r *Runner) RenderFile(ctx context.Context, path string) FileOutcome {
	start := time.Now()
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		outcome.Duration = time.Since(start)
		return outcome
	}
	outcome.Info = info

	res, err := r.Renderer.RenderSource(ctx, r.Parser, path, content)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Result = res
	}
	outcome.Duration = time.Since(start)
	return outcome
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.RenderFile(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
