package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdrender/internal/configloader"
	"github.com/yaklabco/gomdrender/internal/logging"
	"github.com/yaklabco/gomdrender/internal/ui/pretty"
	"github.com/yaklabco/gomdrender/pkg/config"
	"github.com/yaklabco/gomdrender/pkg/fsutil"
	goldmarkparser "github.com/yaklabco/gomdrender/pkg/parser/goldmark"
	"github.com/yaklabco/gomdrender/pkg/refs"
	"github.com/yaklabco/gomdrender/pkg/render"
	"github.com/yaklabco/gomdrender/pkg/reporter"
	"github.com/yaklabco/gomdrender/pkg/runner"
)

// stdinPath names standard input on the command line.
const stdinPath = "-"

// watchDebounce is how long a burst of file events must settle before
// the document is rendered again.
const watchDebounce = 150 * time.Millisecond

type renderFlags struct {
	format         string
	flavor         string
	labelMatching  string
	bullet         string
	width          int
	indentStep     int
	detectLanguage bool
	noHyperlinks   bool
	compact        bool
	watch          bool
	jobs           int
	ignore         []string
	output         string
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file|dir|-]...",
		Short: "Render Markdown documents",
		Long:  renderLongDescription,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 && slices.Contains(args, stdinPath) {
				return fmt.Errorf("%w: %q cannot be combined with other paths", ErrUsage, stdinPath)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addRenderFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Render Markdown documents to the terminal, as plain text or as JSON.

Reads from standard input when no path is given or the path is "-".
Directories are searched for .md and .markdown files, which are rendered
concurrently and printed in path order. Reference links resolve even when
their definitions come later in the document; links that stay unresolved
are reported as warnings.

Examples:
  gomdrender render README.md              # Styled terminal output
  gomdrender render --width 60 notes.md    # Wrap at 60 columns
  cat doc.md | gomdrender render -         # Read from stdin
  gomdrender render --format json doc.md   # Annotated blocks as JSON
  gomdrender render docs/ --ignore 'drafts/**'
  gomdrender render -o README.txt --format plain README.md
  gomdrender render --watch README.md      # Re-render on every save`

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "terminal", "output format: terminal, plain, json")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.labelMatching, "label-matching", "exact",
		"reference label matching: exact, fold")
	cmd.Flags().StringVar(&flags.bullet, "bullet", "", "replace unordered list markers with this character")
	cmd.Flags().IntVar(&flags.width, "width", 0, "wrap width in columns (0 = terminal width)")
	cmd.Flags().IntVar(&flags.indentStep, "indent-step", config.DefaultIndentStep,
		"columns added per nested list level")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"guess the language of code fences without an info string")
	cmd.Flags().BoolVar(&flags.noHyperlinks, "no-hyperlinks", false, "disable terminal hyperlinks")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render when the file changes")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "files rendered in parallel (0 = number of CPUs)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip when searching directories")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to this file instead of stdout")
}

// flagConfig converts explicitly set flags to a config layer.
func flagConfig(cmd *cobra.Command, flags *renderFlags) (*config.Config, error) {
	cfg := &config.Config{Watch: flags.watch}
	changed := cmd.Flags().Changed

	if changed("format") {
		format, err := config.ParseFormat(flags.format)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cfg.Format = format
	}
	if changed("flavor") {
		flavor, err := config.ParseFlavor(flags.flavor)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cfg.Flavor = flavor
	}
	if changed("label-matching") {
		cfg.LabelMatching = config.LabelMatching(flags.labelMatching)
	}
	if changed("bullet") {
		cfg.Bullet = flags.bullet
	}
	if changed("width") {
		cfg.Width = flags.width
	}
	if changed("indent-step") {
		cfg.IndentStep = flags.indentStep
	}
	if changed("detect-language") {
		cfg.DetectLanguage = config.Bool(flags.detectLanguage)
	}
	if changed("no-hyperlinks") {
		cfg.Hyperlinks = config.Bool(!flags.noHyperlinks)
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("color") {
		color, err := cmd.Flags().GetString("color")
		if err != nil {
			return nil, fmt.Errorf("get color flag: %w", err)
		}
		cfg.Color = config.ColorMode(color)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return cfg, nil
}

// loadConfig resolves the effective configuration for a command.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	logger := logging.FromContext(ctx)
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}
	return loadResult, nil
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	cliCfg, err := flagConfig(cmd, flags)
	if err != nil {
		return err
	}
	if flags.jobs < 0 {
		return fmt.Errorf("%w: --jobs must be >= 0, got %d", ErrUsage, flags.jobs)
	}

	loadResult, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFormat, cfg.Format,
		logging.FieldMatching, cfg.LabelMatching,
		logging.FieldWidth, cfg.Width,
	)

	batch, err := isBatch(args)
	if err != nil {
		return err
	}

	out := newSink(cmd.OutOrStdout(), flags.output)
	rep, err := reporter.New(reporter.Options{
		Writer:     out.Writer(),
		Format:     cfg.Format,
		Color:      string(cfg.Color),
		Width:      cfg.Width,
		Hyperlinks: hyperlinksEnabled(cfg, out.Writer()),
		Compact:    flags.compact,
		ShowPath:   batch,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	run := runner.New(goldmarkparser.New(string(cfg.Flavor)), render.New(renderOptions(cfg)))

	if batch {
		if cfg.Watch {
			return fmt.Errorf("%w: --watch renders a single file", ErrUsage)
		}
		return renderBatch(ctx, run, rep, out, runner.Options{
			Paths:        args,
			ExcludeGlobs: cfg.Ignore,
			Jobs:         flags.jobs,
		})
	}

	path := stdinPath
	if len(args) == 1 {
		path = args[0]
	}

	job := &renderJob{
		path:     path,
		stdin:    cmd.InOrStdin(),
		runner:   run,
		reporter: rep,
		sink:     out,
	}

	if !cfg.Watch {
		return job.run(ctx)
	}

	if path == stdinPath {
		return fmt.Errorf("%w: --watch needs a file argument", ErrUsage)
	}
	return watchAndRender(ctx, job)
}

// isBatch reports whether args name more than one document: several
// paths, or a directory.
func isBatch(args []string) (bool, error) {
	switch {
	case len(args) > 1:
		return true, nil
	case len(args) == 0 || args[0] == stdinPath:
		return false, nil
	}

	info, err := os.Stat(args[0])
	if err != nil {
		// Reported when the file is read.
		return false, nil //nolint:nilerr // the read carries the error
	}
	return info.IsDir(), nil
}

// renderOptions maps the configuration onto renderer options.
func renderOptions(cfg *config.Config) render.Options {
	return render.Options{
		IndentStep:     cfg.IndentStep,
		Bullet:         cfg.Bullet,
		Matching:       refs.Matching(cfg.LabelMatching),
		DetectLanguage: cfg.DetectLanguageEnabled(),
	}
}

// hyperlinksEnabled reports whether OSC 8 links should be written to w.
// Forced color also forces hyperlinks; otherwise the terminal must be
// styled and known to support them.
func hyperlinksEnabled(cfg *config.Config, w io.Writer) bool {
	if !cfg.HyperlinksEnabled() {
		return false
	}
	if cfg.Color == config.ColorAlways {
		return true
	}
	return pretty.IsColorEnabled(string(cfg.Color), w) && pretty.DetectHyperlinkSupport()
}

// renderBatch renders every discovered document and reports them in path
// order. Files that fail are logged and returned together once the rest
// have been reported.
func renderBatch(
	ctx context.Context,
	run *runner.Runner,
	rep reporter.Reporter,
	out *sink,
	opts runner.Options,
) error {
	logger := logging.FromContext(ctx)
	start := time.Now()

	result, err := run.Run(ctx, opts)
	if err != nil {
		return err
	}

	workDir, _ := os.Getwd()
	for _, outcome := range result.Files {
		path := displayPath(workDir, outcome.Path)
		if outcome.Error != nil {
			logger.Error("render failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
			continue
		}
		warnUnresolved(ctx, path, outcome.Result)
		if err := rep.Report(ctx, &reporter.Document{Path: path, Result: outcome.Result}); err != nil {
			return fmt.Errorf("report %s: %w", path, err)
		}
	}

	if err := out.Commit(ctx); err != nil {
		return err
	}

	logger.Debug("rendered documents",
		logging.FieldFiles, result.Stats.FilesRendered,
		logging.FieldErrored, result.Stats.FilesErrored,
		logging.FieldBlocks, result.Stats.Blocks,
		logging.FieldLinks, result.Stats.Links,
		logging.FieldUnresolved, result.Stats.Unresolved,
		logging.FieldDuration, time.Since(start),
	)

	if result.Stats.FilesDiscovered == 0 {
		logger.Warn("no Markdown files found", "paths", opts.Paths)
	}
	return result.Err()
}

// displayPath shortens path to be relative to workDir when it lies below it.
func displayPath(workDir, path string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

func warnUnresolved(ctx context.Context, path string, result *render.Result) {
	logger := logging.FromContext(ctx)
	for _, key := range result.Unresolved {
		logger.Warn("unresolved link", logging.FieldPath, path, logging.FieldLabel, key)
	}
}

// renderJob renders one input and reports it.
type renderJob struct {
	path     string
	stdin    io.Reader
	runner   *runner.Runner
	reporter reporter.Reporter
	sink     *sink

	// last fingerprints the most recently rendered content.
	last *fsutil.FileInfo
}

func (j *renderJob) run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	start := time.Now()

	content, info, err := j.read(ctx)
	if err != nil {
		return err
	}

	if j.last.SameContent(info) {
		logger.Debug("content unchanged, skipping render", logging.FieldPath, j.path)
		return nil
	}

	result, err := j.runner.Renderer.RenderSource(ctx, j.runner.Parser, j.path, content)
	if err != nil {
		return err
	}
	j.last = info

	warnUnresolved(ctx, j.path, result)

	if err := j.reporter.Report(ctx, &reporter.Document{Path: j.path, Result: result}); err != nil {
		return fmt.Errorf("report %s: %w", j.path, err)
	}
	if err := j.sink.Commit(ctx); err != nil {
		return err
	}

	logger.Debug("rendered document",
		logging.FieldPath, j.path,
		logging.FieldBlocks, len(result.Blocks),
		logging.FieldLinks, result.Refs.Len(),
		logging.FieldDuration, time.Since(start),
	)
	return nil
}

func (j *renderJob) read(ctx context.Context) ([]byte, *fsutil.FileInfo, error) {
	if j.path == stdinPath {
		content, err := io.ReadAll(j.stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, fsutil.HashContent(j.path, content), nil
	}

	content, info, err := fsutil.ReadFile(ctx, j.path)
	if err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	return content, info, nil
}

// watchAndRender renders once, then again after every change to the file
// until interrupted.
func watchAndRender(ctx context.Context, job *renderJob) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := job.run(ctx); err != nil {
		return err
	}

	watcher, err := NewFileWatcher(job.path, watchDebounce)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			logging.FromContext(ctx).Debug("close watcher", logging.FieldError, closeErr)
		}
	}()

	err = watcher.Run(ctx, job.run)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
