package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds Markdown files matching opts. Explicit file arguments are
// kept whatever their extension; directories are walked for files with a
// Markdown extension. The result is sorted and free of duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if !m.excluded(absPath, false) {
				add(absPath)
			}
			continue
		}

		discovered, err := m.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// matcher holds the compiled discovery criteria.
type matcher struct {
	workDir        string
	extensions     []string
	excludes       []glob.Glob
	followSymlinks bool
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	m := &matcher{
		workDir:        workDir,
		followSymlinks: opts.FollowSymlinks,
	}
	for _, ext := range opts.effectiveExtensions() {
		m.extensions = append(m.extensions, strings.ToLower(ext))
	}
	for _, pattern := range opts.ExcludeGlobs {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", pattern, err)
		}
		m.excludes = append(m.excludes, g)
	}
	return m, nil
}

// excluded matches path against the exclude patterns, relative to the
// working directory, relative to each of roots, and by base name.
// Directories also match with a trailing slash, so "vendor/**" prunes the
// vendor directory itself.
func (m *matcher) excluded(path string, dir bool, roots ...string) bool {
	if len(m.excludes) == 0 {
		return false
	}

	candidates := []string{filepath.Base(path)}
	for _, base := range append([]string{m.workDir}, roots...) {
		rel, err := filepath.Rel(base, path)
		if err != nil || rel == "." {
			continue
		}
		rel = filepath.ToSlash(rel)
		candidates = append(candidates, rel)
		if dir {
			candidates = append(candidates, rel+"/")
		}
	}

	for _, g := range m.excludes {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}

func (m *matcher) markdown(path string) bool {
	return slices.Contains(m.extensions, strings.ToLower(filepath.Ext(path)))
}

// walk returns the Markdown files under root, skipping hidden entries and
// anything excluded.
func (m *matcher) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && m.excluded(path, true, root)) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden || m.excluded(path, false, root) {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				// Broken or unreadable link.
				return nil //nolint:nilerr // skipped on purpose
			}
			if target.IsDir() {
				if !m.followSymlinks {
					return nil
				}
				realPath, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // skipped on purpose
				}
				// WalkDir does not follow a symlinked root, so walk the target.
				sub, err := m.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.markdown(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
