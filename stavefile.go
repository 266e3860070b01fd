//go:build stave

package main

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":     Build,
	"t":     Test.Default,
	"l":     Lint.Default,
	"c":     Check,
	"i":     Install,
	"fmt":   Lint.Fmt,
	"br":    Bench.Render,
	"smoke": Smoke,
}

// benchIgnore keeps the render targets out of vendored and generated trees.
var benchIgnore = []string{"_*/**", "bin/**", "vendor/**"}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles the gomdrender binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir("bin/gomdrender", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/gomdrender is up to date")
		return nil
	}
	fmt.Println("Building gomdrender...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/gomdrender", "./cmd/gomdrender")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	if err := sh.Rm("coverage.out"); err != nil {
		return err
	}
	return sh.Rm("coverage.html")
}

// Install installs gomdrender to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing gomdrender...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/gomdrender")
}

// Uninstall removes gomdrender from $GOBIN or $GOPATH/bin.
func Uninstall() error {
	fmt.Println("Uninstalling gomdrender...")
	binPath, err := findInstalledBinary("gomdrender")
	if err != nil {
		return err
	}
	if err := os.Remove(binPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("gomdrender is not installed")
			return nil
		}
		return fmt.Errorf("remove binary: %w", err)
	}
	fmt.Printf("Removed %s\n", binPath)
	return nil
}

// Deps ensures all dependencies are downloaded.
func Deps() error {
	fmt.Println("Downloading dependencies...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage writes coverage.html and prints the per-package totals.
func Coverage() error {
	st.Deps(Test.Default)
	fmt.Println("Generating coverage report...")
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	out, err := sh.Output("go", "tool", "cover", "-func=coverage.out")
	if err != nil {
		return err
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	fmt.Println(lines[len(lines)-1])
	return nil
}

// Smoke renders the repository's Markdown in every output format and checks
// that the JSON stream decodes into one document per file.
func Smoke() error {
	st.Deps(Build)
	base := append([]string{"render", "--color", "always", "--width", "80"}, ignoreArgs()...)

	for _, format := range []string{"terminal", "plain"} {
		fmt.Printf("  %s...\n", format)
		if _, err := sh.Output("bin/gomdrender", append(base, "--format", format, ".")...); err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
	}

	fmt.Println("  json...")
	out, err := sh.Output("bin/gomdrender", append(base, "--format", "json", "--compact", ".")...)
	if err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	dec := json.NewDecoder(bytes.NewBufferString(out))
	docs := 0
	for dec.More() {
		var doc struct {
			Blocks []json.RawMessage `json:"blocks"`
		}
		if err := dec.Decode(&doc); err != nil {
			return fmt.Errorf("decode document %d: %w", docs+1, err)
		}
		docs++
	}
	fmt.Printf("✓ %d documents rendered in every format\n", docs)
	return nil
}

// ---------------------------------------------------------------------------
// Test namespace
// ---------------------------------------------------------------------------

// Default runs all tests using gotestsum with race detection and coverage.
// The runner and watch tests exercise goroutines, so -race is always on.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails", "./...")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	fmt.Println("Running tests (verbose)...")
	return gotestsum("standard-verbose", "./...")
}

// Render runs only the render pipeline packages.
func (Test) Render() error {
	fmt.Println("Running render pipeline tests...")
	return gotestsum("testname",
		"./pkg/mdast/...",
		"./pkg/parser/...",
		"./pkg/richtext/...",
		"./pkg/refs/...",
		"./pkg/render/...",
	)
}

// Fuzz runs the parser and file fuzzers for a short, fixed time each.
func (Test) Fuzz() error {
	targets := []struct{ pkg, name string }{
		{"./pkg/parser/goldmark", "FuzzParse"},
		{"./pkg/fsutil", "FuzzWriteAtomicReadFile"},
	}
	for _, target := range targets {
		fmt.Printf("Fuzzing %s in %s...\n", target.name, target.pkg)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+target.name+"$", "-fuzztime=30s", target.pkg); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix (for CI pipelines).
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// ---------------------------------------------------------------------------
// CI namespace
// ---------------------------------------------------------------------------

// Gate runs all CI checks, ending with a smoke render of the repository.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Smoke,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// moduleFiles are compared before and after go mod tidy.
var moduleFiles = []string{"go.mod", "go.sum"}

// ModTidy checks that go.mod and go.sum are tidy.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	before := make(map[string][]byte, len(moduleFiles))
	for _, name := range moduleFiles {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[name] = data
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for _, name := range moduleFiles {
		after, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s after tidy: %w", name, err)
		}
		if !bytes.Equal(before[name], after) {
			return fmt.Errorf("%s changed after 'go mod tidy', please commit the changes", name)
		}
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// releaseTargets are the GOOS/GOARCH pairs gomdrender ships for.
var releaseTargets = []string{
	"linux/amd64", "linux/arm64",
	"darwin/amd64", "darwin/arm64",
	"windows/amd64", "windows/arm64",
	"freebsd/amd64",
}

// Cross builds every release target with cgo disabled.
func (CI) Cross() error {
	fmt.Println("Cross-compiling release targets...")
	for _, platform := range releaseTargets {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("  Building %s...\n", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, "./cmd/gomdrender"); err != nil {
			return fmt.Errorf("build %s: %w", platform, err)
		}
	}
	fmt.Println("✓ All release targets build")
	return nil
}

// ---------------------------------------------------------------------------
// Bench namespace
// ---------------------------------------------------------------------------

// Default runs Go benchmarks.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Render times a batch render of the repository with one worker and with
// one worker per CPU.
func (Bench) Render() error {
	st.Deps(Build)
	for _, jobs := range []string{"1", "0"} {
		args := append([]string{"render", "--format", "plain", "--width", "80", "--jobs", jobs}, ignoreArgs()...)
		start := time.Now()
		if _, err := sh.Output("bin/gomdrender", append(args, ".")...); err != nil {
			return fmt.Errorf("render with --jobs %s: %w", jobs, err)
		}
		label := jobs + " job"
		if jobs == "0" {
			label = "all CPUs"
		}
		fmt.Printf("  %-9s %s\n", label, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers (unexported, not targets)
// ---------------------------------------------------------------------------

// gotestsum runs the given packages under gotestsum with race detection
// and a coverage profile.
func gotestsum(format string, pkgs ...string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{
		"tool", "gotestsum",
		"-f", format,
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	}
	return sh.RunV("go", append(args, pkgs...)...)
}

// ignoreArgs turns benchIgnore into --ignore flags.
func ignoreArgs() []string {
	args := make([]string, 0, 2*len(benchIgnore))
	for _, pattern := range benchIgnore {
		args = append(args, "--ignore", pattern)
	}
	return args
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}

// findInstalledBinary returns the path where go install would place the binary.
func findInstalledBinary(name string) (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, name), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", name), nil
}
