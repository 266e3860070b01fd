package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/gomdrender/internal/configloader"
	"github.com/yaklabco/gomdrender/pkg/fsutil"
)

// Exit codes for gomdrender, following sysexits.h.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrUsage marks errors caused by invalid arguments or flags.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks errors raised while loading configuration.
	ErrConfig = errors.New("configuration error")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var validationErr *configloader.ValidationError
	var pathErr *fs.PathError

	switch {
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig),
		errors.Is(err, configloader.ErrConfigNotFound),
		errors.As(err, &validationErr):
		return ExitConfigError
	case errors.As(err, &pathErr),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrPermissionDenied):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
