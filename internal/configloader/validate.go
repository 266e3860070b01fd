package configloader

import (
	"fmt"

	"github.com/yaklabco/gomdrender/pkg/config"
)

// ValidationError reports an invalid configuration, with the file that
// introduced it when known.
type ValidationError struct {
	// FilePath is the config file containing the error (if known).
	FilePath string

	// Err holds the joined field errors from config.Validate.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("%s: invalid configuration: %v", e.FilePath, e.Err)
	}
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

// Unwrap exposes the field errors to errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks a configuration. The result is nil or a *ValidationError.
func Validate(cfg *config.Config) error {
	return ValidateWithFile(cfg, "")
}

// ValidateWithFile validates configuration and names filePath in the error.
func ValidateWithFile(cfg *config.Config, filePath string) error {
	if err := cfg.Validate(); err != nil {
		return &ValidationError{FilePath: filePath, Err: err}
	}
	return nil
}
