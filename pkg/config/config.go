// Package config defines core configuration types for gomdrender.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/gobwas/glob"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// OutputFormat specifies how a rendered document is written.
type OutputFormat string

const (
	FormatTerminal OutputFormat = "terminal"
	FormatPlain    OutputFormat = "plain"
	FormatJSON     OutputFormat = "json"
)

// LabelMatching selects how reference labels are compared.
type LabelMatching string

const (
	// MatchExact compares labels after whitespace normalization only.
	MatchExact LabelMatching = "exact"
	// MatchFold additionally case-folds labels, as CommonMark does.
	MatchFold LabelMatching = "fold"
)

// ColorMode controls ANSI styling of terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// DefaultIndentStep is the number of columns a nested list level indents by.
const DefaultIndentStep = 2

// Sentinel errors returned (joined) by Validate.
var (
	ErrInvalidFlavor     = errors.New("invalid flavor")
	ErrInvalidFormat     = errors.New("invalid format")
	ErrInvalidMatching   = errors.New("invalid label matching")
	ErrInvalidColor      = errors.New("invalid color mode")
	ErrInvalidIndentStep = errors.New("invalid indent step")
	ErrInvalidWidth      = errors.New("invalid width")
	ErrInvalidBullet     = errors.New("invalid bullet")
	ErrInvalidIgnore     = errors.New("invalid ignore pattern")
)

// Config is the root configuration structure for gomdrender.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	// IndentStep is the indent, in columns, added per list nesting level.
	IndentStep int `yaml:"indent_step,omitempty"`

	// Bullet replaces the source marker of unordered list items when set.
	Bullet string `yaml:"bullet,omitempty"`

	// LabelMatching is "exact" or "fold".
	LabelMatching LabelMatching `yaml:"label_matching,omitempty"`

	// DetectLanguage guesses the language of code fences without an info string.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// Width is the wrap width for terminal and plain output. 0 uses the
	// terminal width, falling back to 80 columns.
	Width int `yaml:"width,omitempty"`

	// Color is "auto", "always" or "never".
	Color ColorMode `yaml:"color,omitempty"`

	// Format is the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Hyperlinks emits OSC 8 escape sequences for resolved links.
	Hyperlinks *bool `yaml:"hyperlinks,omitempty"`

	// Ignore lists glob patterns, relative to the working directory, for
	// files and directories skipped when rendering a directory tree.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Watch re-renders when the input file changes.
	Watch bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:         FlavorGFM,
		IndentStep:     DefaultIndentStep,
		LabelMatching:  MatchExact,
		DetectLanguage: Bool(false),
		Width:          0,
		Color:          ColorAuto,
		Format:         FormatTerminal,
		Hyperlinks:     Bool(true),
	}
}

// Bool returns a pointer to b, for the optional boolean fields.
func Bool(b bool) *bool {
	return &b
}

// DetectLanguageEnabled reports the effective DetectLanguage setting.
func (c *Config) DetectLanguageEnabled() bool {
	return c != nil && c.DetectLanguage != nil && *c.DetectLanguage
}

// HyperlinksEnabled reports the effective Hyperlinks setting.
// Unset means enabled.
func (c *Config) HyperlinksEnabled() bool {
	return c != nil && (c.Hyperlinks == nil || *c.Hyperlinks)
}

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatTerminal, FormatPlain, FormatJSON:
		return true
	default:
		return false
	}
}

// IsValid returns true if the matching mode is known.
func (m LabelMatching) IsValid() bool {
	switch m {
	case MatchExact, MatchFold:
		return true
	default:
		return false
	}
}

// IsValid returns true if the color mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// Validate checks every field and returns all problems joined together.
// Empty values are allowed; they mean "use the default".
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	var errs []error

	if c.Flavor != "" && !c.Flavor.IsValid() {
		errs = append(errs, fmt.Errorf("%w %q: must be one of commonmark, gfm", ErrInvalidFlavor, c.Flavor))
	}
	if c.Format != "" && !c.Format.IsValid() {
		errs = append(errs, fmt.Errorf("%w %q: must be one of terminal, plain, json", ErrInvalidFormat, c.Format))
	}
	if c.LabelMatching != "" && !c.LabelMatching.IsValid() {
		errs = append(errs, fmt.Errorf("%w %q: must be one of exact, fold", ErrInvalidMatching, c.LabelMatching))
	}
	if c.Color != "" && !c.Color.IsValid() {
		errs = append(errs, fmt.Errorf("%w %q: must be one of auto, always, never", ErrInvalidColor, c.Color))
	}
	if c.IndentStep < 0 {
		errs = append(errs, fmt.Errorf("%w %d: must be >= 0", ErrInvalidIndentStep, c.IndentStep))
	}
	if c.Width < 0 {
		errs = append(errs, fmt.Errorf("%w %d: must be >= 0 (0 means terminal width)", ErrInvalidWidth, c.Width))
	}
	if c.Bullet != "" && utf8.RuneCountInString(c.Bullet) != 1 {
		errs = append(errs, fmt.Errorf("%w %q: must be a single character", ErrInvalidBullet, c.Bullet))
	}
	for _, pattern := range c.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w %q: %w", ErrInvalidIgnore, pattern, err))
		}
	}

	return errors.Join(errs...)
}
