package config

import (
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every key with its default value instead of a
	// commented-out starter file.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

const minimalTemplate = `# gomdrender configuration
# See: https://github.com/yaklabco/gomdrender

# Markdown flavor: commonmark or gfm
flavor: gfm

# Columns added per nested list level
# indent_step: 2

# Replace unordered list markers with a fixed character
# bullet: "•"

# Reference label matching: exact or fold (case-insensitive)
# label_matching: exact

# Guess the language of code fences without an info string
# detect_language: false

# Wrap width (0 = terminal width)
# width: 0

# Color output: auto, always or never
# color: auto

# Output format: terminal, plain or json
# format: terminal

# Emit terminal hyperlinks for resolved links
# hyperlinks: true

# Paths skipped when rendering a directory
# ignore:
#   - "vendor/**"
#   - "**/node_modules/**"
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
	}
	return []byte(minimalTemplate), nil
}

// templateToJSON renders the default configuration as indented JSON using
// the same keys as the YAML file.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()
	doc := map[string]any{
		"flavor":          cfg.Flavor,
		"indent_step":     cfg.IndentStep,
		"label_matching":  cfg.LabelMatching,
		"detect_language": cfg.DetectLanguageEnabled(),
		"width":           cfg.Width,
		"color":           cfg.Color,
		"format":          cfg.Format,
		"hyperlinks":      cfg.HyperlinksEnabled(),
		"ignore":          []string{},
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdrender configuration
# See: https://github.com/yaklabco/gomdrender`
}
