package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdrender/pkg/config"
)

// envVarPrefix is the prefix for all gomdrender environment variables.
const envVarPrefix = "GOMDRENDER_"

// envSetter applies one environment value to the configuration.
type envSetter func(cfg *config.Config, value string) error

// envVar describes a supported environment variable.
type envVar struct {
	description string
	apply       envSetter
}

// envVars maps environment variable names (without prefix) to setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"FLAVOR": {
		description: "Markdown flavor: commonmark or gfm",
		apply: func(cfg *config.Config, value string) error {
			cfg.Flavor = config.Flavor(value)
			return nil
		},
	},
	"INDENT_STEP": {
		description: "Columns added per nested list level",
		apply: func(cfg *config.Config, value string) error {
			return setInt(&cfg.IndentStep, value)
		},
	},
	"BULLET": {
		description: "Replacement marker for unordered list items",
		apply: func(cfg *config.Config, value string) error {
			cfg.Bullet = value
			return nil
		},
	},
	"LABEL_MATCHING": {
		description: "Reference label matching: exact or fold",
		apply: func(cfg *config.Config, value string) error {
			cfg.LabelMatching = config.LabelMatching(value)
			return nil
		},
	},
	"DETECT_LANGUAGE": {
		description: "Guess code fence languages: true or false",
		apply: func(cfg *config.Config, value string) error {
			return setBool(&cfg.DetectLanguage, value)
		},
	},
	"WIDTH": {
		description: "Wrap width (0 = terminal width)",
		apply: func(cfg *config.Config, value string) error {
			return setInt(&cfg.Width, value)
		},
	},
	"COLOR": {
		description: "Color output: auto, always or never",
		apply: func(cfg *config.Config, value string) error {
			cfg.Color = config.ColorMode(value)
			return nil
		},
	},
	"FORMAT": {
		description: "Output format: terminal, plain or json",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(value)
			return nil
		},
	},
	"HYPERLINKS": {
		description: "Emit terminal hyperlinks: true or false",
		apply: func(cfg *config.Config, value string) error {
			return setBool(&cfg.Hyperlinks, value)
		},
	},
	"IGNORE": {
		description: "Comma-separated glob patterns skipped in directories",
		apply: func(cfg *config.Config, value string) error {
			for _, pattern := range strings.Split(value, ",") {
				if pattern = strings.TrimSpace(pattern); pattern != "" {
					cfg.Ignore = append(cfg.Ignore, pattern)
				}
			}
			return nil
		},
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GOMDRENDER_ (e.g., GOMDRENDER_FLAVOR).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

// loadFromLookup applies overrides using lookup, in name order so that
// the first reported error is stable.
func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range envSuffixes() {
		name := envVarPrefix + suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := envVars[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

func setInt(dst *int, value string) error {
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid integer %q", value)
	}
	*dst = i
	return nil
}

func setBool(dst **bool, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
	}
	*dst = config.Bool(b)
	return nil
}

func envSuffixes() []string {
	suffixes := make([]string, 0, len(envVars))
	for suffix := range envVars {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		vars[envVarPrefix+suffix] = v.description
	}
	return vars
}
