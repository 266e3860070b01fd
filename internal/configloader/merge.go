package configloader

import (
	"slices"

	"github.com/yaklabco/gomdrender/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if set, so a file can
//     turn off what a lower layer turned on
//   - Ignore patterns: override's patterns are appended to base's
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.IndentStep != 0 {
		result.IndentStep = override.IndentStep
	}
	if override.Bullet != "" {
		result.Bullet = override.Bullet
	}
	if override.LabelMatching != "" {
		result.LabelMatching = override.LabelMatching
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	if override.DetectLanguage != nil {
		result.DetectLanguage = config.Bool(*override.DetectLanguage)
	}
	if override.Hyperlinks != nil {
		result.Hyperlinks = config.Bool(*override.Hyperlinks)
	}

	for _, pattern := range override.Ignore {
		if !slices.Contains(result.Ignore, pattern) {
			result.Ignore = append(result.Ignore, pattern)
		}
	}

	// CLI-only flags can only be switched on.
	if override.Watch {
		result.Watch = true
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
