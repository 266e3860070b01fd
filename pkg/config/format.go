package config

import (
	"fmt"
	"strings"
)

// ParseFormat converts a flag value to an OutputFormat.
// "text" is accepted as an alias for plain.
func ParseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatTerminal):
		return FormatTerminal, nil
	case string(FormatPlain), "text":
		return FormatPlain, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w %q: must be one of terminal, plain, json", ErrInvalidFormat, s)
	}
}

// ParseFlavor converts a flag value to a Flavor.
func ParseFlavor(s string) (Flavor, error) {
	flavor := Flavor(strings.ToLower(strings.TrimSpace(s)))
	if !flavor.IsValid() {
		return "", fmt.Errorf("%w %q: must be one of commonmark, gfm", ErrInvalidFlavor, s)
	}
	return flavor, nil
}
