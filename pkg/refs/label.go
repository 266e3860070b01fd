package refs

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeLabel normalizes a reference label for matching.
// Per CommonMark: Unicode case fold, collapse whitespace.
func NormalizeLabel(label string) string {
	label = cases.Fold().String(label)
	return strings.Join(strings.Fields(label), " ")
}
