// Package richtext defines annotated rich text: a flat string with
// overlapping style ranges and placeholder slots, and the stack-based
// Builder that produces it.
package richtext

import (
	"errors"
	"fmt"
)

// ObjectReplacement is the character written at every placeholder offset.
const ObjectReplacement = '\uFFFC'

// objectReplacementLen is the UTF-8 length of ObjectReplacement.
const objectReplacementLen = len(string(ObjectReplacement))

// StyleKind classifies a style range.
type StyleKind uint8

const (
	// StyleItalic marks emphasized text.
	StyleItalic StyleKind = iota + 1

	// StyleBold marks strong text.
	StyleBold

	// StyleMonospace marks code, drawn with a background.
	StyleMonospace

	// StyleLink marks a clickable range. Style.Key holds the annotation key.
	StyleLink

	// StyleStrikethrough marks deleted text.
	StyleStrikethrough
)

// String returns the lowercase style name.
func (k StyleKind) String() string {
	switch k {
	case StyleItalic:
		return "italic"
	case StyleBold:
		return "bold"
	case StyleMonospace:
		return "monospace"
	case StyleLink:
		return "link"
	case StyleStrikethrough:
		return "strikethrough"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k StyleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind written by MarshalText.
func (k *StyleKind) UnmarshalText(data []byte) error {
	for kind := StyleItalic; kind <= StyleStrikethrough; kind++ {
		if kind.String() == string(data) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown style kind %q", data)
}

// Style is the tag of a style range.
type Style struct {
	Kind StyleKind `json:"kind"`

	// Key is the link annotation key (anchor text, destination or label).
	// Empty for non-link styles.
	Key string `json:"key,omitempty"`
}

// Common styles.
var (
	Italic        = Style{Kind: StyleItalic}
	Bold          = Style{Kind: StyleBold}
	Monospace     = Style{Kind: StyleMonospace}
	Strikethrough = Style{Kind: StyleStrikethrough}
)

// Link returns a clickable style tagged with key.
func Link(key string) Style {
	return Style{Kind: StyleLink, Key: key}
}

// StyleRange applies Style to Text[Start:End].
type StyleRange struct {
	Start int   `json:"start"`
	End   int   `json:"end"`
	Style Style `json:"style"`
}

// Len returns the number of bytes covered.
func (r StyleRange) Len() int {
	return r.End - r.Start
}

// Contains reports whether offset falls inside the range.
func (r StyleRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// PlaceholderKind classifies out-of-band content.
type PlaceholderKind uint8

const (
	// PlaceholderImage reserves a slot for an image.
	PlaceholderImage PlaceholderKind = iota + 1
)

// String returns the lowercase placeholder kind name.
func (k PlaceholderKind) String() string {
	if k == PlaceholderImage {
		return "image"
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k PlaceholderKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind written by MarshalText.
func (k *PlaceholderKind) UnmarshalText(data []byte) error {
	if string(data) != PlaceholderImage.String() {
		return fmt.Errorf("unknown placeholder kind %q", data)
	}
	*k = PlaceholderImage
	return nil
}

// Placeholder reserves one ObjectReplacement character at Offset.
type Placeholder struct {
	Offset  int             `json:"offset"`
	Kind    PlaceholderKind `json:"kind"`
	Payload string          `json:"payload"`
}

// Text is a built, immutable run of annotated rich text.
// Offsets are byte offsets into Text.
type Text struct {
	Text         string        `json:"text"`
	Styles       []StyleRange  `json:"styles,omitempty"`
	Placeholders []Placeholder `json:"placeholders,omitempty"`
}

// Plain returns an unstyled Text.
func Plain(s string) Text {
	return Text{Text: s}
}

// IsEmpty reports whether the text has no characters.
func (t Text) IsEmpty() bool {
	return t.Text == ""
}

// StylesAt returns the styles covering offset, outermost first.
func (t Text) StylesAt(offset int) []Style {
	var out []Style
	for _, r := range t.Styles {
		if r.Contains(offset) {
			out = append(out, r.Style)
		}
	}
	return out
}

// LinkAt returns the innermost link key covering offset.
func (t Text) LinkAt(offset int) (string, bool) {
	key, found := "", false
	for _, r := range t.Styles {
		if r.Style.Kind == StyleLink && r.Contains(offset) {
			key, found = r.Style.Key, true
		}
	}
	return key, found
}

// Validation errors returned by Validate.
var (
	ErrRangeBounds       = errors.New("style range out of bounds")
	ErrRangeCrossing     = errors.New("style ranges cross")
	ErrPlaceholderBounds = errors.New("placeholder out of bounds")
	ErrPlaceholderChar   = errors.New("placeholder offset does not hold the replacement character")
)

// Validate checks the structural invariants: every range lies within the
// text, ranges nest without crossing, and every placeholder offset holds
// exactly one ObjectReplacement character.
func (t Text) Validate() error {
	var errs []error

	for i, r := range t.Styles {
		if r.Start < 0 || r.Start > r.End || r.End > len(t.Text) {
			errs = append(errs, fmt.Errorf("%w: range %d [%d,%d) in text of length %d",
				ErrRangeBounds, i, r.Start, r.End, len(t.Text)))
			continue
		}
		for j := i + 1; j < len(t.Styles); j++ {
			if crosses(r, t.Styles[j]) {
				errs = append(errs, fmt.Errorf("%w: [%d,%d) and [%d,%d)",
					ErrRangeCrossing, r.Start, r.End, t.Styles[j].Start, t.Styles[j].End))
			}
		}
	}

	for _, p := range t.Placeholders {
		if p.Offset < 0 || p.Offset+objectReplacementLen > len(t.Text) {
			errs = append(errs, fmt.Errorf("%w: offset %d", ErrPlaceholderBounds, p.Offset))
			continue
		}
		if t.Text[p.Offset:p.Offset+objectReplacementLen] != string(ObjectReplacement) {
			errs = append(errs, fmt.Errorf("%w: offset %d", ErrPlaceholderChar, p.Offset))
		}
	}

	return errors.Join(errs...)
}

// crosses reports whether two ranges partially overlap.
func crosses(a, b StyleRange) bool {
	if a.Len() == 0 || b.Len() == 0 {
		return false
	}
	if a.End <= b.Start || b.End <= a.Start {
		return false
	}
	nested := (a.Start <= b.Start && b.End <= a.End) || (b.Start <= a.Start && a.End <= b.End)
	return !nested
}
