// Package pretty prints rendered Markdown to a terminal with Lipgloss
// styles, OSC 8 hyperlinks and width-aware wrapping.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/yaklabco/gomdrender/pkg/richtext"
)

// Styles contains the Lipgloss styles for every block and inline element.
type Styles struct {
	// Block styles
	Heading1      lipgloss.Style
	Heading       lipgloss.Style
	HeadingMarker lipgloss.Style
	QuoteBar      lipgloss.Style
	ListMarker    lipgloss.Style
	CodeBlock     lipgloss.Style
	CodeLanguage  lipgloss.Style
	Rule          lipgloss.Style

	// Inline styles, one per richtext.StyleKind
	Bold           lipgloss.Style
	Italic         lipgloss.Style
	Monospace      lipgloss.Style
	Strikethrough  lipgloss.Style
	Link           lipgloss.Style
	UnresolvedLink lipgloss.Style
	Image          lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Base lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode. Styles render
// ANSI sequences whenever colorEnabled is set, whatever the output is.
func NewStyles(colorEnabled bool) *Styles {
	renderer := lipgloss.NewRenderer(io.Discard)
	if !colorEnabled {
		renderer.SetColorProfile(termenv.Ascii)
		return newNoColorStyles(renderer)
	}
	renderer.SetColorProfile(termenv.ANSI256)
	return newColorStyles(renderer)
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Heading1:      r.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12")),
		Heading:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		HeadingMarker: r.NewStyle().Foreground(lipgloss.Color("8")),
		QuoteBar:      r.NewStyle().Foreground(lipgloss.Color("8")),
		ListMarker:    r.NewStyle().Foreground(lipgloss.Color("11")),
		CodeBlock:     r.NewStyle().Foreground(lipgloss.Color("7")),
		CodeLanguage:  r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Rule:          r.NewStyle().Foreground(lipgloss.Color("8")),

		Bold:           r.NewStyle().Bold(true),
		Italic:         r.NewStyle().Italic(true),
		Monospace:      r.NewStyle().Foreground(lipgloss.Color("203")),
		Strikethrough:  r.NewStyle().Strikethrough(true),
		Link:           r.NewStyle().Underline(true).Foreground(lipgloss.Color("14")),
		UnresolvedLink: r.NewStyle().Underline(true).Foreground(lipgloss.Color("9")),
		Image:          r.NewStyle().Foreground(lipgloss.Color("13")),

		Dim:  r.NewStyle().Foreground(lipgloss.Color("8")),
		Base: r.NewStyle(),
	}
}

// newNoColorStyles creates styles with no formatting at all.
func newNoColorStyles(r *lipgloss.Renderer) *Styles {
	plain := r.NewStyle()
	return &Styles{
		Heading1:       plain,
		Heading:        plain,
		HeadingMarker:  plain,
		QuoteBar:       plain,
		ListMarker:     plain,
		CodeBlock:      plain,
		CodeLanguage:   plain,
		Rule:           plain,
		Bold:           plain,
		Italic:         plain,
		Monospace:      plain,
		Strikethrough:  plain,
		Link:           plain,
		UnresolvedLink: plain,
		Image:          plain,
		Dim:            plain,
		Base:           plain,
	}
}

// Inline returns the style for one richtext style kind. resolved selects
// between Link and UnresolvedLink.
func (s *Styles) Inline(kind richtext.StyleKind, resolved bool) lipgloss.Style {
	switch kind {
	case richtext.StyleBold:
		return s.Bold
	case richtext.StyleItalic:
		return s.Italic
	case richtext.StyleMonospace:
		return s.Monospace
	case richtext.StyleStrikethrough:
		return s.Strikethrough
	case richtext.StyleLink:
		if resolved {
			return s.Link
		}
		return s.UnresolvedLink
	default:
		return s.Base
	}
}

// Compose layers nested inline styles over base. Inner styles win where
// two styles set the same property.
func (s *Styles) Compose(base lipgloss.Style, styles []richtext.Style, resolved bool) lipgloss.Style {
	composed := s.Base
	for i := len(styles) - 1; i >= 0; i-- {
		composed = composed.Inherit(s.Inline(styles[i].Kind, resolved))
	}
	return composed.Inherit(base)
}

// HeadingStyle returns the style for a heading of the given level.
func (s *Styles) HeadingStyle(level int) lipgloss.Style {
	if level == 1 {
		return s.Heading1
	}
	return s.Heading
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
