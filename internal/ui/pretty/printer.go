package pretty

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"

	"github.com/yaklabco/gomdrender/pkg/render"
	"github.com/yaklabco/gomdrender/pkg/richtext"
)

const (
	quoteBar   = "│ "
	codeIndent = 2
	ellipsis   = "…"
	ruleGlyph  = "─"
)

// Options configures a Printer.
type Options struct {
	// Width is the wrap width. Zero uses the terminal width of the output,
	// or DefaultWidth when it is not a terminal.
	Width int

	// Color enables ANSI styling.
	Color bool

	// Hyperlinks wraps resolved links in OSC 8 sequences.
	Hyperlinks bool
}

// Printer writes rendered documents to a terminal.
type Printer struct {
	w          io.Writer
	styles     *Styles
	width      int
	hyperlinks bool
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, opts Options) *Printer {
	width := opts.Width
	if width <= 0 {
		width = TerminalWidth(w, DefaultWidth)
	}
	return &Printer{
		w:          w,
		styles:     NewStyles(opts.Color),
		width:      width,
		hyperlinks: opts.Hyperlinks,
	}
}

// Width returns the wrap width in use.
func (p *Printer) Width() int {
	return p.width
}

// Print writes every block of result, separated by blank lines.
func (p *Printer) Print(result *render.Result) error {
	if result == nil {
		return nil
	}

	var out strings.Builder
	for i, block := range result.Blocks {
		if i > 0 {
			out.WriteByte('\n')
		}
		for _, line := range p.Block(result, block) {
			out.WriteString(line)
			out.WriteByte('\n')
		}
	}

	if _, err := io.WriteString(p.w, out.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Title writes a banner naming path, used to separate documents when
// several are printed in a row.
func (p *Printer) Title(path string) error {
	banner := p.styles.Rule.Render(ruleGlyph+ruleGlyph) + " " + p.styles.Bold.Render(path)
	if _, err := io.WriteString(p.w, banner+"\n\n"); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	return nil
}

// Block formats one block as terminal lines.
func (p *Printer) Block(result *render.Result, block render.Block) []string {
	switch block.Kind {
	case render.BlockHeading:
		marker := strings.Repeat("#", max(block.Level, 1)) + " "
		return p.prefixed(result, block.Text, p.styles.HeadingStyle(block.Level),
			p.styles.HeadingMarker.Render(marker), strings.Repeat(" ", textWidth(marker)))

	case render.BlockParagraph:
		return p.prefixed(result, block.Text, p.styles.Base, "", "")

	case render.BlockBlockquote:
		return p.quote(result, block.Text)

	case render.BlockCode:
		return p.code(block)

	case render.BlockList:
		var lines []string
		for _, item := range block.Items {
			lines = append(lines, p.listItem(result, item)...)
		}
		return lines

	case render.BlockRule:
		return []string{p.styles.Rule.Render(strings.Repeat(ruleGlyph, p.width))}

	default:
		return nil
	}
}

// prefixed wraps text to the width left after first, printing first before
// the first line and rest before every other line.
func (p *Printer) prefixed(result *render.Result, text richtext.Text, base lipgloss.Style, first, rest string) []string {
	width := max(p.width-textWidth(first), 1)
	wrapped := wrapFragments(p.fragments(result, text, base), width)

	lines := make([]string, len(wrapped))
	for i, pieces := range wrapped {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		lines[i] = prefix + renderLine(pieces, p.hyperlinks)
	}
	return lines
}

func (p *Printer) quote(result *render.Result, text richtext.Text) []string {
	bar := p.styles.QuoteBar.Render(quoteBar)
	lines := p.prefixed(result, text, p.styles.Base, bar, bar)
	for i, line := range lines {
		if line == bar {
			lines[i] = p.styles.QuoteBar.Render(strings.TrimRight(quoteBar, " "))
		}
	}
	return lines
}

func (p *Printer) listItem(result *render.Result, item render.ListItem) []string {
	lead := strings.Repeat(" ", item.Indent)
	first := lead + p.styles.ListMarker.Render(item.Marker) + " "
	rest := strings.Repeat(" ", item.Indent+textWidth(item.Marker)+1)
	return p.prefixed(result, item.Text, p.styles.Base, first, rest)
}

// code prints a code block without wrapping. Lines wider than the
// terminal are truncated with an ellipsis.
func (p *Printer) code(block render.Block) []string {
	var lines []string
	if block.Language != "" {
		lines = append(lines, p.styles.CodeLanguage.Render(block.Language))
	}

	limit := uint(max(p.width-codeIndent, 1))
	body := strings.Split(block.Text.Text, "\n")
	for i, line := range body {
		body[i] = p.styles.CodeBlock.Render(truncate.StringWithTail(line, limit, ellipsis))
	}
	indented := indent.String(strings.Join(body, "\n"), codeIndent)

	return append(lines, strings.Split(indented, "\n")...)
}

// fragments converts text into styled display pieces. Image placeholders
// become "[image: url]".
func (p *Printer) fragments(result *render.Result, text richtext.Text, base lipgloss.Style) []fragment {
	runs := text.Runs()
	frags := make([]fragment, 0, len(runs))
	for _, run := range runs {
		url := ""
		resolved := true
		if key, ok := run.Link(); ok {
			url, resolved = result.Resolve(key)
		}

		frag := fragment{
			text:  run.Text(text),
			style: p.styles.Compose(base, run.Styles, resolved),
			sig:   signature(run, resolved),
			url:   url,
		}
		if run.Placeholder != nil {
			frag.text = placeholderText(*run.Placeholder)
			frag.style = p.styles.Image.Inherit(frag.style)
			frag.sig += "|image"
			frag.atomic = true
		}
		frags = append(frags, frag)
	}
	return frags
}

// placeholderText is the display form of a placeholder.
func placeholderText(ph richtext.Placeholder) string {
	if ph.Payload == "" {
		return "[" + ph.Kind.String() + "]"
	}
	return "[" + ph.Kind.String() + ": " + ph.Payload + "]"
}

func signature(run richtext.Run, resolved bool) string {
	var b strings.Builder
	for _, s := range run.Styles {
		b.WriteString(s.Kind.String())
		b.WriteByte(',')
	}
	if !resolved {
		b.WriteString("unresolved")
	}
	return b.String()
}
