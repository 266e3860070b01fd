package reporter

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/yaklabco/gomdrender/internal/ui/pretty"
	"github.com/yaklabco/gomdrender/pkg/render"
	"github.com/yaklabco/gomdrender/pkg/richtext"
)

const (
	plainQuotePrefix = "> "
	plainCodeIndent  = 4
	plainRule        = "---"
	plainTitleFormat = "==> %s <=="
)

// PlainReporter writes unstyled, word-wrapped text. Resolved link
// destinations follow their link text in angle brackets.
type PlainReporter struct {
	opts     Options
	bw       *bufio.Writer
	reported int
}

// NewPlainReporter creates a new plain text reporter.
func NewPlainReporter(opts Options) *PlainReporter {
	return &PlainReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *PlainReporter) Report(_ context.Context, doc *Document) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if doc == nil || doc.Result == nil {
		return nil
	}

	width := r.opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(r.opts.Writer, pretty.DefaultWidth)
	}

	if r.opts.ShowPath {
		sep := ""
		if r.reported > 0 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(r.bw, "%s"+plainTitleFormat+"\n\n", sep, doc.Path); err != nil {
			return fmt.Errorf("write %s: %w", doc.Path, err)
		}
	}
	r.reported++

	for i, block := range doc.Result.Blocks {
		if i > 0 {
			if _, err := r.bw.WriteString("\n"); err != nil {
				return fmt.Errorf("write %s: %w", doc.Path, err)
			}
		}
		for _, line := range plainBlock(doc.Result, block, width) {
			if _, err := fmt.Fprintln(r.bw, line); err != nil {
				return fmt.Errorf("write %s: %w", doc.Path, err)
			}
		}
	}
	return nil
}

// plainBlock returns the output lines of one block.
func plainBlock(result *render.Result, block render.Block, width int) []string {
	switch block.Kind {
	case render.BlockHeading:
		marker := strings.Repeat("#", max(block.Level, 1)) + " "
		return hanging(plainText(result, block.Text), width, marker, blank(marker))
	case render.BlockParagraph:
		return hanging(plainText(result, block.Text), width, "", "")
	case render.BlockBlockquote:
		return hanging(plainText(result, block.Text), width, plainQuotePrefix, plainQuotePrefix)
	case render.BlockCode:
		body := indent.String(block.Text.Text, plainCodeIndent)
		return strings.Split(body, "\n")
	case render.BlockList:
		var lines []string
		for _, item := range block.Items {
			pad := strings.Repeat(" ", item.Indent)
			first := pad + item.Marker + " "
			lines = append(lines, hanging(plainText(result, item.Text), width, first, blank(first))...)
		}
		return lines
	case render.BlockRule:
		return []string{plainRule}
	default:
		return nil
	}
}

// hanging wraps s to width and prefixes the first line with first and
// every following line with rest.
func hanging(s string, width int, first, rest string) []string {
	limit := width - ansi.PrintableRuneWidth(first)
	if limit < 1 {
		limit = 1
	}
	wrapped := wordwrap.String(s, limit)

	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		lines[i] = strings.TrimRight(prefix+line, " ")
	}
	return lines
}

// blank returns spaces as wide as prefix.
func blank(prefix string) string {
	return strings.Repeat(" ", ansi.PrintableRuneWidth(prefix))
}

// plainText flattens annotated text: placeholders become "[image: url]"
// and each resolved link is followed by " <destination>" unless the link
// text already reads as the destination.
func plainText(result *render.Result, text richtext.Text) string {
	links := make(map[int][]richtext.StyleRange)
	for _, r := range text.Styles {
		if r.Style.Kind == richtext.StyleLink && r.End > r.Start && r.End <= len(text.Text) {
			links[r.End] = append(links[r.End], r)
		}
	}

	var sb strings.Builder
	for _, run := range text.Runs() {
		if run.Placeholder != nil {
			sb.WriteString(placeholderText(*run.Placeholder))
		} else {
			sb.WriteString(run.Text(text))
		}

		// Innermost links close first.
		closing := links[run.End]
		for _, link := range slices.Backward(closing) {
			dest, ok := result.Resolve(link.Style.Key)
			if !ok || dest == "" || dest == text.Text[link.Start:link.End] {
				continue
			}
			sb.WriteString(" <")
			sb.WriteString(dest)
			sb.WriteString(">")
		}
	}
	return sb.String()
}

func placeholderText(ph richtext.Placeholder) string {
	if ph.Payload == "" {
		return "[image]"
	}
	return "[image: " + ph.Payload + "]"
}
