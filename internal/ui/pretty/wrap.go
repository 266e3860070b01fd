package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// fragment is a styled piece of display text.
type fragment struct {
	text  string
	style lipgloss.Style

	// sig identifies the style so adjacent pieces can be merged.
	sig string

	// url is the hyperlink target, empty for plain text.
	url string

	// atomic fragments are never broken across lines.
	atomic bool
}

type segmentKind uint8

const (
	segWord segmentKind = iota
	segSpace
	segNewline
)

type segment struct {
	kind segmentKind
	text string
}

// splitSegments cuts s into words, runs of blanks and single newlines.
func splitSegments(s string) []segment {
	var segs []segment
	start := 0
	kind := segWord
	for i, c := range s {
		var k segmentKind
		switch c {
		case '\n':
			k = segNewline
		case ' ', '\t':
			k = segSpace
		default:
			k = segWord
		}
		if i > start && (k != kind || k == segNewline) {
			segs = append(segs, segment{kind: kind, text: s[start:i]})
			start = i
		}
		kind = k
	}
	if start < len(s) {
		segs = append(segs, segment{kind: kind, text: s[start:]})
	}
	return segs
}

// wrapFragments breaks fragments into lines no wider than width, breaking
// only at blanks. Blanks at a break are dropped; a word wider than width
// gets a line of its own. A width of zero disables wrapping.
func wrapFragments(frags []fragment, width int) [][]fragment {
	var (
		lines     [][]fragment
		line      []fragment
		lineWidth int
		word      []fragment
		wordWidth int
		blanks    []fragment
		blankW    int
	)

	flushWord := func() {
		if len(word) == 0 {
			return
		}
		if width > 0 && lineWidth > 0 && lineWidth+blankW+wordWidth > width {
			lines = append(lines, line)
			line, lineWidth = nil, 0
		} else {
			line = append(line, blanks...)
			lineWidth += blankW
		}
		line = append(line, word...)
		lineWidth += wordWidth
		word, wordWidth = nil, 0
		blanks, blankW = nil, 0
	}

	for _, f := range frags {
		if f.atomic {
			word = append(word, f)
			wordWidth += textWidth(f.text)
			continue
		}
		for _, seg := range splitSegments(f.text) {
			piece := f
			piece.text = seg.text
			switch seg.kind {
			case segNewline:
				flushWord()
				lines = append(lines, line)
				line, lineWidth = nil, 0
				blanks, blankW = nil, 0
			case segSpace:
				flushWord()
				blanks = append(blanks, piece)
				blankW += textWidth(seg.text)
			default:
				word = append(word, piece)
				wordWidth += textWidth(seg.text)
			}
		}
	}
	flushWord()

	return append(lines, line)
}

// renderLine styles one wrapped line, merging neighbours that share a style
// and a link target.
func renderLine(pieces []fragment, hyperlinks bool) string {
	var b strings.Builder
	for i := 0; i < len(pieces); {
		j := i + 1
		text := pieces[i].text
		for j < len(pieces) && pieces[j].sig == pieces[i].sig && pieces[j].url == pieces[i].url {
			text += pieces[j].text
			j++
		}

		styled := pieces[i].style.Render(text)
		if hyperlinks && pieces[i].url != "" {
			styled = Hyperlink(pieces[i].url, styled)
		}
		b.WriteString(styled)
		i = j
	}
	return b.String()
}

// plainLine concatenates the text of a wrapped line without styling.
func plainLine(pieces []fragment) string {
	var b strings.Builder
	for _, p := range pieces {
		b.WriteString(p.text)
	}
	return b.String()
}
