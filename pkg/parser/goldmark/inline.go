package goldmark

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/gomdrender/pkg/mdast"
)

// entityPattern matches HTML entity and numeric character references.
var entityPattern = regexp.MustCompile(`^&(?:#[xX][0-9a-fA-F]{1,6}|#[0-9]{1,7}|[A-Za-z][A-Za-z0-9]{1,31});`)

// inlineTokenizer splits the text segments goldmark leaves between inline
// constructs into Text, Whitespace and punctuation nodes.
type inlineTokenizer struct {
	source []byte
	parent *mdast.Node
	pos    int
	end    int
}

// tokenizeText appends the tokens for source[start:end] to parent.
func tokenizeText(parent *mdast.Node, source []byte, start, end int) {
	if start < 0 || end > len(source) || start >= end {
		return
	}
	tok := &inlineTokenizer{source: source, parent: parent, pos: start, end: end}
	tok.run()
}

func (t *inlineTokenizer) run() {
	for t.pos < t.end {
		c := t.source[t.pos]
		switch {
		case c == ' ' || c == '\t':
			t.consumeWhitespace()
		case c == '\\' && t.pos+1 < t.end && util.IsPunct(t.source[t.pos+1]):
			t.consumeEscape()
		case c == '&' && t.tryEntity():
		case mdast.PunctuationKind(c) != mdast.NodeUnknown:
			t.emit(mdast.PunctuationKind(c), t.pos, t.pos+1)
			t.pos++
		default:
			t.consumeText()
		}
	}
}

func (t *inlineTokenizer) emit(kind mdast.NodeKind, start, end int) {
	mdast.AppendChild(t.parent, mdast.NewSpanNode(kind, mdast.Span{Start: start, End: end}))
}

func (t *inlineTokenizer) consumeWhitespace() {
	start := t.pos
	for t.pos < t.end && (t.source[t.pos] == ' ' || t.source[t.pos] == '\t') {
		t.pos++
	}
	t.emit(mdast.NodeWhitespace, start, t.pos)
}

// consumeEscape emits a backslash escape as Text holding the escaped character.
func (t *inlineTokenizer) consumeEscape() {
	span := mdast.Span{Start: t.pos, End: t.pos + 2}
	literal := []byte{t.source[t.pos+1]}
	mdast.AppendChild(t.parent, mdast.NewLiteralNode(mdast.NodeText, span, literal))
	t.pos += 2
}

// tryEntity emits a resolved entity reference as Text.
// It returns false when the '&' does not start a known reference.
func (t *inlineTokenizer) tryEntity() bool {
	match := entityPattern.Find(t.source[t.pos:t.end])
	if match == nil {
		return false
	}
	resolved := util.ResolveNumericReferences(util.ResolveEntityNames(match))
	if bytes.Equal(resolved, match) {
		return false
	}
	span := mdast.Span{Start: t.pos, End: t.pos + len(match)}
	mdast.AppendChild(t.parent, mdast.NewLiteralNode(mdast.NodeText, span, resolved))
	t.pos += len(match)
	return true
}

// consumeText consumes a run of characters with no dedicated token kind.
func (t *inlineTokenizer) consumeText() {
	start := t.pos
	t.pos++
	for t.pos < t.end {
		c := t.source[t.pos]
		if c == ' ' || c == '\t' || c == '\\' || c == '&' || mdast.PunctuationKind(c) != mdast.NodeUnknown {
			break
		}
		t.pos++
	}
	t.emit(mdast.NodeText, start, t.pos)
}
