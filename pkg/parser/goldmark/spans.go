package goldmark

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// goldmark keeps no source positions for inline containers. The wrappers in
// this file sit in front of the default inline parsers and record the byte
// range each successful Parse call consumed, keyed by the returned node.

// inlineSpan is the source range of one inline construct.
type inlineSpan struct {
	// Start is the offset of the first delimiter ('`', '<', '[' or '!').
	Start int

	// Close is the offset of the closing ']' for links and images; -1 otherwise.
	Close int

	// End is the offset just past the construct.
	End int
}

// spanIndex maps goldmark inline nodes to their recorded spans.
type spanIndex struct {
	spans map[ast.Node]inlineSpan

	// openers holds the offsets of unmatched '[' and '![' delimiters.
	openers []int
}

var spanIndexKey = parser.NewContextKey()

// spansFrom returns the index stored in pc, creating it on first use.
func spansFrom(pc parser.Context) *spanIndex {
	if idx, ok := pc.Get(spanIndexKey).(*spanIndex); ok {
		return idx
	}
	idx := &spanIndex{spans: make(map[ast.Node]inlineSpan)}
	pc.Set(spanIndexKey, idx)
	return idx
}

func (s *spanIndex) lookup(n ast.Node) (inlineSpan, bool) {
	if s == nil {
		return inlineSpan{}, false
	}
	span, ok := s.spans[n]
	return span, ok
}

// recordingParser records the span of every node its inner parser returns.
type recordingParser struct {
	inner parser.InlineParser
}

func (p *recordingParser) Trigger() []byte {
	return p.inner.Trigger()
}

func (p *recordingParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	_, start := block.PeekLine()
	node := p.inner.Parse(parent, block, pc)
	if node == nil {
		return nil
	}
	_, end := block.Position()
	spansFrom(pc).spans[node] = inlineSpan{Start: start.Start, Close: -1, End: end.Start}
	return node
}

func (p *recordingParser) CloseBlock(parent ast.Node, block text.Reader, pc parser.Context) {
	if closer, ok := p.inner.(parser.CloseBlocker); ok {
		closer.CloseBlock(parent, block, pc)
	}
}

func (p *recordingParser) SetOption(name parser.OptionName, value any) {
	if setter, ok := p.inner.(parser.SetOptioner); ok {
		setter.SetOption(name, value)
	}
}

// linkRecordingParser wraps the link parser. Openers and the closing ']'
// arrive in separate Parse calls, so opener offsets are kept on a stack;
// every ']' that finds an open label consumes the most recent one.
type linkRecordingParser struct {
	recordingParser
}

func (p *linkRecordingParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, start := block.PeekLine()
	idx := spansFrom(pc)

	node := p.inner.Parse(parent, block, pc)

	if len(line) > 0 && line[0] != ']' {
		if node != nil {
			idx.openers = append(idx.openers, start.Start)
		}
		return node
	}

	if len(idx.openers) == 0 {
		return node
	}
	opener := idx.openers[len(idx.openers)-1]
	idx.openers = idx.openers[:len(idx.openers)-1]

	if node != nil {
		_, end := block.Position()
		idx.spans[node] = inlineSpan{Start: opener, Close: start.Start, End: end.Start}
	}
	return node
}

func (p *linkRecordingParser) CloseBlock(parent ast.Node, block text.Reader, pc parser.Context) {
	spansFrom(pc).openers = nil
	p.recordingParser.CloseBlock(parent, block, pc)
}

// recordingInlineParsers wraps the default inline parsers. Link, code span
// and autolink parsers get recorders; the rest pass through unchanged.
func recordingInlineParsers() []util.PrioritizedValue {
	defaults := parser.DefaultInlineParsers()
	wrapped := make([]util.PrioritizedValue, 0, len(defaults))
	for _, pv := range defaults {
		ip, ok := pv.Value.(parser.InlineParser)
		if !ok {
			wrapped = append(wrapped, pv)
			continue
		}
		switch string(ip.Trigger()) {
		case "![]":
			pv.Value = &linkRecordingParser{recordingParser{inner: ip}}
		case "`", "<":
			pv.Value = &recordingParser{inner: ip}
		}
		wrapped = append(wrapped, pv)
	}
	return wrapped
}
