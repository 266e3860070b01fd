package goldmark

import (
	"bytes"
	"math"
	"sort"

	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdrender/pkg/mdast"
)

// segmentsSpan returns the range from the first segment's start to the
// last segment's stop.
func segmentsSpan(segments *text.Segments) mdast.Span {
	if segments == nil || segments.Len() == 0 {
		return mdast.Span{}
	}
	first := segments.At(0)
	last := segments.At(segments.Len() - 1)
	return mdast.Span{Start: first.Start, End: last.Stop}
}

// fillBlockGaps gives span-less top-level blocks (thematic breaks, empty
// containers) an empty span at the end of the previous block, so that
// top-level starts are non-decreasing.
func fillBlockGaps(root *mdast.Node) {
	prevEnd := 0
	for child := root.FirstChild; child != nil; child = child.Next {
		if child.Span.IsEmpty() || child.Span.Start < prevEnd {
			child.Span = mdast.Span{Start: prevEnd, End: max(prevEnd, child.Span.End)}
		}
		prevEnd = child.Span.End
	}
}

// placeDefinitions inserts a LinkDefinition node for every reference
// definition goldmark collected. goldmark drops definitions from its AST and
// keeps them in an unordered map, so each one is located in the source and
// inserted among the top-level blocks by offset. Definitions that cannot be
// located are appended at the end.
func (m *mapper) placeDefinitions(root *mdast.Node, references []parser.Reference) {
	defs := make([]*mdast.Node, 0, len(references))
	for _, ref := range references {
		defs = append(defs, m.mapDefinition(ref))
	}
	sort.SliceStable(defs, func(i, j int) bool {
		return definitionOffset(defs[i]) < definitionOffset(defs[j])
	})

	for _, def := range defs {
		if def.Span.IsEmpty() {
			mdast.AppendChild(root, def)
			continue
		}
		children := root.Children()
		idx := sort.Search(len(children), func(i int) bool {
			return children[i].Span.Start > def.Span.Start
		})
		if idx < len(children) {
			mdast.InsertBefore(children[idx], def)
		} else {
			mdast.AppendChild(root, def)
		}
	}
}

// definitionOffset sorts unlocated definitions last.
func definitionOffset(def *mdast.Node) int {
	if def.Span.IsEmpty() {
		return math.MaxInt
	}
	return def.Span.Start
}

// mapDefinition builds LinkDefinition > LinkLabel Colon LinkDestination [LinkTitle].
func (m *mapper) mapDefinition(ref parser.Reference) *mdast.Node {
	label := ref.Label()
	offset := m.locateDefinition(label)

	if offset < 0 {
		node := mdast.NewNode(mdast.NodeLinkDefinition)
		labelNode := mdast.NewNode(mdast.NodeLinkLabel)
		mdast.AppendChild(labelNode, mdast.NewLiteralNode(mdast.NodeLBracket, mdast.Span{}, []byte("[")))
		mdast.AppendChild(labelNode, mdast.NewLiteralNode(mdast.NodeText, mdast.Span{}, label))
		mdast.AppendChild(labelNode, mdast.NewLiteralNode(mdast.NodeRBracket, mdast.Span{}, []byte("]")))
		mdast.AppendChild(node, labelNode)
		mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeColon, mdast.Span{}, []byte(":")))
		mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeLinkDestination, mdast.Span{}, ref.Destination()))
		if title := ref.Title(); len(title) > 0 {
			mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeLinkTitle, mdast.Span{}, title))
		}
		return node
	}

	labelEnd := offset + len(label) + 2
	node := mdast.NewNode(mdast.NodeLinkDefinition)
	mdast.AppendChild(node, m.labelNode(offset, labelEnd))
	mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeColon, mdast.Span{Start: labelEnd, End: labelEnd + 1}))

	pos := skipSpace(m.source, labelEnd+1, len(m.source))
	destSpan, pos := m.scanDestination(pos, len(m.source))
	mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeLinkDestination, destSpan, ref.Destination()))

	end := pos
	if title := ref.Title(); len(title) > 0 {
		titleStart := skipSpace(m.source, pos, len(m.source))
		titleEnd := titleStart + len(title) + 2
		if titleEnd > len(m.source) {
			titleEnd = titleStart
		}
		mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeLinkTitle,
			mdast.Span{Start: titleStart, End: titleEnd}, title))
		end = max(end, titleEnd)
	}

	node.Span = mdast.Span{Start: offset, End: end}
	return node
}

// locateDefinition finds "[label]:" at the start of a line, allowing
// indentation and blockquote markers before it. It returns -1 if absent.
func (m *mapper) locateDefinition(label []byte) int {
	needle := make([]byte, 0, len(label)+3)
	needle = append(needle, '[')
	needle = append(needle, label...)
	needle = append(needle, ']', ':')

	from := 0
	for from < len(m.source) {
		idx := bytes.Index(m.source[from:], needle)
		if idx < 0 {
			return -1
		}
		pos := from + idx
		if onlyPrefix(m.source[lineStart(m.source, pos):pos]) {
			return pos
		}
		from = pos + 1
	}
	return -1
}

// onlyPrefix reports whether b holds nothing but indentation, list markers
// and blockquote markers.
func onlyPrefix(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '>', '-', '+', '*', '.', ')':
		default:
			if isDigit(c) {
				continue
			}
			return false
		}
	}
	return true
}
