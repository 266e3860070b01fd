package goldmark

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdrender/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
type mapper struct {
	source []byte
	spans  *spanIndex
}

// newMapper creates a new mapper for the given content and recorded spans.
func newMapper(source []byte, spans *spanIndex) *mapper {
	return &mapper{source: source, spans: spans}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	root := mdast.NewRoot()
	m.mapChildren(gmDoc, root)
	mdast.ExtendSpans(root)
	fillBlockGaps(root)
	root.Span = mdast.Span{Start: 0, End: len(m.source)}
	return root
}

// mapChildren maps all children of a goldmark node into parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapNode(child, parent)
	}
}

// mapNode converts a single goldmark node and appends the result to parent.
// Text nodes may expand into several tokens.
func (m *mapper) mapNode(gmNode ast.Node, parent *mdast.Node) {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = m.mapHeading(gmn)

	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewSpanNode(mdast.NodeParagraph, m.linesSpan(gmNode))
		m.mapChildren(gmNode, node)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapChildren(gmNode, node)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = m.mapIndentedCodeBlock(gmn)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node = mdast.NewSpanNode(mdast.NodeHTMLBlock, m.linesSpan(gmNode))

	// Inline-level nodes.
	case *ast.Text:
		m.mapText(gmn, parent)
		return

	case *ast.String:
		node = mdast.NewLiteralNode(mdast.NodeText, mdast.Span{}, gmn.Value)

	case *ast.Emphasis:
		node = m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = m.mapLink(gmn)

	case *ast.Image:
		node = m.mapImage(gmn)

	case *ast.AutoLink:
		node = m.mapAutoLink(gmn)

	case *ast.RawHTML:
		node = mdast.NewSpanNode(mdast.NodeHTMLInline, segmentsSpan(gmn.Segments))

	// GFM extension nodes.
	case *east.Strikethrough:
		node = mdast.NewNode(mdast.NodeStrikethrough)
		m.mapChildren(gmNode, node)

	case *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeTaskCheckBox)
		node.Inline = mdast.NewInlineAttrs().WithChecked(gmn.IsChecked)

	case *east.Table:
		node = mdast.NewNode(mdast.NodeTable)
		m.mapChildren(gmNode, node)

	case *east.TableHeader, *east.TableRow:
		node = mdast.NewNode(mdast.NodeTableRow)
		m.mapChildren(gmNode, node)

	case *east.TableCell:
		node = mdast.NewNode(mdast.NodeTableCell)
		m.mapChildren(gmNode, node)

	default:
		// Fallback for unknown node types.
		node = mdast.NewNode(mdast.NodeUnknown)
		if gmNode.Type() == ast.TypeBlock {
			node.Span = m.linesSpan(gmNode)
		}
		m.mapChildren(gmNode, node)
	}

	mdast.AppendChild(parent, node)
}

// linesSpan returns the range covered by a block node's lines.
func (m *mapper) linesSpan(gmNode ast.Node) mdast.Span {
	if gmNode.Type() != ast.TypeBlock {
		return mdast.Span{}
	}
	return segmentsSpan(gmNode.Lines())
}

// mapHeading converts a goldmark Heading into Heading > HeadingContent.
func (m *mapper) mapHeading(h *ast.Heading) *mdast.Node {
	content := mdast.NewSpanNode(mdast.NodeHeadingContent, m.linesSpan(h))
	m.mapChildren(h, content)

	node := mdast.NewNode(mdast.NodeHeading)
	node.Block = mdast.NewBlockAttrs().WithHeadingLevel(h.Level)
	if !content.Span.IsEmpty() {
		node.Span = mdast.Span{
			Start: lineStart(m.source, content.Span.Start),
			End:   lineEnd(m.source, content.Span.End),
		}
	}
	mdast.AppendChild(node, content)
	return node
}

// mapList converts a goldmark List to an ordered or unordered list node.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	kind := mdast.NodeUnorderedList
	if list.IsOrdered() {
		kind = mdast.NodeOrderedList
	}

	node := mdast.NewNode(kind)
	node.Block = mdast.NewBlockAttrs().WithList(&mdast.ListAttrs{
		Marker: list.Marker,
		Start:  list.Start,
		Tight:  list.IsTight,
	})

	index := 0
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			m.mapNode(child, node)
			continue
		}
		mdast.AppendChild(node, m.mapListItem(list, item, index))
		index++
	}

	return node
}

// mapListItem converts a list item and prepends its marker token.
func (m *mapper) mapListItem(list *ast.List, item *ast.ListItem, index int) *mdast.Node {
	node := mdast.NewNode(mdast.NodeListItem)
	mdast.AppendChild(node, m.listMarker(list, item, index))
	m.mapChildren(item, node)
	return node
}

// listMarker locates the item's marker in the source. When it cannot be
// found (empty items, items opening with a fence) a marker is synthesized
// from the list attributes.
func (m *mapper) listMarker(list *ast.List, item *ast.ListItem, index int) *mdast.Node {
	kind := mdast.NodeListBullet
	literal := []byte{list.Marker}
	if list.IsOrdered() {
		kind = mdast.NodeListNumber
		literal = append([]byte(strconv.Itoa(list.Start+index)), list.Marker)
	}

	if span, ok := m.findMarker(item, list.Marker, list.IsOrdered()); ok {
		return mdast.NewSpanNode(kind, span)
	}
	return mdast.NewLiteralNode(kind, mdast.Span{}, literal)
}

func (m *mapper) findMarker(item *ast.ListItem, marker byte, ordered bool) (mdast.Span, bool) {
	first := item.FirstChild()
	if first == nil || first.Type() != ast.TypeBlock || first.Lines().Len() == 0 {
		return mdast.Span{}, false
	}
	if _, fenced := first.(*ast.FencedCodeBlock); fenced {
		return mdast.Span{}, false
	}

	pos := first.Lines().At(0).Start - 1
	for pos >= 0 && (m.source[pos] == ' ' || m.source[pos] == '\t') {
		pos--
	}
	if pos < 0 || m.source[pos] != marker {
		return mdast.Span{}, false
	}
	if !ordered {
		return mdast.Span{Start: pos, End: pos + 1}, true
	}

	start := pos
	for start > 0 && isDigit(m.source[start-1]) {
		start--
	}
	if start == pos {
		return mdast.Span{}, false
	}
	return mdast.Span{Start: start, End: pos + 1}, true
}

// mapFencedCodeBlock converts a fenced block into
// CodeFence > FenceStart [FenceLang] EOL (CodeLine EOL)* [FenceEnd].
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeFence)

	info := ""
	if codeBlock.Info != nil {
		info = string(codeBlock.Info.Segment.Value(m.source))
	}

	openLine := m.openingFenceLine(codeBlock)
	fenceChar, fenceLength, fenceStart := byte('`'), 3, -1
	if openLine >= 0 {
		fenceChar, fenceLength, fenceStart = m.fenceAt(openLine)
	}

	if fenceStart >= 0 {
		mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeFenceStart,
			mdast.Span{Start: fenceStart, End: fenceStart + fenceLength}))
	} else {
		mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeFenceStart,
			mdast.Span{}, bytes.Repeat([]byte{fenceChar}, fenceLength)))
	}

	if codeBlock.Info != nil {
		if lang := codeBlock.Language(m.source); len(lang) > 0 {
			start := codeBlock.Info.Segment.Start
			mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeFenceLang,
				mdast.Span{Start: start, End: start + len(lang)}))
		}
	}

	afterBody := -1
	if openLine >= 0 {
		end := lineEnd(m.source, openLine)
		if end < len(m.source) {
			mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeEOL, mdast.Span{Start: end, End: end + 1}))
		}
		afterBody = end + 1
	}

	lines := codeBlock.Lines()
	for i := range lines.Len() {
		afterBody = m.appendCodeLine(node, lines.At(i))
	}

	closed := false
	if afterBody >= 0 && afterBody < len(m.source) {
		if span, ok := m.closingFence(afterBody, fenceChar, fenceLength); ok {
			mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeFenceEnd, span))
			closed = true
		}
	}

	node.Block = mdast.NewBlockAttrs().WithCode(&mdast.CodeAttrs{
		FenceChar:   fenceChar,
		FenceLength: fenceLength,
		Info:        info,
		Closed:      closed,
	})
	return node
}

// mapIndentedCodeBlock converts an indented code block into CodeBlock > (CodeLine EOL)*.
func (m *mapper) mapIndentedCodeBlock(codeBlock *ast.CodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	lines := codeBlock.Lines()
	for i := range lines.Len() {
		m.appendCodeLine(node, lines.At(i))
	}
	node.Block = mdast.NewBlockAttrs().WithCode(&mdast.CodeAttrs{})
	return node
}

// appendCodeLine appends one body line and its newline. It returns the
// offset just past the line.
func (m *mapper) appendCodeLine(node *mdast.Node, seg text.Segment) int {
	body := bytes.TrimRight(m.source[seg.Start:seg.Stop], "\r\n")
	bodyEnd := seg.Start + len(body)

	line := mdast.NewSpanNode(mdast.NodeCodeLine, mdast.Span{Start: seg.Start, End: bodyEnd})
	if seg.Padding > 0 {
		line.Literal = append(bytes.Repeat([]byte{' '}, seg.Padding), body...)
	}
	mdast.AppendChild(node, line)

	if bodyEnd < seg.Stop {
		mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeEOL, mdast.Span{Start: bodyEnd, End: seg.Stop}))
	}
	return seg.Stop
}

// openingFenceLine returns the start of the line holding the opening fence.
func (m *mapper) openingFenceLine(codeBlock *ast.FencedCodeBlock) int {
	if codeBlock.Info != nil {
		return lineStart(m.source, codeBlock.Info.Segment.Start)
	}
	lines := codeBlock.Lines()
	if lines.Len() == 0 {
		return -1
	}
	first := lineStart(m.source, lines.At(0).Start)
	if first == 0 {
		return -1
	}
	return lineStart(m.source, first-1)
}

// fenceAt finds the fence run on the line starting at offset, skipping
// indentation and container prefixes.
func (m *mapper) fenceAt(offset int) (byte, int, int) {
	end := lineEnd(m.source, offset)
	pos := offset
	for pos < end && m.source[pos] != '`' && m.source[pos] != '~' {
		pos++
	}
	if pos >= end {
		return '`', 3, -1
	}
	fenceChar := m.source[pos]
	length := 0
	for pos+length < end && m.source[pos+length] == fenceChar {
		length++
	}
	return fenceChar, length, pos
}

// closingFence checks whether the line at offset closes a fence.
func (m *mapper) closingFence(offset int, fenceChar byte, minLength int) (mdast.Span, bool) {
	end := lineEnd(m.source, offset)
	pos := offset
	for pos < end && (m.source[pos] == ' ' || m.source[pos] == '\t' || m.source[pos] == '>') {
		pos++
	}
	start := pos
	for pos < end && m.source[pos] == fenceChar {
		pos++
	}
	if pos-start < minLength {
		return mdast.Span{}, false
	}
	if len(bytes.TrimSpace(m.source[pos:end])) != 0 {
		return mdast.Span{}, false
	}
	return mdast.Span{Start: start, End: pos}, true
}

// mapText tokenizes a text segment and appends line break markers.
func (m *mapper) mapText(textNode *ast.Text, parent *mdast.Node) {
	seg := textNode.Segment
	if textNode.IsRaw() {
		mdast.AppendChild(parent, mdast.NewSpanNode(mdast.NodeText, mdast.Span{Start: seg.Start, End: seg.Stop}))
	} else {
		tokenizeText(parent, m.source, seg.Start, seg.Stop)
	}

	breakSpan := mdast.Span{Start: seg.Stop, End: seg.Stop}
	switch {
	case textNode.HardLineBreak():
		mdast.AppendChild(parent, mdast.NewLiteralNode(mdast.NodeHardLineBreak, breakSpan, []byte("\n")))
	case textNode.SoftLineBreak():
		mdast.AppendChild(parent, mdast.NewLiteralNode(mdast.NodeEOL, breakSpan, []byte("\n")))
	}
}

// mapEmphasis converts a goldmark Emphasis node to Emphasis or Strong.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	kind := mdast.NodeEmphasis
	if emphasis.Level >= 2 {
		kind = mdast.NodeStrong
	}
	node := mdast.NewNode(kind)
	m.mapChildren(emphasis, node)
	return node
}

// mapCodeSpan converts a code span into CodeSpan > Backtick Text Backtick.
// The inner Text holds the code content verbatim, line endings as spaces.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	body := []byte{}
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			body = append(body, c.Segment.Value(m.source)...)
		case *ast.String:
			body = append(body, c.Value...)
		}
	}
	body = bytes.ReplaceAll(body, []byte("\n"), []byte(" "))

	span, ok := m.spans.lookup(codeSpan)
	if !ok {
		mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeBacktick, mdast.Span{}, []byte("`")))
		mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeText, mdast.Span{}, body))
		mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeBacktick, mdast.Span{}, []byte("`")))
		return node
	}

	ticks := 0
	for span.Start+ticks < span.End && m.source[span.Start+ticks] == '`' {
		ticks++
	}
	node.Span = mdast.Span{Start: span.Start, End: span.End}
	inner := mdast.Span{Start: span.Start + ticks, End: span.End - ticks}
	mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeBacktick, mdast.Span{Start: span.Start, End: inner.Start}))
	mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeText, inner, body))
	mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeBacktick, mdast.Span{Start: inner.End, End: span.End}))
	return node
}

// mapLink converts a goldmark Link into one of the link node kinds.
func (m *mapper) mapLink(link *ast.Link) *mdast.Node {
	span, ok := m.spans.lookup(link)
	if !ok {
		return m.unplacedLink(link, link.Destination)
	}
	return m.buildLink(link, link.Destination, link.Title, span, false)
}

// mapImage converts a goldmark Image into Image > ExclamationMark link.
// Reference-style images carry the destination goldmark resolved as an
// extra LinkDestination so they still reach the rendering surface.
func (m *mapper) mapImage(img *ast.Image) *mdast.Node {
	node := mdast.NewNode(mdast.NodeImage)

	span, ok := m.spans.lookup(img)
	if !ok {
		mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeExclamationMark, mdast.Span{}, []byte("!")))
		mdast.AppendChild(node, m.unplacedLink(img, img.Destination))
		return node
	}

	node.Span = mdast.Span{Start: span.Start, End: span.End}
	mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeExclamationMark,
		mdast.Span{Start: span.Start, End: span.Start + 1}))
	link := m.buildLink(img, img.Destination, img.Title, span, true)
	mdast.AppendChild(node, link)

	if link.Kind != mdast.NodeInlineLink && len(img.Destination) > 0 {
		mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeLinkDestination, mdast.Span{}, img.Destination))
	}
	return node
}

// unplacedLink builds an inline link for a goldmark link whose source
// position was not recorded.
func (m *mapper) unplacedLink(content ast.Node, destination []byte) *mdast.Node {
	node := mdast.NewNode(mdast.NodeInlineLink)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{ReferenceStyle: mdast.RefStyleInline})

	linkText := mdast.NewNode(mdast.NodeLinkText)
	mdast.AppendChild(linkText, mdast.NewLiteralNode(mdast.NodeLBracket, mdast.Span{}, []byte("[")))
	m.mapChildren(content, linkText)
	mdast.AppendChild(linkText, mdast.NewLiteralNode(mdast.NodeRBracket, mdast.Span{}, []byte("]")))
	mdast.AppendChild(node, linkText)

	if len(destination) > 0 {
		mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeLinkDestination, mdast.Span{}, destination))
	}
	return node
}

// buildLink classifies a link by the source after its closing ']' and
// builds LinkText plus the destination or label sub-nodes.
func (m *mapper) buildLink(content ast.Node, destination, title []byte, span inlineSpan, image bool) *mdast.Node {
	textStart := span.Start
	if image {
		textStart++
	}
	tail := m.source[span.Close+1 : span.End]

	kind, style := mdast.NodeShortReferenceLink, mdast.RefStyleShortcut
	switch {
	case len(tail) > 0 && tail[0] == '(':
		kind, style = mdast.NodeInlineLink, mdast.RefStyleInline
	case bytes.Equal(tail, []byte("[]")):
		style = mdast.RefStyleCollapsed
	case len(tail) > 0 && tail[0] == '[':
		kind, style = mdast.NodeFullReferenceLink, mdast.RefStyleFull
	}

	node := mdast.NewSpanNode(kind, mdast.Span{Start: textStart, End: span.End})
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Title:          string(title),
		ReferenceStyle: style,
	})

	linkText := mdast.NewSpanNode(mdast.NodeLinkText, mdast.Span{Start: textStart, End: span.Close + 1})
	mdast.AppendChild(linkText, mdast.NewSpanNode(mdast.NodeLBracket, mdast.Span{Start: textStart, End: textStart + 1}))
	m.mapChildren(content, linkText)
	mdast.AppendChild(linkText, mdast.NewSpanNode(mdast.NodeRBracket, mdast.Span{Start: span.Close, End: span.Close + 1}))
	mdast.AppendChild(node, linkText)

	tailStart := span.Close + 1
	switch style {
	case mdast.RefStyleInline:
		m.appendInlineTail(node, destination, title, tailStart, span.End)
	case mdast.RefStyleFull:
		mdast.AppendChild(node, m.labelNode(tailStart, span.End))
	case mdast.RefStyleCollapsed:
		mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeLBracket, mdast.Span{Start: tailStart, End: tailStart + 1}))
		mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeRBracket, mdast.Span{Start: tailStart + 1, End: tailStart + 2}))
	}

	return node
}

// appendInlineTail appends the "(destination "title")" part of an inline link.
func (m *mapper) appendInlineTail(node *mdast.Node, destination, title []byte, start, end int) {
	if end-start < 2 || m.source[end-1] != ')' {
		if len(destination) > 0 {
			mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeLinkDestination, mdast.Span{}, destination))
		}
		return
	}
	closeParen := end - 1

	mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeLParen, mdast.Span{Start: start, End: start + 1}))
	pos := skipSpace(m.source, start+1, closeParen)

	destSpan, pos := m.scanDestination(pos, closeParen)
	if pos > destSpan.End {
		mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeLT, mdast.Span{Start: destSpan.Start - 1, End: destSpan.Start}))
	}
	mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeLinkDestination, destSpan, destination))
	if pos > destSpan.End {
		mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeGT, mdast.Span{Start: destSpan.End, End: pos}))
	}

	pos = skipSpace(m.source, pos, closeParen)
	if pos < closeParen {
		titleEnd := closeParen
		for titleEnd > pos && isSpaceByte(m.source[titleEnd-1]) {
			titleEnd--
		}
		mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeLinkTitle, mdast.Span{Start: pos, End: titleEnd}, title))
	}

	mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeRParen, mdast.Span{Start: closeParen, End: end}))
}

// scanDestination returns the raw destination span starting at pos and the
// offset just past it (past the '>' for bracketed destinations).
func (m *mapper) scanDestination(pos, limit int) (mdast.Span, int) {
	if pos < limit && m.source[pos] == '<' {
		end := pos + 1
		for end < limit && m.source[end] != '>' {
			if m.source[end] == '\\' && end+1 < limit {
				end++
			}
			end++
		}
		if end < limit {
			return mdast.Span{Start: pos + 1, End: end}, end + 1
		}
	}

	end, depth := pos, 0
	for end < limit {
		c := m.source[end]
		if isSpaceByte(c) {
			break
		}
		switch c {
		case '\\':
			end++
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return mdast.Span{Start: pos, End: end}, end
			}
			depth--
		}
		end++
	}
	end = min(end, limit)
	return mdast.Span{Start: pos, End: end}, end
}

// labelNode builds LinkLabel > LBracket Text RBracket for source[start:end].
func (m *mapper) labelNode(start, end int) *mdast.Node {
	label := mdast.NewSpanNode(mdast.NodeLinkLabel, mdast.Span{Start: start, End: end})
	mdast.AppendChild(label, mdast.NewSpanNode(mdast.NodeLBracket, mdast.Span{Start: start, End: start + 1}))
	if end-start > 2 {
		mdast.AppendChild(label, mdast.NewSpanNode(mdast.NodeText, mdast.Span{Start: start + 1, End: end - 1}))
	}
	mdast.AppendChild(label, mdast.NewSpanNode(mdast.NodeRBracket, mdast.Span{Start: end - 1, End: end}))
	return label
}

// mapAutoLink converts a goldmark AutoLink. Autolinks written with angle
// brackets were seen by the recording parser; linkify matches were not.
func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	label := al.Label(m.source)
	attrs := &mdast.LinkAttrs{
		ReferenceStyle: mdast.RefStyleAutolink,
		Email:          al.AutoLinkType == ast.AutoLinkEmail,
	}

	span, ok := m.spans.lookup(al)
	if !ok {
		node := mdast.NewLiteralNode(mdast.NodeGFMAutolink, mdast.Span{}, label)
		node.Inline = mdast.NewInlineAttrs().WithLink(attrs)
		mdast.AppendChild(node, mdast.NewLiteralNode(mdast.NodeText, mdast.Span{}, label))
		return node
	}

	node := mdast.NewLiteralNode(mdast.NodeAutolink, mdast.Span{Start: span.Start, End: span.End}, label)
	node.Inline = mdast.NewInlineAttrs().WithLink(attrs)
	mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeLT, mdast.Span{Start: span.Start, End: span.Start + 1}))
	mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeText, mdast.Span{Start: span.Start + 1, End: span.End - 1}))
	mdast.AppendChild(node, mdast.NewSpanNode(mdast.NodeGT, mdast.Span{Start: span.End - 1, End: span.End}))
	return node
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// skipSpace returns the first offset in [pos, limit) that is not whitespace.
func skipSpace(source []byte, pos, limit int) int {
	for pos < limit && isSpaceByte(source[pos]) {
		pos++
	}
	return pos
}

// lineStart returns the offset of the start of the line containing offset.
func lineStart(source []byte, offset int) int {
	offset = min(offset, len(source))
	for offset > 0 && source[offset-1] != '\n' {
		offset--
	}
	return offset
}

// lineEnd returns the offset of the newline ending the line containing
// offset, or len(source).
func lineEnd(source []byte, offset int) int {
	if offset < 0 {
		return 0
	}
	if idx := bytes.IndexByte(source[min(offset, len(source)):], '\n'); idx >= 0 {
		return offset + idx
	}
	return len(source)
}
