package render

import (
	"strings"

	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/richtext"
)

// Checkbox prefixes for task list items.
const (
	checkedBox   = "[x] "
	uncheckedBox = "[ ] "
)

// inlineText builds one Text from a run of inline nodes.
func (p *pass) inlineText(nodes []*mdast.Node) richtext.Text {
	b := richtext.NewBuilder()
	p.buildInline(b, nodes)
	return b.Build()
}

// buildInline appends nodes to b in order.
func (p *pass) buildInline(b *richtext.Builder, nodes []*mdast.Node) {
	for _, n := range nodes {
		p.buildNode(b, n)
	}
}

// buildNode appends one inline node. Every scope it opens is closed before
// it returns.
func (p *pass) buildNode(b *richtext.Builder, n *mdast.Node) {
	if n.IsPunctuation() {
		glyph, _ := n.Kind.Glyph()
		b.Append(glyph)
		return
	}

	switch n.Kind {
	case mdast.NodeText:
		b.Append(n.Text(p.source))

	case mdast.NodeWhitespace:
		if b.Len() > 0 {
			b.AppendByte(' ')
		}

	case mdast.NodeHardLineBreak:
		b.Append("\n\n")

	case mdast.NodeEOL:
		b.AppendByte('\n')

	case mdast.NodeEmphasis:
		b.Scope(richtext.Italic, func() { p.buildInline(b, n.Children()) })

	case mdast.NodeStrong:
		b.Scope(richtext.Bold, func() { p.buildInline(b, n.Children()) })

	case mdast.NodeStrikethrough:
		b.Scope(richtext.Strikethrough, func() { p.buildInline(b, n.Children()) })

	case mdast.NodeCodeSpan:
		b.Scope(richtext.Monospace, func() {
			b.AppendByte(' ')
			p.buildInline(b, innerChildren(n))
			b.AppendByte(' ')
		})

	case mdast.NodeImage:
		p.buildImage(b, n)

	case mdast.NodeAutolink, mdast.NodeGFMAutolink:
		p.buildAutolink(b, n)

	case mdast.NodeInlineLink, mdast.NodeShortReferenceLink, mdast.NodeFullReferenceLink:
		p.buildLink(b, n)

	case mdast.NodeParagraph, mdast.NodeLinkText:
		p.buildInline(b, n.Children())

	case mdast.NodeTaskCheckBox:
		if n.Inline != nil && n.Inline.Checked {
			b.Append(checkedBox)
		} else {
			b.Append(uncheckedBox)
		}

	case mdast.NodeHTMLInline:
		// Raw HTML is not rendered.

	default:
		p.skip("skipping inline node", n)
	}
}

// buildImage reserves a placeholder carrying the image destination.
func (p *pass) buildImage(b *richtext.Builder, n *mdast.Node) {
	dest := mdast.FindDescendant(n, mdast.NodeLinkDestination)
	if dest == nil {
		return
	}
	b.AppendPlaceholder(richtext.PlaceholderImage, dest.Text(p.source))
}

// innerChildren returns n's children without the first and last, which are
// the delimiters of a code span or bracketed label.
func innerChildren(n *mdast.Node) []*mdast.Node {
	if n.ChildCount() < 2 {
		return nil
	}
	children := n.Children()
	return children[1 : len(children)-1]
}

// plainText reduces inline nodes to their unstyled text. Whitespace and
// line breaks collapse to single spaces.
func (p *pass) plainText(nodes []*mdast.Node) string {
	var sb strings.Builder
	p.writePlain(&sb, nodes)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func (p *pass) writePlain(sb *strings.Builder, nodes []*mdast.Node) {
	for _, n := range nodes {
		switch n.Kind {
		case mdast.NodeText, mdast.NodeAutolink, mdast.NodeGFMAutolink:
			sb.WriteString(n.Text(p.source))
		case mdast.NodeWhitespace, mdast.NodeEOL, mdast.NodeHardLineBreak:
			sb.WriteByte(' ')
		case mdast.NodeCodeSpan:
			p.writePlain(sb, innerChildren(n))
		case mdast.NodeImage, mdast.NodeHTMLInline, mdast.NodeTaskCheckBox:
		default:
			if glyph, ok := n.Kind.Glyph(); ok {
				sb.WriteString(glyph)
				continue
			}
			p.writePlain(sb, n.Children())
		}
	}
}
