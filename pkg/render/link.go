package render

import (
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/richtext"
)

// mailtoPrefix is prepended to email autolink destinations.
const mailtoPrefix = "mailto:"

// buildLink renders an inline, shortcut, collapsed or full reference link.
//
// The annotation key is the first non-empty of the anchor text, the
// explicit destination and the label. A link with a destination registers
// it under its anchor (or label), or under itself when the destination is
// the key; a reference link whose anchor differs from
// its label aliases the anchor to the label, so the anchor resolves once the
// label's definition has been seen.
func (p *pass) buildLink(b *richtext.Builder, n *mdast.Node) {
	linkText := mdast.FindChild(n, mdast.NodeLinkText)
	destNode := mdast.FindChild(n, mdast.NodeLinkDestination)
	labelNode := mdast.FindChild(n, mdast.NodeLinkLabel)

	var anchor, dest, label string
	if linkText != nil {
		anchor = p.plainText(innerChildren(linkText))
	}
	if destNode != nil {
		dest = destNode.Text(p.source)
	}
	if labelNode != nil {
		label = p.plainText(innerChildren(labelNode))
	}

	key := firstNonEmpty(anchor, dest, label)
	if key == "" {
		b.Append(string(n.Raw(p.source)))
		return
	}

	switch name := firstNonEmpty(anchor, label); {
	case dest != "" && name != "":
		p.table.Store(name, dest)
	case dest == "" && anchor != "" && label != "" && anchor != label:
		p.table.Alias(anchor, label)
	}
	if dest != "" && key == dest {
		p.table.Store(dest, dest)
	}

	p.useKey(key)
	b.Scope(richtext.Link(key), func() {
		if linkText != nil {
			p.buildInline(b, innerChildren(linkText))
			return
		}
		b.Append(string(n.Raw(p.source)))
	})
}

// buildAutolink renders an autolink. Inside link text it is plain text;
// elsewhere its label is both the key and the destination.
func (p *pass) buildAutolink(b *richtext.Builder, n *mdast.Node) {
	label := n.Text(p.source)
	if label == "" {
		return
	}
	if mdast.HasAncestor(n, mdast.NodeLinkText) {
		b.Append(label)
		return
	}

	dest := label
	if n.Inline != nil && n.Inline.Link != nil && n.Inline.Link.Email {
		dest = mailtoPrefix + label
	}
	p.table.Store(label, dest)
	p.useKey(label)
	b.Scope(richtext.Link(label), func() { b.Append(label) })
}

// registerDefinition stores a link reference definition.
func (p *pass) registerDefinition(n *mdast.Node) {
	labelNode := mdast.FindChild(n, mdast.NodeLinkLabel)
	destNode := mdast.FindChild(n, mdast.NodeLinkDestination)
	if labelNode == nil || destNode == nil {
		return
	}
	label := p.plainText(innerChildren(labelNode))
	if label == "" {
		return
	}
	p.table.Store(label, destNode.Text(p.source))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
