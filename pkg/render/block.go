package render

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdrender/pkg/langdetect"
	"github.com/yaklabco/gomdrender/pkg/mdast"
	"github.com/yaklabco/gomdrender/pkg/richtext"
)

// BlockKind classifies a rendered block.
type BlockKind uint8

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockBlockquote
	BlockCode
	BlockList
	BlockRule
)

var blockKindNames = map[BlockKind]string{
	BlockHeading:    "heading",
	BlockParagraph:  "paragraph",
	BlockBlockquote: "blockquote",
	BlockCode:       "code",
	BlockList:       "list",
	BlockRule:       "rule",
}

func (k BlockKind) String() string {
	if name, ok := blockKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k BlockKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind written by MarshalText.
func (k *BlockKind) UnmarshalText(data []byte) error {
	for kind, name := range blockKindNames {
		if name == string(data) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown block kind %q", data)
}

// Block is one block-level unit handed to a rendering surface.
type Block struct {
	Kind BlockKind `json:"kind"`

	// Level is the heading rank (1 = most prominent). Zero for other kinds.
	Level int `json:"level,omitempty"`

	// Anchor is the generated fragment ID of a heading.
	Anchor string `json:"anchor,omitempty"`

	// Text is the block content. Empty for lists and rules.
	Text richtext.Text `json:"text"`

	// Language is the code block language, if known.
	Language string `json:"language,omitempty"`

	// Items holds the flattened items of a list block.
	Items []ListItem `json:"items,omitempty"`
}

func (p *pass) emit(block Block) {
	p.blocks = append(p.blocks, block)
}

// renderBlock dispatches one top-level node. When fallback is set, a node
// with no block handling gets its direct children dispatched once more,
// without further fallback.
func (p *pass) renderBlock(n *mdast.Node, fallback bool) {
	switch n.Kind {
	case mdast.NodeHeading:
		p.renderHeading(n)

	case mdast.NodeParagraph:
		text := p.inlineText(n.Children())
		if !text.IsEmpty() {
			p.emit(Block{Kind: BlockParagraph, Text: text})
		}

	case mdast.NodeBlockquote:
		text := p.quoteText(n)
		if !text.IsEmpty() {
			p.emit(Block{Kind: BlockBlockquote, Text: text})
		}

	case mdast.NodeOrderedList, mdast.NodeUnorderedList:
		if items := p.renderList(n, 0); len(items) > 0 {
			p.emit(Block{Kind: BlockList, Items: items})
		}

	case mdast.NodeCodeFence, mdast.NodeCodeBlock:
		p.renderCode(n)

	case mdast.NodeThematicBreak:
		p.emit(Block{Kind: BlockRule})

	case mdast.NodeLinkDefinition:
		p.registerDefinition(n)

	case mdast.NodeImage:
		p.skip("dropping block-level image", n)

	case mdast.NodeHTMLBlock:
		// Raw HTML is not rendered.

	default:
		p.unhandled(n, fallback)
	}
}

// unhandled applies the one-level fallback for nodes with no block handling.
func (p *pass) unhandled(n *mdast.Node, fallback bool) {
	if !fallback || !n.HasChildren() {
		p.skip("skipping node", n)
		return
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		p.renderBlock(child, false)
	}
}

func (p *pass) renderHeading(n *mdast.Node) {
	content := mdast.FindChild(n, mdast.NodeHeadingContent)
	if content == nil {
		return
	}
	text := strings.TrimSpace(string(content.Raw(p.source)))
	if text == "" {
		return
	}

	p.emit(Block{
		Kind:   BlockHeading,
		Level:  n.HeadingLevel(),
		Anchor: p.anchors.AddHeading(text, len(p.blocks)),
		Text:   richtext.Plain(text),
	})
}

func (p *pass) renderCode(n *mdast.Node) {
	body := codeBody(n, p.source)
	if body == "" {
		return
	}

	language := ""
	if lang := mdast.FindChild(n, mdast.NodeFenceLang); lang != nil {
		language = langdetect.FromInfo(lang.Text(p.source))
	} else if p.opts.DetectLanguage {
		language = langdetect.Guess([]byte(body))
	}

	p.emit(Block{Kind: BlockCode, Text: monospace(body), Language: language})
}

// codeBody joins the children between the fence delimiters and trims the
// result. Code lines keep their internal formatting.
func codeBody(n *mdast.Node, source []byte) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.Next {
		switch child.Kind {
		case mdast.NodeFenceStart, mdast.NodeFenceLang, mdast.NodeFenceEnd:
			continue
		default:
			sb.WriteString(child.Text(source))
		}
	}
	return strings.TrimSpace(sb.String())
}

// monospace returns body under a single Monospace range.
func monospace(body string) richtext.Text {
	b := richtext.NewBuilder()
	if body != "" {
		b.Scope(richtext.Monospace, func() { b.Append(body) })
	}
	return b.Build()
}

// quoteText renders the blocks inside a blockquote as one italic text,
// separated by blank lines.
func (p *pass) quoteText(n *mdast.Node) richtext.Text {
	b := richtext.NewBuilder()
	b.Scope(richtext.Italic, func() {
		for child := n.FirstChild; child != nil; child = child.Next {
			appendPiece(b, "\n\n", p.containedText(child))
		}
	})
	if b.Len() == 0 {
		return richtext.Text{}
	}
	return b.Build()
}

// containedText renders a block nested in a quote as inline text.
func (p *pass) containedText(n *mdast.Node) richtext.Text {
	switch n.Kind {
	case mdast.NodeParagraph:
		return p.inlineText(n.Children())

	case mdast.NodeHeading:
		if content := mdast.FindChild(n, mdast.NodeHeadingContent); content != nil {
			return p.inlineText(content.Children())
		}

	case mdast.NodeBlockquote:
		return p.quoteText(n)

	case mdast.NodeCodeFence, mdast.NodeCodeBlock:
		return monospace(codeBody(n, p.source))

	case mdast.NodeOrderedList, mdast.NodeUnorderedList:
		b := richtext.NewBuilder()
		for _, item := range p.renderList(n, 0) {
			line := richtext.NewBuilder()
			line.Append(strings.Repeat(" ", item.Indent) + item.Marker + " ")
			line.AppendText(item.Text)
			appendPiece(b, "\n", line.Build())
		}
		return b.Build()

	case mdast.NodeLinkDefinition:
		p.registerDefinition(n)

	default:
		p.skip("skipping quoted node", n)
	}
	return richtext.Text{}
}

// appendPiece appends a non-empty piece, preceded by sep unless b is empty.
func appendPiece(b *richtext.Builder, sep string, piece richtext.Text) {
	if piece.IsEmpty() {
		return
	}
	if b.Len() > 0 {
		b.Append(sep)
	}
	b.AppendText(piece)
}
