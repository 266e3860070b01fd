package mdast

// NodeKind classifies the type of a syntax tree node.
type NodeKind uint16

// Node kinds for block-level, inline-level and punctuation nodes.
// The set is closed: parsers map anything they cannot classify to NodeUnknown.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeHeadingContent
	NodeBlockquote
	NodeOrderedList
	NodeUnorderedList
	NodeListItem
	NodeListBullet
	NodeListNumber
	NodeCodeFence
	NodeFenceStart
	NodeFenceLang
	NodeFenceEnd
	NodeCodeLine
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeLinkDefinition
	NodeTable
	NodeTableRow
	NodeTableCell

	// Inline-level nodes.
	NodeText
	NodeWhitespace
	NodeEOL
	NodeHardLineBreak
	NodeEmphasis
	NodeStrong
	NodeStrikethrough
	NodeCodeSpan
	NodeImage
	NodeAutolink
	NodeGFMAutolink
	NodeInlineLink
	NodeShortReferenceLink
	NodeFullReferenceLink
	NodeLinkText
	NodeLinkDestination
	NodeLinkLabel
	NodeLinkTitle
	NodeTaskCheckBox
	NodeHTMLInline

	// Punctuation literals.
	NodeSingleQuote
	NodeDoubleQuote
	NodeLParen
	NodeRParen
	NodeLBracket
	NodeRBracket
	NodeLT
	NodeGT
	NodeColon
	NodeExclamationMark
	NodeBacktick

	// Fallback for unrecognized content.
	NodeUnknown
)

var kindNames = map[NodeKind]string{
	NodeDocument:           "Document",
	NodeParagraph:          "Paragraph",
	NodeHeading:            "Heading",
	NodeHeadingContent:     "HeadingContent",
	NodeBlockquote:         "Blockquote",
	NodeOrderedList:        "OrderedList",
	NodeUnorderedList:      "UnorderedList",
	NodeListItem:           "ListItem",
	NodeListBullet:         "ListBullet",
	NodeListNumber:         "ListNumber",
	NodeCodeFence:          "CodeFence",
	NodeFenceStart:         "FenceStart",
	NodeFenceLang:          "FenceLang",
	NodeFenceEnd:           "FenceEnd",
	NodeCodeLine:           "CodeLine",
	NodeCodeBlock:          "CodeBlock",
	NodeThematicBreak:      "ThematicBreak",
	NodeHTMLBlock:          "HTMLBlock",
	NodeLinkDefinition:     "LinkDefinition",
	NodeTable:              "Table",
	NodeTableRow:           "TableRow",
	NodeTableCell:          "TableCell",
	NodeText:               "Text",
	NodeWhitespace:         "Whitespace",
	NodeEOL:                "EOL",
	NodeHardLineBreak:      "HardLineBreak",
	NodeEmphasis:           "Emphasis",
	NodeStrong:             "Strong",
	NodeStrikethrough:      "Strikethrough",
	NodeCodeSpan:           "CodeSpan",
	NodeImage:              "Image",
	NodeAutolink:           "Autolink",
	NodeGFMAutolink:        "GFMAutolink",
	NodeInlineLink:         "InlineLink",
	NodeShortReferenceLink: "ShortReferenceLink",
	NodeFullReferenceLink:  "FullReferenceLink",
	NodeLinkText:           "LinkText",
	NodeLinkDestination:    "LinkDestination",
	NodeLinkLabel:          "LinkLabel",
	NodeLinkTitle:          "LinkTitle",
	NodeTaskCheckBox:       "TaskCheckBox",
	NodeHTMLInline:         "HTMLInline",
	NodeSingleQuote:        "SingleQuote",
	NodeDoubleQuote:        "DoubleQuote",
	NodeLParen:             "LParen",
	NodeRParen:             "RParen",
	NodeLBracket:           "LBracket",
	NodeRBracket:           "RBracket",
	NodeLT:                 "LT",
	NodeGT:                 "GT",
	NodeColon:              "Colon",
	NodeExclamationMark:    "ExclamationMark",
	NodeBacktick:           "Backtick",
	NodeUnknown:            "Unknown",
}

// String returns the kind name without the Node prefix.
func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "NodeKind(?)"
}

// punctuationGlyphs maps punctuation kinds to the character they stand for.
var punctuationGlyphs = map[NodeKind]string{
	NodeSingleQuote:     "'",
	NodeDoubleQuote:     `"`,
	NodeLParen:          "(",
	NodeRParen:          ")",
	NodeLBracket:        "[",
	NodeRBracket:        "]",
	NodeLT:              "<",
	NodeGT:              ">",
	NodeColon:           ":",
	NodeExclamationMark: "!",
	NodeBacktick:        "`",
}

// Glyph returns the literal character for a punctuation kind.
// The second result is false for non-punctuation kinds.
func (k NodeKind) Glyph() (string, bool) {
	glyph, ok := punctuationGlyphs[k]
	return glyph, ok
}

// PunctuationKind returns the punctuation kind for a single byte, or
// NodeUnknown if the byte has no dedicated kind.
func PunctuationKind(b byte) NodeKind {
	switch b {
	case '\'':
		return NodeSingleQuote
	case '"':
		return NodeDoubleQuote
	case '(':
		return NodeLParen
	case ')':
		return NodeRParen
	case '[':
		return NodeLBracket
	case ']':
		return NodeRBracket
	case '<':
		return NodeLT
	case '>':
		return NodeGT
	case ':':
		return NodeColon
	case '!':
		return NodeExclamationMark
	case '`':
		return NodeBacktick
	default:
		return NodeUnknown
	}
}

// Node represents a single node in the Markdown syntax tree.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Span is the byte range of the node in Document.Source.
	// Synthetic nodes have an empty span.
	Span Span

	// Literal overrides the raw span text when the logical text differs
	// from the source bytes (escapes, entities, synthesized markers).
	Literal []byte

	// Block holds attributes for block-level nodes.
	Block *BlockAttrs

	// Inline holds attributes for inline-level nodes.
	Inline *InlineAttrs
}

// IsPunctuation returns true if this is a punctuation literal node.
func (n *Node) IsPunctuation() bool {
	return n.Kind >= NodeSingleQuote && n.Kind <= NodeBacktick
}

// IsList returns true for ordered and unordered lists.
func (n *Node) IsList() bool {
	return n.Kind == NodeOrderedList || n.Kind == NodeUnorderedList
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Raw returns the source bytes covered by the node's span.
// It returns nil when the span does not fit the source.
func (n *Node) Raw(source []byte) []byte {
	if n.Span.Start < 0 || n.Span.End > len(source) || n.Span.Start > n.Span.End {
		return nil
	}
	return source[n.Span.Start:n.Span.End]
}

// Text returns the logical text of the node: Literal when set,
// otherwise the raw span.
func (n *Node) Text(source []byte) string {
	if n.Literal != nil {
		return string(n.Literal)
	}
	return string(n.Raw(source))
}

// HeadingLevel returns the heading level, or 0 for non-heading nodes.
func (n *Node) HeadingLevel() int {
	if n.Kind != NodeHeading || n.Block == nil {
		return 0
	}
	return n.Block.HeadingLevel
}
