package mdast

// BlockAttrs holds attributes for block-level nodes.
type BlockAttrs struct {
	// HeadingLevel is the heading level (1-6) for NodeHeading.
	HeadingLevel int

	// List holds list-specific attributes for NodeOrderedList and NodeUnorderedList.
	List *ListAttrs

	// Code holds code block attributes for NodeCodeFence and NodeCodeBlock.
	Code *CodeAttrs
}

// ListAttrs holds attributes for list nodes.
type ListAttrs struct {
	// Marker is the bullet character ('-', '+', '*') for unordered lists
	// or the delimiter ('.' or ')') for ordered lists.
	Marker byte

	// Start is the starting number for ordered lists.
	Start int

	// Tight is true if this is a tight list (no blank lines between items).
	Tight bool
}

// CodeAttrs holds attributes for code block nodes.
type CodeAttrs struct {
	// FenceChar is the fence character ('`' or '~'). Zero for indented blocks.
	FenceChar byte

	// FenceLength is the number of fence characters.
	FenceLength int

	// Info is the full info string.
	Info string

	// Closed is false when a fence runs to the end of its container.
	Closed bool
}

// InlineAttrs holds attributes for inline-level nodes.
type InlineAttrs struct {
	// Link holds link attributes for link, image and autolink nodes.
	Link *LinkAttrs

	// Checked is the state of a NodeTaskCheckBox.
	Checked bool
}

// ReferenceStyle indicates the syntax style of a link or image reference.
type ReferenceStyle uint8

const (
	// RefStyleInline represents inline links: [text](url) or ![alt](url).
	RefStyleInline ReferenceStyle = iota

	// RefStyleFull represents full reference links: [text][label] or ![alt][label].
	RefStyleFull

	// RefStyleCollapsed represents collapsed reference links: [label][] or ![label][].
	RefStyleCollapsed

	// RefStyleShortcut represents shortcut reference links: [label] or ![label].
	RefStyleShortcut

	// RefStyleAutolink represents autolinks: <https://example.com>.
	RefStyleAutolink
)

// String returns a human-readable name for the reference style.
func (s ReferenceStyle) String() string {
	switch s {
	case RefStyleInline:
		return "inline"
	case RefStyleFull:
		return "full"
	case RefStyleCollapsed:
		return "collapsed"
	case RefStyleShortcut:
		return "shortcut"
	case RefStyleAutolink:
		return "autolink"
	default:
		return "unknown"
	}
}

// LinkAttrs holds attributes for link-like nodes.
type LinkAttrs struct {
	// Title is the optional link title.
	Title string

	// ReferenceStyle indicates the syntax style used.
	ReferenceStyle ReferenceStyle

	// Email is true for email autolinks (<user@example.com>).
	Email bool
}

// NewBlockAttrs creates a new BlockAttrs with default values.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// NewInlineAttrs creates a new InlineAttrs with default values.
func NewInlineAttrs() *InlineAttrs {
	return &InlineAttrs{}
}

// WithHeadingLevel sets the heading level and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

// WithList sets list attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

// WithCode sets code block attributes and returns the BlockAttrs for chaining.
func (a *BlockAttrs) WithCode(attrs *CodeAttrs) *BlockAttrs {
	a.Code = attrs
	return a
}

// WithLink sets link attributes and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithLink(attrs *LinkAttrs) *InlineAttrs {
	a.Link = attrs
	return a
}

// WithChecked sets the checkbox state and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithChecked(checked bool) *InlineAttrs {
	a.Checked = checked
	return a
}
