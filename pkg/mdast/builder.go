package mdast

// NewNode creates a new node of the specified kind.
// The node has no parent, children, or source span.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewSpanNode creates a node covering span.
func NewSpanNode(kind NodeKind, span Span) *Node {
	return &Node{Kind: kind, Span: span}
}

// NewLiteralNode creates a node covering span whose logical text is literal.
func NewLiteralNode(kind NodeKind, span Span, literal []byte) *Node {
	return &Node{Kind: kind, Span: span, Literal: literal}
}

// NewRoot creates a new document root node.
func NewRoot() *Node {
	return NewNode(NodeDocument)
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	// Remove from previous parent if any.
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// InsertBefore inserts newNode before sibling.
// sibling must have a parent.
func InsertBefore(sibling, newNode *Node) {
	if sibling == nil || newNode == nil || sibling.Parent == nil {
		return
	}

	parent := sibling.Parent

	// Remove newNode from its current parent if any.
	if newNode.Parent != nil {
		RemoveChild(newNode.Parent, newNode)
	}

	newNode.Parent = parent
	newNode.Prev = sibling.Prev
	newNode.Next = sibling

	if sibling.Prev != nil {
		sibling.Prev.Next = newNode
	} else {
		parent.FirstChild = newNode
	}

	sibling.Prev = newNode
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// ExtendSpans fills the span of every node that has none with the union of
// its children's spans, bottom-up.
func ExtendSpans(root *Node) {
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	WalkWithContext(root, nil, func(n *Node) error {
		if !n.Span.IsEmpty() {
			return nil
		}
		for child := n.FirstChild; child != nil; child = child.Next {
			n.Span = n.Span.Union(child.Span)
		}
		return nil
	})
}
