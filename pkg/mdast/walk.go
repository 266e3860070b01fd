package mdast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the AST starting at root.
// The callback walkFunc is called for each node. If walkFunc returns a non-nil error,
// the walk stops immediately and returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	// Visit the current node.
	if err := walkFunc(root); err != nil {
		return err
	}

	// Visit children.
	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkContextFunc is the function signature for WalkWithContext callbacks.
// The enter callback is called before visiting children.
// The leave callback is called after visiting children.
// Return a non-nil error from either to stop the walk.
type WalkContextFunc func(n *Node) error

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkContextFunc) error {
	if root == nil {
		return nil
	}

	// Enter the current node.
	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	// Visit children.
	for child := root.FirstChild; child != nil; child = child.Next {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	// Leave the current node.
	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(node *Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindDescendant returns the first node of kind below n in pre-order,
// excluding n itself.
func FindDescendant(n *Node, kind NodeKind) *Node {
	for child := n.FirstChild; child != nil; child = child.Next {
		if found := FindFirst(child, func(c *Node) bool { return c.Kind == kind }); found != nil {
			return found
		}
	}
	return nil
}

// FindChild returns the first direct child of kind, or nil.
func FindChild(n *Node, kind NodeKind) *Node {
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// HasAncestor reports whether any ancestor of n has the given kind.
func HasAncestor(n *Node, kind NodeKind) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return true
		}
	}
	return false
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
