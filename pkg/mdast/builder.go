package mdast

// NewNode returns a detached node of kind.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewText returns a detached text node.
func NewText(value string) *Node {
	return &Node{Kind: NodeText, Value: value}
}

// NewRoot returns an empty root.
func NewRoot() *Node {
	return NewNode(NodeRoot)
}

// splice links n into parent between prev and next, either of which may be
// nil at the ends of the child list. n is detached first.
func splice(parent, prev, next, n *Node) {
	Detach(n)

	n.Parent, n.Prev, n.Next = parent, prev, next
	if prev == nil {
		parent.FirstChild = n
	} else {
		prev.Next = n
	}
	if next == nil {
		parent.LastChild = n
	} else {
		next.Prev = n
	}
}

// unlink clears the tree links of n.
func unlink(n *Node) {
	n.Parent, n.Prev, n.Next = nil, nil, nil
}

// AppendChild makes child the last child of parent, moving it from any
// previous parent.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	splice(parent, parent.LastChild, nil, child)
}

// InsertBefore places n directly before sibling, which must be attached.
func InsertBefore(sibling, n *Node) {
	if sibling == nil || n == nil || sibling.Parent == nil || sibling == n {
		return
	}
	splice(sibling.Parent, sibling.Prev, sibling, n)
}

// InsertAfter places n directly after sibling, which must be attached.
func InsertAfter(sibling, n *Node) {
	if sibling == nil || n == nil || sibling.Parent == nil || sibling == n {
		return
	}
	splice(sibling.Parent, sibling, sibling.Next, n)
}

// Detach removes n from its parent. Detached nodes are left alone.
func Detach(n *Node) {
	if n == nil || n.Parent == nil {
		return
	}
	parent := n.Parent
	if n.Prev == nil {
		parent.FirstChild = n.Next
	} else {
		n.Prev.Next = n.Next
	}
	if n.Next == nil {
		parent.LastChild = n.Prev
	} else {
		n.Next.Prev = n.Prev
	}
	unlink(n)
}

// RemoveChild detaches child if parent is its parent.
func RemoveChild(parent, child *Node) {
	if parent != nil && child != nil && child.Parent == parent {
		Detach(child)
	}
}

// ReplaceChild puts n where old was under parent and detaches old.
func ReplaceChild(parent, old, n *Node) {
	if parent == nil || old == nil || n == nil || old.Parent != parent || old == n {
		return
	}
	InsertBefore(old, n)
	Detach(old)
}

// SetFile points every node under root at file.
func SetFile(root *Node, file *FileSnapshot) {
	Inspect(root, func(n *Node) bool {
		n.File = file
		return true
	})
}

// Clone deep-copies the subtree at n. The copy is detached and has no file.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}

	cp := *n
	unlink(&cp)
	cp.FirstChild, cp.LastChild, cp.File = nil, nil, nil
	if n.Start != nil {
		start := *n.Start
		cp.Start = &start
	}
	if n.Checked != nil {
		checked := *n.Checked
		cp.Checked = &checked
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		AppendChild(&cp, Clone(child))
	}
	return &cp
}
