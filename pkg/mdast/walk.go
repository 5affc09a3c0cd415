package mdast

import "errors"

// SkipChildren may be returned by an enter callback to leave the node's
// children unvisited. The exit callback still runs for the node.
var SkipChildren = errors.New("skip children") //nolint:errname // Mirrors fs.SkipDir.

// Visitor is called on nodes during a walk. A non-nil error other than
// SkipChildren ends the walk.
type Visitor func(n *Node) error

// Walk visits the tree under root in document order, calling enter before
// a node's children and exit after them. Either callback may be nil.
func Walk(root *Node, enter, exit Visitor) error {
	if root == nil {
		return nil
	}

	descend := true
	if enter != nil {
		switch err := enter(root); {
		case errors.Is(err, SkipChildren):
			descend = false
		case err != nil:
			return err
		}
	}

	if descend {
		for child := root.FirstChild; child != nil; {
			next := child.Next
			if err := Walk(child, enter, exit); err != nil {
				return err
			}
			child = next
		}
	}

	if exit != nil {
		return exit(root)
	}
	return nil
}

// Inspect visits the tree under root in document order. It descends into
// a node's children only while fn returns true. fn may detach the node it
// is given.
func Inspect(root *Node, fn func(n *Node) bool) {
	_ = Walk(root, func(n *Node) error {
		if fn(n) {
			return nil
		}
		return SkipChildren
	}, nil)
}

// Ancestors returns the parents of n, nearest first.
func Ancestors(n *Node) []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// FindAll returns the nodes under root, root included, that match.
func FindAll(root *Node, match func(n *Node) bool) []*Node {
	var found []*Node
	Inspect(root, func(n *Node) bool {
		if match(n) {
			found = append(found, n)
		}
		return true
	})
	return found
}

var errFound = errors.New("found")

// FindFirst returns the first matching node in document order, or nil.
func FindFirst(root *Node, match func(n *Node) bool) *Node {
	var found *Node
	_ = Walk(root, func(n *Node) error {
		if match(n) {
			found = n
			return errFound
		}
		return nil
	}, nil)
	return found
}

// FindByKind returns every node of kind under root.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}

// CountNodes counts root and its descendants.
func CountNodes(root *Node) int {
	n := 0
	Inspect(root, func(*Node) bool {
		n++
		return true
	})
	return n
}
