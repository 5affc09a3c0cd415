package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/yaklabco/gomdmark/pkg/mdast"
)

// maxValueLength caps literal values shown in tree labels.
const maxValueLength = 60

// FormatTree renders the tree of a parsed file, one node per line.
func (s *Styles) FormatTree(snapshot *mdast.FileSnapshot, positions bool) string {
	if snapshot == nil || snapshot.Root == nil {
		return ""
	}

	root := s.buildTree(snapshot.Root, positions)
	root.Enumerator(tree.RoundedEnumerator).EnumeratorStyle(s.Branch)
	return root.String() + "\n"
}

func (s *Styles) buildTree(n *mdast.Node, positions bool) *tree.Tree {
	t := tree.Root(s.NodeLabel(n, positions))
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.HasChildren() {
			t.Child(s.buildTree(child, positions))
		} else {
			t.Child(s.NodeLabel(child, positions))
		}
	}
	return t
}

// NodeLabel formats a node's kind, attributes, value and position.
func (s *Styles) NodeLabel(n *mdast.Node, positions bool) string {
	parts := make([]string, 0, 4)

	kind := s.Kind
	switch {
	case n.IsFlow():
		kind = s.Flow
	case n.IsPhrasing():
		kind = s.Phrasing
	}
	parts = append(parts, kind.Render(n.Kind.String()))

	for _, attr := range nodeAttrs(n) {
		parts = append(parts, s.Attr.Render(attr))
	}

	if n.IsLiteral() {
		parts = append(parts, s.Value.Render(quoteValue(n.Value)))
	}

	if positions && n.Position.IsValid() {
		parts = append(parts, s.Position.Render(FormatPosition(n.Position)))
	}

	return strings.Join(parts, " ")
}

// FormatPosition renders a range as start-end in line:column form.
func FormatPosition(pos mdast.Position) string {
	return fmt.Sprintf("(%d:%d-%d:%d)", pos.Start.Line, pos.Start.Column, pos.End.Line, pos.End.Column)
}

func nodeAttrs(n *mdast.Node) []string {
	var attrs []string
	add := func(key, value string) {
		if value != "" {
			attrs = append(attrs, key+"="+value)
		}
	}
	addQuoted := func(key, value string) {
		if value != "" {
			attrs = append(attrs, key+"="+strconv.Quote(value))
		}
	}

	switch n.Kind {
	case mdast.NodeHeading:
		add("depth", strconv.Itoa(n.Depth))
	case mdast.NodeList:
		add("ordered", strconv.FormatBool(n.Ordered))
		if n.Start != nil {
			add("start", strconv.Itoa(*n.Start))
		}
		add("spread", strconv.FormatBool(n.Spread))
	case mdast.NodeListItem:
		add("spread", strconv.FormatBool(n.Spread))
	case mdast.NodeCode:
		add("lang", n.Lang)
		addQuoted("meta", n.Meta)
	case mdast.NodeLink, mdast.NodeImage, mdast.NodeDefinition:
		add("identifier", n.Identifier)
		add("url", strconv.Quote(n.URL))
		addQuoted("title", n.Title)
		if n.Kind == mdast.NodeImage {
			addQuoted("alt", n.Alt)
		}
	case mdast.NodeLinkReference, mdast.NodeImageReference:
		add("identifier", n.Identifier)
		add("type", n.ReferenceType.String())
		if n.Kind == mdast.NodeImageReference {
			addQuoted("alt", n.Alt)
		}
	default:
	}
	return attrs
}

func quoteValue(value string) string {
	runes := []rune(value)
	if len(runes) > maxValueLength {
		return strconv.Quote(string(runes[:maxValueLength])) + "…"
	}
	return strconv.Quote(value)
}
