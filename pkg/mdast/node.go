package mdast

// NodeKind classifies the type of a tree node.
type NodeKind uint16

// Node kinds. Flow content comes first, then phrasing content.
const (
	NodeRoot NodeKind = iota

	// Flow nodes.
	NodeParagraph
	NodeHeading
	NodeThematicBreak
	NodeBlockquote
	NodeList
	NodeListItem
	NodeHTML
	NodeCode
	NodeDefinition

	// Phrasing nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeInlineCode
	NodeBreak
	NodeLink
	NodeImage
	NodeLinkReference
	NodeImageReference
	NodeDelete
	NodeUnderline
	NodeSpoiler
)

var kindNames = [...]string{
	NodeRoot:           "root",
	NodeParagraph:      "paragraph",
	NodeHeading:        "heading",
	NodeThematicBreak:  "thematicBreak",
	NodeBlockquote:     "blockquote",
	NodeList:           "list",
	NodeListItem:       "listItem",
	NodeHTML:           "html",
	NodeCode:           "code",
	NodeDefinition:     "definition",
	NodeText:           "text",
	NodeEmphasis:       "emphasis",
	NodeStrong:         "strong",
	NodeInlineCode:     "inlineCode",
	NodeBreak:          "break",
	NodeLink:           "link",
	NodeImage:          "image",
	NodeLinkReference:  "linkReference",
	NodeImageReference: "imageReference",
	NodeDelete:         "delete",
	NodeUnderline:      "underline",
	NodeSpoiler:        "spoiler",
}

// String returns the mdast type name of the kind.
func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseNodeKind returns the kind with the given mdast type name.
func ParseNodeKind(name string) (NodeKind, bool) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return NodeKind(kind), true
		}
	}
	return 0, false
}

// Node is a single node of the syntax tree. Which attribute fields are
// meaningful depends on Kind.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Position spans the source the node was compiled from.
	Position Position

	// Value is the literal content of text, inlineCode, code and html.
	Value string

	// Depth is the heading rank, 1 to 6.
	Depth int

	// List attributes. Start is only set for ordered lists.
	Ordered bool
	Start   *int

	// Spread is set on lists and list items separated by blank lines.
	Spread bool

	// Checked is reserved for task list items and stays nil.
	Checked *bool

	// Code fence info string, split at the first whitespace.
	Lang string
	Meta string

	// Resource attributes of links, images and definitions.
	URL   string
	Title string
	Alt   string

	// Reference attributes of references and definitions.
	Identifier    string
	Label         string
	ReferenceType ReferenceType

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot
}

// IsFlow reports whether the node is flow (block) content.
func (n *Node) IsFlow() bool {
	return n.Kind >= NodeParagraph && n.Kind <= NodeDefinition
}

// IsPhrasing reports whether the node is phrasing (inline) content.
func (n *Node) IsPhrasing() bool {
	return n.Kind >= NodeText
}

// IsLiteral reports whether the node carries its content in Value.
func (n *Node) IsLiteral() bool {
	switch n.Kind {
	case NodeText, NodeInlineCode, NodeCode, NodeHTML:
		return true
	default:
		return false
	}
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

// TextContent concatenates the values of all literal descendants.
func (n *Node) TextContent() string {
	if n.IsLiteral() {
		return n.Value
	}
	var out []byte
	for child := n.FirstChild; child != nil; child = child.Next {
		out = append(out, child.TextContent()...)
	}
	return string(out)
}
