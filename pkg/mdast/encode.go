package mdast

import "fmt"

// Encoded is the serialized form of a node, shaped like an mdast object.
type Encoded struct {
	Type          string     `json:"type" yaml:"type"`
	Value         *string    `json:"value,omitempty" yaml:"value,omitempty"`
	Depth         int        `json:"depth,omitempty" yaml:"depth,omitempty"`
	Ordered       *bool      `json:"ordered,omitempty" yaml:"ordered,omitempty"`
	Start         *int       `json:"start,omitempty" yaml:"start,omitempty"`
	Spread        *bool      `json:"spread,omitempty" yaml:"spread,omitempty"`
	Checked       *bool      `json:"checked,omitempty" yaml:"checked,omitempty"`
	Lang          string     `json:"lang,omitempty" yaml:"lang,omitempty"`
	Meta          string     `json:"meta,omitempty" yaml:"meta,omitempty"`
	URL           string     `json:"url,omitempty" yaml:"url,omitempty"`
	Title         string     `json:"title,omitempty" yaml:"title,omitempty"`
	Alt           string     `json:"alt,omitempty" yaml:"alt,omitempty"`
	Identifier    string     `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Label         string     `json:"label,omitempty" yaml:"label,omitempty"`
	ReferenceType string     `json:"referenceType,omitempty" yaml:"referenceType,omitempty"`
	Children      []*Encoded `json:"children,omitempty" yaml:"children,omitempty"`
	Position      *Position  `json:"position,omitempty" yaml:"position,omitempty"`
}

// Encode converts the tree under n. Positions are included when
// withPositions is set.
func Encode(n *Node, withPositions bool) *Encoded {
	if n == nil {
		return nil
	}

	e := &Encoded{
		Type:          n.Kind.String(),
		Depth:         n.Depth,
		Start:         n.Start,
		Checked:       n.Checked,
		Lang:          n.Lang,
		Meta:          n.Meta,
		URL:           n.URL,
		Title:         n.Title,
		Alt:           n.Alt,
		Identifier:    n.Identifier,
		Label:         n.Label,
		ReferenceType: n.ReferenceType.String(),
	}
	if n.IsLiteral() {
		value := n.Value
		e.Value = &value
	}
	switch n.Kind {
	case NodeList:
		ordered, spread := n.Ordered, n.Spread
		e.Ordered, e.Spread = &ordered, &spread
	case NodeListItem:
		spread := n.Spread
		e.Spread = &spread
	default:
	}
	if withPositions {
		pos := n.Position
		e.Position = &pos
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		e.Children = append(e.Children, Encode(child, withPositions))
	}
	return e
}

// Decode rebuilds a tree from its encoded form.
func Decode(e *Encoded) (*Node, error) {
	kind, ok := ParseNodeKind(e.Type)
	if !ok {
		return nil, fmt.Errorf("unknown node type %q", e.Type)
	}

	n := &Node{
		Kind:          kind,
		Depth:         e.Depth,
		Start:         e.Start,
		Checked:       e.Checked,
		Lang:          e.Lang,
		Meta:          e.Meta,
		URL:           e.URL,
		Title:         e.Title,
		Alt:           e.Alt,
		Identifier:    e.Identifier,
		Label:         e.Label,
		ReferenceType: ParseReferenceType(e.ReferenceType),
	}
	if e.Value != nil {
		n.Value = *e.Value
	}
	if e.Ordered != nil {
		n.Ordered = *e.Ordered
	}
	if e.Spread != nil {
		n.Spread = *e.Spread
	}
	if e.Position != nil {
		n.Position = *e.Position
	}
	for _, child := range e.Children {
		c, err := Decode(child)
		if err != nil {
			return nil, err
		}
		AppendChild(n, c)
	}
	return n, nil
}
