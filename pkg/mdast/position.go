package mdast

// Point is a place in the source. Line and Column are 1-based, Column
// counts characters and Offset counts bytes.
type Point struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
	Offset int `json:"offset" yaml:"offset"`
}

// IsValid returns true if this point has valid (positive) values.
func (p Point) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Before reports whether p comes strictly before other.
func (p Point) Before(other Point) bool {
	return p.Offset < other.Offset
}

// Position is the source range of a node; End is exclusive.
type Position struct {
	Start Point `json:"start" yaml:"start"`
	End   Point `json:"end" yaml:"end"`
}

// IsValid returns true if both start and end points are valid.
func (p Position) IsValid() bool {
	return p.Start.IsValid() && p.End.IsValid()
}

// IsSingleLine returns true if start and end are on the same line.
func (p Position) IsSingleLine() bool {
	return p.Start.Line == p.End.Line
}

// Len returns the length of the range in bytes.
func (p Position) Len() int {
	return p.End.Offset - p.Start.Offset
}

// Contains returns true if the given offset is within this range.
func (p Position) Contains(offset int) bool {
	return offset >= p.Start.Offset && offset < p.End.Offset
}

// Source returns the source text for this node.
// Returns nil if the node has no associated file.
func (n *Node) Source() []byte {
	if n.File == nil || !n.Position.IsValid() {
		return nil
	}

	start, end := n.Position.Start.Offset, n.Position.End.Offset
	if start < 0 || end > len(n.File.Content) || start > end {
		return nil
	}

	return n.File.Content[start:end]
}
