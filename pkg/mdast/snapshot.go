// Package mdast provides the positioned Markdown syntax tree produced by
// the compiler:
// - FileSnapshot: the source and its line index
// - Node: a tree node with its kind, attributes and source position
package mdast

// FileSnapshot is the result of parsing one Markdown file.
// It holds the raw content, line metadata and the tree root.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the tree root node (root).
	Root *Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where the line ending begins.
	// For lines without a line ending (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the line ending (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a FileSnapshot from content and attaches root.
func NewFileSnapshot(path string, content []byte, root *Node) *FileSnapshot {
	f := &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
	if root != nil {
		f.Root = root
		SetFile(root, f)
	}
	return f
}
