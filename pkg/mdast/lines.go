package mdast

import (
	"sort"
	"unicode/utf8"
)

// BuildLines indexes the lines of content. "\n", "\r\n" and a lone "\r"
// each end a line, and the text after the last ending is always one more
// line, possibly empty. Empty content has no lines.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var out []LineInfo
	start := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			out = append(out, LineInfo{StartOffset: start, NewlineStart: i, EndOffset: i + 1})
		case '\r':
			end := i + 1
			if end < len(content) && content[end] == '\n' {
				end++
			}
			out = append(out, LineInfo{StartOffset: start, NewlineStart: i, EndOffset: end})
			i = end - 1
		default:
			continue
		}
		start = out[len(out)-1].EndOffset
	}
	return append(out, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
}

// LineCount is the number of indexed lines.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// lineIndex returns the index of the line holding offset. The end of the
// content belongs to the last line.
func (f *FileSnapshot) lineIndex(offset int) int {
	idx := sort.Search(len(f.Lines), func(i int) bool { return f.Lines[i].EndOffset > offset })
	return min(idx, len(f.Lines)-1)
}

// LineAt maps a byte offset to a 1-based line and character column, the
// way tree positions count. Offsets outside the content give (0, 0).
func (f *FileSnapshot) LineAt(offset int) (line, column int) {
	if len(f.Lines) == 0 || offset < 0 || offset > len(f.Content) {
		return 0, 0
	}
	idx := f.lineIndex(offset)
	start := f.Lines[idx].StartOffset
	if offset < start {
		return 0, 0
	}
	return idx + 1, utf8.RuneCount(f.Content[start:offset]) + 1
}

// PointAt is LineAt as a Point. Out of range offsets give the zero Point.
func (f *FileSnapshot) PointAt(offset int) Point {
	line, column := f.LineAt(offset)
	if line == 0 {
		return Point{}
	}
	return Point{Line: line, Column: column, Offset: offset}
}

// Offset maps a 1-based line and character column back to a byte offset.
// The column just past the line's last character is valid; anything
// further, or a line that does not exist, reports false.
func (f *FileSnapshot) Offset(line, column int) (int, bool) {
	if line < 1 || line > len(f.Lines) || column < 1 {
		return 0, false
	}
	info := f.Lines[line-1]
	offset := info.StartOffset
	for n := 1; n < column; n++ {
		if offset >= info.NewlineStart {
			return 0, false
		}
		_, size := utf8.DecodeRune(f.Content[offset:info.NewlineStart])
		offset += size
	}
	return offset, true
}

// LineContent returns line (1-based) without its ending, or nil when the
// line does not exist.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}
