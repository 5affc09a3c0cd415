package mdast_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmark/pkg/mdast"
)

func line(start, newline, end int) mdast.LineInfo {
	return mdast.LineInfo{StartOffset: start, NewlineStart: newline, EndOffset: end}
}

func TestBuildLines_LineEndings(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		src  string
		want []mdast.LineInfo
	}{
		"empty document":   {"", []mdast.LineInfo{}},
		"heading only":     {"# Title", []mdast.LineInfo{line(0, 7, 7)}},
		"unix paragraph":   {"one\ntwo\n", []mdast.LineInfo{line(0, 3, 4), line(4, 7, 8), line(8, 8, 8)}},
		"windows list":     {"- a\r\n- b", []mdast.LineInfo{line(0, 3, 5), line(5, 8, 8)}},
		"classic mac":      {"> q\r> r", []mdast.LineInfo{line(0, 3, 4), line(4, 7, 7)}},
		"mixed endings":    {"a\rb\nc\r\n", []mdast.LineInfo{line(0, 1, 2), line(2, 3, 4), line(4, 5, 7), line(7, 7, 7)}},
		"blank lines only": {"\n\n", []mdast.LineInfo{line(0, 0, 1), line(1, 1, 2), line(2, 2, 2)}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, mdast.BuildLines([]byte(tc.src)))
		})
	}
}

func TestFileSnapshot_LineAtCountsCharacters(t *testing.T) {
	t.Parallel()

	// "ü" and "→" are multi-byte; columns count characters.
	snap := mdast.NewFileSnapshot("notes.md", []byte("# Über\n\n→ *x*"), nil)

	cases := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 1, 4},
		{7, 1, 7},
		{8, 2, 1},
		{9, 3, 1},
		{12, 3, 2},
		{16, 3, 6},
		{-1, 0, 0},
		{17, 0, 0},
	}

	for _, tc := range cases {
		gotLine, gotCol := snap.LineAt(tc.offset)
		assert.Equal(t, tc.line, gotLine, "line of offset %d", tc.offset)
		assert.Equal(t, tc.col, gotCol, "column of offset %d", tc.offset)
	}
}

func TestFileSnapshot_PointAt(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("notes.md", []byte("# Über\n\n→ *x*"), nil)

	assert.Equal(t, mdast.Point{Line: 3, Column: 3, Offset: 13}, snap.PointAt(13))
	assert.False(t, snap.PointAt(99).IsValid())
}

func TestFileSnapshot_Offset(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("notes.md", []byte("# Über\n\n→ *x*"), nil)

	offset, ok := snap.Offset(1, 4)
	require.True(t, ok)
	assert.Equal(t, 4, offset)

	offset, ok = snap.Offset(3, 6)
	require.True(t, ok)
	assert.Equal(t, 16, offset, "one past the last character")

	for _, pos := range [][2]int{{0, 1}, {4, 1}, {1, 0}, {2, 2}, {1, 9}} {
		_, ok := snap.Offset(pos[0], pos[1])
		assert.False(t, ok, "line %d column %d", pos[0], pos[1])
	}
}

func TestFileSnapshot_OffsetInvertsLineAt(t *testing.T) {
	t.Parallel()

	src := "Setext\n======\r\n\n  - ä\n"
	snap := mdast.NewFileSnapshot("setext.md", []byte(src), nil)

	for offset := 0; offset <= len(src); offset++ {
		if offset < len(src) && (!utf8.RuneStart(src[offset]) || src[offset] == '\n' && offset > 0 && src[offset-1] == '\r') {
			// Inside a character or a CRLF pair.
			continue
		}
		ln, col := snap.LineAt(offset)
		got, ok := snap.Offset(ln, col)
		if assert.True(t, ok, "offset %d", offset) {
			assert.Equal(t, offset, got, "offset %d -> %d:%d", offset, ln, col)
		}
	}
}

func TestFileSnapshot_LineContentDropsEndings(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("crlf.md", []byte("```go\r\nx := 1\r\n```"), nil)

	require.Equal(t, 3, snap.LineCount())
	assert.Equal(t, "```go", string(snap.LineContent(1)))
	assert.Equal(t, "x := 1", string(snap.LineContent(2)))
	assert.Equal(t, "```", string(snap.LineContent(3)))
	assert.Nil(t, snap.LineContent(0))
	assert.Nil(t, snap.LineContent(4))
}
