package micromark_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdmark/pkg/micromark"
)

func text(s string) micromark.Chunk { return micromark.Chunk{Text: s} }

func code(c micromark.Code) micromark.Chunk { return micromark.Chunk{Code: c} }

func TestPreprocess(t *testing.T) {
	t.Parallel()

	eof := code(micromark.CodeEOF)
	ht := code(micromark.CodeHorizontalTab)
	vs := code(micromark.CodeVirtualSpace)

	tests := []struct {
		name  string
		input string
		want  []micromark.Chunk
	}{
		{"empty", "", []micromark.Chunk{eof}},
		{"text", "abc", []micromark.Chunk{text("abc"), eof}},
		{"line feed", "a\nb", []micromark.Chunk{text("a"), code(micromark.CodeLineFeed), text("b"), eof}},
		{"crlf", "a\r\nb", []micromark.Chunk{text("a"), code(micromark.CodeCarriageReturnLineFeed), text("b"), eof}},
		{"lone cr", "a\rb", []micromark.Chunk{text("a"), code(micromark.CodeCarriageReturn), text("b"), eof}},
		{"trailing cr", "a\r", []micromark.Chunk{text("a"), code(micromark.CodeCarriageReturn), eof}},
		{"tab at start", "\tx", []micromark.Chunk{ht, vs, vs, vs, text("x"), eof}},
		{"tab after text", "a\tb", []micromark.Chunk{text("a"), ht, vs, vs, text("b"), eof}},
		{"tab at stop", "abc\td", []micromark.Chunk{text("abc"), ht, text("d"), eof}},
		{"tab columns count runes", "é\tb", []micromark.Chunk{text("é"), ht, vs, vs, text("b"), eof}},
		{"nul", "a\x00", []micromark.Chunk{text("a"), code(micromark.CodeReplacementCharacter), eof}},
		{"byte order mark", "\xEF\xBB\xBFa", []micromark.Chunk{text("a"), eof}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, micromark.Preprocess([]byte(tt.input)))
		})
	}
}

func TestPreprocessor_SplitCRLF(t *testing.T) {
	t.Parallel()

	p := micromark.NewPreprocessor()

	assert.Equal(t, []micromark.Chunk{text("a")}, p.Write([]byte("a\r"), false))
	assert.Equal(t,
		[]micromark.Chunk{code(micromark.CodeCarriageReturnLineFeed), text("b"), code(micromark.CodeEOF)},
		p.Write([]byte("\nb"), true))
}

func TestPreprocessor_SplitRune(t *testing.T) {
	t.Parallel()

	p := micromark.NewPreprocessor()

	assert.Empty(t, p.Write([]byte{0xC3}, false))
	assert.Equal(t, []micromark.Chunk{text("é"), code(micromark.CodeEOF)}, p.Write([]byte{0xA9}, true))
}

func TestPreprocessor_ByteOrderMarkAcrossWrites(t *testing.T) {
	t.Parallel()

	bom := "\xEF\xBB\xBF"
	want := micromark.Preprocess([]byte(bom + "# hi\n"))

	for split := 0; split <= len(bom)+1; split++ {
		p := micromark.NewPreprocessor()
		chunks := p.Write([]byte(""), false)
		chunks = append(chunks, p.Write([]byte((bom + "# hi\n")[:split]), false)...)
		chunks = append(chunks, p.Write([]byte((bom + "# hi\n")[split:]), true)...)
		assert.Equal(t, want, chunks, "split at %d", split)
	}

	// A lone first byte of a mark at the end of input is text.
	p := micromark.NewPreprocessor()
	assert.Empty(t, p.Write([]byte{0xEF}, false))
	assert.Equal(t, micromark.Preprocess([]byte{0xEF}), p.Write(nil, true))
}

func TestPreprocessor_TabAcrossWrites(t *testing.T) {
	t.Parallel()

	p := micromark.NewPreprocessor()
	chunks := p.Write([]byte("ab"), false)
	chunks = append(chunks, p.Write([]byte("\tc"), true)...)

	assert.Equal(t, micromark.Preprocess([]byte("ab\tc")), chunks)
}

func FuzzPreprocess(f *testing.F) {
	f.Add([]byte("a\r\nb"), 2)
	f.Add([]byte("\tx\ty\r"), 1)
	f.Add([]byte("héllo\x00wörld"), 2)
	f.Add([]byte("line\n\n  \tcode"), 6)
	f.Add([]byte("\xEF\xBB\xBF# hi"), 2)

	f.Fuzz(func(t *testing.T, data []byte, split int) {
		if split < 0 || split > len(data) {
			split = len(data) / 2
		}

		p := micromark.NewPreprocessor()
		chunks := p.Write(bytes.Clone(data[:split]), false)
		chunks = append(chunks, p.Write(bytes.Clone(data[split:]), true)...)

		assert.Equal(t, micromark.Preprocess(data), chunks)
	})
}
