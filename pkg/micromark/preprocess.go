package micromark

import (
	"bytes"
	"unicode/utf8"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Preprocessor turns raw input into chunks. It may be fed several times;
// text after the last special character and a trailing carriage return are
// held back until the next call so that multi-byte characters and CRLF
// pairs are never split. A leading byte order mark is dropped even when it
// arrives over several calls.
type Preprocessor struct {
	column           int
	buffer           []byte
	started          bool
	atCarriageReturn bool
}

// NewPreprocessor returns a preprocessor positioned at the start of input.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{column: 1}
}

// Write preprocesses data. When end is true, buffered input is flushed and
// an end-of-input chunk is appended.
func (p *Preprocessor) Write(data []byte, end bool) []Chunk {
	var chunks []Chunk

	value := data
	if len(p.buffer) > 0 {
		value = append(p.buffer, data...)
		p.buffer = nil
	}

	start := 0
	if !p.started {
		// Hold back what could still become a byte order mark.
		if !end && len(value) < len(byteOrderMark) && bytes.HasPrefix(byteOrderMark, value) {
			p.buffer = append([]byte(nil), value...)
			return nil
		}
		if bytes.HasPrefix(value, byteOrderMark) {
			start = len(byteOrderMark)
		}
		p.started = true
	}

	for start < len(value) {
		rel := bytes.IndexAny(value[start:], "\x00\t\n\r")
		if rel < 0 {
			p.buffer = append([]byte(nil), value[start:]...)
			break
		}
		stop := start + rel
		char := value[stop]

		if char == '\n' && start == stop && p.atCarriageReturn {
			chunks = append(chunks, Chunk{Code: CodeCarriageReturnLineFeed})
			p.atCarriageReturn = false
		} else {
			if p.atCarriageReturn {
				chunks = append(chunks, Chunk{Code: CodeCarriageReturn})
				p.atCarriageReturn = false
			}

			if start < stop {
				chunks = append(chunks, Chunk{Text: string(value[start:stop])})
				p.column += utf8.RuneCount(value[start:stop])
			}

			switch char {
			case 0:
				chunks = append(chunks, Chunk{Code: CodeReplacementCharacter})
				p.column++
			case '\t':
				next := ((p.column + tabSize - 1) / tabSize) * tabSize
				chunks = append(chunks, Chunk{Code: CodeHorizontalTab})
				for p.column < next {
					chunks = append(chunks, Chunk{Code: CodeVirtualSpace})
					p.column++
				}
				p.column++
			case '\n':
				chunks = append(chunks, Chunk{Code: CodeLineFeed})
				p.column = 1
			default:
				p.atCarriageReturn = true
				p.column = 1
			}
		}

		start = stop + 1
	}

	if end {
		if p.atCarriageReturn {
			chunks = append(chunks, Chunk{Code: CodeCarriageReturn})
			p.atCarriageReturn = false
		}
		if len(p.buffer) > 0 {
			chunks = append(chunks, Chunk{Text: string(p.buffer)})
			p.buffer = nil
		}
		chunks = append(chunks, Chunk{Code: CodeEOF})
	}

	return chunks
}

// Preprocess preprocesses a complete input in one call.
func Preprocess(data []byte) []Chunk {
	return NewPreprocessor().Write(data, true)
}
