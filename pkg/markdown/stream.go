package markdown

import (
	"bytes"
	"fmt"

	"github.com/yaklabco/gomdmark/pkg/mdast"
	"github.com/yaklabco/gomdmark/pkg/micromark"
)

// Stream parses a document that arrives in pieces. Write feeds input as it
// becomes available; Close ends the input and returns the tree.
type Stream struct {
	parser       *Parser
	path         string
	preprocessor *micromark.Preprocessor
	tokenizer    *micromark.Tokenizer
	content      bytes.Buffer
	closed       bool
	err          error
}

// Stream starts an incremental parse of the document at path.
func (p *Parser) Stream(path string) *Stream {
	return &Stream{
		parser:       p,
		path:         path,
		preprocessor: micromark.NewPreprocessor(),
		tokenizer:    p.micromark.Document(),
	}
}

// Write tokenizes data as far as possible. It implements io.Writer.
func (s *Stream) Write(data []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.err != nil {
		return 0, s.err
	}

	s.content.Write(data)
	if err := s.write(s.preprocessor.Write(data, false)); err != nil {
		s.err = fmt.Errorf("parse %s: %w", displayPath(s.path), err)
		return 0, s.err
	}
	return len(data), nil
}

func (s *Stream) write(chunks []micromark.Chunk) (err error) {
	defer micromark.Recover(&err)
	s.tokenizer.Write(chunks)
	return nil
}

// Close ends the input and compiles the document.
func (s *Stream) Close() (*mdast.FileSnapshot, error) {
	if s.closed {
		return nil, ErrClosed
	}
	s.closed = true
	if s.err != nil {
		return nil, s.err
	}

	root, err := s.finish(s.preprocessor.Write(nil, true))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", displayPath(s.path), err)
	}

	content := StripBOM(s.content.Bytes())
	return mdast.NewFileSnapshot(s.path, content, root), nil
}

func (s *Stream) finish(chunks []micromark.Chunk) (root *mdast.Node, err error) {
	defer micromark.Recover(&err)

	events := micromark.Postprocess(s.tokenizer.Write(chunks))
	return s.parser.compiler.Compile(events), nil
}
