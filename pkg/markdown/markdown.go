// Package markdown is the entry point for turning Markdown source into a
// positioned mdast tree. It wires the preprocessor, tokenizer,
// postprocessor and compiler together and converts engine invariant
// violations into errors.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdmark/pkg/compiler"
	"github.com/yaklabco/gomdmark/pkg/fsutil"
	"github.com/yaklabco/gomdmark/pkg/mdast"
	"github.com/yaklabco/gomdmark/pkg/micromark"
)

// ErrClosed is returned when a Stream is used after Close.
var ErrClosed = errors.New("markdown: stream is closed")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Parser parses documents with a fixed set of constructs and handlers.
// It is safe for concurrent use; every parse gets its own tokenizers.
type Parser struct {
	micromark *micromark.Parser
	compiler  *compiler.Compiler
	logger    *log.Logger
}

// NewParser returns a parser configured by opts. Without options it
// recognizes CommonMark plus the underline, strikethrough and spoiler marks.
func NewParser(opts ...Option) *Parser {
	o := newOptions(opts)

	mmOpts := []micromark.Option{micromark.WithExtensions(o.extensions()...)}
	compOpts := []compiler.Option{
		compiler.WithExtension(o.compilerExtensions...),
		compiler.WithTransforms(o.transforms...),
	}
	if o.onExitError != nil {
		compOpts = append(compOpts, compiler.WithOnExitError(o.onExitError))
	}
	if o.logger != nil {
		mmOpts = append(mmOpts, micromark.WithLogger(o.logger))
		compOpts = append(compOpts, compiler.WithLogger(o.logger))
	}

	return &Parser{
		micromark: micromark.NewParser(mmOpts...),
		compiler:  compiler.New(compOpts...),
		logger:    o.logger,
	}
}

// Parse parses content and returns its snapshot. path is informational.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	root, err := p.compile(micromark.Preprocess(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", displayPath(path), err)
	}

	if p.logger != nil {
		p.logger.Debug("parsed", "path", path, "duration", time.Since(start), "nodes", mdast.CountNodes(root))
	}
	return mdast.NewFileSnapshot(path, StripBOM(content), root), nil
}

// ParseFile reads and parses the file at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*mdast.FileSnapshot, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx, path, content)
}

// Events returns the postprocessed event stream for content.
func (p *Parser) Events(ctx context.Context, content []byte) (events []micromark.Event, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer micromark.Recover(&err)

	events = p.micromark.Document().Write(micromark.Preprocess(content))
	return micromark.Postprocess(events), nil
}

func (p *Parser) compile(chunks []micromark.Chunk) (root *mdast.Node, err error) {
	defer micromark.Recover(&err)

	events := p.micromark.Document().Write(chunks)
	events = micromark.Postprocess(events)
	return p.compiler.Compile(events), nil
}

// Parse parses content with a parser built from opts.
func Parse(ctx context.Context, path string, content []byte, opts ...Option) (*mdast.FileSnapshot, error) {
	return NewParser(opts...).Parse(ctx, path, content)
}

// StripBOM removes a leading UTF-8 byte order mark. The preprocessor drops
// the same mark, so node offsets are relative to the stripped content.
func StripBOM(content []byte) []byte {
	return bytes.TrimPrefix(content, byteOrderMark)
}

func displayPath(path string) string {
	if path == "" {
		return "<input>"
	}
	return path
}
