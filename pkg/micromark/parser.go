package micromark

import (
	"slices"

	"github.com/charmbracelet/log"
)

// Parser holds the merged construct tables. It is immutable after
// construction and safe to share between goroutines; every document gets
// its own tokenizers and bookkeeping.
type Parser struct {
	constructs Extension
	disable    map[string]bool
	logger     *log.Logger
}

// Option configures a Parser.
type Option func(*Parser, *[]Extension)

// WithExtensions adds construct tables on top of the built-in grammar.
func WithExtensions(exts ...Extension) Option {
	return func(_ *Parser, list *[]Extension) {
		*list = append(*list, exts...)
	}
}

// WithLogger traces construct attempts at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser, _ *[]Extension) {
		p.logger = logger
	}
}

// NewParser merges the built-in constructs with any extensions.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	exts := []Extension{defaultConstructs()}
	for _, opt := range opts {
		opt(p, &exts)
	}

	p.constructs = combineExtensions(exts)
	p.disable = make(map[string]bool, len(p.constructs.Disable))
	for _, name := range p.constructs.Disable {
		p.disable[name] = true
	}
	return p
}

// Constructs returns the merged construct tables.
func (p *Parser) Constructs() Extension {
	return p.constructs
}

func (p *Parser) disabled(name string) bool {
	return p.disable[name]
}

// Document returns a tokenizer for a new document. Chunks written to it
// are tokenized with the document grammar.
func (p *Parser) Document() *Tokenizer {
	s := &session{
		parser:  p,
		defined: map[string]bool{},
		lazy:    map[int]bool{},
	}
	return s.create(&documentInitializer, nil)
}

// session is the bookkeeping shared by all tokenizers of one document.
type session struct {
	parser  *Parser
	defined map[string]bool
	lazy    map[int]bool
}

func (s *session) create(initial *Initializer, from *Point) *Tokenizer {
	return newTokenizer(s, initial, from)
}

func (s *session) forContentType(ct ContentType, from Point) *Tokenizer {
	switch ct {
	case ContentTypeFlow:
		return s.create(&flowInitializer, &from)
	case ContentTypeContent:
		return s.create(&contentInitializer, &from)
	case ContentTypeString:
		return s.create(&stringInitializer, &from)
	case ContentTypeText:
		return s.create(&textInitializer, &from)
	default:
		panic(&InvariantError{Message: "unknown content type", Point: from})
	}
}

func (t *Tokenizer) constructs() *Extension {
	return &t.session.parser.constructs
}

// tabSizeLimit bounds container line prefixes unless indented code is off.
func (t *Tokenizer) tabSizeLimit() int {
	if t.session.parser.disabled("codeIndented") {
		return 0
	}
	return tabSize
}

func (t *Tokenizer) attentionMarker(code Code) bool {
	return slices.Contains(t.constructs().AttentionMarkers, code)
}
