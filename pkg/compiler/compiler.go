// Package compiler folds the resolved event stream of the micromark
// tokenizer into a positioned mdast tree.
package compiler

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gomdmark/pkg/mdast"
	"github.com/yaklabco/gomdmark/pkg/micromark"
)

// Handle is called on the enter or exit of a token of a given type.
type Handle func(c *Context, tok *micromark.Token)

// OnExitError is called when a token is exited while a different token is
// open. open is nil when the document ends with closing still open.
type OnExitError func(c *Context, closing, open *micromark.Token)

// Transform rewrites the finished tree. Returning nil keeps the tree.
type Transform func(root *mdast.Node) *mdast.Node

// Extension adds handlers, transforms and line-ending aware node kinds.
// Handlers replace built-in ones for the same token type.
type Extension struct {
	CanContainEols []mdast.NodeKind
	Transforms     []Transform
	Enter          map[micromark.TokenType]Handle
	Exit           map[micromark.TokenType]Handle
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithExtension merges handler extensions into the compiler.
func WithExtension(exts ...Extension) Option {
	return func(c *Compiler) {
		for _, ext := range exts {
			c.configure(ext)
		}
	}
}

// WithTransforms appends tree transforms, run in order after compiling.
func WithTransforms(transforms ...Transform) Option {
	return func(c *Compiler) {
		c.transforms = append(c.transforms, transforms...)
	}
}

// WithOnExitError installs the handler for mismatched exits. Without one,
// a mismatch panics with a *micromark.InvariantError.
func WithOnExitError(fn OnExitError) Option {
	return func(c *Compiler) {
		c.onExitError = fn
	}
}

// WithLogger traces transforms at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// Compiler turns events into trees. It is immutable after New and may be
// shared between goroutines.
type Compiler struct {
	canContainEols []mdast.NodeKind
	transforms     []Transform
	enter          map[micromark.TokenType]Handle
	exit           map[micromark.TokenType]Handle
	onExitError    OnExitError
	logger         *log.Logger
}

// New returns a compiler with the built-in handlers and the given options.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		canContainEols: []mdast.NodeKind{
			mdast.NodeEmphasis,
			mdast.NodeHeading,
			mdast.NodeParagraph,
			mdast.NodeStrong,
			mdast.NodeDelete,
			mdast.NodeUnderline,
			mdast.NodeSpoiler,
		},
		enter: defaultEnter(),
		exit:  defaultExit(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compiler) configure(ext Extension) {
	c.canContainEols = append(c.canContainEols, ext.CanContainEols...)
	c.transforms = append(c.transforms, ext.Transforms...)
	for typ, handle := range ext.Enter {
		c.enter[typ] = handle
	}
	for typ, handle := range ext.Exit {
		c.exit[typ] = handle
	}
}

// Compile builds the tree for a fully postprocessed event stream. The
// events are modified: list items get their own tokens.
func (c *Compiler) Compile(events []micromark.Event) *mdast.Node {
	root := mdast.NewRoot()
	ctx := &Context{
		compiler: c,
		stack:    []frame{{node: root}},
		Data:     map[string]any{},
	}

	events = prepareLists(events)

	for _, ev := range events {
		handlers := c.enter
		if ev.Kind == micromark.EventExit {
			handlers = c.exit
		}
		if handle, ok := handlers[ev.Token.Type]; ok {
			ctx.tokenizer = ev.Context
			handle(ctx, ev.Token)
		}
	}

	if len(ctx.tokenStack) > 0 {
		tail := ctx.tokenStack[len(ctx.tokenStack)-1]
		ctx.exitError(nil, tail)
	}

	if len(events) > 1 {
		root.Position = mdast.Position{
			Start: point(events[0].Token.Start),
			End:   point(events[len(events)-2].Token.End),
		}
	} else {
		start := mdast.Point{Line: 1, Column: 1, Offset: 0}
		root.Position = mdast.Position{Start: start, End: start}
	}

	for _, transform := range c.transforms {
		if next := transform(root); next != nil {
			root = next
		}
	}
	if c.logger != nil {
		c.logger.Debug("compiled", "events", len(events), "nodes", mdast.CountNodes(root))
	}
	return root
}

func (c *Compiler) canContainEol(kind mdast.NodeKind) bool {
	return slices.Contains(c.canContainEols, kind)
}

func point(p micromark.Point) mdast.Point {
	return mdast.Point{Line: p.Line, Column: p.Column, Offset: p.Offset}
}
