package compiler

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdmark/pkg/mdast"
	"github.com/yaklabco/gomdmark/pkg/micromark"
)

type frame struct {
	node *mdast.Node
	// fragment frames collect content for Resume instead of the tree.
	fragment bool
}

type openToken struct {
	tok     *micromark.Token
	onError OnExitError
}

// Context is the state of one compilation, passed to every handler.
type Context struct {
	compiler   *Compiler
	tokenizer  *micromark.Tokenizer
	stack      []frame
	tokenStack []openToken

	// Data is free for extension handlers.
	Data map[string]any

	expectingFirstListItemValue  bool
	flowCodeInside               bool
	setextHeadingSlurpLineEnding bool
	atHardBreak                  bool
	inReference                  bool
	referenceType                mdast.ReferenceType
	characterReferenceType       micromark.TokenType
}

// Current returns the node on top of the stack.
func (c *Context) Current() *mdast.Node {
	return c.stack[len(c.stack)-1].node
}

// parent returns the node below the top of the stack.
func (c *Context) parent() *mdast.Node {
	if len(c.stack) < 2 {
		return nil
	}
	return c.stack[len(c.stack)-2].node
}

func (c *Context) inFragment() bool {
	return c.stack[len(c.stack)-1].fragment
}

// SliceSerialize returns the source of tok.
func (c *Context) SliceSerialize(tok *micromark.Token) string {
	return c.tokenizer.SliceSerialize(tok, false)
}

// Enter appends node to the current node, makes it current and opens its
// position at tok.
func (c *Context) Enter(node *mdast.Node, tok *micromark.Token) {
	c.EnterWithError(node, tok, nil)
}

// EnterWithError is Enter with a handler for a mismatched exit of tok.
func (c *Context) EnterWithError(node *mdast.Node, tok *micromark.Token, onError OnExitError) {
	mdast.AppendChild(c.Current(), node)
	c.stack = append(c.stack, frame{node: node})
	c.tokenStack = append(c.tokenStack, openToken{tok: tok, onError: onError})
	node.Position.Start = point(tok.Start)
}

// Exit closes the current node at tok.
func (c *Context) Exit(tok *micromark.Token) {
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]

	if len(c.tokenStack) == 0 {
		panic(&micromark.InvariantError{
			Message:   fmt.Sprintf("cannot close `%s` (%s): it is not open", tok.Type, span(tok)),
			TokenType: tok.Type,
			Point:     tok.Start,
		})
	}
	open := c.tokenStack[len(c.tokenStack)-1]
	c.tokenStack = c.tokenStack[:len(c.tokenStack)-1]
	if open.tok.Type != tok.Type {
		c.exitError(tok, open)
	}

	if top.fragment {
		panic(&micromark.InvariantError{Message: "unexpected fragment exit", TokenType: tok.Type, Point: tok.Start})
	}
	top.node.Position.End = point(tok.End)
}

func (c *Context) exitError(closing *micromark.Token, open openToken) {
	switch {
	case open.onError != nil:
		open.onError(c, closing, open.tok)
	case c.compiler.onExitError != nil:
		c.compiler.onExitError(c, closing, open.tok)
	default:
		defaultOnExitError(closing, open.tok)
	}
}

func defaultOnExitError(closing, open *micromark.Token) {
	if closing == nil {
		panic(&micromark.InvariantError{
			Message:   fmt.Sprintf("cannot close document, a token (`%s`, %s) is still open", open.Type, span(open)),
			TokenType: open.Type,
			Point:     open.Start,
		})
	}
	panic(&micromark.InvariantError{
		Message: fmt.Sprintf("cannot close `%s` (%s): a different token (`%s`, %s) is open",
			closing.Type, span(closing), open.Type, span(open)),
		TokenType: closing.Type,
		Point:     closing.Start,
	})
}

func span(tok *micromark.Token) string {
	return fmt.Sprintf("%d:%d-%d:%d", tok.Start.Line, tok.Start.Column, tok.End.Line, tok.End.Column)
}

// Buffer starts collecting content into a fragment.
func (c *Context) Buffer() {
	c.stack = append(c.stack, frame{node: mdast.NewRoot(), fragment: true})
}

// Resume ends the current fragment and returns its text.
func (c *Context) Resume() string {
	return toString(c.resumeFragment())
}

func (c *Context) resumeFragment() *mdast.Node {
	top := c.stack[len(c.stack)-1]
	if !top.fragment {
		panic(&micromark.InvariantError{Message: "expected fragment on stack, found " + top.node.Kind.String()})
	}
	c.stack = c.stack[:len(c.stack)-1]
	return top.node
}

// toString returns the text of a node: its value, its alt, or the text of
// its children.
func toString(n *mdast.Node) string {
	if n.IsLiteral() {
		return n.Value
	}
	if n.Alt != "" {
		return n.Alt
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.Next {
		sb.WriteString(toString(child))
	}
	return sb.String()
}
