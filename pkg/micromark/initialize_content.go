package micromark

var contentInitializer Initializer

func init() {
	contentInitializer.Tokenize = initializeContent
}

// contentTokenizer splits content into definitions followed by at most one
// paragraph whose lines are linked deferred text chunks.
type contentTokenizer struct {
	effects      *Effects
	contentStart State
	previous     *Token
}

func initializeContent(t *Tokenizer, effects *Effects) State {
	c := &contentTokenizer{effects: effects}
	c.contentStart = effects.Attempt(t.constructs().ContentInitial, c.afterContentStartConstruct, c.paragraphInitial)
	return c.contentStart
}

func (c *contentTokenizer) afterContentStartConstruct(code Code) State {
	invariant(code == CodeEOF || markdownLineEnding(code), "expected eol or eof")
	if code == CodeEOF {
		c.effects.Consume(code)
		return nil
	}
	c.effects.Enter(TypeLineEnding)
	c.effects.Consume(code)
	c.effects.Exit(TypeLineEnding)
	return factorySpace(c.effects, c.contentStart, TypeLinePrefix, 0)
}

func (c *contentTokenizer) paragraphInitial(code Code) State {
	invariant(code != CodeEOF && !markdownLineEnding(code), "expected anything other than a line ending or eof")
	c.effects.Enter(TypeParagraph)
	return c.lineStart(code)
}

func (c *contentTokenizer) lineStart(code Code) State {
	tok := c.effects.Enter(TypeChunkText)
	tok.ContentType = ContentTypeText
	tok.Previous = c.previous
	if c.previous != nil {
		c.previous.Next = tok
	}
	c.previous = tok
	return c.data(code)
}

func (c *contentTokenizer) data(code Code) State {
	if code == CodeEOF {
		c.effects.Exit(TypeChunkText)
		c.effects.Exit(TypeParagraph)
		c.effects.Consume(code)
		return nil
	}

	c.effects.Consume(code)
	if markdownLineEnding(code) {
		c.effects.Exit(TypeChunkText)
		return c.lineStart
	}
	return c.data
}
