package micromark

var (
	content             = &Construct{}
	contentContinuation = &Construct{Partial: true}
)

func init() {
	content.Tokenize = tokenizeContent
	content.Resolve = func(events []Event, _ *Tokenizer) []Event {
		events, _ = subtokenize(events)
		return events
	}
	contentContinuation.Tokenize = tokenizeContentContinuation
}

// contentChunker groups the lines of a paragraph or definitions into linked
// chunks that the content tokenizer reads later.
type contentChunker struct {
	effects  *Effects
	ok       State
	previous *Token
}

func tokenizeContent(_ *Tokenizer, effects *Effects, ok, _ State) State {
	c := &contentChunker{effects: effects, ok: ok}
	return c.chunkStart
}

func (c *contentChunker) chunkStart(code Code) State {
	invariant(code != CodeEOF && !markdownLineEnding(code), "expected no eof or eol")
	c.effects.Enter(TypeContent)
	c.previous = c.effects.Enter(TypeChunkContent)
	c.previous.ContentType = ContentTypeContent
	return c.chunkInside(code)
}

func (c *contentChunker) chunkInside(code Code) State {
	if code == CodeEOF {
		return c.contentEnd(code)
	}
	if markdownLineEnding(code) {
		return c.effects.Check(contentContinuation, c.contentContinue, c.contentEnd)(code)
	}
	c.effects.Consume(code)
	return c.chunkInside
}

func (c *contentChunker) contentEnd(code Code) State {
	c.effects.Exit(TypeChunkContent)
	c.effects.Exit(TypeContent)
	return c.ok(code)
}

func (c *contentChunker) contentContinue(code Code) State {
	invariant(markdownLineEnding(code), "expected eol")
	c.effects.Consume(code)
	c.effects.Exit(TypeChunkContent)
	next := c.effects.Enter(TypeChunkContent)
	next.ContentType = ContentTypeContent
	next.Previous = c.previous
	c.previous.Next = next
	c.previous = next
	return c.chunkInside
}

// tokenizeContentContinuation checks whether the line after a line ending
// still belongs to the content: it must not be blank and must not start a
// flow construct that interrupts content.
func tokenizeContentContinuation(t *Tokenizer, effects *Effects, ok, nok State) State {
	prefixed := func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			return nok(code)
		}
		if limit := t.tabSizeLimit(); limit > 0 {
			if n := len(t.events); n > 0 {
				tail := t.events[n-1]
				if tail.Token.Type == TypeLinePrefix && len(tail.Context.SliceSerialize(tail.Token, true)) >= limit {
					return ok(code)
				}
			}
		}
		return effects.Interrupt(t.constructs().Flow, nok, ok)(code)
	}

	return func(code Code) State {
		invariant(markdownLineEnding(code), "expected a line ending")
		effects.Exit(TypeChunkContent)
		effects.Enter(TypeLineEnding)
		effects.Consume(code)
		effects.Exit(TypeLineEnding)
		return factorySpace(effects, prefixed, TypeLinePrefix, 0)
	}
}
