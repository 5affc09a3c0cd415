package micromark

var (
	codeIndented      = &Construct{Name: "codeIndented"}
	codeIndentedStart = &Construct{Partial: true}
)

func init() {
	codeIndented.Tokenize = tokenizeCodeIndented
	codeIndentedStart.Tokenize = tokenizeCodeIndentedFurtherStart
}

// linePrefixAtLeast reports whether the last event is a line prefix of at
// least size columns.
func linePrefixAtLeast(t *Tokenizer, size int) bool {
	n := len(t.events)
	if n == 0 {
		return false
	}
	tail := t.events[n-1]
	return tail.Token.Type == TypeLinePrefix && len(tail.Context.SliceSerialize(tail.Token, true)) >= size
}

type indentedCode struct {
	t       *Tokenizer
	effects *Effects
	ok, nok State
}

func tokenizeCodeIndented(t *Tokenizer, effects *Effects, ok, nok State) State {
	c := &indentedCode{t: t, effects: effects, ok: ok, nok: nok}
	return c.start
}

func (c *indentedCode) start(code Code) State {
	invariant(markdownSpace(code), "expected space or tab")
	c.effects.Enter(TypeCodeIndented)
	return factorySpace(c.effects, c.afterPrefix, TypeLinePrefix, tabSize+1)(code)
}

func (c *indentedCode) afterPrefix(code Code) State {
	if linePrefixAtLeast(c.t, tabSize) {
		return c.atBreak(code)
	}
	return c.nok(code)
}

func (c *indentedCode) atBreak(code Code) State {
	if code == CodeEOF {
		return c.after(code)
	}
	if markdownLineEnding(code) {
		return c.effects.Attempt(codeIndentedStart, c.atBreak, c.after)(code)
	}
	c.effects.Enter(TypeCodeFlowValue)
	return c.inside(code)
}

func (c *indentedCode) inside(code Code) State {
	if code == CodeEOF || markdownLineEnding(code) {
		c.effects.Exit(TypeCodeFlowValue)
		return c.atBreak(code)
	}
	c.effects.Consume(code)
	return c.inside
}

func (c *indentedCode) after(code Code) State {
	c.effects.Exit(TypeCodeIndented)
	return c.ok(code)
}

// tokenizeCodeIndentedFurtherStart continues indented code across line
// endings, including blank lines, as long as a sufficiently indented line
// follows.
func tokenizeCodeIndentedFurtherStart(t *Tokenizer, effects *Effects, ok, nok State) State {
	var furtherStart, afterPrefix State
	furtherStart = func(code Code) State {
		if t.session.lazy[t.point.Line] {
			return nok(code)
		}
		if markdownLineEnding(code) {
			effects.Enter(TypeLineEnding)
			effects.Consume(code)
			effects.Exit(TypeLineEnding)
			return furtherStart
		}
		return factorySpace(effects, afterPrefix, TypeLinePrefix, tabSize+1)(code)
	}
	afterPrefix = func(code Code) State {
		if linePrefixAtLeast(t, tabSize) {
			return ok(code)
		}
		if markdownLineEnding(code) {
			return furtherStart(code)
		}
		return nok(code)
	}
	return furtherStart
}
