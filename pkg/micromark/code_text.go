package micromark

var codeText = &Construct{Name: "codeText"}

func init() {
	codeText.Tokenize = tokenizeCodeText
	codeText.Resolve = resolveCodeText
	codeText.Previous = previousCodeText
}

// resolveCodeText strips one padding space or line ending from each side
// when both sides have one and there is data between them, then merges the
// rest into data runs split at line endings.
func resolveCodeText(events []Event, _ *Tokenizer) []Event {
	tailExitIndex := len(events) - 4
	headEnterIndex := 3

	isPadding := func(typ TokenType) bool {
		return typ == TypeLineEnding || typ == TypeSpace
	}

	if isPadding(events[headEnterIndex].Token.Type) && isPadding(events[tailExitIndex].Token.Type) {
		for index := headEnterIndex + 1; index < tailExitIndex; index++ {
			if events[index].Token.Type == TypeCodeTextData {
				events[headEnterIndex].Token.Type = TypeCodeTextPadding
				events[tailExitIndex].Token.Type = TypeCodeTextPadding
				headEnterIndex += 2
				tailExitIndex -= 2
				break
			}
		}
	}

	enter := -1
	tailExitIndex++
	for index := headEnterIndex; index <= tailExitIndex; index++ {
		if enter < 0 {
			if index != tailExitIndex && events[index].Token.Type != TypeLineEnding {
				enter = index
			}
			continue
		}
		if index == tailExitIndex || events[index].Token.Type == TypeLineEnding {
			events[enter].Token.Type = TypeCodeTextData
			if index != enter+2 {
				events[enter].Token.End = events[index-1].Token.End
				removed := index - enter - 2
				events = splice(events, enter+2, removed, nil)
				tailExitIndex -= removed
				index = enter + 2
			}
			enter = -1
		}
	}

	return events
}

func previousCodeText(t *Tokenizer, code Code) bool {
	if code != '`' {
		return true
	}
	n := len(t.events)
	return n > 0 && t.events[n-1].Token.Type == TypeCharacterEscape
}

type codeSpan struct {
	effects  *Effects
	ok, nok  State
	sizeOpen int
	size     int
	token    *Token
}

func tokenizeCodeText(_ *Tokenizer, effects *Effects, ok, nok State) State {
	c := &codeSpan{effects: effects, ok: ok, nok: nok}
	return c.start
}

func (c *codeSpan) start(code Code) State {
	invariant(code == '`', "expected `` ` ``")
	c.effects.Enter(TypeCodeText)
	c.effects.Enter(TypeCodeTextSequence)
	return c.sequenceOpen(code)
}

func (c *codeSpan) sequenceOpen(code Code) State {
	if code == '`' {
		c.effects.Consume(code)
		c.sizeOpen++
		return c.sequenceOpen
	}
	c.effects.Exit(TypeCodeTextSequence)
	return c.between(code)
}

func (c *codeSpan) between(code Code) State {
	switch {
	case code == CodeEOF:
		return c.nok(code)
	case code == ' ':
		c.effects.Enter(TypeSpace)
		c.effects.Consume(code)
		c.effects.Exit(TypeSpace)
		return c.between
	case code == '`':
		c.token = c.effects.Enter(TypeCodeTextSequence)
		c.size = 0
		return c.sequenceClose(code)
	case markdownLineEnding(code):
		c.effects.Enter(TypeLineEnding)
		c.effects.Consume(code)
		c.effects.Exit(TypeLineEnding)
		return c.between
	}
	c.effects.Enter(TypeCodeTextData)
	return c.data(code)
}

func (c *codeSpan) data(code Code) State {
	if code == CodeEOF || code == ' ' || code == '`' || markdownLineEnding(code) {
		c.effects.Exit(TypeCodeTextData)
		return c.between(code)
	}
	c.effects.Consume(code)
	return c.data
}

func (c *codeSpan) sequenceClose(code Code) State {
	if code == '`' {
		c.effects.Consume(code)
		c.size++
		return c.sequenceClose
	}
	if c.size == c.sizeOpen {
		c.effects.Exit(TypeCodeTextSequence)
		c.effects.Exit(TypeCodeText)
		return c.ok(code)
	}
	// A closing run of the wrong size is part of the code.
	c.token.Type = TypeCodeTextData
	return c.data(code)
}
