package micromark

var headingAtx = &Construct{Name: "headingAtx"}

func init() {
	headingAtx.Tokenize = tokenizeHeadingAtx
	headingAtx.Resolve = resolveHeadingAtx
}

// resolveHeadingAtx wraps everything between the opening sequence and an
// optional closing sequence into heading text with deferred text content.
func resolveHeadingAtx(events []Event, t *Tokenizer) []Event {
	contentEnd := len(events) - 2
	contentStart := 3

	if events[contentStart].Token.Type == TypeWhitespace {
		contentStart += 2
	}
	if contentEnd-2 > contentStart && events[contentEnd].Token.Type == TypeWhitespace {
		contentEnd -= 2
	}
	if events[contentEnd].Token.Type == TypeATXHeadingSequence &&
		(contentStart == contentEnd-1 ||
			(contentEnd-4 > contentStart && events[contentEnd-2].Token.Type == TypeWhitespace)) {
		if contentStart+1 == contentEnd {
			contentEnd -= 2
		} else {
			contentEnd -= 4
		}
	}

	if contentEnd <= contentStart {
		return events
	}

	text := &Token{
		Type:  TypeATXHeadingText,
		Start: events[contentStart].Token.Start,
		End:   events[contentEnd].Token.End,
	}
	chunk := &Token{
		Type:        TypeChunkText,
		Start:       text.Start,
		End:         text.End,
		ContentType: ContentTypeText,
	}
	return splice(events, contentStart, contentEnd-contentStart+1, []Event{
		enterEvent(text, t),
		enterEvent(chunk, t),
		exitEvent(chunk, t),
		exitEvent(text, t),
	})
}

type atxHeading struct {
	effects *Effects
	ok, nok State
	size    int
}

func tokenizeHeadingAtx(_ *Tokenizer, effects *Effects, ok, nok State) State {
	h := &atxHeading{effects: effects, ok: ok, nok: nok}
	return h.start
}

func (h *atxHeading) start(code Code) State {
	invariant(code == '#', "expected `#`")
	h.effects.Enter(TypeATXHeading)
	h.effects.Enter(TypeATXHeadingSequence)
	return h.sequenceOpen(code)
}

func (h *atxHeading) sequenceOpen(code Code) State {
	if code == '#' && h.size < atxHeadingOpeningMaxSize {
		h.size++
		h.effects.Consume(code)
		return h.sequenceOpen
	}
	if code == CodeEOF || markdownLineEndingOrSpace(code) {
		h.effects.Exit(TypeATXHeadingSequence)
		return h.atBreak(code)
	}
	return h.nok(code)
}

func (h *atxHeading) atBreak(code Code) State {
	switch {
	case code == '#':
		h.effects.Enter(TypeATXHeadingSequence)
		return h.sequenceFurther(code)
	case code == CodeEOF || markdownLineEnding(code):
		h.effects.Exit(TypeATXHeading)
		return h.ok(code)
	case markdownSpace(code):
		return factorySpace(h.effects, h.atBreak, TypeWhitespace, 0)(code)
	}
	h.effects.Enter(TypeATXHeadingText)
	return h.data(code)
}

func (h *atxHeading) sequenceFurther(code Code) State {
	if code == '#' {
		h.effects.Consume(code)
		return h.sequenceFurther
	}
	h.effects.Exit(TypeATXHeadingSequence)
	return h.atBreak(code)
}

func (h *atxHeading) data(code Code) State {
	if code == CodeEOF || code == '#' || markdownLineEndingOrSpace(code) {
		h.effects.Exit(TypeATXHeadingText)
		return h.atBreak(code)
	}
	h.effects.Consume(code)
	return h.data
}
