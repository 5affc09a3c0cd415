package micromark

const cdataOpeningString = "CDATA["

var htmlText = &Construct{Name: "htmlText"}

func init() {
	htmlText.Tokenize = tokenizeHTMLText
}

// inlineHTML tokenizes raw HTML in text: tags, closing tags, comments,
// CDATA, declarations and processing instructions. Line endings inside it
// are split out so containers can continue on the next line.
type inlineHTML struct {
	t           *Tokenizer
	effects     *Effects
	ok, nok     State
	marker      Code
	index       int
	returnState State
}

func tokenizeHTMLText(t *Tokenizer, effects *Effects, ok, nok State) State {
	h := &inlineHTML{t: t, effects: effects, ok: ok, nok: nok}
	return h.start
}

func (h *inlineHTML) start(code Code) State {
	invariant(code == '<', "expected `<`")
	h.effects.Enter(TypeHTMLText)
	h.effects.Enter(TypeHTMLTextData)
	h.effects.Consume(code)
	return h.open
}

func (h *inlineHTML) open(code Code) State {
	switch {
	case code == '!':
		h.effects.Consume(code)
		return h.declarationOpen
	case code == '/':
		h.effects.Consume(code)
		return h.tagCloseStart
	case code == '?':
		h.effects.Consume(code)
		return h.instruction
	case asciiAlpha(code):
		h.effects.Consume(code)
		return h.tagOpen
	}
	return h.nok(code)
}

func (h *inlineHTML) declarationOpen(code Code) State {
	switch {
	case code == '-':
		h.effects.Consume(code)
		return h.commentOpenInside
	case code == '[':
		h.effects.Consume(code)
		h.index = 0
		return h.cdataOpenInside
	case asciiAlpha(code):
		h.effects.Consume(code)
		return h.declaration
	}
	return h.nok(code)
}

func (h *inlineHTML) commentOpenInside(code Code) State {
	if code == '-' {
		h.effects.Consume(code)
		return h.commentEnd
	}
	return h.nok(code)
}

func (h *inlineHTML) comment(code Code) State {
	switch {
	case code == CodeEOF:
		return h.nok(code)
	case code == '-':
		h.effects.Consume(code)
		return h.commentClose
	case markdownLineEnding(code):
		h.returnState = h.comment
		return h.lineEndingBefore(code)
	}
	h.effects.Consume(code)
	return h.comment
}

func (h *inlineHTML) commentClose(code Code) State {
	if code == '-' {
		h.effects.Consume(code)
		return h.commentEnd
	}
	return h.comment(code)
}

func (h *inlineHTML) commentEnd(code Code) State {
	switch code {
	case '>':
		return h.end(code)
	case '-':
		return h.commentClose(code)
	}
	return h.comment(code)
}

func (h *inlineHTML) cdataOpenInside(code Code) State {
	if h.index < len(cdataOpeningString) && code == Code(cdataOpeningString[h.index]) {
		h.index++
		h.effects.Consume(code)
		if h.index == len(cdataOpeningString) {
			return h.cdata
		}
		return h.cdataOpenInside
	}
	return h.nok(code)
}

func (h *inlineHTML) cdata(code Code) State {
	switch {
	case code == CodeEOF:
		return h.nok(code)
	case code == ']':
		h.effects.Consume(code)
		return h.cdataClose
	case markdownLineEnding(code):
		h.returnState = h.cdata
		return h.lineEndingBefore(code)
	}
	h.effects.Consume(code)
	return h.cdata
}

func (h *inlineHTML) cdataClose(code Code) State {
	if code == ']' {
		h.effects.Consume(code)
		return h.cdataEnd
	}
	return h.cdata(code)
}

func (h *inlineHTML) cdataEnd(code Code) State {
	switch code {
	case '>':
		return h.end(code)
	case ']':
		h.effects.Consume(code)
		return h.cdataEnd
	}
	return h.cdata(code)
}

func (h *inlineHTML) declaration(code Code) State {
	switch {
	case code == CodeEOF || code == '>':
		return h.end(code)
	case markdownLineEnding(code):
		h.returnState = h.declaration
		return h.lineEndingBefore(code)
	}
	h.effects.Consume(code)
	return h.declaration
}

func (h *inlineHTML) instruction(code Code) State {
	switch {
	case code == CodeEOF:
		return h.nok(code)
	case code == '?':
		h.effects.Consume(code)
		return h.instructionClose
	case markdownLineEnding(code):
		h.returnState = h.instruction
		return h.lineEndingBefore(code)
	}
	h.effects.Consume(code)
	return h.instruction
}

func (h *inlineHTML) instructionClose(code Code) State {
	if code == '>' {
		return h.end(code)
	}
	return h.instruction(code)
}

func (h *inlineHTML) tagCloseStart(code Code) State {
	if asciiAlpha(code) {
		h.effects.Consume(code)
		return h.tagClose
	}
	return h.nok(code)
}

func (h *inlineHTML) tagClose(code Code) State {
	if code == '-' || asciiAlphanumeric(code) {
		h.effects.Consume(code)
		return h.tagClose
	}
	return h.tagCloseBetween(code)
}

func (h *inlineHTML) tagCloseBetween(code Code) State {
	switch {
	case markdownLineEnding(code):
		h.returnState = h.tagCloseBetween
		return h.lineEndingBefore(code)
	case markdownSpace(code):
		h.effects.Consume(code)
		return h.tagCloseBetween
	}
	return h.end(code)
}

func (h *inlineHTML) tagOpen(code Code) State {
	if code == '-' || asciiAlphanumeric(code) {
		h.effects.Consume(code)
		return h.tagOpen
	}
	if code == '/' || code == '>' || markdownLineEndingOrSpace(code) {
		return h.tagOpenBetween(code)
	}
	return h.nok(code)
}

func (h *inlineHTML) tagOpenBetween(code Code) State {
	switch {
	case code == '/':
		h.effects.Consume(code)
		return h.end
	case code == ':' || code == '_' || asciiAlpha(code):
		h.effects.Consume(code)
		return h.tagOpenAttributeName
	case markdownLineEnding(code):
		h.returnState = h.tagOpenBetween
		return h.lineEndingBefore(code)
	case markdownSpace(code):
		h.effects.Consume(code)
		return h.tagOpenBetween
	}
	return h.end(code)
}

func (h *inlineHTML) tagOpenAttributeName(code Code) State {
	if code == '-' || code == '.' || code == ':' || code == '_' || asciiAlphanumeric(code) {
		h.effects.Consume(code)
		return h.tagOpenAttributeName
	}
	return h.tagOpenAttributeNameAfter(code)
}

func (h *inlineHTML) tagOpenAttributeNameAfter(code Code) State {
	switch {
	case code == '=':
		h.effects.Consume(code)
		return h.tagOpenAttributeValueBefore
	case markdownLineEnding(code):
		h.returnState = h.tagOpenAttributeNameAfter
		return h.lineEndingBefore(code)
	case markdownSpace(code):
		h.effects.Consume(code)
		return h.tagOpenAttributeNameAfter
	}
	return h.tagOpenBetween(code)
}

func (h *inlineHTML) tagOpenAttributeValueBefore(code Code) State {
	switch {
	case code == CodeEOF || code == '<' || code == '=' || code == '>' || code == '`':
		return h.nok(code)
	case code == '"' || code == '\'':
		h.effects.Consume(code)
		h.marker = code
		return h.tagOpenAttributeValueQuoted
	case markdownLineEnding(code):
		h.returnState = h.tagOpenAttributeValueBefore
		return h.lineEndingBefore(code)
	case markdownSpace(code):
		h.effects.Consume(code)
		return h.tagOpenAttributeValueBefore
	}
	h.effects.Consume(code)
	return h.tagOpenAttributeValueUnquoted
}

func (h *inlineHTML) tagOpenAttributeValueQuoted(code Code) State {
	switch {
	case code == h.marker:
		h.effects.Consume(code)
		h.marker = 0
		return h.tagOpenAttributeValueQuotedAfter
	case code == CodeEOF:
		return h.nok(code)
	case markdownLineEnding(code):
		h.returnState = h.tagOpenAttributeValueQuoted
		return h.lineEndingBefore(code)
	}
	h.effects.Consume(code)
	return h.tagOpenAttributeValueQuoted
}

func (h *inlineHTML) tagOpenAttributeValueUnquoted(code Code) State {
	switch {
	case code == CodeEOF || code == '"' || code == '\'' || code == '<' || code == '=' || code == '`':
		return h.nok(code)
	case code == '/' || code == '>' || markdownLineEndingOrSpace(code):
		return h.tagOpenBetween(code)
	}
	h.effects.Consume(code)
	return h.tagOpenAttributeValueUnquoted
}

func (h *inlineHTML) tagOpenAttributeValueQuotedAfter(code Code) State {
	if code == '/' || code == '>' || markdownLineEndingOrSpace(code) {
		return h.tagOpenBetween(code)
	}
	return h.nok(code)
}

func (h *inlineHTML) end(code Code) State {
	if code != '>' {
		return h.nok(code)
	}
	h.effects.Consume(code)
	h.effects.Exit(TypeHTMLTextData)
	h.effects.Exit(TypeHTMLText)
	return h.ok
}

func (h *inlineHTML) lineEndingBefore(code Code) State {
	invariant(h.returnState != nil, "expected return state")
	invariant(markdownLineEnding(code), "expected eol")
	h.effects.Exit(TypeHTMLTextData)
	h.effects.Enter(TypeLineEnding)
	h.effects.Consume(code)
	h.effects.Exit(TypeLineEnding)
	return h.lineEndingAfter
}

func (h *inlineHTML) lineEndingAfter(code Code) State {
	if markdownSpace(code) {
		return factorySpace(h.effects, h.lineEndingAfterPrefix, TypeLinePrefix, h.t.tabSizeLimit())(code)
	}
	return h.lineEndingAfterPrefix(code)
}

func (h *inlineHTML) lineEndingAfterPrefix(code Code) State {
	h.effects.Enter(TypeHTMLTextData)
	return h.returnState(code)
}
