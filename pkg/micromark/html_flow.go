package micromark

import "strings"

// Kinds of HTML blocks, by how they end.
const (
	htmlRaw = iota + 1
	htmlComment
	htmlInstruction
	htmlDeclaration
	htmlCdata
	htmlBasic
	htmlComplete
)

var (
	htmlFlow            = &Construct{Name: "htmlFlow", Concrete: true}
	htmlBlankLineBefore = &Construct{Partial: true}
)

func init() {
	htmlFlow.Tokenize = tokenizeHTMLFlow
	htmlFlow.ResolveTo = resolveToHTMLFlow
	htmlBlankLineBefore.Tokenize = tokenizeHTMLBlankLineBefore
}

// resolveToHTMLFlow folds the line prefix before an HTML block into it.
func resolveToHTMLFlow(events []Event, _ *Tokenizer) []Event {
	index := len(events) - 1
	for ; index >= 0; index-- {
		if events[index].Kind == EventEnter && events[index].Token.Type == TypeHTMLFlow {
			break
		}
	}
	if index > 1 && events[index-2].Token.Type == TypeLinePrefix {
		start := events[index-2].Token.Start
		events[index].Token.Start = start
		events[index+1].Token.Start = start
		events = splice(events, index-2, 2, nil)
	}
	return events
}

type htmlBlock struct {
	t          *Tokenizer
	effects    *Effects
	ok, nok    State
	kind       int
	closingTag bool
	buffer     strings.Builder
	index      int
	quote      Code
}

func tokenizeHTMLFlow(t *Tokenizer, effects *Effects, ok, nok State) State {
	h := &htmlBlock{t: t, effects: effects, ok: ok, nok: nok}
	return h.start
}

// orInterrupt returns ok when the block is only checked for interrupting
// content, and next otherwise.
func (h *htmlBlock) orInterrupt(next State) State {
	if h.t.interrupt {
		return h.ok
	}
	return next
}

func (h *htmlBlock) start(code Code) State {
	invariant(code == '<', "expected `<`")
	h.effects.Enter(TypeHTMLFlow)
	h.effects.Enter(TypeHTMLFlowData)
	h.effects.Consume(code)
	return h.open
}

func (h *htmlBlock) open(code Code) State {
	switch {
	case code == '!':
		h.effects.Consume(code)
		return h.declarationOpen
	case code == '/':
		h.effects.Consume(code)
		h.closingTag = true
		return h.tagCloseStart
	case code == '?':
		h.effects.Consume(code)
		h.kind = htmlInstruction
		return h.orInterrupt(h.continuationDeclarationInside)
	case asciiAlpha(code):
		h.effects.Consume(code)
		h.buffer.WriteRune(rune(code))
		return h.tagName
	}
	return h.nok(code)
}

func (h *htmlBlock) declarationOpen(code Code) State {
	switch {
	case code == '-':
		h.effects.Consume(code)
		h.kind = htmlComment
		return h.commentOpenInside
	case code == '[':
		h.effects.Consume(code)
		h.kind = htmlCdata
		h.index = 0
		return h.cdataOpenInside
	case asciiAlpha(code):
		h.effects.Consume(code)
		h.kind = htmlDeclaration
		return h.orInterrupt(h.continuationDeclarationInside)
	}
	return h.nok(code)
}

func (h *htmlBlock) commentOpenInside(code Code) State {
	if code == '-' {
		h.effects.Consume(code)
		return h.orInterrupt(h.continuationDeclarationInside)
	}
	return h.nok(code)
}

func (h *htmlBlock) cdataOpenInside(code Code) State {
	if h.index < len(cdataOpeningString) && code == Code(cdataOpeningString[h.index]) {
		h.index++
		h.effects.Consume(code)
		if h.index == len(cdataOpeningString) {
			return h.orInterrupt(h.continuation)
		}
		return h.cdataOpenInside
	}
	return h.nok(code)
}

func (h *htmlBlock) tagCloseStart(code Code) State {
	if asciiAlpha(code) {
		h.effects.Consume(code)
		h.buffer.WriteRune(rune(code))
		return h.tagName
	}
	return h.nok(code)
}

func (h *htmlBlock) tagName(code Code) State {
	if code == CodeEOF || code == '/' || code == '>' || markdownLineEndingOrSpace(code) {
		slash := code == '/'
		name := strings.ToLower(h.buffer.String())

		if !slash && !h.closingTag && isHTMLRawName(name) {
			h.kind = htmlRaw
			return h.orInterrupt(h.continuation)(code)
		}

		if isHTMLBlockName(name) {
			h.kind = htmlBasic
			if slash {
				h.effects.Consume(code)
				return h.basicSelfClosing
			}
			return h.orInterrupt(h.continuation)(code)
		}

		h.kind = htmlComplete
		if h.t.interrupt && !h.t.session.lazy[h.t.point.Line] {
			return h.nok(code)
		}
		if h.closingTag {
			return h.completeClosingTagAfter(code)
		}
		return h.completeAttributeNameBefore(code)
	}

	if code == '-' || asciiAlphanumeric(code) {
		h.effects.Consume(code)
		h.buffer.WriteRune(rune(code))
		return h.tagName
	}
	return h.nok(code)
}

func (h *htmlBlock) basicSelfClosing(code Code) State {
	if code == '>' {
		h.effects.Consume(code)
		return h.orInterrupt(h.continuation)
	}
	return h.nok(code)
}

func (h *htmlBlock) completeClosingTagAfter(code Code) State {
	if markdownSpace(code) {
		h.effects.Consume(code)
		return h.completeClosingTagAfter
	}
	return h.completeEnd(code)
}

func (h *htmlBlock) completeAttributeNameBefore(code Code) State {
	switch {
	case code == '/':
		h.effects.Consume(code)
		return h.completeEnd
	case code == ':' || code == '_' || asciiAlpha(code):
		h.effects.Consume(code)
		return h.completeAttributeName
	case markdownSpace(code):
		h.effects.Consume(code)
		return h.completeAttributeNameBefore
	}
	return h.completeEnd(code)
}

func (h *htmlBlock) completeAttributeName(code Code) State {
	if code == '-' || code == '.' || code == ':' || code == '_' || asciiAlphanumeric(code) {
		h.effects.Consume(code)
		return h.completeAttributeName
	}
	return h.completeAttributeNameAfter(code)
}

func (h *htmlBlock) completeAttributeNameAfter(code Code) State {
	switch {
	case code == '=':
		h.effects.Consume(code)
		return h.completeAttributeValueBefore
	case markdownSpace(code):
		h.effects.Consume(code)
		return h.completeAttributeNameAfter
	}
	return h.completeAttributeNameBefore(code)
}

func (h *htmlBlock) completeAttributeValueBefore(code Code) State {
	switch {
	case code == CodeEOF || code == '<' || code == '=' || code == '>' || code == '`':
		return h.nok(code)
	case code == '"' || code == '\'':
		h.effects.Consume(code)
		h.quote = code
		return h.completeAttributeValueQuoted
	case markdownSpace(code):
		h.effects.Consume(code)
		return h.completeAttributeValueBefore
	}
	return h.completeAttributeValueUnquoted(code)
}

func (h *htmlBlock) completeAttributeValueQuoted(code Code) State {
	switch {
	case code == h.quote:
		h.effects.Consume(code)
		h.quote = 0
		return h.completeAttributeValueQuotedAfter
	case code == CodeEOF || markdownLineEnding(code):
		return h.nok(code)
	}
	h.effects.Consume(code)
	return h.completeAttributeValueQuoted
}

func (h *htmlBlock) completeAttributeValueUnquoted(code Code) State {
	switch code {
	case CodeEOF, '"', '\'', '/', '<', '=', '>', '`':
		return h.completeAttributeNameAfter(code)
	}
	if markdownLineEndingOrSpace(code) {
		return h.completeAttributeNameAfter(code)
	}
	h.effects.Consume(code)
	return h.completeAttributeValueUnquoted
}

func (h *htmlBlock) completeAttributeValueQuotedAfter(code Code) State {
	if code == '/' || code == '>' || markdownSpace(code) {
		return h.completeAttributeNameBefore(code)
	}
	return h.nok(code)
}

func (h *htmlBlock) completeEnd(code Code) State {
	if code == '>' {
		h.effects.Consume(code)
		return h.completeAfter
	}
	return h.nok(code)
}

func (h *htmlBlock) completeAfter(code Code) State {
	if code == CodeEOF || markdownLineEnding(code) {
		return h.continuation(code)
	}
	if markdownSpace(code) {
		h.effects.Consume(code)
		return h.completeAfter
	}
	return h.nok(code)
}

func (h *htmlBlock) continuation(code Code) State {
	switch {
	case code == '-' && h.kind == htmlComment:
		h.effects.Consume(code)
		return h.continuationCommentInside
	case code == '<' && h.kind == htmlRaw:
		h.effects.Consume(code)
		return h.continuationRawTagOpen
	case code == '>' && h.kind == htmlDeclaration:
		h.effects.Consume(code)
		return h.continuationClose
	case code == '?' && h.kind == htmlInstruction:
		h.effects.Consume(code)
		return h.continuationDeclarationInside
	case code == ']' && h.kind == htmlCdata:
		h.effects.Consume(code)
		return h.continuationCdataInside
	case markdownLineEnding(code) && (h.kind == htmlBasic || h.kind == htmlComplete):
		h.effects.Exit(TypeHTMLFlowData)
		return h.effects.Check(htmlBlankLineBefore, h.continuationAfter, h.continuationStart)(code)
	case code == CodeEOF || markdownLineEnding(code):
		h.effects.Exit(TypeHTMLFlowData)
		return h.continuationStart(code)
	}
	h.effects.Consume(code)
	return h.continuation
}

func (h *htmlBlock) continuationStart(code Code) State {
	return h.effects.Check(nonLazyContinuation, h.continuationStartNonLazy, h.continuationAfter)(code)
}

func (h *htmlBlock) continuationStartNonLazy(code Code) State {
	invariant(markdownLineEnding(code), "expected eol")
	h.effects.Enter(TypeLineEnding)
	h.effects.Consume(code)
	h.effects.Exit(TypeLineEnding)
	return h.continuationBefore
}

func (h *htmlBlock) continuationBefore(code Code) State {
	if code == CodeEOF || markdownLineEnding(code) {
		return h.continuationStart(code)
	}
	h.effects.Enter(TypeHTMLFlowData)
	return h.continuation(code)
}

func (h *htmlBlock) continuationCommentInside(code Code) State {
	if code == '-' {
		h.effects.Consume(code)
		return h.continuationDeclarationInside
	}
	return h.continuation(code)
}

func (h *htmlBlock) continuationRawTagOpen(code Code) State {
	if code == '/' {
		h.effects.Consume(code)
		h.buffer.Reset()
		return h.continuationRawEndTag
	}
	return h.continuation(code)
}

func (h *htmlBlock) continuationRawEndTag(code Code) State {
	if code == '>' {
		if isHTMLRawName(strings.ToLower(h.buffer.String())) {
			h.effects.Consume(code)
			return h.continuationClose
		}
		return h.continuation(code)
	}
	if asciiAlpha(code) && h.buffer.Len() < htmlRawSizeMax {
		h.effects.Consume(code)
		h.buffer.WriteRune(rune(code))
		return h.continuationRawEndTag
	}
	return h.continuation(code)
}

func (h *htmlBlock) continuationCdataInside(code Code) State {
	if code == ']' {
		h.effects.Consume(code)
		return h.continuationDeclarationInside
	}
	return h.continuation(code)
}

func (h *htmlBlock) continuationDeclarationInside(code Code) State {
	switch {
	case code == '>':
		h.effects.Consume(code)
		return h.continuationClose
	case code == '-' && h.kind == htmlComment:
		h.effects.Consume(code)
		return h.continuationDeclarationInside
	}
	return h.continuation(code)
}

func (h *htmlBlock) continuationClose(code Code) State {
	if code == CodeEOF || markdownLineEnding(code) {
		h.effects.Exit(TypeHTMLFlowData)
		return h.continuationAfter(code)
	}
	h.effects.Consume(code)
	return h.continuationClose
}

func (h *htmlBlock) continuationAfter(code Code) State {
	h.effects.Exit(TypeHTMLFlow)
	return h.ok(code)
}

func tokenizeHTMLBlankLineBefore(_ *Tokenizer, effects *Effects, ok, nok State) State {
	return func(code Code) State {
		invariant(markdownLineEnding(code), "expected a line ending")
		effects.Enter(TypeLineEnding)
		effects.Consume(code)
		effects.Exit(TypeLineEnding)
		return effects.Attempt(blankLine, ok, nok)
	}
}
