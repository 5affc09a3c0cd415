package micromark

var setextUnderline = &Construct{Name: "setextUnderline"}

func init() {
	setextUnderline.Tokenize = tokenizeSetextUnderline
	setextUnderline.ResolveTo = resolveToSetextUnderline
}

// resolveToSetextUnderline turns the paragraph before an underline into
// heading text. Definitions at the start of the content stay outside the
// heading.
func resolveToSetextUnderline(events []Event, t *Tokenizer) []Event {
	contentIndex, text, definition := -1, -1, -1

	for index := len(events) - 1; index >= 0; index-- {
		if events[index].Kind == EventEnter {
			if events[index].Token.Type == TypeContent {
				contentIndex = index
				break
			}
			if events[index].Token.Type == TypeParagraph {
				text = index
			}
			continue
		}
		if events[index].Token.Type == TypeContent {
			events = splice(events, index, 1, nil)
			if index >= len(events) {
				continue
			}
		}
		if definition < 0 && events[index].Token.Type == TypeDefinition {
			definition = index
		}
	}

	invariant(text >= 0, "expected a paragraph to turn into heading text")
	invariant(contentIndex >= 0, "expected content before a setext underline")

	heading := &Token{
		Type:  TypeSetextHeading,
		Start: events[contentIndex].Token.Start,
		End:   events[len(events)-1].Token.End,
	}
	events[text].Token.Type = TypeSetextHeadingText

	if definition > 0 {
		events = splice(events, text, 0, []Event{enterEvent(heading, t)})
		contentToken := events[contentIndex].Token
		events = splice(events, definition+1, 0, []Event{exitEvent(contentToken, t)})
		contentToken.End = events[definition].Token.End
	} else {
		events[contentIndex] = enterEvent(heading, t)
	}

	return append(events, exitEvent(heading, t))
}

type setextUnderlineTokenizer struct {
	t       *Tokenizer
	effects *Effects
	ok, nok State
	marker  Code
}

func tokenizeSetextUnderline(t *Tokenizer, effects *Effects, ok, nok State) State {
	s := &setextUnderlineTokenizer{t: t, effects: effects, ok: ok, nok: nok}
	return s.start
}

func (s *setextUnderlineTokenizer) start(code Code) State {
	invariant(code == '-' || code == '=', "expected `=` or `-`")

	paragraph := false
	for index := len(s.t.events) - 1; index >= 0; index-- {
		typ := s.t.events[index].Token.Type
		if typ != TypeLineEnding && typ != TypeLinePrefix && typ != TypeContent {
			paragraph = typ == TypeParagraph
			break
		}
	}

	if !s.t.session.lazy[s.t.point.Line] && (s.t.interrupt || paragraph) {
		s.effects.Enter(TypeSetextHeadingLine)
		s.marker = code
		s.effects.Enter(TypeSetextHeadingLineSequence)
		return s.inside(code)
	}
	return s.nok(code)
}

func (s *setextUnderlineTokenizer) inside(code Code) State {
	if code == s.marker {
		s.effects.Consume(code)
		return s.inside
	}
	s.effects.Exit(TypeSetextHeadingLineSequence)
	if markdownSpace(code) {
		return factorySpace(s.effects, s.after, TypeLineSuffix, 0)(code)
	}
	return s.after(code)
}

func (s *setextUnderlineTokenizer) after(code Code) State {
	if code == CodeEOF || markdownLineEnding(code) {
		s.effects.Exit(TypeSetextHeadingLine)
		return s.ok(code)
	}
	return s.nok(code)
}
