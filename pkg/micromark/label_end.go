package micromark

const linkResourceDestinationBalanceMax = 32

var (
	labelEnd                    = &Construct{Name: "labelEnd"}
	resourceConstruct           = &Construct{}
	referenceFullConstruct      = &Construct{}
	referenceCollapsedConstruct = &Construct{}

	// resolveLabelEnd turns label starts and ends that never formed a link
	// or image back into data. All label constructs share it.
	resolveLabelEnd = &Resolver{Name: "labelEnd"}
)

func init() {
	labelEnd.Tokenize = tokenizeLabelEnd
	labelEnd.ResolveTo = resolveToLabelEnd
	labelEnd.ResolveAll = resolveLabelEnd
	resolveLabelEnd.Resolve = resolveAllLabelEnd
	resourceConstruct.Tokenize = tokenizeResource
	referenceFullConstruct.Tokenize = tokenizeReferenceFull
	referenceCollapsedConstruct.Tokenize = tokenizeReferenceCollapsed
}

func resolveAllLabelEnd(events []Event, _ *Tokenizer) []Event {
	out := make([]Event, 0, len(events))
	for index := 0; index < len(events); index++ {
		tok := events[index].Token
		out = append(out, events[index])
		switch tok.Type {
		case TypeLabelImage:
			tok.Type = TypeData
			index += 4
		case TypeLabelLink, TypeLabelEnd:
			tok.Type = TypeData
			index += 2
		}
	}
	return out
}

// resolveToLabelEnd wraps the label start, the label text and the label end
// with whatever followed it into a link or image group. Link starts before
// a link are deactivated since links cannot contain links.
func resolveToLabelEnd(events []Event, t *Tokenizer) []Event {
	open, closing, offset := -1, -1, 0

scan:
	for index := len(events) - 1; index >= 0; index-- {
		tok := events[index].Token
		switch {
		case open >= 0:
			if tok.Type == TypeLink || (tok.Type == TypeLabelLink && tok.inactive) {
				break scan
			}
			if events[index].Kind == EventEnter && tok.Type == TypeLabelLink {
				tok.inactive = true
			}
		case closing >= 0:
			if events[index].Kind == EventEnter && (tok.Type == TypeLabelImage || tok.Type == TypeLabelLink) && !tok.balanced {
				open = index
				if tok.Type != TypeLabelLink {
					offset = 2
					break scan
				}
			}
		case tok.Type == TypeLabelEnd:
			closing = index
		}
	}

	invariant(open >= 0, "expected a label start")
	invariant(closing >= 0, "expected a label end")

	groupType := TypeImage
	if events[open].Token.Type == TypeLabelLink {
		groupType = TypeLink
	}
	group := &Token{Type: groupType, Start: events[open].Token.Start, End: events[len(events)-1].Token.End}
	label := &Token{Type: TypeLabel, Start: events[open].Token.Start, End: events[closing].Token.End}
	text := &Token{Type: TypeLabelText, Start: events[open+offset+2].Token.End, End: events[closing-2].Token.Start}

	media := []Event{enterEvent(group, t), enterEvent(label, t)}
	media = append(media, events[open+1:open+offset+3]...)
	media = append(media, enterEvent(text, t))
	inside := append([]Event(nil), events[open+offset+4:closing-3]...)
	media = append(media, resolveAll(t.constructs().InsideSpan, inside, t)...)
	media = append(media, exitEvent(text, t), events[closing-2], events[closing-1], exitEvent(label, t))
	media = append(media, events[closing+1:]...)
	media = append(media, exitEvent(group, t))

	return append(events[:open], media...)
}

// labelEndTokenizer closes the nearest open label start. Without a
// resource or a reference the label itself must name a definition.
type labelEndTokenizer struct {
	t          *Tokenizer
	effects    *Effects
	ok, nok    State
	labelStart *Token
	defined    bool
}

func tokenizeLabelEnd(t *Tokenizer, effects *Effects, ok, nok State) State {
	l := &labelEndTokenizer{t: t, effects: effects, ok: ok, nok: nok, labelStart: t.openLabelStart()}
	return l.start
}

func (l *labelEndTokenizer) start(code Code) State {
	invariant(code == ']', "expected `]`")
	if l.labelStart == nil {
		return l.nok(code)
	}
	if l.labelStart.inactive {
		return l.labelEndNok(code)
	}

	l.defined = l.t.session.defined[NormalizeIdentifier(l.t.sliceSerializeRange(l.labelStart.End, l.t.point))]
	l.effects.Enter(TypeLabelEnd)
	l.effects.Enter(TypeLabelMarker)
	l.effects.Consume(code)
	l.effects.Exit(TypeLabelMarker)
	l.effects.Exit(TypeLabelEnd)
	return l.after
}

func (l *labelEndTokenizer) after(code Code) State {
	fallback := l.labelEndNok
	if l.defined {
		fallback = l.ok
	}
	switch code {
	case '(':
		return l.effects.Attempt(resourceConstruct, l.ok, fallback)(code)
	case '[':
		if l.defined {
			fallback = l.referenceNotFull
		}
		return l.effects.Attempt(referenceFullConstruct, l.ok, fallback)(code)
	}
	return fallback(code)
}

func (l *labelEndTokenizer) referenceNotFull(code Code) State {
	return l.effects.Attempt(referenceCollapsedConstruct, l.ok, l.labelEndNok)(code)
}

func (l *labelEndTokenizer) labelEndNok(code Code) State {
	l.labelStart.balanced = true
	return l.nok(code)
}

type resourceTokenizer struct {
	effects *Effects
	ok, nok State
}

func tokenizeResource(_ *Tokenizer, effects *Effects, ok, nok State) State {
	r := &resourceTokenizer{effects: effects, ok: ok, nok: nok}
	return r.start
}

func (r *resourceTokenizer) start(code Code) State {
	invariant(code == '(', "expected left paren")
	r.effects.Enter(TypeResource)
	r.effects.Enter(TypeResourceMarker)
	r.effects.Consume(code)
	r.effects.Exit(TypeResourceMarker)
	return r.before
}

func (r *resourceTokenizer) before(code Code) State {
	if markdownLineEndingOrSpace(code) {
		return factoryWhitespace(r.effects, r.open)(code)
	}
	return r.open(code)
}

func (r *resourceTokenizer) open(code Code) State {
	if code == ')' {
		return r.end(code)
	}
	return factoryDestination(r.effects, r.destinationAfter, r.nok,
		TypeResourceDestination,
		TypeResourceDestinationLiteral,
		TypeResourceDestinationLiteralMarker,
		TypeResourceDestinationRaw,
		TypeResourceDestinationString,
		linkResourceDestinationBalanceMax,
	)(code)
}

func (r *resourceTokenizer) destinationAfter(code Code) State {
	if markdownLineEndingOrSpace(code) {
		return factoryWhitespace(r.effects, r.between)(code)
	}
	return r.end(code)
}

func (r *resourceTokenizer) between(code Code) State {
	if code == '"' || code == '\'' || code == '(' {
		return factoryTitle(r.effects, r.titleAfter, r.nok,
			TypeResourceTitle, TypeResourceTitleMarker, TypeResourceTitleString)(code)
	}
	return r.end(code)
}

func (r *resourceTokenizer) titleAfter(code Code) State {
	if markdownLineEndingOrSpace(code) {
		return factoryWhitespace(r.effects, r.end)(code)
	}
	return r.end(code)
}

func (r *resourceTokenizer) end(code Code) State {
	if code != ')' {
		return r.nok(code)
	}
	r.effects.Enter(TypeResourceMarker)
	r.effects.Consume(code)
	r.effects.Exit(TypeResourceMarker)
	r.effects.Exit(TypeResource)
	return r.ok
}

func tokenizeReferenceFull(t *Tokenizer, effects *Effects, ok, nok State) State {
	after := func(code Code) State {
		if t.session.defined[labelIdentifier(t)] {
			return ok(code)
		}
		return nok(code)
	}
	return func(code Code) State {
		invariant(code == '[', "expected left bracket")
		return factoryLabel(effects, after, nok, TypeReference, TypeReferenceMarker, TypeReferenceString)(code)
	}
}

func tokenizeReferenceCollapsed(_ *Tokenizer, effects *Effects, ok, nok State) State {
	open := func(code Code) State {
		if code != ']' {
			return nok(code)
		}
		effects.Enter(TypeReferenceMarker)
		effects.Consume(code)
		effects.Exit(TypeReferenceMarker)
		effects.Exit(TypeReference)
		return ok
	}
	return func(code Code) State {
		invariant(code == '[', "expected left bracket")
		effects.Enter(TypeReference)
		effects.Enter(TypeReferenceMarker)
		effects.Consume(code)
		effects.Exit(TypeReferenceMarker)
		return open
	}
}
