package micromark

var (
	labelStartLink  = &Construct{Name: "labelStartLink"}
	labelStartImage = &Construct{Name: "labelStartImage"}
)

func init() {
	labelStartLink.Tokenize = tokenizeLabelStartLink
	labelStartLink.ResolveAll = resolveLabelEnd
	labelStartImage.Tokenize = tokenizeLabelStartImage
	labelStartImage.ResolveAll = resolveLabelEnd
}

// labelStartRef remembers where a label start was entered so label ends
// find the nearest open one without scanning every event.
type labelStartRef struct {
	tok   *Token
	index int
}

func (t *Tokenizer) pushLabelStart(tok *Token) {
	t.labelStarts = append(t.labelStarts, labelStartRef{tok: tok, index: len(t.events) - 1})
}

// openLabelStart returns the nearest label start still in the events that
// has not been used by or rejected for a label end. Entries that attempts
// rewound, resolvers rewrote or label ends settled are dropped on the way.
func (t *Tokenizer) openLabelStart() *Token {
	for n := len(t.labelStarts); n > 0; n-- {
		ref := t.labelStarts[n-1]
		if ref.index < len(t.events) && t.events[ref.index].Token == ref.tok && !ref.tok.balanced {
			return ref.tok
		}
		t.labelStarts = t.labelStarts[:n-1]
	}
	return nil
}

func tokenizeLabelStartLink(t *Tokenizer, effects *Effects, ok, _ State) State {
	return func(code Code) State {
		invariant(code == '[', "expected `[`")
		t.pushLabelStart(effects.Enter(TypeLabelLink))
		effects.Enter(TypeLabelMarker)
		effects.Consume(code)
		effects.Exit(TypeLabelMarker)
		effects.Exit(TypeLabelLink)
		return ok
	}
}

func tokenizeLabelStartImage(t *Tokenizer, effects *Effects, ok, nok State) State {
	open := func(code Code) State {
		if code != '[' {
			return nok(code)
		}
		effects.Enter(TypeLabelMarker)
		effects.Consume(code)
		effects.Exit(TypeLabelMarker)
		effects.Exit(TypeLabelImage)
		return ok
	}
	return func(code Code) State {
		invariant(code == '!', "expected `!`")
		t.pushLabelStart(effects.Enter(TypeLabelImage))
		effects.Enter(TypeLabelImageMarker)
		effects.Consume(code)
		effects.Exit(TypeLabelImageMarker)
		return open
	}
}
