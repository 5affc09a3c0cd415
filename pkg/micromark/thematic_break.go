package micromark

var thematicBreak = &Construct{Name: "thematicBreak"}

func init() {
	thematicBreak.Tokenize = tokenizeThematicBreak
}

type thematicBreakTokenizer struct {
	effects *Effects
	ok, nok State
	marker  Code
	size    int
}

func tokenizeThematicBreak(_ *Tokenizer, effects *Effects, ok, nok State) State {
	b := &thematicBreakTokenizer{effects: effects, ok: ok, nok: nok}
	return b.start
}

func (b *thematicBreakTokenizer) start(code Code) State {
	invariant(code == '*' || code == '-' || code == '_', "expected `*`, `-`, or `_`")
	b.effects.Enter(TypeThematicBreak)
	b.marker = code
	return b.atBreak(code)
}

func (b *thematicBreakTokenizer) atBreak(code Code) State {
	if code == b.marker {
		b.effects.Enter(TypeThematicBreakSequence)
		return b.sequence(code)
	}
	if b.size >= thematicBreakMarkerMin && (code == CodeEOF || markdownLineEnding(code)) {
		b.effects.Exit(TypeThematicBreak)
		return b.ok(code)
	}
	return b.nok(code)
}

func (b *thematicBreakTokenizer) sequence(code Code) State {
	if code == b.marker {
		b.effects.Consume(code)
		b.size++
		return b.sequence
	}
	b.effects.Exit(TypeThematicBreakSequence)
	if markdownSpace(code) {
		return factorySpace(b.effects, b.atBreak, TypeWhitespace, 0)(code)
	}
	return b.atBreak(code)
}
