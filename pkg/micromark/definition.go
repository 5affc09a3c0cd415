package micromark

var (
	definition            = &Construct{Name: "definition"}
	definitionTitleBefore = &Construct{Partial: true}
)

func init() {
	definition.Tokenize = tokenizeDefinition
	definitionTitleBefore.Tokenize = tokenizeDefinitionTitleBefore
}

// labelIdentifier normalizes the label of the token that just closed,
// without its brackets.
func labelIdentifier(t *Tokenizer) string {
	tail := t.events[len(t.events)-1]
	label := t.SliceSerialize(tail.Token, false)
	return NormalizeIdentifier(label[1 : len(label)-1])
}

type definitionTokenizer struct {
	t          *Tokenizer
	effects    *Effects
	ok, nok    State
	identifier string
}

func tokenizeDefinition(t *Tokenizer, effects *Effects, ok, nok State) State {
	d := &definitionTokenizer{t: t, effects: effects, ok: ok, nok: nok}
	return d.start
}

func (d *definitionTokenizer) start(code Code) State {
	invariant(code == '[', "expected `[`")
	d.effects.Enter(TypeDefinition)
	return factoryLabel(d.effects, d.labelAfter, d.nok,
		TypeDefinitionLabel, TypeDefinitionLabelMarker, TypeDefinitionLabelString)(code)
}

func (d *definitionTokenizer) labelAfter(code Code) State {
	d.identifier = labelIdentifier(d.t)
	if code != ':' {
		return d.nok(code)
	}
	d.effects.Enter(TypeDefinitionMarker)
	d.effects.Consume(code)
	d.effects.Exit(TypeDefinitionMarker)
	return d.markerAfter
}

func (d *definitionTokenizer) markerAfter(code Code) State {
	if markdownLineEndingOrSpace(code) {
		return factoryWhitespace(d.effects, d.destinationBefore)(code)
	}
	return d.destinationBefore(code)
}

func (d *definitionTokenizer) destinationBefore(code Code) State {
	return factoryDestination(d.effects, d.destinationAfter, d.nok,
		TypeDefinitionDestination,
		TypeDefinitionDestinationLiteral,
		TypeDefinitionDestinationLiteralMarker,
		TypeDefinitionDestinationRaw,
		TypeDefinitionDestinationString,
		0,
	)(code)
}

func (d *definitionTokenizer) destinationAfter(code Code) State {
	return d.effects.Attempt(definitionTitleBefore, d.after, d.after)(code)
}

func (d *definitionTokenizer) after(code Code) State {
	if markdownSpace(code) {
		return factorySpace(d.effects, d.afterWhitespace, TypeWhitespace, 0)(code)
	}
	return d.afterWhitespace(code)
}

func (d *definitionTokenizer) afterWhitespace(code Code) State {
	if code != CodeEOF && !markdownLineEnding(code) {
		return d.nok(code)
	}
	d.effects.Exit(TypeDefinition)
	d.t.session.defined[d.identifier] = true
	return d.ok(code)
}

func tokenizeDefinitionTitleBefore(_ *Tokenizer, effects *Effects, ok, nok State) State {
	optionalWhitespaceAfter := func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			return ok(code)
		}
		return nok(code)
	}
	titleAfter := func(code Code) State {
		if markdownSpace(code) {
			return factorySpace(effects, optionalWhitespaceAfter, TypeWhitespace, 0)(code)
		}
		return optionalWhitespaceAfter(code)
	}
	beforeMarker := func(code Code) State {
		return factoryTitle(effects, titleAfter, nok,
			TypeDefinitionTitle, TypeDefinitionTitleMarker, TypeDefinitionTitleString)(code)
	}
	return func(code Code) State {
		if markdownLineEndingOrSpace(code) {
			return factoryWhitespace(effects, beforeMarker)(code)
		}
		return nok(code)
	}
}
