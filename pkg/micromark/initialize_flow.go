package micromark

var flowInitializer Initializer

func init() {
	flowInitializer.Tokenize = initializeFlow
}

type flowTokenizer struct {
	t       *Tokenizer
	effects *Effects
	initial State
}

func initializeFlow(t *Tokenizer, effects *Effects) State {
	f := &flowTokenizer{t: t, effects: effects}
	constructs := t.constructs()

	f.initial = effects.Attempt(blankLine, f.atBlankEnding,
		effects.Attempt(constructs.FlowInitial, f.afterConstruct,
			factorySpace(effects,
				effects.Attempt(constructs.Flow, f.afterConstruct,
					effects.Attempt(content, f.afterConstruct, nil)),
				TypeLinePrefix, 0)))
	return f.initial
}

func (f *flowTokenizer) atBlankEnding(code Code) State {
	invariant(code == CodeEOF || markdownLineEnding(code), "expected eol or eof")
	if code == CodeEOF {
		f.effects.Consume(code)
		return nil
	}
	f.effects.Enter(TypeLineEndingBlank)
	f.effects.Consume(code)
	f.effects.Exit(TypeLineEndingBlank)
	f.t.currentConstruct = nil
	return f.initial
}

func (f *flowTokenizer) afterConstruct(code Code) State {
	invariant(code == CodeEOF || markdownLineEnding(code), "expected eol or eof")
	if code == CodeEOF {
		f.effects.Consume(code)
		return nil
	}
	f.effects.Enter(TypeLineEnding)
	f.effects.Consume(code)
	f.effects.Exit(TypeLineEnding)
	f.t.currentConstruct = nil
	return f.initial
}
