package micromark

var lineEnding = &Construct{Name: "lineEnding"}

func init() {
	lineEnding.Tokenize = tokenizeLineEnding
}

func tokenizeLineEnding(_ *Tokenizer, effects *Effects, ok, _ State) State {
	return func(code Code) State {
		invariant(markdownLineEnding(code), "expected eol")
		effects.Enter(TypeLineEnding)
		effects.Consume(code)
		effects.Exit(TypeLineEnding)
		return factorySpace(effects, ok, TypeLinePrefix, 0)
	}
}
