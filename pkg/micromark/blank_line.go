package micromark

var blankLine = &Construct{Partial: true}

func init() {
	blankLine.Tokenize = tokenizeBlankLine
}

func tokenizeBlankLine(_ *Tokenizer, effects *Effects, ok, nok State) State {
	after := func(code Code) State {
		if code == CodeEOF || markdownLineEnding(code) {
			return ok(code)
		}
		return nok(code)
	}
	return func(code Code) State {
		if markdownSpace(code) {
			return factorySpace(effects, after, TypeLinePrefix, 0)(code)
		}
		return after(code)
	}
}
