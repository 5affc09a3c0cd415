package micromark

var (
	blockQuote             = &Construct{Name: "blockQuote"}
	blockQuoteContinuation = &Construct{}
)

func init() {
	blockQuote.Tokenize = tokenizeBlockQuoteStart
	blockQuote.Continuation = blockQuoteContinuation
	blockQuote.Exit = func(_ *Tokenizer, effects *Effects) {
		effects.Exit(TypeBlockQuote)
	}
	blockQuoteContinuation.Tokenize = tokenizeBlockQuoteContinuation
}

func tokenizeBlockQuoteStart(t *Tokenizer, effects *Effects, ok, nok State) State {
	after := func(code Code) State {
		if markdownSpace(code) {
			effects.Enter(TypeBlockQuotePrefixWhitespace)
			effects.Consume(code)
			effects.Exit(TypeBlockQuotePrefixWhitespace)
			effects.Exit(TypeBlockQuotePrefix)
			return ok
		}
		// A marker must be followed by whitespace.
		effects.Exit(TypeBlockQuotePrefix)
		return nok(code)
	}

	return func(code Code) State {
		if code != '>' {
			return nok(code)
		}
		state := t.containerState
		if !state.Open {
			tok := effects.Enter(TypeBlockQuote)
			tok.container = true
			state.Open = true
		}
		effects.Enter(TypeBlockQuotePrefix)
		effects.Enter(TypeBlockQuoteMarker)
		effects.Consume(code)
		effects.Exit(TypeBlockQuoteMarker)
		return after
	}
}

func tokenizeBlockQuoteContinuation(t *Tokenizer, effects *Effects, ok, nok State) State {
	before := func(code Code) State {
		return effects.Attempt(blockQuote, ok, nok)(code)
	}
	return func(code Code) State {
		if markdownSpace(code) {
			return factorySpace(effects, before, TypeLinePrefix, t.tabSizeLimit())(code)
		}
		return before(code)
	}
}
