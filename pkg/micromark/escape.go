package micromark

var (
	characterEscape = &Construct{Name: "characterEscape"}
	hardBreakEscape = &Construct{Name: "hardBreakEscape"}
)

func init() {
	characterEscape.Tokenize = tokenizeCharacterEscape
	hardBreakEscape.Tokenize = tokenizeHardBreakEscape
}

// tokenizeCharacterEscape matches a backslash before ASCII punctuation.
func tokenizeCharacterEscape(_ *Tokenizer, effects *Effects, ok, nok State) State {
	inside := func(code Code) State {
		if !asciiPunctuation(code) {
			return nok(code)
		}
		effects.Enter(TypeCharacterEscapeValue)
		effects.Consume(code)
		effects.Exit(TypeCharacterEscapeValue)
		effects.Exit(TypeCharacterEscape)
		return ok
	}
	return func(code Code) State {
		invariant(code == '\\', "expected `\\`")
		effects.Enter(TypeCharacterEscape)
		effects.Enter(TypeEscapeMarker)
		effects.Consume(code)
		effects.Exit(TypeEscapeMarker)
		return inside
	}
}

// tokenizeHardBreakEscape matches a backslash at the end of a line.
func tokenizeHardBreakEscape(_ *Tokenizer, effects *Effects, ok, nok State) State {
	after := func(code Code) State {
		if !markdownLineEnding(code) {
			return nok(code)
		}
		effects.Exit(TypeHardBreakEscape)
		return ok(code)
	}
	return func(code Code) State {
		invariant(code == '\\', "expected `\\`")
		effects.Enter(TypeHardBreakEscape)
		effects.Consume(code)
		return after
	}
}
