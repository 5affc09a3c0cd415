package micromark

var characterReference = &Construct{Name: "characterReference"}

func init() {
	characterReference.Tokenize = tokenizeCharacterReference
}

// characterReferenceTokenizer matches `&name;`, `&#123;` and `&#x1F;`.
// Named references only match when the name is a known entity.
type characterReferenceTokenizer struct {
	t       *Tokenizer
	effects *Effects
	ok, nok State
	size    int
	max     int
	named   bool
	test    func(Code) bool
}

func tokenizeCharacterReference(t *Tokenizer, effects *Effects, ok, nok State) State {
	r := &characterReferenceTokenizer{t: t, effects: effects, ok: ok, nok: nok}
	return r.start
}

func (r *characterReferenceTokenizer) start(code Code) State {
	invariant(code == '&', "expected `&`")
	r.effects.Enter(TypeCharacterReference)
	r.effects.Enter(TypeCharacterReferenceMarker)
	r.effects.Consume(code)
	r.effects.Exit(TypeCharacterReferenceMarker)
	return r.open
}

func (r *characterReferenceTokenizer) open(code Code) State {
	if code == '#' {
		r.effects.Enter(TypeCharacterReferenceMarkerNumeric)
		r.effects.Consume(code)
		r.effects.Exit(TypeCharacterReferenceMarkerNumeric)
		return r.numeric
	}
	r.effects.Enter(TypeCharacterReferenceValue)
	r.max, r.test, r.named = characterReferenceNamed, asciiAlphanumeric, true
	return r.value(code)
}

func (r *characterReferenceTokenizer) numeric(code Code) State {
	if code == 'x' || code == 'X' {
		r.effects.Enter(TypeCharacterReferenceMarkerHexadecimal)
		r.effects.Consume(code)
		r.effects.Exit(TypeCharacterReferenceMarkerHexadecimal)
		r.effects.Enter(TypeCharacterReferenceValue)
		r.max, r.test = characterReferenceHex, asciiHexDigit
		return r.value
	}
	r.effects.Enter(TypeCharacterReferenceValue)
	r.max, r.test = characterReferenceDec, asciiDigit
	return r.value(code)
}

func (r *characterReferenceTokenizer) value(code Code) State {
	if code == ';' && r.size > 0 {
		tok := r.effects.Exit(TypeCharacterReferenceValue)
		if r.named {
			if _, ok := DecodeNamedCharacterReference(r.t.SliceSerialize(tok, false)); !ok {
				return r.nok(code)
			}
		}
		r.effects.Enter(TypeCharacterReferenceMarker)
		r.effects.Consume(code)
		r.effects.Exit(TypeCharacterReferenceMarker)
		r.effects.Exit(TypeCharacterReference)
		return r.ok
	}
	if r.test(code) && r.size < r.max {
		r.size++
		r.effects.Consume(code)
		return r.value
	}
	return r.nok(code)
}
