package micromark

// factorySpace consumes spaces and tabs into a token of typ. With max > 0 at
// most max-1 columns are consumed.
func factorySpace(effects *Effects, ok State, typ TokenType, max int) State {
	limit := -1
	if max > 0 {
		limit = max - 1
	}
	size := 0

	var prefix State
	prefix = func(code Code) State {
		if markdownSpace(code) && (limit < 0 || size < limit) {
			size++
			effects.Consume(code)
			return prefix
		}
		effects.Exit(typ)
		return ok(code)
	}

	return func(code Code) State {
		size = 0
		if markdownSpace(code) {
			effects.Enter(typ)
			return prefix(code)
		}
		return ok(code)
	}
}

// factoryWhitespace consumes whitespace including at most the line endings
// content allows, typing spaces before the first ending as a line suffix and
// after it as a line prefix.
func factoryWhitespace(effects *Effects, ok State) State {
	seen := false
	var start State
	start = func(code Code) State {
		if markdownLineEnding(code) {
			effects.Enter(TypeLineEnding)
			effects.Consume(code)
			effects.Exit(TypeLineEnding)
			seen = true
			return start
		}
		if markdownSpace(code) {
			typ := TypeLineSuffix
			if seen {
				typ = TypeLinePrefix
			}
			return factorySpace(effects, start, typ, 0)(code)
		}
		return ok(code)
	}
	return start
}

// labelFactory tokenizes a bracketed label such as `[a]`.
type labelFactory struct {
	effects    *Effects
	ok, nok    State
	typ        TokenType
	markerType TokenType
	stringType TokenType
	size       int
	seen       bool
}

func factoryLabel(effects *Effects, ok, nok State, typ, markerType, stringType TokenType) State {
	f := &labelFactory{effects: effects, ok: ok, nok: nok, typ: typ, markerType: markerType, stringType: stringType}
	return f.start
}

func (f *labelFactory) start(code Code) State {
	invariant(code == '[', "expected `[`")
	f.effects.Enter(f.typ)
	f.effects.Enter(f.markerType)
	f.effects.Consume(code)
	f.effects.Exit(f.markerType)
	f.effects.Enter(f.stringType)
	return f.atBreak
}

func (f *labelFactory) atBreak(code Code) State {
	if f.size > linkReferenceSizeMax || code == CodeEOF || code == '[' || (code == ']' && !f.seen) {
		return f.nok(code)
	}

	if code == ']' {
		f.effects.Exit(f.stringType)
		f.effects.Enter(f.markerType)
		f.effects.Consume(code)
		f.effects.Exit(f.markerType)
		f.effects.Exit(f.typ)
		return f.ok
	}

	if markdownLineEnding(code) {
		f.effects.Enter(TypeLineEnding)
		f.effects.Consume(code)
		f.effects.Exit(TypeLineEnding)
		return f.atBreak
	}

	tok := f.effects.Enter(TypeChunkString)
	tok.ContentType = ContentTypeString
	return f.inside(code)
}

func (f *labelFactory) inside(code Code) State {
	if code == CodeEOF || code == '[' || code == ']' || markdownLineEnding(code) || f.size > linkReferenceSizeMax {
		f.effects.Exit(TypeChunkString)
		return f.atBreak(code)
	}
	f.size++
	f.effects.Consume(code)
	if !f.seen {
		f.seen = !markdownSpace(code)
	}
	if code == '\\' {
		return f.escape
	}
	return f.inside
}

func (f *labelFactory) escape(code Code) State {
	if code == '[' || code == '\\' || code == ']' {
		f.effects.Consume(code)
		f.size++
		return f.inside
	}
	return f.inside(code)
}

// titleFactory tokenizes a title in double quotes, single quotes or
// parentheses.
type titleFactory struct {
	effects    *Effects
	ok, nok    State
	typ        TokenType
	markerType TokenType
	stringType TokenType
	marker     Code
}

func factoryTitle(effects *Effects, ok, nok State, typ, markerType, stringType TokenType) State {
	f := &titleFactory{effects: effects, ok: ok, nok: nok, typ: typ, markerType: markerType, stringType: stringType}
	return f.start
}

func (f *titleFactory) start(code Code) State {
	if code != '"' && code != '\'' && code != '(' {
		return f.nok(code)
	}
	f.effects.Enter(f.typ)
	f.effects.Enter(f.markerType)
	f.effects.Consume(code)
	f.effects.Exit(f.markerType)
	f.marker = code
	if code == '(' {
		f.marker = ')'
	}
	return f.begin
}

func (f *titleFactory) begin(code Code) State {
	if code == f.marker {
		f.effects.Enter(f.markerType)
		f.effects.Consume(code)
		f.effects.Exit(f.markerType)
		f.effects.Exit(f.typ)
		return f.ok
	}
	f.effects.Enter(f.stringType)
	return f.atBreak(code)
}

func (f *titleFactory) atBreak(code Code) State {
	if code == f.marker {
		f.effects.Exit(f.stringType)
		return f.begin(f.marker)
	}

	if code == CodeEOF {
		return f.nok(code)
	}

	if markdownLineEnding(code) {
		f.effects.Enter(TypeLineEnding)
		f.effects.Consume(code)
		f.effects.Exit(TypeLineEnding)
		return factorySpace(f.effects, f.atBreak, TypeLinePrefix, 0)
	}

	tok := f.effects.Enter(TypeChunkString)
	tok.ContentType = ContentTypeString
	return f.inside(code)
}

func (f *titleFactory) inside(code Code) State {
	if code == f.marker || code == CodeEOF || markdownLineEnding(code) {
		f.effects.Exit(TypeChunkString)
		return f.atBreak(code)
	}
	f.effects.Consume(code)
	if code == '\\' {
		return f.escape
	}
	return f.inside
}

func (f *titleFactory) escape(code Code) State {
	if code == f.marker || code == '\\' {
		f.effects.Consume(code)
		return f.inside
	}
	return f.inside(code)
}

// destinationFactory tokenizes a link destination, either enclosed in
// angle brackets or raw with balanced parentheses.
type destinationFactory struct {
	effects           *Effects
	ok, nok           State
	typ               TokenType
	literalType       TokenType
	literalMarkerType TokenType
	rawType           TokenType
	stringType        TokenType
	limit             int
	balance           int
}

func factoryDestination(effects *Effects, ok, nok State, typ, literalType, literalMarkerType, rawType, stringType TokenType, max int) State {
	f := &destinationFactory{
		effects:           effects,
		ok:                ok,
		nok:               nok,
		typ:               typ,
		literalType:       literalType,
		literalMarkerType: literalMarkerType,
		rawType:           rawType,
		stringType:        stringType,
		limit:             max,
	}
	return f.start
}

func (f *destinationFactory) start(code Code) State {
	if code == '<' {
		f.effects.Enter(f.typ)
		f.effects.Enter(f.literalType)
		f.effects.Enter(f.literalMarkerType)
		f.effects.Consume(code)
		f.effects.Exit(f.literalMarkerType)
		return f.enclosedBefore
	}

	if code == CodeEOF || code == ' ' || code == ')' || asciiControl(code) {
		return f.nok(code)
	}

	f.effects.Enter(f.typ)
	f.effects.Enter(f.rawType)
	f.effects.Enter(f.stringType)
	tok := f.effects.Enter(TypeChunkString)
	tok.ContentType = ContentTypeString
	return f.raw(code)
}

func (f *destinationFactory) enclosedBefore(code Code) State {
	if code == '>' {
		f.effects.Enter(f.literalMarkerType)
		f.effects.Consume(code)
		f.effects.Exit(f.literalMarkerType)
		f.effects.Exit(f.literalType)
		f.effects.Exit(f.typ)
		return f.ok
	}
	f.effects.Enter(f.stringType)
	tok := f.effects.Enter(TypeChunkString)
	tok.ContentType = ContentTypeString
	return f.enclosed(code)
}

func (f *destinationFactory) enclosed(code Code) State {
	if code == '>' {
		f.effects.Exit(TypeChunkString)
		f.effects.Exit(f.stringType)
		return f.enclosedBefore(code)
	}
	if code == CodeEOF || code == '<' || markdownLineEnding(code) {
		return f.nok(code)
	}
	f.effects.Consume(code)
	if code == '\\' {
		return f.enclosedEscape
	}
	return f.enclosed
}

func (f *destinationFactory) enclosedEscape(code Code) State {
	if code == '<' || code == '>' || code == '\\' {
		f.effects.Consume(code)
		return f.enclosed
	}
	return f.enclosed(code)
}

func (f *destinationFactory) raw(code Code) State {
	if f.balance == 0 && (code == CodeEOF || code == ')' || markdownLineEndingOrSpace(code)) {
		f.effects.Exit(TypeChunkString)
		f.effects.Exit(f.stringType)
		f.effects.Exit(f.rawType)
		f.effects.Exit(f.typ)
		return f.ok(code)
	}
	if (f.limit <= 0 || f.balance < f.limit) && code == '(' {
		f.effects.Consume(code)
		f.balance++
		return f.raw
	}
	if code == ')' {
		f.effects.Consume(code)
		f.balance--
		return f.raw
	}
	if code == CodeEOF || code == ' ' || code == '(' || asciiControl(code) {
		return f.nok(code)
	}
	f.effects.Consume(code)
	if code == '\\' {
		return f.rawEscape
	}
	return f.raw
}

func (f *destinationFactory) rawEscape(code Code) State {
	if code == '(' || code == ')' || code == '\\' {
		f.effects.Consume(code)
		return f.raw
	}
	return f.raw(code)
}
