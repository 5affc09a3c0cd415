package micromark

var autolink = &Construct{Name: "autolink"}

func init() {
	autolink.Tokenize = tokenizeAutolink
}

// autolinkTokenizer matches `<scheme:rest>` and `<user@host>`.
type autolinkTokenizer struct {
	effects *Effects
	ok, nok State
	size    int
}

func tokenizeAutolink(_ *Tokenizer, effects *Effects, ok, nok State) State {
	a := &autolinkTokenizer{effects: effects, ok: ok, nok: nok}
	return a.start
}

func schemeCode(code Code) bool {
	return code == '+' || code == '-' || code == '.' || asciiAlphanumeric(code)
}

func (a *autolinkTokenizer) start(code Code) State {
	invariant(code == '<', "expected `<`")
	a.effects.Enter(TypeAutolink)
	a.effects.Enter(TypeAutolinkMarker)
	a.effects.Consume(code)
	a.effects.Exit(TypeAutolinkMarker)
	a.effects.Enter(TypeAutolinkProtocol)
	return a.open
}

func (a *autolinkTokenizer) open(code Code) State {
	if asciiAlpha(code) {
		a.effects.Consume(code)
		return a.schemeOrEmailAtext
	}
	if code == '@' {
		return a.nok(code)
	}
	return a.emailAtext(code)
}

func (a *autolinkTokenizer) schemeOrEmailAtext(code Code) State {
	if schemeCode(code) {
		a.size = 1
		return a.schemeInsideOrEmailAtext(code)
	}
	return a.emailAtext(code)
}

func (a *autolinkTokenizer) schemeInsideOrEmailAtext(code Code) State {
	if code == ':' {
		a.effects.Consume(code)
		a.size = 0
		return a.urlInside
	}
	if schemeCode(code) && a.size < autolinkSchemeSizeMax {
		a.size++
		a.effects.Consume(code)
		return a.schemeInsideOrEmailAtext
	}
	a.size = 0
	return a.emailAtext(code)
}

func (a *autolinkTokenizer) urlInside(code Code) State {
	if code == '>' {
		a.effects.Exit(TypeAutolinkProtocol)
		return a.end(code)
	}
	if code == CodeEOF || code == ' ' || code == '<' || asciiControl(code) {
		return a.nok(code)
	}
	a.effects.Consume(code)
	return a.urlInside
}

func (a *autolinkTokenizer) emailAtext(code Code) State {
	if code == '@' {
		a.effects.Consume(code)
		return a.emailAtSignOrDot
	}
	if asciiAtext(code) {
		a.effects.Consume(code)
		return a.emailAtext
	}
	return a.nok(code)
}

func (a *autolinkTokenizer) emailAtSignOrDot(code Code) State {
	if asciiAlphanumeric(code) {
		return a.emailLabel(code)
	}
	return a.nok(code)
}

func (a *autolinkTokenizer) emailLabel(code Code) State {
	if code == '.' {
		a.effects.Consume(code)
		a.size = 0
		return a.emailAtSignOrDot
	}
	if code == '>' {
		a.effects.Exit(TypeAutolinkProtocol).Type = TypeAutolinkEmail
		return a.end(code)
	}
	return a.emailValue(code)
}

func (a *autolinkTokenizer) emailValue(code Code) State {
	if (code == '-' || asciiAlphanumeric(code)) && a.size < autolinkDomainSizeMax {
		a.size++
		next := a.emailLabel
		if code == '-' {
			next = a.emailValue
		}
		a.effects.Consume(code)
		return next
	}
	return a.nok(code)
}

func (a *autolinkTokenizer) end(code Code) State {
	a.effects.Enter(TypeAutolinkMarker)
	a.effects.Consume(code)
	a.effects.Exit(TypeAutolinkMarker)
	a.effects.Exit(TypeAutolink)
	return a.ok
}
