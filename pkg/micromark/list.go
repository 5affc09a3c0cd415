package micromark

var (
	list = &Construct{Name: "list"}

	listContinuation         = &Construct{}
	listItemPrefixWhitespace = &Construct{Partial: true}
	listItemIndentConstruct  = &Construct{Partial: true}
)

func init() {
	list.Tokenize = tokenizeListStart
	list.Continuation = listContinuation
	list.Exit = tokenizeListEnd
	listContinuation.Tokenize = tokenizeListContinuation
	listItemPrefixWhitespace.Tokenize = tokenizeListItemPrefixWhitespace
	listItemIndentConstruct.Tokenize = tokenizeListItemIndent
}

// listStart opens a list item: a bullet or an ordered value and its marker,
// followed by the whitespace that sets the item's content indent.
type listStart struct {
	t           *Tokenizer
	effects     *Effects
	ok, nok     State
	initialSize int
	size        int
}

func tokenizeListStart(t *Tokenizer, effects *Effects, ok, nok State) State {
	s := &listStart{t: t, effects: effects, ok: ok, nok: nok}
	if n := len(t.events); n > 0 && t.events[n-1].Token.Type == TypeLinePrefix {
		tail := t.events[n-1]
		s.initialSize = len(tail.Context.SliceSerialize(tail.Token, true))
	}
	return s.start
}

func (s *listStart) start(code Code) State {
	state := s.t.containerState
	kind := state.Kind
	if kind == "" {
		kind = TypeListOrdered
		if code == '*' || code == '+' || code == '-' {
			kind = TypeListUnordered
		}
	}

	matches := asciiDigit(code)
	if kind == TypeListUnordered {
		matches = state.Marker == 0 || code == state.Marker
	}
	if !matches {
		return s.nok(code)
	}

	if state.Kind == "" {
		state.Kind = kind
		tok := s.effects.Enter(kind)
		tok.container = true
	}

	if kind == TypeListUnordered {
		s.effects.Enter(TypeListItemPrefix)
		if code == '*' || code == '-' {
			return s.effects.Check(thematicBreak, s.nok, s.atMarker)(code)
		}
		return s.atMarker(code)
	}

	if !s.t.interrupt || code == '1' {
		s.effects.Enter(TypeListItemPrefix)
		s.effects.Enter(TypeListItemValue)
		return s.inside(code)
	}
	return s.nok(code)
}

func (s *listStart) inside(code Code) State {
	if asciiDigit(code) {
		s.size++
		if s.size < listItemValueSizeMax {
			s.effects.Consume(code)
			return s.inside
		}
	}

	marker := s.t.containerState.Marker
	isMarker := code == ')' || code == '.'
	if marker != 0 {
		isMarker = code == marker
	}
	if (!s.t.interrupt || s.size < 2) && isMarker {
		s.effects.Exit(TypeListItemValue)
		return s.atMarker(code)
	}
	return s.nok(code)
}

func (s *listStart) atMarker(code Code) State {
	invariant(code != CodeEOF, "eof is not a marker")
	s.effects.Enter(TypeListItemMarker)
	s.effects.Consume(code)
	s.effects.Exit(TypeListItemMarker)
	if s.t.containerState.Marker == 0 {
		s.t.containerState.Marker = code
	}

	onBlank := s.onBlank
	if s.t.interrupt {
		onBlank = s.nok
	}
	return s.effects.Check(blankLine, onBlank,
		s.effects.Attempt(listItemPrefixWhitespace, s.endOfPrefix, s.otherPrefix))
}

func (s *listStart) onBlank(code Code) State {
	s.t.containerState.InitialBlankLine = true
	s.initialSize++
	return s.endOfPrefix(code)
}

func (s *listStart) otherPrefix(code Code) State {
	if markdownSpace(code) {
		s.effects.Enter(TypeListItemPrefixWhitespace)
		s.effects.Consume(code)
		s.effects.Exit(TypeListItemPrefixWhitespace)
		return s.endOfPrefix
	}
	return s.nok(code)
}

func (s *listStart) endOfPrefix(code Code) State {
	prefix := s.effects.Exit(TypeListItemPrefix)
	s.t.containerState.Size = s.initialSize + len(s.t.SliceSerialize(prefix, true))
	return s.ok(code)
}

// listContinuationTokenizer decides whether a line continues the open list item:
// blank lines and lines indented by the item's size do, anything else may
// still start a sibling item.
type listContinuationTokenizer struct {
	t       *Tokenizer
	effects *Effects
	ok, nok State
}

func tokenizeListContinuation(t *Tokenizer, effects *Effects, ok, nok State) State {
	c := &listContinuationTokenizer{t: t, effects: effects, ok: ok, nok: nok}
	t.containerState.closeFlow = false
	return effects.Check(blankLine, c.onBlank, c.notBlank)
}

func (c *listContinuationTokenizer) onBlank(code Code) State {
	state := c.t.containerState
	state.FurtherBlankLines = state.FurtherBlankLines || state.InitialBlankLine
	return factorySpace(c.effects, c.ok, TypeListItemIndent, state.Size+1)(code)
}

func (c *listContinuationTokenizer) notBlank(code Code) State {
	state := c.t.containerState
	further := state.FurtherBlankLines
	state.FurtherBlankLines = false
	state.InitialBlankLine = false
	if further || !markdownSpace(code) {
		return c.notInCurrentItem(code)
	}
	return c.effects.Attempt(listItemIndentConstruct, c.ok, c.notInCurrentItem)(code)
}

func (c *listContinuationTokenizer) notInCurrentItem(code Code) State {
	c.t.containerState.closeFlow = true
	c.t.interrupt = false
	return factorySpace(c.effects, c.effects.Attempt(list, c.ok, c.nok), TypeLinePrefix, c.t.tabSizeLimit())(code)
}

func tokenizeListItemIndent(t *Tokenizer, effects *Effects, ok, nok State) State {
	size := t.containerState.Size
	return factorySpace(effects, func(code Code) State {
		if n := len(t.events); n > 0 {
			tail := t.events[n-1]
			if tail.Token.Type == TypeListItemIndent && len(tail.Context.SliceSerialize(tail.Token, true)) == size {
				return ok(code)
			}
		}
		return nok(code)
	}, TypeListItemIndent, size+1)
}

func tokenizeListEnd(t *Tokenizer, effects *Effects) {
	invariant(t.containerState.Kind != "", "expected list kind")
	effects.Exit(t.containerState.Kind)
}

func tokenizeListItemPrefixWhitespace(t *Tokenizer, effects *Effects, ok, nok State) State {
	limit := t.tabSizeLimit()
	if limit > 0 {
		limit++
	}
	return factorySpace(effects, func(code Code) State {
		if n := len(t.events); !markdownSpace(code) && n > 0 && t.events[n-1].Token.Type == TypeListItemPrefixWhitespace {
			return ok(code)
		}
		return nok(code)
	}, TypeListItemPrefixWhitespace, limit)
}
