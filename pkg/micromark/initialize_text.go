package micromark

var (
	stringInitializer Initializer
	textInitializer   Initializer

	// resolveText merges adjacent data; it runs inside spans too.
	resolveText       = &Resolver{Name: "text"}
	resolveTextString = &Resolver{Name: "string"}
	resolveTextInline = &Resolver{Name: "textLineSuffixes"}
)

func init() {
	resolveText.Resolve = resolveAllData
	resolveTextString.Resolve = resolveAllData
	resolveTextInline.Resolve = func(events []Event, t *Tokenizer) []Event {
		return resolveAllLineSuffixes(resolveAllData(events, t), t)
	}

	stringInitializer = Initializer{
		Tokenize:   func(t *Tokenizer, e *Effects) State { return initializeText(t, e, t.constructs().String) },
		ResolveAll: resolveTextString,
	}
	textInitializer = Initializer{
		Tokenize:   func(t *Tokenizer, e *Effects) State { return initializeText(t, e, t.constructs().Text) },
		ResolveAll: resolveTextInline,
	}
}

type textTokenizer struct {
	t          *Tokenizer
	effects    *Effects
	constructs ConstructMap
	text       State
}

func initializeText(t *Tokenizer, effects *Effects, constructs ConstructMap) State {
	x := &textTokenizer{t: t, effects: effects, constructs: constructs}
	x.text = effects.Attempt(constructs, x.start, x.notText)
	return x.start
}

func (x *textTokenizer) start(code Code) State {
	if x.atBreak(code) {
		return x.text(code)
	}
	return x.notText(code)
}

func (x *textTokenizer) notText(code Code) State {
	if code == CodeEOF {
		x.effects.Consume(code)
		return nil
	}
	x.effects.Enter(TypeData)
	x.effects.Consume(code)
	return x.data
}

func (x *textTokenizer) data(code Code) State {
	if x.atBreak(code) {
		x.effects.Exit(TypeData)
		return x.text(code)
	}
	x.effects.Consume(code)
	return x.data
}

// atBreak reports whether a construct may start at code.
func (x *textTokenizer) atBreak(code Code) bool {
	if code == CodeEOF {
		return true
	}
	for _, c := range x.constructs.candidates(code) {
		if c.Previous == nil || c.Previous(x.t, x.t.previous) {
			return true
		}
	}
	return false
}

// resolveAllData joins runs of adjacent data tokens into one. The list is
// compacted in place.
func resolveAllData(events []Event, _ *Tokenizer) []Event {
	out := events[:0]
	for index := 0; index < len(events); index++ {
		out = append(out, events[index])
		if events[index].Token.Type != TypeData || index+1 == len(events) {
			continue
		}

		tok := events[index].Token
		out = append(out, events[index+1])
		end := index + 2
		for end < len(events) && events[end].Token.Type == TypeData {
			end++
		}
		tok.End = events[end-1].Token.End
		index = end - 1
	}
	return out
}

// resolveAllLineSuffixes splits trailing whitespace off data before a line
// ending: two or more spaces form a hard break, anything else a line
// suffix. Whitespace at the very end is always a suffix.
func resolveAllLineSuffixes(events []Event, t *Tokenizer) []Event {
	var out []Event
	copied := 0

	for eventIndex := 1; eventIndex <= len(events); eventIndex++ {
		if !(eventIndex == len(events) || events[eventIndex].Token.Type == TypeLineEnding) ||
			events[eventIndex-1].Token.Type != TypeData {
			continue
		}

		data := events[eventIndex-1].Token
		chunks := t.SliceStream(data)
		index := len(chunks)
		bufferIndex := -1
		size := 0
		tabs := false
		exhausted := true

		for index > 0 {
			index--
			chunk := chunks[index]
			if chunk.IsText() {
				bufferIndex = len(chunk.Text)
				for bufferIndex > 0 && chunk.Text[bufferIndex-1] == ' ' {
					size++
					bufferIndex--
				}
				if bufferIndex > 0 {
					exhausted = false
					break
				}
				bufferIndex = -1
			} else if chunk.Code == CodeHorizontalTab {
				tabs = true
				size++
			} else if chunk.Code != CodeVirtualSpace {
				index++
				exhausted = false
				break
			}
		}

		if size == 0 {
			eventIndex++
			continue
		}

		typ := TypeHardBreakTrailing
		if eventIndex == len(events) || tabs || size < hardBreakPrefixSizeMin {
			typ = TypeLineSuffix
		}

		start := data.Start
		if !exhausted {
			start.index = data.Start.index + index
			if index > 0 {
				start.bufferIndex = bufferIndex
			} else {
				start.bufferIndex = data.Start.bufferIndex + bufferIndex
			}
		}
		start.Line = data.End.Line
		start.Column = data.End.Column - size
		start.Offset = data.End.Offset - size

		tok := &Token{Type: typ, Start: start, End: data.End}
		data.End = start

		if data.Start.Offset == data.End.Offset {
			data.Type = tok.Type
			data.Start = tok.Start
			data.End = tok.End
		} else {
			if out == nil {
				out = make([]Event, 0, len(events)+2)
			}
			out = append(out, events[copied:eventIndex]...)
			out = append(out, enterEvent(tok, t), exitEvent(tok, t))
			copied = eventIndex
		}
		eventIndex++
	}

	if out == nil {
		return events
	}
	return append(out, events[copied:]...)
}
