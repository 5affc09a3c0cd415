package micromark

import (
	"slices"
	"strings"
)

// pairedMark is an inline span delimited by exactly two marker characters
// on each side, such as `__underline__`. The text between the delimiters may
// not contain the marker.
type pairedMark struct {
	marker       Code
	sequenceType TokenType
	textType     TokenType
	groupType    TokenType

	construct *Construct
	resolver  *Resolver
}

func newPairedMark(name string, marker Code, group, sequence, text TokenType) *pairedMark {
	m := &pairedMark{marker: marker, sequenceType: sequence, textType: text, groupType: group}
	m.resolver = &Resolver{Name: name, Resolve: m.resolveAll}
	m.construct = &Construct{Name: name, Tokenize: m.tokenize, ResolveAll: m.resolver}
	return m
}

var (
	underlineMark     = newPairedMark("underline", '_', TypeUnderline, TypeUnderlineSequence, TypeUnderlineText)
	strikethroughMark = newPairedMark("strikethrough", '~', TypeStrikethrough, TypeStrikethroughSequence, TypeStrikethroughText)
	spoilerMark       = newPairedMark("spoiler", '|', TypeSpoiler, TypeSpoilerSequence, TypeSpoilerText)
)

// extension registers the mark in text and its resolver inside spans.
func (m *pairedMark) extension() Extension {
	return Extension{
		Text:       ConstructMap{m.marker: {m.construct}},
		InsideSpan: []*Resolver{m.resolver},
	}
}

// Underline enables `__underline__`.
func Underline() Extension { return underlineMark.extension() }

// Strikethrough enables `~~strikethrough~~`.
func Strikethrough() Extension { return strikethroughMark.extension() }

// Spoiler enables `||spoiler||`.
func Spoiler() Extension { return spoilerMark.extension() }

func (m *pairedMark) tokenize(_ *Tokenizer, effects *Effects, ok, nok State) State {
	checkEnd := func(code Code) State {
		tok := effects.Exit(m.sequenceType)
		if code == m.marker {
			return nok(code)
		}
		tok.open = true
		tok.close = true
		return ok(code)
	}
	inside := func(code Code) State {
		if code != m.marker {
			effects.Exit(m.sequenceType)
			return nok(code)
		}
		effects.Consume(code)
		return checkEnd
	}
	return func(code Code) State {
		invariant(code == m.marker, "expected `"+m.marker.String()+"`")
		effects.Enter(m.sequenceType)
		effects.Consume(code)
		return inside
	}
}

func (m *pairedMark) resolveAll(events []Event, t *Tokenizer) []Event {
	delimiter := strings.Repeat(m.marker.String(), 2)
	out := make([]Event, 0, len(events))

	for index := 0; index < len(events); index++ {
		closer := events[index].Token
		if events[index].Kind != EventEnter || closer.Type != m.sequenceType || !closer.close ||
			t.SliceSerialize(closer, false) != delimiter {
			out = append(out, events[index])
			continue
		}

		open := len(out) - 1
		for ; open > 0; open-- {
			opener := out[open].Token
			if out[open].Kind == EventExit && opener.Type == m.sequenceType && opener.open &&
				t.SliceSerialize(opener, false) == delimiter && !m.containsMarker(out[open+1:], t) {
				break
			}
		}
		if open <= 0 {
			out = append(out, events[index])
			continue
		}

		opener := out[open].Token
		text := &Token{Type: m.textType, Start: opener.End, End: closer.Start}
		group := &Token{Type: m.groupType, Start: opener.Start, End: closer.End}

		inside := resolveAll(t.constructs().InsideSpan, slices.Clone(out[open+1:]), t)
		out = append(out[:open-1], enterEvent(group, t), enterEvent(text, t))
		out = append(out, inside...)
		out = append(out, exitEvent(text, t), exitEvent(group, t))
		index++
	}

	for _, ev := range out {
		if ev.Token.Type == m.sequenceType {
			ev.Token.Type = TypeData
		}
	}
	return out
}

func (m *pairedMark) containsMarker(events []Event, t *Tokenizer) bool {
	marker := m.marker.String()
	for _, ev := range events {
		if ev.Token.Type == TypeData && strings.Contains(t.SliceSerialize(ev.Token, false), marker) {
			return true
		}
	}
	return false
}
