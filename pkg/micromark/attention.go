package micromark

import "slices"

var (
	attention           = &Construct{Name: "attention"}
	resolveAttentionAll = &Resolver{Name: "attention"}
)

func init() {
	attention.Tokenize = tokenizeAttention
	attention.ResolveAll = resolveAttentionAll
	resolveAttentionAll.Resolve = resolveAllAttention
}

func tokenLength(tok *Token) int {
	return tok.End.Offset - tok.Start.Offset
}

// movePoint shifts p by offset columns within the same text chunk.
func movePoint(p *Point, offset int) {
	p.Column += offset
	p.Offset += offset
	p.bufferIndex += offset
}

// resolveAllAttention matches closing sequences with the nearest opener of
// the same marker, following the rule of three, and wraps what lies between
// in emphasis or strong. Unmatched sequences become data. Output is built in
// one pass: openers are looked for among the events already written.
func resolveAllAttention(events []Event, t *Tokenizer) []Event {
	out := make([]Event, 0, len(events))

	for index := 0; index < len(events); index++ {
		closer := events[index].Token
		if events[index].Kind != EventEnter || closer.Type != TypeAttentionSequence || !closer.close {
			out = append(out, events[index])
			continue
		}

		open := len(out) - 1
		for ; open > 0; open-- {
			opener := out[open].Token
			if out[open].Kind != EventExit || opener.Type != TypeAttentionSequence || !opener.open ||
				t.SliceSerialize(opener, false)[0] != t.SliceSerialize(closer, false)[0] {
				continue
			}
			if (opener.close || closer.open) && tokenLength(closer)%3 != 0 &&
				(tokenLength(opener)+tokenLength(closer))%3 == 0 {
				continue
			}
			break
		}
		if open <= 0 {
			out = append(out, events[index])
			continue
		}

		opener := out[open].Token
		use := 1
		if tokenLength(opener) > 1 && tokenLength(closer) > 1 {
			use = 2
		}

		start := opener.End
		end := closer.Start
		movePoint(&start, -use)
		movePoint(&end, use)

		sequenceType, textType, groupType := TypeEmphasisSequence, TypeEmphasisText, TypeEmphasis
		if use > 1 {
			sequenceType, textType, groupType = TypeStrongSequence, TypeStrongText, TypeStrong
		}

		openingSequence := &Token{Type: sequenceType, Start: start, End: opener.End}
		closingSequence := &Token{Type: sequenceType, Start: closer.Start, End: end}
		text := &Token{Type: textType, Start: opener.End, End: closer.Start}
		group := &Token{Type: groupType, Start: openingSequence.Start, End: closingSequence.End}

		opener.End = openingSequence.Start
		closer.Start = closingSequence.End

		inside := resolveAll(t.constructs().InsideSpan, slices.Clone(out[open+1:]), t)
		out = out[:open-1]
		if tokenLength(opener) > 0 {
			out = append(out, enterEvent(opener, t), exitEvent(opener, t))
		}
		out = append(out,
			enterEvent(group, t),
			enterEvent(openingSequence, t),
			exitEvent(openingSequence, t),
			enterEvent(text, t),
		)
		out = append(out, inside...)
		out = append(out,
			exitEvent(text, t),
			enterEvent(closingSequence, t),
			exitEvent(closingSequence, t),
			exitEvent(group, t),
		)

		if tokenLength(closer) > 0 {
			// Look at what is left of the closer again.
			index--
		} else {
			index++
		}
	}

	for _, ev := range out {
		if ev.Token.Type == TypeAttentionSequence {
			ev.Token.Type = TypeData
		}
	}
	return out
}

// tokenizeAttention consumes a run of `*` or `_` and records whether it
// can open or close, based on the characters on either side.
func tokenizeAttention(t *Tokenizer, effects *Effects, ok, _ State) State {
	previous := t.previous
	before := classifyCharacter(previous)
	var marker Code

	var inside State
	inside = func(code Code) State {
		if code == marker {
			effects.Consume(code)
			return inside
		}

		tok := effects.Exit(TypeAttentionSequence)
		after := classifyCharacter(code)
		open := after == groupOther || (after == groupPunctuation && before != groupOther) || t.attentionMarker(code)
		closing := before == groupOther || (before == groupPunctuation && after != groupOther) || t.attentionMarker(previous)

		if marker == '*' {
			tok.open, tok.close = open, closing
		} else {
			tok.open = open && (before != groupOther || !closing)
			tok.close = closing && (after != groupOther || !open)
		}
		return ok(code)
	}

	return func(code Code) State {
		invariant(code == '*' || code == '_', "expected asterisk or underscore")
		marker = code
		effects.Enter(TypeAttentionSequence)
		return inside(code)
	}
}
