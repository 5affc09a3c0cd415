package micromark

// Postprocess tokenizes deferred content until no deferred tokens remain.
func Postprocess(events []Event) []Event {
	for {
		var done bool
		events, done = subtokenize(events)
		if done {
			return events
		}
	}
}

// subtokenize runs one pass over events and returns a new list in which
// each deferred token is replaced by the events of its content. Events
// produced by the pass are not looked into until the next one. It reports
// whether the pass found nothing to expand.
func subtokenize(events []Event) ([]Event, bool) {
	out := make([]Event, 0, len(events))
	replacements := map[*Token][]Event{}
	more := false

	for index := 0; index < len(events); index++ {
		event := events[index]

		if event.Kind == EventEnter {
			if _, linked := replacements[event.Token]; !linked && event.Token.ContentType != ContentTypeNone {
				subcontent(event, replacements)
				more = true
			}
			if slice, ok := replacements[event.Token]; ok {
				invariantToken(index+1 < len(events) && events[index+1].Token == event.Token,
					"expected a linked token to be void", event.Token)
				out = append(out, slice...)
				delete(replacements, event.Token)
				index++
				continue
			}
			out = append(out, event)
			continue
		}

		out = append(out, event)
		if event.Token.container {
			out = moveContainerExit(out)
		}
	}

	invariant(len(replacements) == 0, "expected every linked token to be in the events")
	return out, !more
}

// moveContainerExit moves the container exit at the end of out before the
// line endings that trail it. Of those, all but the first become blank.
func moveContainerExit(out []Event) []Event {
	index := len(out) - 1
	event := out[index]
	lineIndex := -1

	for other := index - 1; other >= 0; other-- {
		tok := out[other].Token
		if tok.Type == TypeLineEnding || tok.Type == TypeLineEndingBlank {
			if out[other].Kind == EventEnter {
				if lineIndex >= 0 {
					out[lineIndex].Token.Type = TypeLineEndingBlank
				}
				tok.Type = TypeLineEnding
				lineIndex = other
			}
		} else if tok.Type != TypeLinePrefix && tok.Type != TypeListItemIndent {
			break
		}
	}

	if lineIndex < 0 {
		return out
	}
	event.Token.End = out[lineIndex].Token.Start
	copy(out[lineIndex+1:], out[lineIndex:index])
	out[lineIndex] = event
	return out
}

// subcontent tokenizes the chain of linked tokens that starts at head and
// records, for every token of the chain, the events that replace it.
func subcontent(head Event, replacements map[*Token][]Event) {
	token := head.Token
	tokenizer := token.tokenizer
	if tokenizer == nil {
		tokenizer = head.Context.session.forContentType(token.ContentType, token.Start)
	}

	var chain []*Token
	var previous *Token
	for current := token; current != nil; current = current.Next {
		invariantToken(previous == nil || current.Previous == previous, "expected previous to match", current)
		invariantToken(previous == nil || previous.Next == current, "expected next to match", current)
		chain = append(chain, current)

		if current.tokenizer == nil {
			stream := head.Context.SliceStream(current)
			if current.Next == nil {
				stream = append(stream, Chunk{Code: CodeEOF})
			}
			if previous != nil {
				tokenizer.defineSkip(current.Start)
			}
			tokenizer.Write(stream)
		}
		previous = current
	}

	childEvents := tokenizer.events
	breaks := []int{0}
	current := token
	for index := 1; index < len(childEvents); index++ {
		// A void token spanning a line ending marks the end of one chunk.
		if childEvents[index].Kind == EventExit &&
			childEvents[index-1].Kind == EventEnter &&
			childEvents[index].Token.Type == childEvents[index-1].Token.Type &&
			childEvents[index].Token.Start.Line != childEvents[index].Token.End.Line {
			invariant(current != nil, "expected a current token")
			breaks = append(breaks, index+1)
			current.tokenizer = nil
			current.Previous = nil
			current = current.Next
		}
	}

	tokenizer.events = nil

	if current != nil {
		current.tokenizer = nil
		current.Previous = nil
		invariantToken(current.Next == nil, "expected no next token", current)
	} else {
		breaks = breaks[:len(breaks)-1]
	}

	invariant(len(breaks) == len(chain), "expected one slice of events per linked token")
	for i, tok := range chain {
		end := len(childEvents)
		if i+1 < len(breaks) {
			end = breaks[i+1]
		}
		replacements[tok] = childEvents[breaks[i]:end:end]
	}
}
