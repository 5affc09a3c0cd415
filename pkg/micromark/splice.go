package micromark

import "slices"

// splice replaces remove events at start with items and returns the
// resulting list. It edits list in place when the capacity allows, so the
// caller must replace its own reference with the result.
func splice(list []Event, start, remove int, items []Event) []Event {
	start = max(0, min(start, len(list)))
	end := min(start+remove, len(list))
	return slices.Replace(list, start, end, items...)
}

func enterEvent(tok *Token, t *Tokenizer) Event {
	return Event{Kind: EventEnter, Token: tok, Context: t}
}

func exitEvent(tok *Token, t *Tokenizer) Event {
	return Event{Kind: EventExit, Token: tok, Context: t}
}
