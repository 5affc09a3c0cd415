package compiler

import (
	"slices"

	"github.com/yaklabco/gomdmark/pkg/micromark"
)

// insertion is an event to place before the event at index.
type insertion struct {
	index int
	event micromark.Event
}

// prepareLists adds listItem tokens around the items of every list and
// infers which items and lists are spread. The new events are merged in
// once, after every list has been scanned.
func prepareLists(events []micromark.Event) []micromark.Event {
	var listStack []int
	var inserts []insertion
	for index := 0; index < len(events); index++ {
		ev := events[index]
		if ev.Token.Type != micromark.TypeListOrdered && ev.Token.Type != micromark.TypeListUnordered {
			continue
		}
		if ev.Kind == micromark.EventEnter {
			listStack = append(listStack, index)
			continue
		}
		if len(listStack) == 0 {
			panic(&micromark.InvariantError{Message: "expected list to be open", TokenType: ev.Token.Type, Point: ev.Token.Start})
		}
		tail := listStack[len(listStack)-1]
		listStack = listStack[:len(listStack)-1]
		inserts = prepareList(events, tail, index, inserts)
	}
	if len(inserts) == 0 {
		return events
	}

	slices.SortStableFunc(inserts, func(a, b insertion) int { return a.index - b.index })
	out := make([]micromark.Event, 0, len(events)+len(inserts))
	next := 0
	for index, ev := range events {
		for next < len(inserts) && inserts[next].index == index {
			out = append(out, inserts[next].event)
			next++
		}
		out = append(out, ev)
	}
	for ; next < len(inserts); next++ {
		out = append(out, inserts[next].event)
	}
	return out
}

// prepareList handles the list whose enter is at start and exit at end,
// appending the listItem events it needs to inserts. Indexes refer to
// events as they were before any insertion.
func prepareList(events []micromark.Event, start, end int, inserts []insertion) []insertion {
	containerBalance := -1
	listSpread := false
	var listItem *micromark.Token
	lineIndex := -1
	firstBlankLineIndex := -1
	atMarker := false

	for index := start; index <= end; index++ {
		event := events[index]

		switch event.Token.Type {
		case micromark.TypeListUnordered, micromark.TypeListOrdered, micromark.TypeBlockQuote:
			if event.Kind == micromark.EventEnter {
				containerBalance++
			} else {
				containerBalance--
			}
			atMarker = false
		case micromark.TypeLineEndingBlank:
			if event.Kind == micromark.EventEnter {
				if listItem != nil && !atMarker && containerBalance == 0 && firstBlankLineIndex < 0 {
					firstBlankLineIndex = index
				}
				atMarker = false
			}
		case micromark.TypeLinePrefix, micromark.TypeListItemValue, micromark.TypeListItemMarker,
			micromark.TypeListItemPrefix, micromark.TypeListItemPrefixWhitespace:
		default:
			atMarker = false
		}

		itemStart := containerBalance == 0 && event.Kind == micromark.EventEnter && event.Token.Type == micromark.TypeListItemPrefix
		listEnd := containerBalance == -1 && event.Kind == micromark.EventExit &&
			(event.Token.Type == micromark.TypeListUnordered || event.Token.Type == micromark.TypeListOrdered)
		if !itemStart && !listEnd {
			continue
		}

		if listItem != nil {
			lineIndex = -1
			for tailIndex := index - 1; tailIndex >= 0; tailIndex-- {
				tailEvent := events[tailIndex]
				switch tailEvent.Token.Type {
				case micromark.TypeLineEnding, micromark.TypeLineEndingBlank:
					if tailEvent.Kind == micromark.EventExit {
						continue
					}
					if lineIndex >= 0 {
						events[lineIndex].Token.Type = micromark.TypeLineEndingBlank
						listSpread = true
					}
					tailEvent.Token.Type = micromark.TypeLineEnding
					lineIndex = tailIndex
					continue
				case micromark.TypeLinePrefix, micromark.TypeBlockQuotePrefix, micromark.TypeBlockQuotePrefixWhitespace,
					micromark.TypeBlockQuoteMarker, micromark.TypeListItemIndent:
					continue
				}
				break
			}

			if firstBlankLineIndex >= 0 && (lineIndex < 0 || firstBlankLineIndex < lineIndex) {
				listItem.Spread = true
			}

			at := index
			listItem.End = event.Token.End
			if lineIndex >= 0 {
				at = lineIndex
				listItem.End = events[lineIndex].Token.Start
			}

			inserts = append(inserts, insertion{at, micromark.Event{Kind: micromark.EventExit, Token: listItem, Context: event.Context}})
		}

		if event.Token.Type == micromark.TypeListItemPrefix {
			listItem = &micromark.Token{Type: micromark.TypeListItem, Start: event.Token.Start}
			inserts = append(inserts, insertion{index, micromark.Event{Kind: micromark.EventEnter, Token: listItem, Context: event.Context}})
			firstBlankLineIndex = -1
			atMarker = true
		}
	}

	events[start].Token.Spread = listSpread
	return inserts
}
