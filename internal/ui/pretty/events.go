package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdmark/pkg/micromark"
)

// eventIndent is the indentation added per open token.
const eventIndent = "  "

// FormatEvents renders an event stream, indenting tokens by nesting depth.
func (s *Styles) FormatEvents(events []micromark.Event, positions bool) string {
	var builder strings.Builder
	depth := 0

	for _, ev := range events {
		if ev.Kind == micromark.EventExit && depth > 0 {
			depth--
		}

		kind := s.Enter.Render("enter")
		if ev.Kind == micromark.EventExit {
			kind = s.Exit.Render("exit ")
		}

		builder.WriteString(kind)
		builder.WriteString(" ")
		builder.WriteString(strings.Repeat(eventIndent, depth))
		builder.WriteString(s.Token.Render(string(ev.Token.Type)))
		if positions {
			builder.WriteString(" ")
			builder.WriteString(s.Position.Render(fmt.Sprintf("(%s-%s)", ev.Token.Start, ev.Token.End)))
		}
		builder.WriteString("\n")

		if ev.Kind == micromark.EventEnter {
			depth++
		}
	}

	return builder.String()
}
