package micromark

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeIdentifier turns a link label into the identifier used to match
// references with definitions: whitespace runs collapse to one space, the
// ends are trimmed and the result is case folded.
func NormalizeIdentifier(value string) string {
	var sb strings.Builder
	space := false
	for _, r := range value {
		if r == '\t' || r == '\n' || r == '\r' || r == ' ' {
			space = true
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	return cases.Fold().String(sb.String())
}
