package pretty

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdmark/pkg/mdast"
)

// Table layout constants.
const (
	kindTableWidth = 30
	kindColWidth   = 20
	countColWidth  = 9
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

type kindCount struct {
	kind  mdast.NodeKind
	count int
}

// sortedKinds orders kinds by descending count, then by tree order.
func sortedKinds(counts map[mdast.NodeKind]int) []kindCount {
	rows := make([]kindCount, 0, len(counts))
	for kind, count := range counts {
		rows = append(rows, kindCount{kind: kind, count: count})
	}
	slices.SortFunc(rows, func(a, b kindCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.kind, b.kind)
	})
	return rows
}

// FormatKindTable formats node counts per kind as a two-column table.
func (s *Styles) FormatKindTable(counts map[mdast.NodeKind]int) string {
	if len(counts) == 0 {
		return ""
	}

	var builder strings.Builder
	separator := s.TableSeparator.Render(strings.Repeat("─", kindTableWidth)) + "\n"

	builder.WriteString(separator)
	builder.WriteString(s.TableHeader.Render(padRight("Kind", kindColWidth)) + " " +
		s.TableHeader.Render(padLeft("Count", countColWidth)) + "\n")
	builder.WriteString(separator)

	for _, row := range sortedKinds(counts) {
		name := padRight(row.kind.String(), kindColWidth)
		switch {
		case row.kind == mdast.NodeRoot:
			name = s.Kind.Render(name)
		case row.kind < mdast.NodeText:
			name = s.Flow.Render(name)
		default:
			name = s.Phrasing.Render(name)
		}
		builder.WriteString(name + " " + padLeft(strconv.Itoa(row.count), countColWidth) + "\n")
	}
	builder.WriteString(separator)

	return builder.String()
}
