package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdmark/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Parsed 12 files (3 cached), 418 nodes, 1 file failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	parts := make([]string, 0, 3)

	parsed := fmt.Sprintf("Parsed %d %s", stats.FilesParsed, plural(stats.FilesParsed, wordFile, wordFiles))
	if stats.FilesErrored == 0 {
		parsed = s.Success.Render(parsed)
	}
	if stats.CacheHits > 0 {
		parsed += s.Cached.Render(fmt.Sprintf(" (%d cached)", stats.CacheHits))
	}
	parts = append(parts, parsed)

	parts = append(parts, fmt.Sprintf("%d %s", stats.Nodes, plural(stats.Nodes, "node", "nodes")))

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block followed by
// node counts per kind.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files parsed:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesParsed)) + "\n")

	if stats.CacheHits > 0 {
		builder.WriteString("    From cache:      " +
			s.Cached.Render(strconv.Itoa(stats.CacheHits)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("  Bytes:             " +
		s.SummaryValue.Render(strconv.FormatInt(stats.Bytes, 10)) + "\n")
	builder.WriteString("  Nodes:             " +
		s.SummaryValue.Render(strconv.Itoa(stats.Nodes)) + "\n")

	if len(stats.NodesByKind) > 0 {
		builder.WriteString("\n")
		builder.WriteString(s.FormatKindTable(stats.NodesByKind))
	}

	builder.WriteString("\n")
	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Parse failed for some files"))
	} else {
		builder.WriteString(s.Success.Render("All files parsed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
