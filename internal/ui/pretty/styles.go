// Package pretty renders trees, event streams and summaries for a terminal
// with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/yaklabco/gomdmark/pkg/config"
)

// ANSI 256 palette indexes.
const (
	gray    = "8"
	red     = "9"
	green   = "10"
	yellow  = "11"
	blue    = "12"
	magenta = "13"
	cyan    = "14"
	white   = "7"
)

// Styles holds one lipgloss style per element of the output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Tree outline: file header, node kinds by category, positions,
	// literal values, attributes and the branch glyphs.
	FilePath lipgloss.Style
	Kind     lipgloss.Style
	Flow     lipgloss.Style
	Phrasing lipgloss.Style
	Position lipgloss.Style
	Value    lipgloss.Style
	Attr     lipgloss.Style
	Branch   lipgloss.Style

	// Event listing.
	Enter lipgloss.Style
	Exit  lipgloss.Style
	Token lipgloss.Style

	// Run summary.
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style
	Cached       lipgloss.Style

	TableHeader    lipgloss.Style
	TableBorder    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles builds the styles. With color disabled every style renders
// its text unchanged; with it enabled ANSI 256 colors are emitted even
// when stdout is not a terminal, so --color=always works in pipes.
func NewStyles(colorEnabled bool) *Styles {
	r := lipgloss.NewRenderer(os.Stdout)
	if colorEnabled {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	plain := r.NewStyle
	bold := func() lipgloss.Style { return r.NewStyle().Bold(true) }
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return &Styles{
		Error:   fg(red).Bold(true),
		Warning: fg(yellow).Bold(true),

		FilePath: bold(),
		Kind:     bold(),
		Flow:     fg(blue).Bold(true),
		Phrasing: fg(magenta),
		Position: fg(gray),
		Value:    fg(green),
		Attr:     fg(cyan),
		Branch:   fg(gray),

		Enter: fg(green),
		Exit:  fg(red),
		Token: bold(),

		SummaryTitle: bold(),
		SummaryValue: plain(),
		Success:      fg(green).Bold(true),
		Failure:      fg(red).Bold(true),
		Cached:       fg(cyan),

		TableHeader:    fg(white).Bold(true),
		TableBorder:    fg(gray),
		TableSeparator: fg(gray),

		Dim:  fg(gray),
		Bold: bold(),
	}
}

// IsColorEnabled resolves a color mode for writer. Auto means color only
// on a terminal and only when NO_COLOR is unset.
func IsColorEnabled(mode config.ColorMode, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
