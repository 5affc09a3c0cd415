package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/gomdmark/internal/ui/pretty"
	"github.com/yaklabco/gomdmark/pkg/runner"
)

// terminal is shared by the reporters written for people rather than
// programs.
type terminal struct {
	opts   Options
	styles *pretty.Styles
}

func newTerminal(opts Options) terminal {
	return terminal{opts: opts, styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))}
}

// buffered runs fn against a buffered view of the output and flushes it.
func (t terminal) buffered(fn func(w io.Writer) error) error {
	bw := bufio.NewWriterSize(t.opts.Writer, bufWriterSize)
	if err := fn(bw); err != nil {
		return err
	}
	return bw.Flush()
}

func (t terminal) path(file runner.FileOutcome) string {
	return t.styles.FilePath.Render(displayPath(file.Path, t.opts.WorkingDir))
}

// PrettyReporter prints each tree as a styled outline. Several files get
// a header each and, with ShowSummary, a closing one-line summary.
type PrettyReporter struct{ terminal }

// NewPrettyReporter returns a PrettyReporter for opts.
func NewPrettyReporter(opts Options) *PrettyReporter {
	return &PrettyReporter{newTerminal(opts)}
}

// Report implements Reporter.
func (r *PrettyReporter) Report(ctx context.Context, result *runner.Result) error {
	return r.buffered(func(w io.Writer) error {
		if result == nil || len(result.Files) == 0 {
			if r.opts.ShowSummary {
				fmt.Fprintln(w, r.styles.Dim.Render("No Markdown files found"))
			}
			return nil
		}

		several := len(result.Files) > 1
		for i, file := range result.Files {
			if err := ctx.Err(); err != nil {
				return err
			}

			if file.Error != nil {
				fmt.Fprintf(w, "%s: %s\n", r.path(file), r.styles.Error.Render("error: "+file.Error.Error()))
				continue
			}
			if several {
				if i > 0 {
					fmt.Fprintln(w)
				}
				header := r.path(file)
				if file.Cached {
					header += r.styles.Cached.Render(" (cached)")
				}
				fmt.Fprintln(w, header)
			}
			fmt.Fprint(w, r.styles.FormatTree(file.Snapshot, r.opts.Positions))
		}

		if several && r.opts.ShowSummary {
			fmt.Fprintln(w)
			fmt.Fprint(w, r.styles.FormatSummaryOneLine(result.Stats))
		}
		return nil
	})
}

// SummaryReporter prints the failures and the run statistics, no trees.
type SummaryReporter struct{ terminal }

// NewSummaryReporter returns a SummaryReporter for opts.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{newTerminal(opts)}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) error {
	if result == nil {
		result = &runner.Result{}
	}
	return r.buffered(func(w io.Writer) error {
		for _, file := range result.Files {
			if file.Error != nil {
				fmt.Fprintf(w, "%s: %s\n", r.path(file), r.styles.Error.Render(file.Error.Error()))
			}
		}
		fmt.Fprint(w, r.styles.FormatSummary(result.Stats))
		return nil
	})
}
