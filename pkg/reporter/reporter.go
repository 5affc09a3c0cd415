// Package reporter writes parse results in the supported output formats.
package reporter

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/yaklabco/gomdmark/pkg/config"
	"github.com/yaklabco/gomdmark/pkg/runner"
)

const bufWriterSize = 64 << 10

// Reporter writes one parse run.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) error
}

// Options configures a Reporter. The zero value writes pretty output to
// stdout with automatic color.
type Options struct {
	Writer io.Writer
	Format config.OutputFormat
	Color  config.ColorMode

	// Positions keeps node positions in trees of every format.
	Positions bool

	// ShowSummary closes pretty output of several files with a totals line.
	ShowSummary bool

	// Compact minifies JSON.
	Compact bool

	// WorkingDir, when set, makes printed paths relative to it.
	WorkingDir string
}

func (o Options) normalized() Options {
	if o.Writer == nil {
		o.Writer = os.Stdout
	}
	if o.Format == "" {
		o.Format = config.FormatPretty
	}
	if o.Color == "" {
		o.Color = config.ColorAuto
	}
	return o
}

// New returns the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	opts = opts.normalized()
	switch opts.Format {
	case config.FormatPretty:
		return NewPrettyReporter(opts), nil
	case config.FormatSummary:
		return NewSummaryReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatYAML:
		return NewYAMLReporter(opts), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownFormat, opts.Format)
}
