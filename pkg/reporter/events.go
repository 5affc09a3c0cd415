package reporter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/yaklabco/gomdmark/internal/ui/pretty"
	"github.com/yaklabco/gomdmark/pkg/config"
	"github.com/yaklabco/gomdmark/pkg/mdast"
	"github.com/yaklabco/gomdmark/pkg/micromark"
)

// EventDocument is the structured form of one event.
type EventDocument struct {
	Kind  string      `json:"kind" yaml:"kind"`
	Type  string      `json:"type" yaml:"type"`
	Start mdast.Point `json:"start" yaml:"start"`
	End   mdast.Point `json:"end" yaml:"end"`
}

// BuildEvents converts an event stream into its structured form.
func BuildEvents(events []micromark.Event) []EventDocument {
	docs := make([]EventDocument, 0, len(events))
	for _, ev := range events {
		docs = append(docs, EventDocument{
			Kind:  ev.Kind.String(),
			Type:  string(ev.Token.Type),
			Start: mdast.Point{Line: ev.Token.Start.Line, Column: ev.Token.Start.Column, Offset: ev.Token.Start.Offset},
			End:   mdast.Point{Line: ev.Token.End.Line, Column: ev.Token.End.Column, Offset: ev.Token.End.Offset},
		})
	}
	return docs
}

// WriteEvents writes an event stream in the pretty, JSON or YAML format.
func WriteEvents(w io.Writer, events []micromark.Event, opts Options) (err error) {
	bw := bufio.NewWriterSize(w, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	switch opts.Format {
	case config.FormatPretty, "":
		styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, w))
		_, err = fmt.Fprint(bw, styles.FormatEvents(events, opts.Positions))
		return err
	case config.FormatJSON:
		return encodeJSON(bw, BuildEvents(events), opts.Compact)
	case config.FormatYAML:
		return encodeYAML(bw, BuildEvents(events), false)
	default:
		return fmt.Errorf("%w: %q is not available for events", config.ErrUnknownFormat, opts.Format)
	}
}
