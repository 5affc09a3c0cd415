package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdmark/pkg/runner"
)

//nolint:gochecknoglobals // Stateless codec, safe for concurrent use.
var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// encodeFunc writes v to w in one serialization format.
type encodeFunc func(w io.Writer, v any, compact bool) error

// DocumentReporter writes the result Document in a machine-readable format.
type DocumentReporter struct {
	opts   Options
	encode encodeFunc
}

// NewJSONReporter writes the result as indented JSON, or one line when
// Options.Compact is set.
func NewJSONReporter(opts Options) *DocumentReporter {
	return &DocumentReporter{opts: opts, encode: encodeJSON}
}

// NewYAMLReporter writes the result as YAML. Compact has no effect.
func NewYAMLReporter(opts Options) *DocumentReporter {
	return &DocumentReporter{opts: opts, encode: encodeYAML}
}

// Report implements Reporter.
func (r *DocumentReporter) Report(_ context.Context, result *runner.Result) error {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	if err := r.encode(bw, BuildDocument(result, r.opts), r.opts.Compact); err != nil {
		return err
	}
	return bw.Flush()
}

func encodeJSON(w io.Writer, v any, compact bool) error {
	enc := jsonAPI.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func encodeYAML(w io.Writer, v any, _ bool) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return nil
}
