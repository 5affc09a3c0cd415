package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gomdmark/pkg/config"
	"github.com/yaklabco/gomdmark/pkg/markdown"
	"github.com/yaklabco/gomdmark/pkg/mdast"
	"github.com/yaklabco/gomdmark/pkg/reporter"
	"github.com/yaklabco/gomdmark/pkg/runner"
)

func sampleResult(t *testing.T) *runner.Result {
	t.Helper()

	snapshot, err := markdown.Parse(context.Background(), "/work/docs/a.md", []byte("# Title\n"))
	require.NoError(t, err)

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/docs/a.md", Snapshot: snapshot, Cached: true},
			{Path: "/work/docs/b.md", Error: errors.New("boom")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 2,
			FilesParsed:     1,
			FilesErrored:    1,
			CacheHits:       1,
			Bytes:           8,
			Nodes:           3,
			NodesByKind: map[mdast.NodeKind]int{
				mdast.NodeRoot:    1,
				mdast.NodeHeading: 1,
				mdast.NodeText:    1,
			},
		},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  config.OutputFormat
		wantErr bool
	}{
		{name: "pretty reporter", format: config.FormatPretty},
		{name: "json reporter", format: config.FormatJSON},
		{name: "yaml reporter", format: config.FormatYAML},
		{name: "summary reporter", format: config.FormatSummary},
		{name: "empty defaults to pretty", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: tt.format})
			if tt.wantErr {
				require.ErrorIs(t, err, config.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: "/work", Positions: true})

	require.NoError(t, rep.Report(context.Background(), sampleResult(t)))

	var doc reporter.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "1", doc.Version)
	require.Len(t, doc.Files, 2)
	assert.Equal(t, "docs/a.md", doc.Files[0].Path)
	assert.True(t, doc.Files[0].Cached)
	require.NotNil(t, doc.Files[0].Tree)
	assert.Equal(t, "root", doc.Files[0].Tree.Type)
	assert.Equal(t, "heading", doc.Files[0].Tree.Children[0].Type)
	require.NotNil(t, doc.Files[0].Tree.Position)
	assert.Equal(t, 1, doc.Files[0].Tree.Position.Start.Line)

	assert.Equal(t, "boom", doc.Files[1].Error)
	assert.Nil(t, doc.Files[1].Tree)

	assert.Equal(t, 1, doc.Summary.FilesErrored)
	assert.Equal(t, map[string]int{"root": 1, "heading": 1, "text": 1}, doc.Summary.NodesByKind)
}

func TestJSONReporter_CompactWithoutPositions(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	require.NoError(t, rep.Report(context.Background(), sampleResult(t)))

	out := buf.String()
	assert.NotContains(t, out, "\n  ")
	assert.NotContains(t, out, `"position"`)
	assert.Contains(t, out, `"path":"/work/docs/a.md"`)
}

func TestJSONReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, reporter.NewJSONReporter(reporter.Options{Writer: &buf}).Report(context.Background(), nil))

	var doc reporter.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Empty(t, doc.Files)
}

func TestYAMLReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewYAMLReporter(reporter.Options{Writer: &buf, Positions: true})

	require.NoError(t, rep.Report(context.Background(), sampleResult(t)))

	var doc reporter.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Files, 2)
	assert.Equal(t, "Title", *doc.Files[0].Tree.Children[0].Children[0].Value)
	assert.Equal(t, 1, doc.Summary.CacheHits)
}

func TestPrettyReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewPrettyReporter(reporter.Options{
		Writer:      &buf,
		Color:       config.ColorNever,
		Positions:   true,
		ShowSummary: true,
		WorkingDir:  "/work",
	})

	require.NoError(t, rep.Report(context.Background(), sampleResult(t)))

	out := buf.String()
	assert.Contains(t, out, "docs/a.md (cached)")
	assert.Contains(t, out, "heading depth=1 (1:1-1:8)")
	assert.Contains(t, out, "docs/b.md: error: boom")
	assert.Contains(t, out, "Parsed 1 file (1 cached), 3 nodes, 1 file failed")
}

func TestPrettyReporter_SingleFileHasNoHeader(t *testing.T) {
	result := sampleResult(t)
	result.Files = result.Files[:1]

	var buf bytes.Buffer
	rep := reporter.NewPrettyReporter(reporter.Options{Writer: &buf, Color: config.ColorNever, ShowSummary: true})
	require.NoError(t, rep.Report(context.Background(), result))

	out := buf.String()
	assert.NotContains(t, out, "a.md")
	assert.NotContains(t, out, "Parsed")
	assert.Contains(t, out, `text "Title"`)
}

func TestPrettyReporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewPrettyReporter(reporter.Options{Writer: &buf, Color: config.ColorNever, ShowSummary: true})
	require.NoError(t, rep.Report(context.Background(), &runner.Result{}))
	assert.Equal(t, "No Markdown files found\n", buf.String())
}

func TestSummaryReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewSummaryReporter(reporter.Options{Writer: &buf, Color: config.ColorNever})

	require.NoError(t, rep.Report(context.Background(), sampleResult(t)))

	out := buf.String()
	assert.Contains(t, out, "/work/docs/b.md: boom")
	assert.Contains(t, out, "Files failed:")
	assert.Contains(t, out, "heading")
	assert.NotContains(t, out, "Title")
}
