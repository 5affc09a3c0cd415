package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmark/internal/cli"
	"github.com/yaklabco/gomdmark/pkg/reporter"
)

// execute runs the root command with a minimal explicit config so that no
// project configuration leaks into the test.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".gomdmark.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("format: pretty\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{args[0], "--config", cfgFile, "--color", "never"}, args[1:]...))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeMarkdown(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIntegration_ParseJSON(t *testing.T) {
	t.Parallel()

	file := writeMarkdown(t, t.TempDir(), "doc.md", "# Title\n\nSome *text*.\n")

	out, err := execute(t, "", "parse", "--format", "json", file)
	require.NoError(t, err)

	var doc reporter.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 1)

	tree := doc.Files[0].Tree
	require.NotNil(t, tree)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "heading", tree.Children[0].Type)
	assert.Equal(t, "paragraph", tree.Children[1].Type)
	assert.Equal(t, "emphasis", tree.Children[1].Children[1].Type)
	require.NotNil(t, tree.Children[1].Position)
	assert.Equal(t, 3, tree.Children[1].Position.Start.Line)
}

func TestIntegration_ParseWithoutPositions(t *testing.T) {
	t.Parallel()

	file := writeMarkdown(t, t.TempDir(), "doc.md", "text\n")

	out, err := execute(t, "", "parse", "--format", "yaml", "--positions=false", file)
	require.NoError(t, err)
	assert.NotContains(t, out, "position")
	assert.Contains(t, out, "type: paragraph")
}

func TestIntegration_Extensions(t *testing.T) {
	t.Parallel()

	file := writeMarkdown(t, t.TempDir(), "doc.md", "__a__ ~~b~~ ||c||\n")

	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "marks on by default",
			contains: []string{"underline", "delete", "spoiler"},
		},
		{
			name:     "plain CommonMark",
			args:     []string{"--extensions="},
			contains: []string{"strong"},
			excludes: []string{"underline", "delete", "spoiler"},
		},
		{
			name:     "only spoiler",
			args:     []string{"--extensions", "spoiler"},
			contains: []string{"strong", "spoiler"},
			excludes: []string{"underline", "delete"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"parse"}, tt.args...)
			out, err := execute(t, "", append(args, file)...)
			require.NoError(t, err)

			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}

func TestIntegration_DisableConstruct(t *testing.T) {
	t.Parallel()

	file := writeMarkdown(t, t.TempDir(), "doc.md", "    indented\n")

	out, err := execute(t, "", "parse", file)
	require.NoError(t, err)
	assert.Contains(t, out, `code "indented"`)

	out, err = execute(t, "", "parse", "--disable", "indented-code", file)
	require.NoError(t, err)
	assert.NotContains(t, out, "code")
	assert.Contains(t, out, `text "indented"`)
}

func TestIntegration_ParseStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "> quote\n", "parse", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "blockquote")
	assert.Contains(t, out, `text "quote"`)
}

func TestIntegration_ParseOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeMarkdown(t, dir, "doc.md", "# x\n")
	output := filepath.Join(dir, "out", "tree.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0o755))

	out, err := execute(t, "", "parse", "--format", "json", "--output", output, file)
	require.NoError(t, err)
	assert.Empty(t, out)

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(written), `"type": "heading"`)
}

func TestIntegration_ParseMissingFile(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "parse", filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
}

func TestIntegration_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "", "parse", "--format", "xml", "-")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("extensions: [sparkle]\n"), 0o644))

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("x"))
	cmd.SetArgs([]string{"parse", "--config", cfgFile, "-"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_SummaryWithCache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMarkdown(t, dir, "docs/a.md", "# a\n")
	writeMarkdown(t, dir, "docs/b.md", "- b\n")
	cachePath := filepath.Join(t.TempDir(), "cache.db")

	out, err := execute(t, "", "parse", "--format", "summary", "--cache="+cachePath, filepath.Join(dir, "docs"))
	require.NoError(t, err)
	assert.Contains(t, out, "Files parsed:")
	assert.NotContains(t, out, "From cache:")

	out, err = execute(t, "", "parse", "--format", "summary", "--cache="+cachePath, filepath.Join(dir, "docs"))
	require.NoError(t, err)
	assert.Contains(t, out, "From cache:")

	out, err = execute(t, "", "parse", "--format", "summary", "--cache="+cachePath, "--no-cache", filepath.Join(dir, "docs"))
	require.NoError(t, err)
	assert.NotContains(t, out, "From cache:")
}

func TestIntegration_Events(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "*a*", "events", "--format", "json")
	require.NoError(t, err)

	var events []reporter.EventDocument
	require.NoError(t, json.Unmarshal([]byte(out), &events))

	var types []string
	for _, ev := range events {
		if ev.Kind == "enter" {
			types = append(types, ev.Type)
		}
	}
	assert.Contains(t, types, "emphasis")
	assert.Contains(t, types, "emphasisSequence")
	assert.NotContains(t, types, "attentionSequence")
}

func TestIntegration_EventsRejectsSummary(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "a", "events", "--format", "summary")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestIntegration_ConstructsJSON(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "constructs", "--format", "json")
	require.NoError(t, err)

	var constructs []struct {
		Name    string   `json:"name"`
		Aliases []string `json:"aliases"`
		Groups  []string `json:"groups"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &constructs))

	found := false
	for _, c := range constructs {
		if c.Name == "codeIndented" {
			found = true
			assert.Contains(t, c.Aliases, "indented-code")
			assert.Contains(t, c.Groups, "code")
		}
	}
	assert.True(t, found, "codeIndented should be listed")
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), ".gomdmark.yml")

	_, err := execute(t, "", "init", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# gomdmark configuration"))

	_, err = execute(t, "", "init", "--output", output)
	require.Error(t, err, "existing file needs --force")

	_, err = execute(t, "", "init", "--full", "--force", "--output", output)
	require.NoError(t, err)

	content, err = os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "#   - codeIndented")
}
