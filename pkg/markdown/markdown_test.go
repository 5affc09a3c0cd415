package markdown_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmark/pkg/compiler"
	"github.com/yaklabco/gomdmark/pkg/config"
	"github.com/yaklabco/gomdmark/pkg/fsutil"
	"github.com/yaklabco/gomdmark/pkg/markdown"
	"github.com/yaklabco/gomdmark/pkg/mdast"
	"github.com/yaklabco/gomdmark/pkg/micromark"
)

func kinds(root *mdast.Node) []mdast.NodeKind {
	var out []mdast.NodeKind
	mdast.Inspect(root, func(n *mdast.Node) bool {
		out = append(out, n.Kind)
		return true
	})
	return out
}

func TestParse_Snapshot(t *testing.T) {
	t.Parallel()

	content := []byte("# Title\n\nText\n")
	snap, err := markdown.Parse(context.Background(), "doc.md", content)
	require.NoError(t, err)

	assert.Equal(t, "doc.md", snap.Path)
	assert.Equal(t, content, snap.Content)
	assert.Len(t, snap.Lines, 4)
	require.NotNil(t, snap.Root)
	assert.Same(t, snap, snap.Root.File)
	assert.Same(t, snap, snap.Root.FirstChild.File)

	heading := snap.Root.FirstChild
	assert.Equal(t, mdast.NodeHeading, heading.Kind)
	assert.Equal(t, "# Title", string(heading.Source()))
}

func TestParse_DefaultMarks(t *testing.T) {
	t.Parallel()

	snap, err := markdown.Parse(context.Background(), "", []byte("__u__ ~~s~~ ||p||"))
	require.NoError(t, err)

	got := kinds(snap.Root)
	assert.Contains(t, got, mdast.NodeUnderline)
	assert.Contains(t, got, mdast.NodeDelete)
	assert.Contains(t, got, mdast.NodeSpoiler)
	assert.NotContains(t, got, mdast.NodeStrong)
}

func TestParse_PlainCommonMark(t *testing.T) {
	t.Parallel()

	snap, err := markdown.Parse(context.Background(), "", []byte("__u__ ~~s~~"), markdown.WithMarks())
	require.NoError(t, err)

	got := kinds(snap.Root)
	assert.Contains(t, got, mdast.NodeStrong)
	assert.NotContains(t, got, mdast.NodeUnderline)
	assert.NotContains(t, got, mdast.NodeDelete)
}

func TestParse_Disabled(t *testing.T) {
	t.Parallel()

	snap, err := markdown.Parse(context.Background(), "", []byte("    not code"), markdown.WithDisabled("codeIndented"))
	require.NoError(t, err)

	assert.Equal(t, mdast.NodeParagraph, snap.Root.FirstChild.Kind)
	assert.Equal(t, "not code", snap.Root.FirstChild.TextContent())
}

func TestParse_StripsByteOrderMark(t *testing.T) {
	t.Parallel()

	snap, err := markdown.Parse(context.Background(), "", []byte("\xEF\xBB\xBFabc"))
	require.NoError(t, err)

	assert.Equal(t, []byte("abc"), snap.Content)
	text := snap.Root.FirstChild.FirstChild
	assert.Equal(t, 0, text.Position.Start.Offset)
	assert.Equal(t, 3, text.Position.End.Offset)
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := markdown.Parse(ctx, "", []byte("a"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParse_InvariantBecomesError(t *testing.T) {
	t.Parallel()

	broken := compiler.Extension{
		Enter: map[micromark.TokenType]compiler.Handle{
			micromark.TypeParagraph: func(c *compiler.Context, tok *micromark.Token) {
				c.Enter(mdast.NewNode(mdast.NodeParagraph), &micromark.Token{Type: "custom", Start: tok.Start})
			},
		},
	}

	_, err := markdown.Parse(context.Background(), "bad.md", []byte("a"), markdown.WithCompilerExtensions(broken))
	require.Error(t, err)

	var ie *micromark.InvariantError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, err.Error(), "parse bad.md")

	var seen int
	_, err = markdown.Parse(context.Background(), "bad.md", []byte("a"),
		markdown.WithCompilerExtensions(broken),
		markdown.WithOnExitError(func(*compiler.Context, *micromark.Token, *micromark.Token) { seen++ }),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, seen)
}

func TestParse_Transforms(t *testing.T) {
	t.Parallel()

	var calls []string
	first := func(*mdast.Node) *mdast.Node { calls = append(calls, "first"); return nil }
	second := func(*mdast.Node) *mdast.Node { calls = append(calls, "second"); return nil }

	_, err := markdown.Parse(context.Background(), "", []byte("a"), markdown.WithTransforms(first, second))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("- x\n- y\n"), 0o600))

	snap, err := markdown.NewParser().ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, snap.Path)
	assert.Len(t, mdast.FindByKind(snap.Root, mdast.NodeListItem), 2)

	_, err = markdown.NewParser().ParseFile(context.Background(), filepath.Join(dir, "missing.md"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestEvents(t *testing.T) {
	t.Parallel()

	events, err := markdown.NewParser().Events(context.Background(), []byte("\xEF\xBB\xBFa"))
	require.NoError(t, err)
	require.NotEmpty(t, events)

	assert.Equal(t, micromark.EventEnter, events[0].Kind)
	assert.Equal(t, micromark.TypeContent, events[0].Token.Type)
	assert.Equal(t, 0, events[0].Token.Start.Offset)
	last := events[len(events)-1]
	assert.Equal(t, micromark.EventExit, last.Kind)
}

func TestStream(t *testing.T) {
	t.Parallel()

	docs := []string{
		"# Title\n\nSome *text* here.\n",
		"- a\n- b\n\n> quote\n",
		"```go\ncode\n```\n",
		"line one\r\nline two\r\n",
		"\ufeff# hi\n",
		"\ufeff\ufeffdouble mark\n",
	}

	p := markdown.NewParser()
	for _, doc := range docs {
		want, err := p.Parse(context.Background(), "doc.md", []byte(doc))
		require.NoError(t, err)

		for _, split := range []int{0, 1, 2, 3, len(doc) / 2, len(doc) - 1, len(doc)} {
			s := p.Stream("doc.md")
			n, err := s.Write([]byte(doc[:split]))
			require.NoError(t, err)
			assert.Equal(t, split, n)
			_, err = s.Write([]byte(doc[split:]))
			require.NoError(t, err)

			got, err := s.Close()
			require.NoError(t, err)
			assert.Equal(t, want.Content, got.Content)
			assert.Equal(t, want.Root.FirstChild.Kind, got.Root.FirstChild.Kind, "split at %d of %q", split, doc)
			if diff := cmp.Diff(mdast.Encode(want.Root, true), mdast.Encode(got.Root, true)); diff != "" {
				t.Errorf("stream split at %d of %q differs (-parse +stream):\n%s", split, doc, diff)
			}
		}
	}
}

func TestStream_Closed(t *testing.T) {
	t.Parallel()

	s := markdown.NewParser().Stream("")
	_, err := s.Close()
	require.NoError(t, err)

	_, err = s.Write([]byte("more"))
	require.ErrorIs(t, err, markdown.ErrClosed)
	_, err = s.Close()
	require.ErrorIs(t, err, markdown.ErrClosed)
}

func TestMarkExtension(t *testing.T) {
	t.Parallel()

	for _, name := range config.KnownExtensions() {
		_, err := markdown.MarkExtension(name)
		require.NoError(t, err, name)
	}

	_, err := markdown.MarkExtension("tables")
	require.ErrorIs(t, err, config.ErrUnknownExtension)
}

func TestTransformByName(t *testing.T) {
	t.Parallel()

	transform, err := markdown.TransformByName(config.TransformLangDetect)
	require.NoError(t, err)
	assert.NotNil(t, transform)

	_, err = markdown.TransformByName("toc")
	require.ErrorIs(t, err, config.ErrUnknownTransform)
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Extensions: []string{config.ExtensionStrikethrough},
		Disable:    []string{"codeIndented"},
		Transforms: []string{config.TransformLangDetect},
	}
	opts, err := markdown.FromConfig(cfg)
	require.NoError(t, err)

	src := "~~a~~ __b__\n\n    x\n\n```\npackage main\n\nfunc main() {}\n```\n"
	snap, err := markdown.Parse(context.Background(), "", []byte(src), opts...)
	require.NoError(t, err)

	got := kinds(snap.Root)
	assert.Contains(t, got, mdast.NodeDelete)
	assert.Contains(t, got, mdast.NodeStrong)
	assert.NotContains(t, got, mdast.NodeUnderline)

	code := mdast.FindByKind(snap.Root, mdast.NodeCode)
	require.Len(t, code, 1)
	assert.Equal(t, "go", code[0].Lang)

	_, err = markdown.FromConfig(&config.Config{Extensions: []string{"bogus"}})
	require.True(t, errors.Is(err, config.ErrUnknownExtension))

	_, err = markdown.FromConfig(&config.Config{Transforms: []string{"bogus"}})
	require.ErrorIs(t, err, config.ErrUnknownTransform)
}

func TestStripBOM(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte("a"), markdown.StripBOM([]byte("\xEF\xBB\xBFa")))
	assert.Equal(t, []byte("a"), markdown.StripBOM([]byte("a")))
	assert.Empty(t, markdown.StripBOM(nil))
}
