package pretty_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmark/internal/ui/pretty"
	"github.com/yaklabco/gomdmark/pkg/markdown"
	"github.com/yaklabco/gomdmark/pkg/mdast"
)

func TestFormatTree(t *testing.T) {
	snapshot, err := markdown.Parse(context.Background(), "doc.md", []byte("# Hi\n\n- a\n- b\n"))
	require.NoError(t, err)

	styles := pretty.NewStyles(false)
	out := styles.FormatTree(snapshot, true)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "root"), "first line is the root: %q", lines[0])
	assert.Contains(t, out, "heading depth=1 (1:1-1:5)")
	assert.Contains(t, out, `text "Hi" (1:3-1:5)`)
	assert.Contains(t, out, "list ordered=false spread=false")
	assert.Equal(t, 2, strings.Count(out, "listItem"))
}

func TestFormatTree_WithoutPositions(t *testing.T) {
	snapshot, err := markdown.Parse(context.Background(), "", []byte("`code`"))
	require.NoError(t, err)

	out := pretty.NewStyles(false).FormatTree(snapshot, false)
	assert.Contains(t, out, `inlineCode "code"`)
	assert.NotContains(t, out, "(1:")
}

func TestFormatTree_Nil(t *testing.T) {
	assert.Empty(t, pretty.NewStyles(false).FormatTree(nil, true))
}

func TestNodeLabel(t *testing.T) {
	start := 3
	styles := pretty.NewStyles(false)

	tests := []struct {
		name string
		node *mdast.Node
		want string
	}{
		{
			name: "ordered list",
			node: &mdast.Node{Kind: mdast.NodeList, Ordered: true, Start: &start},
			want: "list ordered=true start=3 spread=false",
		},
		{
			name: "code with info",
			node: &mdast.Node{Kind: mdast.NodeCode, Lang: "go", Meta: "title=x", Value: "x := 1"},
			want: `code lang=go meta="title=x" "x := 1"`,
		},
		{
			name: "link",
			node: &mdast.Node{Kind: mdast.NodeLink, URL: "/u", Title: "t"},
			want: `link url="/u" title="t"`,
		},
		{
			name: "image reference",
			node: &mdast.Node{Kind: mdast.NodeImageReference, Identifier: "a", ReferenceType: mdast.ReferenceFull, Alt: "b"},
			want: `imageReference identifier=a type=full alt="b"`,
		},
		{
			name: "long value",
			node: &mdast.Node{Kind: mdast.NodeText, Value: strings.Repeat("a", 70)},
			want: `text "` + strings.Repeat("a", 60) + `"…`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.NodeLabel(tt.node, false))
		})
	}
}
