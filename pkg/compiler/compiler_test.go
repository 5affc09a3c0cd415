package compiler_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmark/pkg/compiler"
	"github.com/yaklabco/gomdmark/pkg/mdast"
	"github.com/yaklabco/gomdmark/pkg/micromark"
)

func compileWith(c *compiler.Compiler, input string, exts ...micromark.Extension) (root *mdast.Node, err error) {
	defer micromark.Recover(&err)
	p := micromark.NewParser(micromark.WithExtensions(exts...))
	events := micromark.Postprocess(p.Document().Write(micromark.Preprocess([]byte(input))))
	return c.Compile(events), nil
}

func compile(t *testing.T, input string, exts ...micromark.Extension) *mdast.Node {
	t.Helper()
	root, err := compileWith(compiler.New(), input, exts...)
	require.NoError(t, err)
	return root
}

func ptr[T any](v T) *T { return &v }

func el(typ string, children ...*mdast.Encoded) *mdast.Encoded {
	return &mdast.Encoded{Type: typ, Children: children}
}

func txt(value string) *mdast.Encoded {
	return &mdast.Encoded{Type: "text", Value: ptr(value)}
}

func lit(typ, value string) *mdast.Encoded {
	return &mdast.Encoded{Type: typ, Value: ptr(value)}
}

func heading(depth int, children ...*mdast.Encoded) *mdast.Encoded {
	return &mdast.Encoded{Type: "heading", Depth: depth, Children: children}
}

func list(ordered, spread bool, start *int, children ...*mdast.Encoded) *mdast.Encoded {
	return &mdast.Encoded{Type: "list", Ordered: ptr(ordered), Spread: ptr(spread), Start: start, Children: children}
}

func item(children ...*mdast.Encoded) *mdast.Encoded {
	return &mdast.Encoded{Type: "listItem", Spread: ptr(false), Children: children}
}

func root(children ...*mdast.Encoded) *mdast.Encoded {
	return el("root", children...)
}

func para(children ...*mdast.Encoded) *mdast.Encoded {
	return el("paragraph", children...)
}

func TestCompile_Trees(t *testing.T) {
	t.Parallel()

	marks := []micromark.Extension{micromark.Underline(), micromark.Strikethrough(), micromark.Spoiler()}

	tests := []struct {
		name  string
		input string
		exts  []micromark.Extension
		want  *mdast.Encoded
	}{
		{"empty", "", nil, root()},
		{"atx heading", "# Hi", nil, root(heading(1, txt("Hi")))},
		{"closed atx heading", "### Hi ###", nil, root(heading(3, txt("Hi")))},
		{"setext heading 1", "Hi\n==", nil, root(heading(1, txt("Hi")))},
		{"setext heading 2", "Hi\n--", nil, root(heading(2, txt("Hi")))},
		{"soft line break", "a\nb", nil, root(para(txt("a\nb")))},
		{
			"emphasis and strong", "*a* **b**", nil,
			root(para(el("emphasis", txt("a")), txt(" "), el("strong", txt("b")))),
		},
		{"trailing hard break", "a  \nb", nil, root(para(txt("a"), el("break"), txt("b")))},
		{"escape hard break", "a\\\nb", nil, root(para(txt("a"), el("break"), txt("b")))},
		{"inline code", "`x`", nil, root(para(lit("inlineCode", "x")))},
		{"thematic break", "***", nil, root(el("thematicBreak"))},
		{"block quote", "> a", nil, root(el("blockquote", para(txt("a"))))},
		{
			"tight list", "- a\n- b", nil,
			root(list(false, false, nil, item(para(txt("a"))), item(para(txt("b"))))),
		},
		{
			"loose list", "- a\n\n- b", nil,
			root(list(false, true, nil, item(para(txt("a"))), item(para(txt("b"))))),
		},
		{"ordered list", "3. a", nil, root(list(true, false, ptr(3), item(para(txt("a")))))},
		{
			"fenced code", "```go title\nx\n```", nil,
			root(&mdast.Encoded{Type: "code", Lang: "go", Meta: "title", Value: ptr("x")}),
		},
		{"unclosed fenced code", "~~~\na", nil, root(lit("code", "a"))},
		{"indented code", "    a\n    b", nil, root(lit("code", "a\nb"))},
		{"html flow", "<div>\nx\n</div>", nil, root(lit("html", "<div>\nx\n</div>"))},
		{
			"html text", "a <b>c</b>", nil,
			root(para(txt("a "), lit("html", "<b>"), txt("c"), lit("html", "</b>"))),
		},
		{
			"link", `[a](/u "t")`, nil,
			root(para(&mdast.Encoded{Type: "link", URL: "/u", Title: "t", Children: []*mdast.Encoded{txt("a")}})),
		},
		{
			"image", "![a *b*](/i)", nil,
			root(para(&mdast.Encoded{Type: "image", URL: "/i", Alt: "a b"})),
		},
		{
			"shortcut reference", "[Foo]\n\n[foo]: /u 'T'", nil,
			root(
				para(&mdast.Encoded{
					Type: "linkReference", Identifier: "foo", Label: "Foo", ReferenceType: "shortcut",
					Children: []*mdast.Encoded{txt("Foo")},
				}),
				&mdast.Encoded{Type: "definition", Identifier: "foo", Label: "foo", URL: "/u", Title: "T"},
			),
		},
		{
			"collapsed reference", "[Foo][]\n\n[foo]: /u", nil,
			root(
				para(&mdast.Encoded{
					Type: "linkReference", Identifier: "foo", Label: "Foo", ReferenceType: "collapsed",
					Children: []*mdast.Encoded{txt("Foo")},
				}),
				&mdast.Encoded{Type: "definition", Identifier: "foo", Label: "foo", URL: "/u"},
			),
		},
		{
			"full image reference", "![x][Foo]\n\n[foo]: /u", nil,
			root(
				para(&mdast.Encoded{
					Type: "imageReference", Identifier: "foo", Label: "Foo", ReferenceType: "full", Alt: "x",
				}),
				&mdast.Encoded{Type: "definition", Identifier: "foo", Label: "foo", URL: "/u"},
			),
		},
		{"undefined reference", "[nope]", nil, root(para(txt("[nope]")))},
		{
			"autolink", "<https://a.b>", nil,
			root(para(&mdast.Encoded{Type: "link", URL: "https://a.b", Children: []*mdast.Encoded{txt("https://a.b")}})),
		},
		{
			"email autolink", "<me@x.y>", nil,
			root(para(&mdast.Encoded{Type: "link", URL: "mailto:me@x.y", Children: []*mdast.Encoded{txt("me@x.y")}})),
		},
		{"escapes and references", `a \* &amp; &#35;`, nil, root(para(txt("a * & #")))},
		{"strikethrough", "~~a~~", marks, root(para(el("delete", txt("a"))))},
		{"underline", "__a__", marks, root(para(el("underline", txt("a"))))},
		{"spoiler", "||s||", marks, root(para(el("spoiler", txt("s"))))},
		{"marks disabled", "~~a~~", nil, root(para(txt("~~a~~")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mdast.Encode(compile(t, tt.input, tt.exts...), false)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tree mismatch for %q (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestCompile_Positions(t *testing.T) {
	t.Parallel()

	tree := compile(t, "a *b*")

	emphasis := mdast.FindByKind(tree, mdast.NodeEmphasis)
	require.Len(t, emphasis, 1)
	assert.Equal(t, mdast.Position{
		Start: mdast.Point{Line: 1, Column: 3, Offset: 2},
		End:   mdast.Point{Line: 1, Column: 6, Offset: 5},
	}, emphasis[0].Position)

	inner := emphasis[0].FirstChild
	require.NotNil(t, inner)
	assert.Equal(t, mdast.Point{Line: 1, Column: 4, Offset: 3}, inner.Position.Start)
	assert.Equal(t, mdast.Point{Line: 1, Column: 5, Offset: 4}, inner.Position.End)
}

func TestCompile_EmptyDocumentPosition(t *testing.T) {
	t.Parallel()

	tree := compile(t, "")

	start := mdast.Point{Line: 1, Column: 1, Offset: 0}
	assert.Equal(t, mdast.Position{Start: start, End: start}, tree.Position)
	assert.False(t, tree.HasChildren())
}

func TestCompile_Transforms(t *testing.T) {
	t.Parallel()

	appendBreak := func(root *mdast.Node) *mdast.Node {
		mdast.AppendChild(root, mdast.NewNode(mdast.NodeThematicBreak))
		return nil
	}
	replace := func(*mdast.Node) *mdast.Node {
		return mdast.NewRoot()
	}

	c := compiler.New(compiler.WithTransforms(appendBreak))
	tree, err := compileWith(c, "a")
	require.NoError(t, err)
	assert.Equal(t, mdast.NodeThematicBreak, tree.LastChild.Kind)

	c = compiler.New(compiler.WithTransforms(appendBreak, replace))
	tree, err = compileWith(c, "a")
	require.NoError(t, err)
	assert.False(t, tree.HasChildren())
}

func TestCompile_ExtensionHandlers(t *testing.T) {
	t.Parallel()

	ext := compiler.Extension{
		Enter: map[micromark.TokenType]compiler.Handle{
			micromark.TypeThematicBreak: func(c *compiler.Context, tok *micromark.Token) {
				n := mdast.NewNode(mdast.NodeHTML)
				n.Value = "<hr>"
				c.Enter(n, tok)
			},
		},
	}

	tree, err := compileWith(compiler.New(compiler.WithExtension(ext)), "---")
	require.NoError(t, err)
	require.NotNil(t, tree.FirstChild)
	assert.Equal(t, mdast.NodeHTML, tree.FirstChild.Kind)
	assert.Equal(t, "<hr>", tree.FirstChild.Value)
	assert.Equal(t, 3, tree.FirstChild.Position.End.Offset)
}

// mismatchedEmphasis opens emphasis nodes under a foreign token so that
// the emphasis exit does not match.
var mismatchedEmphasis = compiler.Extension{
	Enter: map[micromark.TokenType]compiler.Handle{
		micromark.TypeEmphasis: func(c *compiler.Context, tok *micromark.Token) {
			c.Enter(mdast.NewNode(mdast.NodeEmphasis), &micromark.Token{Type: "custom", Start: tok.Start})
		},
	},
}

func TestCompile_ExitMismatch(t *testing.T) {
	t.Parallel()

	_, err := compileWith(compiler.New(compiler.WithExtension(mismatchedEmphasis)), "*a*")
	require.Error(t, err)

	var ie *micromark.InvariantError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.Message, "cannot close `emphasis`")
	assert.Contains(t, ie.Message, "`custom`")
}

func TestCompile_OnExitError(t *testing.T) {
	t.Parallel()

	var closing, open []micromark.TokenType
	onError := func(_ *compiler.Context, c, o *micromark.Token) {
		closing = append(closing, c.Type)
		open = append(open, o.Type)
	}

	c := compiler.New(compiler.WithExtension(mismatchedEmphasis), compiler.WithOnExitError(onError))
	tree, err := compileWith(c, "*a*")
	require.NoError(t, err)

	assert.Equal(t, []micromark.TokenType{micromark.TypeEmphasis}, closing)
	assert.Equal(t, []micromark.TokenType{"custom"}, open)
	assert.Len(t, mdast.FindByKind(tree, mdast.NodeEmphasis), 1)
}

func TestCompile_Properties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  *mdast.Encoded
	}{
		{"plain text", "just plain text\n", root(para(txt("just plain text")))},
		{"dashes after paragraph", "a\n---\n", root(heading(2, txt("a")))},
		{"dashes first", "---\n", root(el("thematicBreak"))},
		{"strong", "**bold**", root(para(el("strong", txt("bold"))))},
		{
			"two emphasis", "*a* and _b_",
			root(para(el("emphasis", txt("a")), txt(" and "), el("emphasis", txt("b")))),
		},
		{
			"reference deferral", "[x]\n\n[x]: /url \"t\"\n",
			root(
				para(&mdast.Encoded{
					Type: "linkReference", Identifier: "x", Label: "x", ReferenceType: "shortcut",
					Children: []*mdast.Encoded{txt("x")},
				}),
				&mdast.Encoded{Type: "definition", Identifier: "x", Label: "x", URL: "/url", Title: "t"},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mdast.Encode(compile(t, tt.input), false)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tree mismatch for %q (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}
