package micromark_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmark/pkg/micromark"
)

// tokenize runs the whole pipeline and returns the postprocessed events.
func tokenize(p *micromark.Parser, input string) (events []micromark.Event, err error) {
	defer micromark.Recover(&err)
	events = p.Document().Write(micromark.Preprocess([]byte(input)))
	return micromark.Postprocess(events), nil
}

// requireBalanced checks that every exit closes the innermost open token
// and that tokens never end before they start.
func requireBalanced(t *testing.T, events []micromark.Event) {
	t.Helper()

	var stack []*micromark.Token
	for i, ev := range events {
		if ev.Kind == micromark.EventEnter {
			stack = append(stack, ev.Token)
			continue
		}
		require.NotEmpty(t, stack, "event %d exits %s with nothing open", i, ev.Token.Type)
		top := stack[len(stack)-1]
		require.Same(t, top, ev.Token, "event %d exits %s while %s is open", i, ev.Token.Type, top.Type)
		stack = stack[:len(stack)-1]

		require.LessOrEqual(t, ev.Token.Start.Offset, ev.Token.End.Offset, "%s ends before it starts", ev.Token.Type)
		require.GreaterOrEqual(t, ev.Token.Start.Line, 1)
	}
	require.Empty(t, stack, "tokens left open at end of input")
}

// enters returns the types of all entered tokens, in order.
func enters(events []micromark.Event) []micromark.TokenType {
	var types []micromark.TokenType
	for _, ev := range events {
		if ev.Kind == micromark.EventEnter {
			types = append(types, ev.Token.Type)
		}
	}
	return types
}

var sampleDocuments = []string{
	"",
	"plain paragraph",
	"# Heading\n\nText with *emphasis* and **strong**.",
	"Setext\n======\n\nOther\n---",
	"***\n- - -\n___",
	"> quote\n> > nested\nlazy",
	"- a\n- b\n\n  c\n1. one\n2) two",
	"```go\nfunc main() {}\n```\n\n~~~\nunclosed",
	"    indented\n\tcode",
	"[link](http://example.com \"title\") ![img](a.png)",
	"[ref][] and [ref]\n\n[ref]: /url 'title'",
	"<div>\nhtml\n</div>\n\ninline <span a=\"b\">x</span>",
	"<https://example.com> <me@example.com>",
	"`code` ``a ` b``",
	"a\\*b &amp; &#35; &bogus;",
	"hard  \nbreak\\\nagain",
	"*a **b** c*_d_",
	"\xEF\xBB\xBFbom\r\nwindows\rmac",
	"a\x00b",
	"- [x] not a task\n  * nested\n    > deep",
}

func TestTokenize_Balanced(t *testing.T) {
	t.Parallel()

	p := micromark.NewParser(micromark.WithExtensions(
		micromark.Underline(), micromark.Strikethrough(), micromark.Spoiler(),
	))

	for _, doc := range sampleDocuments {
		events, err := tokenize(p, doc)
		require.NoError(t, err, "input %q", doc)
		requireBalanced(t, events)
	}
}

func TestTokenize_Constructs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		exts    []micromark.Extension
		want    []micromark.TokenType
		notWant []micromark.TokenType
	}{
		{
			name:  "thematic break",
			input: "***",
			want:  []micromark.TokenType{micromark.TypeThematicBreak, micromark.TypeThematicBreakSequence},
		},
		{
			name:  "atx heading",
			input: "## Title",
			want:  []micromark.TokenType{micromark.TypeATXHeading, micromark.TypeATXHeadingSequence, micromark.TypeATXHeadingText},
		},
		{
			name:  "paragraph",
			input: "text",
			want:  []micromark.TokenType{micromark.TypeContent, micromark.TypeParagraph, micromark.TypeData},
		},
		{
			name:  "emphasis",
			input: "*a*",
			want:  []micromark.TokenType{micromark.TypeEmphasis, micromark.TypeEmphasisSequence, micromark.TypeEmphasisText},
		},
		{
			name:  "indented code",
			input: "    code",
			want:  []micromark.TokenType{micromark.TypeCodeIndented},
		},
		{
			name:    "indented code disabled",
			input:   "    code",
			exts:    []micromark.Extension{{Disable: []string{"codeIndented"}}},
			want:    []micromark.TokenType{micromark.TypeParagraph},
			notWant: []micromark.TokenType{micromark.TypeCodeIndented},
		},
		{
			name:    "strikethrough off by default",
			input:   "~~a~~",
			notWant: []micromark.TokenType{micromark.TypeStrikethrough},
		},
		{
			name:    "strikethrough",
			input:   "~~a~~",
			exts:    []micromark.Extension{micromark.Strikethrough()},
			want:    []micromark.TokenType{micromark.TypeStrikethrough, micromark.TypeStrikethroughText},
			notWant: []micromark.TokenType{micromark.TypeStrikethroughSequence},
		},
		{
			name:    "strikethrough needs two markers",
			input:   "~~~a~~~",
			exts:    []micromark.Extension{micromark.Strikethrough()},
			notWant: []micromark.TokenType{micromark.TypeStrikethrough},
		},
		{
			name:  "spoiler",
			input: "||secret||",
			exts:  []micromark.Extension{micromark.Spoiler()},
			want:  []micromark.TokenType{micromark.TypeSpoiler, micromark.TypeSpoilerText},
		},
		{
			name:  "underline",
			input: "__a__",
			exts:  []micromark.Extension{micromark.Underline()},
			want:  []micromark.TokenType{micromark.TypeUnderline, micromark.TypeUnderlineText},
		},
		{
			name:  "underline around a lone underscore",
			input: "__a_b__",
			exts:  []micromark.Extension{micromark.Underline()},
			want:  []micromark.TokenType{micromark.TypeUnderline, micromark.TypeUnderlineText},
		},
		{
			name:    "strikethrough around a lone tilde",
			input:   "~~a~b~~",
			exts:    []micromark.Extension{micromark.Strikethrough()},
			notWant: []micromark.TokenType{micromark.TypeStrikethrough},
		},
		{
			name:    "two trailing spaces are a hard break",
			input:   "a  \nb",
			want:    []micromark.TokenType{micromark.TypeHardBreakTrailing},
			notWant: []micromark.TokenType{micromark.TypeLineSuffix},
		},
		{
			name:    "trailing tab is a line suffix",
			input:   "a\t\nb",
			want:    []micromark.TokenType{micromark.TypeLineSuffix},
			notWant: []micromark.TokenType{micromark.TypeHardBreakTrailing},
		},
		{
			name:    "trailing space and tab are a line suffix",
			input:   "a \t\nb",
			want:    []micromark.TokenType{micromark.TypeLineSuffix},
			notWant: []micromark.TokenType{micromark.TypeHardBreakTrailing},
		},
		{
			name:    "trailing spaces at the end are a line suffix",
			input:   "a   ",
			want:    []micromark.TokenType{micromark.TypeLineSuffix},
			notWant: []micromark.TokenType{micromark.TypeHardBreakTrailing},
		},
		{
			name:    "strong without underline",
			input:   "__a__",
			want:    []micromark.TokenType{micromark.TypeStrong},
			notWant: []micromark.TokenType{micromark.TypeUnderline},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := micromark.NewParser(micromark.WithExtensions(tt.exts...))
			events, err := tokenize(p, tt.input)
			require.NoError(t, err)
			requireBalanced(t, events)

			types := enters(events)
			assert.Subset(t, types, tt.want)
			for _, typ := range tt.notWant {
				assert.NotContains(t, types, typ)
			}
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	t.Parallel()

	events, err := tokenize(micromark.NewParser(), "a\n\n# b")
	require.NoError(t, err)

	for _, ev := range events {
		if ev.Kind != micromark.EventEnter || ev.Token.Type != micromark.TypeATXHeading {
			continue
		}
		assert.Equal(t, "3:1", ev.Token.Start.String())
		assert.Equal(t, "3:4", ev.Token.End.String())
		assert.Equal(t, 3, ev.Token.Start.Offset)
		assert.Equal(t, 6, ev.Token.End.Offset)
		return
	}
	t.Fatal("no heading token")
}

func TestTokenizer_WriteWithoutEOF(t *testing.T) {
	t.Parallel()

	tok := micromark.NewParser().Document()

	assert.Nil(t, tok.Write([]micromark.Chunk{{Text: "abc"}}))
	events := tok.Write([]micromark.Chunk{{Code: micromark.CodeEOF}})
	assert.NotEmpty(t, events)
}

func TestConstructNames(t *testing.T) {
	t.Parallel()

	names := micromark.ConstructNames()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "codeIndented")
	assert.Contains(t, names, "headingAtx")
	assert.Contains(t, names, "thematicBreak")
	assert.NotContains(t, names, "spoiler")

	names = micromark.ConstructNames(micromark.Spoiler(), micromark.Underline())
	assert.Contains(t, names, "spoiler")
	assert.Contains(t, names, "underline")
}

func TestInvariantError(t *testing.T) {
	t.Parallel()

	plain := &micromark.InvariantError{Message: "broken"}
	assert.Equal(t, "micromark: broken", plain.Error())

	withToken := &micromark.InvariantError{
		Message:   "broken",
		TokenType: micromark.TypeParagraph,
		Point:     micromark.Point{Line: 2, Column: 3},
	}
	assert.Equal(t, "micromark: broken (`paragraph` at 2:3)", withToken.Error())

	atPoint := &micromark.InvariantError{Message: "broken", Point: micromark.Point{Line: 4, Column: 1}}
	assert.Equal(t, "micromark: broken (at 4:1)", atPoint.Error())
}

func TestTokenize_MisbehavingConstruct(t *testing.T) {
	t.Parallel()

	const percent micromark.TokenType = "percent"

	tests := []struct {
		name     string
		tokenize micromark.TokenizeFunc
		message  string
	}{
		{
			name: "consumes another code",
			tokenize: func(_ *micromark.Tokenizer, effects *micromark.Effects, _, _ micromark.State) micromark.State {
				return func(code micromark.Code) micromark.State {
					effects.Enter(percent)
					effects.Consume(code + 1)
					return nil
				}
			},
			message: "expected given code to equal expected code",
		},
		{
			name: "never consumes",
			tokenize: func(_ *micromark.Tokenizer, effects *micromark.Effects, _, _ micromark.State) micromark.State {
				return func(micromark.Code) micromark.State {
					effects.Enter(percent)
					return func(micromark.Code) micromark.State { return nil }
				}
			},
			message: "expected character to be consumed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			construct := &micromark.Construct{Name: "percent", Tokenize: tt.tokenize}
			p := micromark.NewParser(micromark.WithExtensions(micromark.Extension{
				Text: micromark.ConstructMap{'%': {construct}},
			}))

			_, err := tokenize(p, "ab%c")
			var ie *micromark.InvariantError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, tt.message, ie.Message)
			assert.Equal(t, percent, ie.TokenType)
			assert.Equal(t, "1:3", ie.Point.String())
			assert.Contains(t, err.Error(), "`percent` at 1:3")
		})
	}
}

func TestRecover(t *testing.T) {
	t.Parallel()

	run := func(v any) (err error) {
		defer micromark.Recover(&err)
		if v != nil {
			panic(v)
		}
		return nil
	}

	require.NoError(t, run(nil))

	err := run(&micromark.InvariantError{Message: "boom"})
	var ie *micromark.InvariantError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "boom", ie.Message)

	assert.PanicsWithValue(t, "other", func() { _ = run("other") })
}

func TestEventKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "enter", micromark.EventEnter.String())
	assert.Equal(t, "exit", micromark.EventExit.String())
}

func FuzzDocument(f *testing.F) {
	for _, doc := range sampleDocuments {
		f.Add(doc)
	}

	p := micromark.NewParser(micromark.WithExtensions(
		micromark.Underline(), micromark.Strikethrough(), micromark.Spoiler(),
	))

	f.Fuzz(func(t *testing.T, input string) {
		events, err := tokenize(p, input)
		require.NoError(t, err)
		requireBalanced(t, events)
	})
}

func TestTokenize_SliceFidelity(t *testing.T) {
	t.Parallel()

	// Without containers or tabs every token serializes to its source.
	docs := []string{
		"# Heading\n\nText *em* `code` [l](u) &amp;\n\n```js\nx\n```\n",
		"a\r\nb\rc",
		"Setext\n===\n\n***\n",
		"<div>\nraw\n</div>\n",
	}

	p := micromark.NewParser()
	for _, doc := range docs {
		events, err := tokenize(p, doc)
		require.NoError(t, err)

		for _, ev := range events {
			if ev.Kind != micromark.EventEnter {
				continue
			}
			tok := ev.Token
			assert.Equal(t, doc[tok.Start.Offset:tok.End.Offset], ev.Context.SliceSerialize(tok, false),
				"%s at %s in %q", tok.Type, tok.Start, doc)
		}
	}
}
