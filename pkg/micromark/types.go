package micromark

import "fmt"

// TokenType names the kind of a token. Names follow the grammar's
// vocabulary so that events can be inspected and compiled by name.
type TokenType string

// Token types produced by the built-in constructs.
const (
	TypeData            TokenType = "data"
	TypeWhitespace      TokenType = "whitespace"
	TypeSpace           TokenType = "space"
	TypeLineEnding      TokenType = "lineEnding"
	TypeLineEndingBlank TokenType = "lineEndingBlank"
	TypeLinePrefix      TokenType = "linePrefix"
	TypeLineSuffix      TokenType = "lineSuffix"

	TypeATXHeading         TokenType = "atxHeading"
	TypeATXHeadingSequence TokenType = "atxHeadingSequence"
	TypeATXHeadingText     TokenType = "atxHeadingText"

	TypeAutolink         TokenType = "autolink"
	TypeAutolinkEmail    TokenType = "autolinkEmail"
	TypeAutolinkMarker   TokenType = "autolinkMarker"
	TypeAutolinkProtocol TokenType = "autolinkProtocol"

	TypeCharacterEscape      TokenType = "characterEscape"
	TypeCharacterEscapeValue TokenType = "characterEscapeValue"

	TypeCharacterReference                  TokenType = "characterReference"
	TypeCharacterReferenceMarker            TokenType = "characterReferenceMarker"
	TypeCharacterReferenceMarkerNumeric     TokenType = "characterReferenceMarkerNumeric"
	TypeCharacterReferenceMarkerHexadecimal TokenType = "characterReferenceMarkerHexadecimal"
	TypeCharacterReferenceValue             TokenType = "characterReferenceValue"

	TypeCodeFenced              TokenType = "codeFenced"
	TypeCodeFencedFence         TokenType = "codeFencedFence"
	TypeCodeFencedFenceSequence TokenType = "codeFencedFenceSequence"
	TypeCodeFencedFenceInfo     TokenType = "codeFencedFenceInfo"
	TypeCodeFencedFenceMeta     TokenType = "codeFencedFenceMeta"
	TypeCodeFlowValue           TokenType = "codeFlowValue"
	TypeCodeIndented            TokenType = "codeIndented"
	TypeCodeText                TokenType = "codeText"
	TypeCodeTextData            TokenType = "codeTextData"
	TypeCodeTextPadding         TokenType = "codeTextPadding"
	TypeCodeTextSequence        TokenType = "codeTextSequence"

	TypeContent TokenType = "content"

	TypeDefinition                         TokenType = "definition"
	TypeDefinitionDestination              TokenType = "definitionDestination"
	TypeDefinitionDestinationLiteral       TokenType = "definitionDestinationLiteral"
	TypeDefinitionDestinationLiteralMarker TokenType = "definitionDestinationLiteralMarker"
	TypeDefinitionDestinationRaw           TokenType = "definitionDestinationRaw"
	TypeDefinitionDestinationString        TokenType = "definitionDestinationString"
	TypeDefinitionLabel                    TokenType = "definitionLabel"
	TypeDefinitionLabelMarker              TokenType = "definitionLabelMarker"
	TypeDefinitionLabelString              TokenType = "definitionLabelString"
	TypeDefinitionMarker                   TokenType = "definitionMarker"
	TypeDefinitionTitle                    TokenType = "definitionTitle"
	TypeDefinitionTitleMarker              TokenType = "definitionTitleMarker"
	TypeDefinitionTitleString              TokenType = "definitionTitleString"

	TypeAttentionSequence TokenType = "attentionSequence"
	TypeEmphasis          TokenType = "emphasis"
	TypeEmphasisSequence  TokenType = "emphasisSequence"
	TypeEmphasisText      TokenType = "emphasisText"
	TypeStrong            TokenType = "strong"
	TypeStrongSequence    TokenType = "strongSequence"
	TypeStrongText        TokenType = "strongText"

	TypeEscapeMarker      TokenType = "escapeMarker"
	TypeHardBreakEscape   TokenType = "hardBreakEscape"
	TypeHardBreakTrailing TokenType = "hardBreakTrailing"

	TypeHTMLFlow     TokenType = "htmlFlow"
	TypeHTMLFlowData TokenType = "htmlFlowData"
	TypeHTMLText     TokenType = "htmlText"
	TypeHTMLTextData TokenType = "htmlTextData"

	TypeImage            TokenType = "image"
	TypeLink             TokenType = "link"
	TypeLabel            TokenType = "label"
	TypeLabelText        TokenType = "labelText"
	TypeLabelLink        TokenType = "labelLink"
	TypeLabelImage       TokenType = "labelImage"
	TypeLabelMarker      TokenType = "labelMarker"
	TypeLabelImageMarker TokenType = "labelImageMarker"
	TypeLabelEnd         TokenType = "labelEnd"

	TypeReference       TokenType = "reference"
	TypeReferenceMarker TokenType = "referenceMarker"
	TypeReferenceString TokenType = "referenceString"

	TypeResource                         TokenType = "resource"
	TypeResourceDestination              TokenType = "resourceDestination"
	TypeResourceDestinationLiteral       TokenType = "resourceDestinationLiteral"
	TypeResourceDestinationLiteralMarker TokenType = "resourceDestinationLiteralMarker"
	TypeResourceDestinationRaw           TokenType = "resourceDestinationRaw"
	TypeResourceDestinationString        TokenType = "resourceDestinationString"
	TypeResourceMarker                   TokenType = "resourceMarker"
	TypeResourceTitle                    TokenType = "resourceTitle"
	TypeResourceTitleMarker              TokenType = "resourceTitleMarker"
	TypeResourceTitleString              TokenType = "resourceTitleString"

	TypeParagraph TokenType = "paragraph"

	TypeSetextHeading             TokenType = "setextHeading"
	TypeSetextHeadingText         TokenType = "setextHeadingText"
	TypeSetextHeadingLine         TokenType = "setextHeadingLine"
	TypeSetextHeadingLineSequence TokenType = "setextHeadingLineSequence"

	TypeThematicBreak         TokenType = "thematicBreak"
	TypeThematicBreakSequence TokenType = "thematicBreakSequence"

	TypeBlockQuote                 TokenType = "blockQuote"
	TypeBlockQuotePrefix           TokenType = "blockQuotePrefix"
	TypeBlockQuoteMarker           TokenType = "blockQuoteMarker"
	TypeBlockQuotePrefixWhitespace TokenType = "blockQuotePrefixWhitespace"

	TypeListOrdered              TokenType = "listOrdered"
	TypeListUnordered            TokenType = "listUnordered"
	TypeListItem                 TokenType = "listItem"
	TypeListItemIndent           TokenType = "listItemIndent"
	TypeListItemMarker           TokenType = "listItemMarker"
	TypeListItemPrefix           TokenType = "listItemPrefix"
	TypeListItemPrefixWhitespace TokenType = "listItemPrefixWhitespace"
	TypeListItemValue            TokenType = "listItemValue"

	TypeChunkDocument TokenType = "chunkDocument"
	TypeChunkContent  TokenType = "chunkContent"
	TypeChunkFlow     TokenType = "chunkFlow"
	TypeChunkText     TokenType = "chunkText"
	TypeChunkString   TokenType = "chunkString"

	TypeUnderline             TokenType = "underline"
	TypeUnderlineSequence     TokenType = "underlineSequence"
	TypeUnderlineText         TokenType = "underlineText"
	TypeStrikethrough         TokenType = "strikethrough"
	TypeStrikethroughSequence TokenType = "strikethroughSequence"
	TypeStrikethroughText     TokenType = "strikethroughText"
	TypeSpoiler               TokenType = "spoiler"
	TypeSpoilerSequence       TokenType = "spoilerSequence"
	TypeSpoilerText           TokenType = "spoilerText"
)

// ContentType names the grammar a deferred token is tokenized with later.
type ContentType uint8

// Content types of deferred tokens.
const (
	ContentTypeNone ContentType = iota
	ContentTypeFlow
	ContentTypeContent
	ContentTypeString
	ContentTypeText
)

func (c ContentType) String() string {
	switch c {
	case ContentTypeFlow:
		return "flow"
	case ContentTypeContent:
		return "content"
	case ContentTypeString:
		return "string"
	case ContentTypeText:
		return "text"
	default:
		return ""
	}
}

// Point is a place in the input. Line and Column are 1-based; Column
// counts characters and Offset counts bytes from the start of the input.
type Point struct {
	Line   int
	Column int
	Offset int

	// index is the chunk the point is in; bufferIndex is the byte index
	// inside a text chunk, or -1 for code chunks.
	index       int
	bufferIndex int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Chunk is one element of the preprocessed input: a run of text, or a
// single special code when Text is empty.
type Chunk struct {
	Code Code
	Text string
}

// IsText reports whether the chunk is a run of text.
func (c Chunk) IsText() bool {
	return c.Text != ""
}

// Token is a span of input with a type. Tokens are shared by the enter and
// exit events that bound them.
type Token struct {
	Type  TokenType
	Start Point
	End   Point

	// ContentType is set on deferred tokens whose inside is tokenized again.
	ContentType ContentType

	// Previous and Next link the chunks of one multi-line deferred run.
	Previous *Token
	Next     *Token

	// Spread is set on list tokens by the compiler.
	Spread bool

	tokenizer *Tokenizer
	open      bool
	close     bool
	inactive  bool
	balanced  bool
	container bool
}

// Ended reports whether the token has been exited.
func (t *Token) Ended() bool {
	return t.End.Line != 0
}

// EventKind says whether an event opens or closes its token.
type EventKind uint8

// Event kinds.
const (
	EventEnter EventKind = iota
	EventExit
)

func (k EventKind) String() string {
	if k == EventEnter {
		return "enter"
	}
	return "exit"
}

// Event is an enter or exit of a token, together with the tokenizer whose
// chunks the token points into.
type Event struct {
	Kind    EventKind
	Token   *Token
	Context *Tokenizer
}

// State is a step of a state machine: it receives the current code and
// returns the state that handles the next one.
type State func(code Code) State
