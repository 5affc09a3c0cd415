package micromark

import (
	"math"
	"unicode"
)

// Code is a single character code fed to state functions: a Unicode code
// point, or one of the negative special codes below.
type Code int32

// Special codes produced by the preprocessor.
const (
	CodeEOF                    Code = -6
	CodeCarriageReturn         Code = -5
	CodeLineFeed               Code = -4
	CodeCarriageReturnLineFeed Code = -3
	CodeHorizontalTab          Code = -2
	CodeVirtualSpace           Code = -1

	// CodeReplacementCharacter stands in for NUL bytes in the input.
	CodeReplacementCharacter Code = 0xFFFD

	// CodeAny keys constructs in a ConstructMap that apply to every code
	// except end of input.
	CodeAny Code = math.MinInt32
)

// Grammar constants shared by several constructs.
const (
	tabSize                  = 4
	hardBreakPrefixSizeMin   = 2
	listItemValueSizeMax     = 10
	thematicBreakMarkerMin   = 3
	atxHeadingOpeningMaxSize = 6
	codeFencedSequenceMin    = 3
	linkReferenceSizeMax     = 999
	characterReferenceNamed  = 31
	characterReferenceDec    = 7
	characterReferenceHex    = 6
	htmlRawSizeMax           = 8
	autolinkDomainSizeMax    = 63
	autolinkSchemeSizeMax    = 32
)

// Character groups used when classifying the characters around a sequence.
const (
	groupOther       = 0
	groupWhitespace  = 1
	groupPunctuation = 2
)

func (c Code) String() string {
	switch c {
	case CodeEOF:
		return "eof"
	case CodeCarriageReturn:
		return "cr"
	case CodeLineFeed:
		return "lf"
	case CodeCarriageReturnLineFeed:
		return "crlf"
	case CodeHorizontalTab:
		return "ht"
	case CodeVirtualSpace:
		return "vs"
	default:
		return string(rune(c))
	}
}

func markdownLineEnding(code Code) bool {
	return code == CodeCarriageReturn || code == CodeLineFeed || code == CodeCarriageReturnLineFeed
}

func markdownSpace(code Code) bool {
	return code == CodeHorizontalTab || code == CodeVirtualSpace || code == ' '
}

func markdownLineEndingOrSpace(code Code) bool {
	return code != CodeEOF && (code < 0 || code == ' ')
}

func asciiAlpha(code Code) bool {
	return (code >= 'A' && code <= 'Z') || (code >= 'a' && code <= 'z')
}

func asciiDigit(code Code) bool {
	return code >= '0' && code <= '9'
}

func asciiHexDigit(code Code) bool {
	return asciiDigit(code) || (code >= 'A' && code <= 'F') || (code >= 'a' && code <= 'f')
}

func asciiAlphanumeric(code Code) bool {
	return asciiAlpha(code) || asciiDigit(code)
}

func asciiAtext(code Code) bool {
	switch {
	case asciiAlphanumeric(code):
		return true
	case code == '!' || code == '#' || code == '$' || code == '%' || code == '&' ||
		code == '\'' || code == '*' || code == '+' || code == '-' || code == '/' ||
		code == '=' || code == '?' || code == '^' || code == '_' || code == '`' ||
		code == '{' || code == '|' || code == '}' || code == '~':
		return true
	default:
		return false
	}
}

func asciiControl(code Code) bool {
	return code != CodeEOF && (code < ' ' || code == 0x7F)
}

func asciiPunctuation(code Code) bool {
	return (code >= '!' && code <= '/') || (code >= ':' && code <= '@') ||
		(code >= '[' && code <= '`') || (code >= '{' && code <= '~')
}

func unicodeWhitespace(code Code) bool {
	return code >= 0 && unicode.Is(unicode.Zs, rune(code)) ||
		code == '\t' || code == '\n' || code == '\f' || code == '\r'
}

func unicodePunctuation(code Code) bool {
	if code < 0 {
		return false
	}
	return asciiPunctuation(code) || unicode.IsPunct(rune(code)) || unicode.IsSymbol(rune(code))
}

// classifyCharacter groups a code as whitespace, punctuation or other, as
// needed for delimiter run flanking.
func classifyCharacter(code Code) int {
	if code == CodeEOF || markdownLineEndingOrSpace(code) || unicodeWhitespace(code) {
		return groupWhitespace
	}
	if unicodePunctuation(code) {
		return groupPunctuation
	}
	return groupOther
}
