package micromark

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/util"
)

// DecodeNamedCharacterReference returns the characters for an HTML named
// character reference such as `amp`, without the `&` and `;`.
func DecodeNamedCharacterReference(name string) (string, bool) {
	entity, ok := util.LookUpHTML5EntityByName(name)
	if !ok {
		return "", false
	}
	return string(entity.Characters), true
}

// DecodeNumericCharacterReference decodes the digits of a numeric character
// reference in base 10 or 16. Values that are not allowed in HTML decode to
// U+FFFD.
func DecodeNumericCharacterReference(value string, base int) string {
	code, err := strconv.ParseInt(value, base, 32)
	if err != nil || !allowedCharacterReference(code) {
		return string(utf8.RuneError)
	}
	return string(util.ToValidRune(rune(code)))
}

func allowedCharacterReference(code int64) bool {
	switch {
	case code < 0x09, code == 0x0B:
		return false
	case code > 0x0D && code < 0x20:
		return false
	case code > 0x7E && code < 0xA0:
		return false
	case code > 0xD7FF && code < 0xE000:
		return false
	case code > 0xFDCF && code < 0xFDF0:
		return false
	case code&0xFFFF == 0xFFFF, code&0xFFFF == 0xFFFE:
		return false
	case code > 0x10FFFF:
		return false
	}
	return true
}

// DecodeString resolves backslash escapes and character references in a
// string such as a link destination, title or fence info.
func DecodeString(value string) string {
	if !strings.ContainsAny(value, `\&`) {
		return value
	}

	var sb strings.Builder
	sb.Grow(len(value))
	for index := 0; index < len(value); {
		c := value[index]
		switch {
		case c == '\\' && index+1 < len(value) && asciiPunctuation(Code(value[index+1])):
			sb.WriteByte(value[index+1])
			index += 2
			continue
		case c == '&':
			if decoded, size := decodeReferenceAt(value[index:]); size > 0 {
				sb.WriteString(decoded)
				index += size
				continue
			}
		}
		sb.WriteByte(c)
		index++
	}
	return sb.String()
}

// decodeReferenceAt decodes a character reference at the start of s and
// returns the decoded text and the number of bytes used, or zero.
func decodeReferenceAt(s string) (string, int) {
	end := strings.IndexByte(s, ';')
	if end < 2 {
		return "", 0
	}
	body := s[1:end]

	if body[0] == '#' {
		digits, base, max := body[1:], 10, characterReferenceDec
		if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
			digits, base, max = digits[1:], 16, characterReferenceHex
		}
		if len(digits) == 0 || len(digits) > max {
			return "", 0
		}
		for i := 0; i < len(digits); i++ {
			code := Code(digits[i])
			if (base == 10 && !asciiDigit(code)) || (base == 16 && !asciiHexDigit(code)) {
				return "", 0
			}
		}
		return DecodeNumericCharacterReference(digits, base), end + 1
	}

	if len(body) > characterReferenceNamed {
		return "", 0
	}
	for i := 0; i < len(body); i++ {
		if !asciiAlphanumeric(Code(body[i])) {
			return "", 0
		}
	}
	decoded, ok := DecodeNamedCharacterReference(body)
	if !ok {
		return "", 0
	}
	return decoded, end + 1
}
