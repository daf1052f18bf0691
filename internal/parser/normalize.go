package parser

import (
	"strings"
	"unicode"
)

// normalizeText rewrites the text so the ASCII \s and \d classes of the
// field patterns match what a PDF text layer actually contains: every
// Unicode space (U+00A0, U+2009, U+3000, \v, ...) becomes ' ' and every
// Unicode decimal digit becomes its ASCII digit. Newlines are kept.
func normalizeText(text string) string {
	if isPlainASCII(text) {
		return text
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t' || r == '\f':
			return r
		case unicode.IsSpace(r):
			return ' '
		case r > unicode.MaxASCII && unicode.Is(unicode.Nd, r):
			return '0' + digitValue(r)
		}
		return r
	}, text)
}

func isPlainASCII(text string) bool {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c > unicode.MaxASCII || c == '\v' {
			return false
		}
	}
	return true
}

// digitValue returns the value of a decimal digit rune. Unicode assigns Nd
// digits in contiguous runs of ten starting at zero, so the offset inside
// its range of unicode.Nd gives the value.
func digitValue(r rune) rune {
	for _, rg := range unicode.Nd.R16 {
		if uint32(r) >= uint32(rg.Lo) && uint32(r) <= uint32(rg.Hi) {
			return (r - rune(rg.Lo)) % 10
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if uint32(r) >= rg.Lo && uint32(r) <= rg.Hi {
			return (r - rune(rg.Lo)) % 10
		}
	}
	return 0
}
