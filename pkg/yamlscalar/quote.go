// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlscalar

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var shortEscapes = map[rune]string{
	0x00:   `\0`,
	0x07:   `\a`,
	0x08:   `\b`,
	0x09:   `\t`,
	0x0a:   `\n`,
	0x0b:   `\v`,
	0x0c:   `\f`,
	0x0d:   `\r`,
	'"':    `\"`,
	'\\':   `\\`,
	0x85:   `\N`,
	0xa0:   `\_`,
	0x2028: `\L`,
	0x2029: `\P`,
}

// BuildQuotedScalar wraps value in quotes. Double quoted text escapes quotes,
// backslashes and every non-printable character; invalid UTF-8 bytes become
// U+FFFD. Single quoted text only doubles single quotes, so values that are not
// SingleQuoteSafe are double quoted instead.
func BuildQuotedScalar(value string, doubleQuote bool) string {
	if !doubleQuote && Analyze(value).SingleQuoteSafe {
		return "'" + strings.ReplaceAll(value, "'", "''") + "'"
	}

	var sb strings.Builder
	sb.Grow(len(value) + 2)
	sb.WriteByte('"')

	for i := 0; i < len(value); {
		r, size := utf8.DecodeRuneInString(value[i:])
		i += size

		if r == utf8.RuneError && size == 1 {
			sb.WriteString(`\uFFFD`)
			continue
		}
		if esc, found := shortEscapes[r]; found {
			sb.WriteString(esc)
			continue
		}
		if !isPrintable(r) {
			sb.WriteString(`\u`)
			hex := strconv.FormatInt(int64(r), 16)
			sb.WriteString(strings.Repeat("0", 4-len(hex)))
			sb.WriteString(strings.ToUpper(hex))
			continue
		}
		sb.WriteRune(r)
	}

	sb.WriteByte('"')
	return sb.String()
}
