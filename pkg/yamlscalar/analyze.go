// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlscalar

import (
	"strings"
	"unicode/utf8"
)

// Analysis describes the content of a scalar value.
type Analysis struct {
	// LineCount is the number of lines the value spans; a final line break
	// does not start a new line.
	LineCount int
	// NeedsQuotes is set when a plain scalar would not read back as the same
	// string.
	NeedsQuotes bool
	// IsReservedWord is set for booleans, nulls and infinities.
	IsReservedWord bool
	// LooksNumeric is set when the value would resolve as a number or timestamp.
	LooksNumeric bool
	// LiteralAllowed is set when a multi-line value can be written as a
	// literal block without an indentation indicator.
	LiteralAllowed bool
	// BlockSafe is set when the value can be written as a literal block at all.
	BlockSafe bool
	// NeedsIndentIndicator is set when the first line starts with a space or
	// the value starts with a line break.
	NeedsIndentIndicator bool
	// SingleQuoteSafe is set when single quoting can represent the value.
	SingleQuoteSafe bool
	// FlowIndicators is set when the value contains a character that ends a
	// plain scalar inside a flow collection but not in block context.
	FlowIndicators bool
}

var reservedWords = map[string]struct{}{}

func init() {
	for _, word := range []string{
		"true", "True", "TRUE", "false", "False", "FALSE",
		"null", "Null", "NULL", "~",
		"y", "Y", "yes", "Yes", "YES", "n", "N", "no", "No", "NO",
		"on", "On", "ON", "off", "Off", "OFF",
		"+.inf", "+.Inf", "+.INF",
	} {
		reservedWords[word] = struct{}{}
	}
}

const (
	// a plain scalar cannot start with any of these
	leadingIndicators = "&*?|-<>=!%@.`#,[]{}'\":"
	// nor contain any of these
	anywhereIndicators = ":{[]},#\\\"'"
	// nor, inside flow collections, any of these
	flowIndicators = "?"
	// characters of integers in any base, floats and dates
	numericChars = "0123456789abcdefABCDEFxXoO_.+-"
)

// IsReservedWord reports whether value reads back as a boolean, null or
// infinity when written plain.
func IsReservedWord(value string) bool {
	_, found := reservedWords[value]
	return found
}

// LooksNumeric reports whether value would resolve to a number (integers in
// any base, floats with exponents, underscores) or a date when written plain.
func LooksNumeric(value string) bool {
	s := value
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	// underscores are digit separators and may come first
	s = strings.TrimLeft(s, "_")
	if s == "" {
		return false
	}
	switch {
	case isDigit(s[0]):
	case s[0] == '.' && len(s) > 1 && isDigit(s[1]):
	default:
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(numericChars, s[i]) < 0 {
			return false
		}
	}
	return true
}

// Analyze classifies value.
func Analyze(value string) Analysis {
	a := Analysis{LineCount: strings.Count(value, "\n") + 1}
	if strings.HasSuffix(value, "\n") {
		a.LineCount--
	}
	if value == "" {
		a.NeedsQuotes = true
		a.SingleQuoteSafe = true
		a.BlockSafe = true
		return a
	}

	a.IsReservedWord = IsReservedWord(value)
	a.LooksNumeric = LooksNumeric(value)

	var (
		breaks        bool
		tabs          bool
		special       bool
		indicators    bool
		spaceBreak    bool
		previousSpace bool
	)

	leadingSpace := value[0] == ' '
	leadingBreak := value[0] == '\n'
	trailingSpace := value[len(value)-1] == ' '

	if strings.IndexByte(leadingIndicators, value[0]) >= 0 {
		indicators = true
	}

	for i := 0; i < len(value); {
		r, size := utf8.DecodeRuneInString(value[i:])
		i += size

		switch {
		case r == '\n':
			breaks = true
			if previousSpace {
				spaceBreak = true
			}
			previousSpace = false
			continue
		case r == '\t':
			tabs = true
		case r == utf8.RuneError && size == 1:
			special = true
		case !isPrintable(r):
			special = true
		case r < utf8.RuneSelf && strings.IndexByte(anywhereIndicators, byte(r)) >= 0:
			indicators = true
		case r < utf8.RuneSelf && strings.IndexByte(flowIndicators, byte(r)) >= 0:
			a.FlowIndicators = true
		}
		previousSpace = r == ' '
	}

	a.NeedsQuotes = a.IsReservedWord || a.LooksNumeric || indicators ||
		leadingSpace || trailingSpace || breaks || tabs || special
	a.SingleQuoteSafe = !breaks && !special && !tabs
	a.BlockSafe = !special && !tabs && !spaceBreak && !trailingSpace
	a.NeedsIndentIndicator = leadingSpace || leadingBreak
	a.LiteralAllowed = a.LineCount > 1 && a.BlockSafe && !a.NeedsIndentIndicator
	return a
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isPrintable excludes what must be escaped in a double quoted scalar: C0 and
// C1 controls, DEL, the byte order mark, non-characters and the Unicode line
// and paragraph separators (line breaks in YAML 1.1). No-break space is
// treated the same way so that it never ends up unquoted.
func isPrintable(r rune) bool {
	switch {
	case r < 0x20, r == 0x7f:
		return false
	case r >= 0x80 && r <= 0xa0:
		return false
	case r == 0xfeff, r == 0xfffe, r == 0xffff:
		return false
	case r == 0x2028, r == 0x2029:
		return false
	case r >= 0xd800 && r <= 0xdfff:
		return false
	}
	return true
}
