// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlscalar

import (
	"strconv"
	"strings"
)

// BuildLiteralScalar renders value as a literal block: the `|` header with an
// optional indentation indicator (0 omits it) and a chomping indicator,
// followed by every line of value indented by indent spaces. Empty lines are
// not indented. The result always ends with a line break.
func BuildLiteralScalar(value string, indent int, indicator int) string {
	var sb strings.Builder
	sb.Grow(len(value) + 8 + indent*strings.Count(value, "\n"))

	sb.WriteByte('|')
	if indicator > 0 {
		sb.WriteString(strconv.Itoa(indicator))
	}
	sb.WriteString(Chomping(value))
	sb.WriteByte('\n')

	padding := strings.Repeat(" ", indent)
	atLineStart := true

	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\n' {
			sb.WriteByte('\n')
			atLineStart = true
			continue
		}
		if atLineStart {
			sb.WriteString(padding)
			atLineStart = false
		}
		sb.WriteByte(c)
	}

	if !strings.HasSuffix(value, "\n") {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Chomping returns the literal block chomping indicator that keeps the
// trailing line breaks of value: strip ("-") for none, clip ("") for one and
// keep ("+") for more. A value made only of line breaks is always kept, since
// clipping a block without content reads back as "".
func Chomping(value string) string {
	switch {
	case !strings.HasSuffix(value, "\n"):
		return "-"
	case strings.HasSuffix(value, "\n\n"), strings.Trim(value, "\n") == "":
		return "+"
	default:
		return ""
	}
}
