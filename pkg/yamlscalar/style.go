// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlscalar

import (
	"errors"
	"fmt"
)

// Style is the presentation of a scalar in YAML text.
type Style int

const (
	// Any lets the analyzer pick the style.
	Any Style = iota
	Plain
	SingleQuoted
	DoubleQuoted
	Literal
	// Folded is recognized but never written.
	Folded
)

var styleNames = map[Style]string{
	Any:          "any",
	Plain:        "plain",
	SingleQuoted: "single-quoted",
	DoubleQuoted: "double-quoted",
	Literal:      "literal",
	Folded:       "folded",
}

func (s Style) String() string {
	if name, found := styleNames[s]; found {
		return name
	}
	return fmt.Sprintf("style(%d)", int(s))
}

// Placement is where in a document a scalar is written.
type Placement int

const (
	// PlacementTop is the root node of a document.
	PlacementTop Placement = iota
	// PlacementBlock is a block sequence entry or a block mapping value.
	PlacementBlock
	// PlacementKey is a mapping key (block or flow).
	PlacementKey
	// PlacementFlow is an entry or value inside a flow collection.
	PlacementFlow
)

// ErrFoldedNotSupported is returned when folded style is requested.
var ErrFoldedNotSupported = errors.New("folded scalar style is not supported")

// SuggestStyle picks a style for a value based only on its content.
func SuggestStyle(a Analysis) Style {
	if a.LineCount <= 1 {
		if a.NeedsQuotes {
			return DoubleQuoted
		}
		return Plain
	}
	if a.LiteralAllowed {
		return Literal
	}
	return DoubleQuoted
}

// ResolveStyle returns the style a value is written with when the caller asked
// for requested at placement. Requests that cannot represent the value (or
// cannot appear at placement) degrade to double quoted, which represents any
// string.
func ResolveStyle(requested Style, a Analysis, placement Placement) (Style, error) {
	style := requested
	if style == Any {
		style = SuggestStyle(a)
	}

	switch style {
	case Plain:
		if a.NeedsQuotes {
			return DoubleQuoted, nil
		}
		if placement == PlacementKey && a.LineCount > 1 {
			return DoubleQuoted, nil
		}
		if (placement == PlacementKey || placement == PlacementFlow) && a.FlowIndicators {
			return DoubleQuoted, nil
		}
		return Plain, nil

	case SingleQuoted:
		if !a.SingleQuoteSafe {
			return DoubleQuoted, nil
		}
		return SingleQuoted, nil

	case DoubleQuoted:
		return DoubleQuoted, nil

	case Literal:
		switch {
		case placement == PlacementKey || placement == PlacementFlow:
			return DoubleQuoted, nil
		case !a.BlockSafe:
			return DoubleQuoted, nil
		case a.NeedsIndentIndicator && placement == PlacementTop:
			return DoubleQuoted, nil
		}
		return Literal, nil

	case Folded:
		return Any, ErrFoldedNotSupported

	default:
		return Any, fmt.Errorf("unknown scalar style %d", int(style))
	}
}
