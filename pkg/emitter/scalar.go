// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package emitter

import (
	"fmt"
	"math"
	"strconv"

	"carvel.dev/yamlemit/pkg/yamlscalar"
)

// longest formatted values
const (
	nullLen    = 4
	boolLen    = 5
	int32Len   = 11
	uint32Len  = 10
	int64Len   = 20
	uint64Len  = 20
	float32Len = 16
	float64Len = 24
)

const (
	nullText   = "null"
	infText    = ".inf"
	negInfText = "-.inf"
	nanText    = ".nan"
)

// WriteNull writes the plain scalar null.
func (e *Emitter) WriteNull() error {
	return e.writeFormatted(nullLen, func(b []byte) []byte { return append(b, nullText...) })
}

// WriteBool writes true or false.
func (e *Emitter) WriteBool(v bool) error {
	return e.writeFormatted(boolLen, func(b []byte) []byte { return strconv.AppendBool(b, v) })
}

// WriteInt32 writes v in decimal.
func (e *Emitter) WriteInt32(v int32) error {
	return e.writeFormatted(int32Len, func(b []byte) []byte { return strconv.AppendInt(b, int64(v), 10) })
}

// WriteUInt32 writes v in decimal.
func (e *Emitter) WriteUInt32(v uint32) error {
	return e.writeFormatted(uint32Len, func(b []byte) []byte { return strconv.AppendUint(b, uint64(v), 10) })
}

// WriteInt64 writes v in decimal.
func (e *Emitter) WriteInt64(v int64) error {
	return e.writeFormatted(int64Len, func(b []byte) []byte { return strconv.AppendInt(b, v, 10) })
}

// WriteUInt64 writes v in decimal.
func (e *Emitter) WriteUInt64(v uint64) error {
	return e.writeFormatted(uint64Len, func(b []byte) []byte { return strconv.AppendUint(b, v, 10) })
}

// WriteFloat writes the shortest decimal form of v that reads back as the
// same float32; infinities and NaN use .inf, -.inf and .nan.
func (e *Emitter) WriteFloat(v float32) error {
	return e.writeFormatted(float32Len, func(b []byte) []byte { return appendFloat(b, float64(v), 32) })
}

// WriteDouble is WriteFloat for float64 values.
func (e *Emitter) WriteDouble(v float64) error {
	return e.writeFormatted(float64Len, func(b []byte) []byte { return appendFloat(b, v, 64) })
}

func appendFloat(b []byte, v float64, bitSize int) []byte {
	switch {
	case math.IsInf(v, 1):
		return append(b, infText...)
	case math.IsInf(v, -1):
		return append(b, negInfText...)
	case math.IsNaN(v):
		return append(b, nanText...)
	}
	return strconv.AppendFloat(b, v, 'g', -1, bitSize)
}

// WriteScalar writes raw as a plain scalar without analyzing it.
func (e *Emitter) WriteScalar(raw []byte) error {
	return e.writeFormatted(len(raw), func(b []byte) []byte { return append(b, raw...) })
}

// WriteString writes value in the requested style, or in the style the
// analyzer suggests for Any. Styles that cannot represent value at the
// current position fall back to double quotes; Folded is not supported.
func (e *Emitter) WriteString(value string, style ScalarStyle) error {
	if err := e.check(); err != nil {
		return err
	}
	if style == Folded {
		return e.fail(&NotSupportedError{Feature: "folded scalar style"})
	}

	placement := decideScalar(e.Current(), false).placement
	analysis := yamlscalar.Analyze(value)

	resolved, err := yamlscalar.ResolveStyle(style, analysis, placement)
	if err != nil {
		return e.fail(err)
	}

	var (
		text    string
		literal bool
	)

	switch resolved {
	case Plain:
		text = value
	case SingleQuoted:
		text = yamlscalar.BuildQuotedScalar(value, false)
	case DoubleQuoted:
		text = yamlscalar.BuildQuotedScalar(value, true)
	case Literal:
		w := e.opts.IndentWidth
		indent := w
		if placement != yamlscalar.PlacementTop {
			indent = (e.indent + 1) * w
		}
		indicator := 0
		if analysis.NeedsIndentIndicator {
			indicator = w
		}
		text = yamlscalar.BuildLiteralScalar(value, indent, indicator)
		if placement != yamlscalar.PlacementTop {
			// the entry's deferred line break ends the block
			text = text[:len(text)-1]
			literal = true
		}
	}

	return e.writeScalar(len(text), literal, func(b []byte) []byte { return append(b, text...) })
}

func (e *Emitter) writeFormatted(maxLen int, format func([]byte) []byte) error {
	if err := e.check(); err != nil {
		return err
	}
	return e.writeScalar(maxLen, false, format)
}

// writeScalar lays out one scalar: the collection opening is committed first,
// then the scalar with its indentation, indicators and tag is formatted into
// a single span reserved from the sink.
func (e *Emitter) writeScalar(maxLen int, literal bool, format func([]byte) []byte) error {
	if err := e.checkRoot(); err != nil {
		return err
	}

	e.commit(e.appendOpening(e.startLine()))

	tag := e.popTag()
	f := e.top()
	layout := decideScalar(f.ctx, e.atLineStart)
	w := e.opts.IndentWidth

	bound := maxLen + (e.indent+1)*w + 3 + len(tag)
	out := e.sink.Reserve(bound)[:0:bound]

	if layout.indent {
		out = appendSpaces(out, (e.indent+layout.indentOffset)*w)
	}
	if layout.entryHeader {
		out = append(out, "- "...)
	}
	if layout.leadingSpace {
		out = append(out, ' ')
	}
	if layout.separator && f.count > 0 {
		out = append(out, ", "...)
	}
	if tag != "" {
		out = append(out, tag...)
		out = append(out, ' ')
	}
	out = format(out)
	if layout.keyIndicator {
		out = append(out, ':')
	}

	f.ctx = layout.next
	if layout.completes {
		f.count++
	}
	if layout.lineBreak {
		out = e.endLine(out)
		e.breakAfterLiteral = literal && e.pendingBreak
	}

	if len(out) > bound {
		panic(fmt.Sprintf("yaml emitter: scalar of %d bytes overran its reserved span of %d bytes", len(out), bound))
	}
	e.sink.Commit(len(out))
	if len(out) > 0 {
		e.atLineStart = out[len(out)-1] == '\n'
		e.wrote = true
	}
	return nil
}
