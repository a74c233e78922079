// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package emitter

import "strings"

// WriteComment writes text as a comment when PreserveComments is enabled and
// does nothing otherwise. An inline comment is placed at the end of the line
// just written; when there is no such line it is written on its own line like
// any other comment. Multi-line text produces one comment line per line.
func (e *Emitter) WriteComment(text string, inline bool) error {
	if err := e.check(); err != nil {
		return err
	}
	if !e.opts.PreserveComments {
		return nil
	}
	if e.Current().IsFlow() {
		return e.fail(newError(CommentInFlow, "cannot write comment while in %s", e.Current()))
	}

	lines := strings.Split(text, "\n")

	if inline && len(lines) == 1 && e.lineOpen() {
		b := e.scratch.chars[:0]
		b = append(b, ' ')
		b = e.appendComment(b, text)
		if !e.pendingBreak {
			b = e.endLine(b)
		}
		e.commit(b)
		return nil
	}

	b := e.startLine()
	if !e.lineStart(b) {
		b = append(b, '\n')
	}
	indent := commentLevel(e.Current(), e.indent) * e.opts.IndentWidth
	for _, line := range lines {
		b = appendSpaces(b, indent)
		b = e.appendComment(b, line)
		b = append(b, '\n')
	}
	e.commit(b)
	return nil
}

// lineOpen reports whether the last written line can take an inline comment.
func (e *Emitter) lineOpen() bool {
	if e.pendingBreak {
		return !e.breakAfterLiteral
	}
	return e.started && !e.atLineStart
}

func (e *Emitter) appendComment(b []byte, line string) []byte {
	b = append(b, '#')
	switch {
	case line == "":
		if e.opts.AddLeadingSpace {
			b = append(b, ' ')
		}
	case line[0] == ' ' || line[0] == '\t':
		b = append(b, line...)
	default:
		b = append(b, ' ')
		b = append(b, line...)
	}
	return b
}
