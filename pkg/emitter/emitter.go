// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package emitter

import (
	"fmt"
	"strings"

	"carvel.dev/yamlemit/pkg/yamlscalar"
)

// ScalarStyle is the requested presentation of a string scalar.
type ScalarStyle = yamlscalar.Style

const (
	Any          = yamlscalar.Any
	Plain        = yamlscalar.Plain
	SingleQuoted = yamlscalar.SingleQuoted
	DoubleQuoted = yamlscalar.DoubleQuoted
	Literal      = yamlscalar.Literal
	Folded       = yamlscalar.Folded
)

// Emitter writes one YAML stream to a Sink. It is not safe for concurrent use.
type Emitter struct {
	sink      Sink
	opts      EmitOptions
	directive string
	pool      *ScratchPool
	scratch   *Scratch

	indent int

	// atLineStart is set when the last committed byte is a line break
	atLineStart bool
	// pendingBreak defers the line break that ends a block entry or value so
	// an inline comment can still be placed on that line
	pendingBreak bool
	// breakAfterLiteral marks a pending break that closes a literal block;
	// nothing may follow on that line
	breakAfterLiteral bool
	// started is set once the stream header has been considered
	started bool
	wrote   bool

	err error
}

// NewEmitter returns an Emitter with DefaultEmitOptions.
func NewEmitter(sink Sink) *Emitter {
	e, err := NewEmitterWithOpts(sink, DefaultEmitOptions())
	if err != nil {
		panic(fmt.Sprintf("yaml emitter: default options: %s", err))
	}
	return e
}

// NewEmitterWithOpts returns an Emitter configured by opts.
func NewEmitterWithOpts(sink Sink, opts EmitOptions) (*Emitter, error) {
	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	e := &Emitter{sink: sink, opts: opts, pool: opts.Pool}
	if e.pool == nil {
		e.pool = defaultPool
	}
	if opts.YAMLVersion != "" {
		e.directive, err = opts.directive()
		if err != nil {
			return nil, err
		}
	}

	e.scratch = e.pool.Acquire()
	e.reset()
	return e, nil
}

// Reset prepares the emitter for a new stream on the same sink and clears a
// previous error. A disposed emitter acquires new scratch space.
func (e *Emitter) Reset() {
	if e.scratch == nil {
		e.scratch = e.pool.Acquire()
	}
	e.reset()
}

func (e *Emitter) reset() {
	e.scratch.clear()
	e.indent = 0
	e.atLineStart = true
	e.pendingBreak = false
	e.breakAfterLiteral = false
	e.started = false
	e.wrote = false
	e.err = nil
}

// Dispose returns the scratch space to its pool. Every later call fails until
// Reset.
func (e *Emitter) Dispose() {
	if e.scratch != nil {
		e.pool.Release(e.scratch)
		e.scratch = nil
	}
	e.err = newError(Disposed, "emitter has been disposed")
}

// Current returns the context the next node is written in.
func (e *Emitter) Current() Context {
	if e.scratch == nil {
		return None
	}
	return e.top().ctx
}

// Previous returns the context of the enclosing collection.
func (e *Emitter) Previous() Context {
	if e.scratch == nil || len(e.scratch.frames) < 2 {
		return None
	}
	return e.scratch.frames[len(e.scratch.frames)-2].ctx
}

// Depth is the number of open collections plus one.
func (e *Emitter) Depth() int {
	if e.scratch == nil {
		return 1
	}
	return len(e.scratch.frames)
}

// IndentLevel is the number of indentation levels of the current block
// collection.
func (e *Emitter) IndentLevel() int { return e.indent }

// IsFirstElement reports whether nothing has been written in the current
// collection yet.
func (e *Emitter) IsFirstElement() bool {
	return e.scratch == nil || e.top().count == 0
}

// BeginSequence opens a sequence in the current context.
func (e *Emitter) BeginSequence(style SequenceStyle) error {
	return e.open(sequenceKind, style == FlowSequence)
}

// EndSequence closes the current sequence.
func (e *Emitter) EndSequence() error { return e.close(sequenceKind) }

// BeginMapping opens a mapping in the current context.
func (e *Emitter) BeginMapping(style MappingStyle) error {
	return e.open(mappingKind, style == FlowMapping)
}

// EndMapping closes the current mapping.
func (e *Emitter) EndMapping() error { return e.close(mappingKind) }

func (e *Emitter) open(kind collectionKind, flow bool) error {
	if err := e.check(); err != nil {
		return err
	}

	layout, err := decideOpen(kind, flow, e.Current())
	if err != nil {
		return e.fail(err)
	}
	if err := e.checkRoot(); err != nil {
		return err
	}

	tag := e.popTag()
	b := e.startLine()

	if layout.entryHeader {
		b = e.appendEntryPrefix(b)
		if flow {
			b = append(b, "- "...)
		} else {
			// the nested collection starts on the entry's line
			b = append(b, '-')
			b = appendSpaces(b, e.opts.IndentWidth-1)
		}
	}
	if layout.valueSpace {
		b = e.appendValueSpace(b)
	}
	if layout.separator && e.top().count > 0 {
		b = append(b, ", "...)
	}
	if flow {
		if tag != "" {
			b = append(b, tag...)
			b = append(b, ' ')
		}
		opening, _ := kind.brackets()
		b = append(b, opening)
	}
	e.commit(b)

	f := frame{ctx: layout.push}
	if !flow {
		f.tag = tag
	}
	if layout.indent {
		e.indent++
		f.indented = true
	}
	e.scratch.frames = append(e.scratch.frames, f)
	return nil
}

func (e *Emitter) close(kind collectionKind) error {
	if err := e.check(); err != nil {
		return err
	}

	f := *e.top()
	layout, err := decideClose(kind, f.ctx, e.Previous(), f.count == 0)
	if err != nil {
		return e.fail(err)
	}
	if len(e.scratch.tags) > 0 {
		return e.fail(newError(DanglingTag, "cannot end %s while tag %s is pending", kind.name(f.ctx.IsFlow()), e.scratch.tags[0]))
	}

	opening, closing := kind.brackets()
	b := e.startLine()

	if layout.fold {
		if e.lineStart(b) {
			b = appendSpaces(b, e.indent*e.opts.IndentWidth)
		} else if layout.foldSpace {
			b = append(b, ' ')
		}
		if f.tag != "" {
			b = append(b, f.tag...)
			b = append(b, ' ')
		}
		b = append(b, opening, closing)
	}
	if layout.bracket {
		b = append(b, closing)
	}

	e.scratch.frames = e.scratch.frames[:len(e.scratch.frames)-1]
	if f.indented {
		e.indent--
	}
	e.completeElement()

	if layout.lineBreak {
		b = e.endLine(b)
	}
	e.commit(b)
	return nil
}

// completeElement records a finished collection in its parent.
func (e *Emitter) completeElement() {
	f := e.top()
	switch f.ctx {
	case BlockMappingValue:
		f.ctx = BlockMappingKey
	case FlowMappingValue:
		f.ctx = FlowMappingKey
	}
	f.count++
}

// Tag attaches a tag to the next node. Names starting with "!" are written
// as they are; other names are written as verbatim tags (!<name>).
func (e *Emitter) Tag(name string) error {
	if err := e.check(); err != nil {
		return err
	}
	if err := validateTag(name); err != nil {
		return e.fail(err)
	}
	if len(e.scratch.tags) > 0 {
		return e.fail(newError(TagAlreadyPending, "cannot tag a node with %s: tag %s is already pending", name, e.scratch.tags[0]))
	}
	if !strings.HasPrefix(name, "!") {
		name = "!<" + name + ">"
	}
	e.scratch.tags = append(e.scratch.tags, name)
	return nil
}

func validateTag(name string) error {
	switch {
	case name == "":
		return newError(InvalidTag, "tag must not be empty")
	case strings.ContainsAny(name, " \t\r\n"):
		return newError(InvalidTag, "tag %q must not contain whitespace", name)
	case strings.HasPrefix(name, "!") && strings.ContainsAny(name, ",[]{}"):
		return newError(InvalidTag, "tag %q must not contain flow indicators", name)
	case !strings.HasPrefix(name, "!") && strings.ContainsAny(name, "<>"):
		return newError(InvalidTag, "verbatim tag %q must not contain '<' or '>'", name)
	}
	return nil
}

func (e *Emitter) popTag() string {
	tags := e.scratch.tags
	if len(tags) == 0 {
		return ""
	}
	tag := tags[len(tags)-1]
	e.scratch.tags = tags[:len(tags)-1]
	return tag
}

// BeginDocument starts a new document in the stream. A "---" marker is
// written when output already exists.
func (e *Emitter) BeginDocument() error {
	if err := e.check(); err != nil {
		return err
	}
	if e.Depth() > 1 {
		return e.fail(newError(UnclosedCollections, "cannot begin document while in %s", e.Current()))
	}
	if len(e.scratch.tags) > 0 {
		return e.fail(newError(DanglingTag, "cannot begin document while tag %s is pending", e.scratch.tags[0]))
	}

	separate := e.wrote
	b := e.startLine()
	if separate {
		if !e.lineStart(b) {
			b = append(b, '\n')
		}
		b = append(b, "---\n"...)
	}
	e.top().count = 0
	e.commit(b)
	return nil
}

// Flush ends a deferred line and flushes the sink if it buffers output.
func (e *Emitter) Flush() error {
	if err := e.check(); err != nil {
		return err
	}
	if e.pendingBreak {
		e.commit(e.startLine())
	}
	return e.flushSink()
}

// Finish ends the stream. Every collection must be closed; output that does
// not end with a line break gets one.
func (e *Emitter) Finish() error {
	if err := e.check(); err != nil {
		return err
	}
	if e.Depth() > 1 {
		return e.fail(newError(UnclosedCollections, "cannot finish stream while in %s", e.Current()))
	}
	if len(e.scratch.tags) > 0 {
		return e.fail(newError(DanglingTag, "cannot finish stream while tag %s is pending", e.scratch.tags[0]))
	}

	b := e.startLine()
	if (e.wrote || len(b) > 0) && !e.lineStart(b) {
		b = append(b, '\n')
	}
	e.commit(b)
	return e.flushSink()
}

func (e *Emitter) flushSink() error {
	if flusher, ok := e.sink.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

func (e *Emitter) check() error { return e.err }

func (e *Emitter) fail(err error) error {
	e.err = err
	return err
}

func (e *Emitter) checkRoot() error {
	if e.Current() == None && e.top().count > 0 {
		return e.fail(newError(MultipleRootNodes, "cannot write a second root node without beginning a new document"))
	}
	return nil
}

func (e *Emitter) top() *frame {
	return &e.scratch.frames[len(e.scratch.frames)-1]
}

// startLine returns the scratch bytes for the next operation, starting with
// the stream header before any output and a deferred line break.
func (e *Emitter) startLine() []byte {
	b := e.scratch.chars[:0]
	if !e.started {
		e.started = true
		if e.directive != "" {
			b = append(b, e.directive...)
			b = append(b, "---\n"...)
		}
	}
	if e.pendingBreak {
		b = append(b, '\n')
		e.pendingBreak = false
		e.breakAfterLiteral = false
	}
	return b
}

// endLine ends the current line, immediately at the document root and
// deferred inside collections.
func (e *Emitter) endLine(b []byte) []byte {
	if e.Depth() == 1 {
		return append(b, '\n')
	}
	e.pendingBreak = true
	return b
}

func (e *Emitter) lineStart(b []byte) bool {
	if len(b) > 0 {
		return b[len(b)-1] == '\n'
	}
	return e.atLineStart
}

func (e *Emitter) commit(b []byte) {
	if len(b) > 0 {
		copy(e.sink.Reserve(len(b)), b)
		e.sink.Commit(len(b))
		e.atLineStart = b[len(b)-1] == '\n'
		e.wrote = true
	}
	e.scratch.chars = b[:0]
}

// appendEntryPrefix writes what precedes an element of the current block
// collection: before the first element the collection's tag line (or the line
// break after the parent's key), then indentation at the start of a line.
func (e *Emitter) appendEntryPrefix(b []byte) []byte {
	b = e.appendOpening(b)
	if e.lineStart(b) {
		b = appendSpaces(b, e.indent*e.opts.IndentWidth)
	}
	return b
}

func (e *Emitter) appendOpening(b []byte) []byte {
	f := e.top()
	if f.count > 0 || !f.ctx.IsBlock() || f.ctx == BlockMappingValue {
		return b
	}

	parent := e.Previous()
	switch {
	case f.tag != "":
		if e.lineStart(b) {
			b = appendSpaces(b, e.indent*e.opts.IndentWidth)
		} else if parent == BlockMappingValue {
			b = append(b, ' ')
		}
		b = append(b, f.tag...)
		b = append(b, '\n')
		f.tag = ""
	case parent == BlockMappingValue && !e.lineStart(b):
		b = append(b, '\n')
	}
	return b
}

func (e *Emitter) appendValueSpace(b []byte) []byte {
	if e.lineStart(b) {
		return appendSpaces(b, (e.indent+1)*e.opts.IndentWidth)
	}
	return append(b, ' ')
}

func appendSpaces(b []byte, n int) []byte {
	for i := 0; i < n; i++ {
		b = append(b, ' ')
	}
	return b
}
