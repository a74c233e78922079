// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package emitter

import (
	"fmt"
	"io"
)

const defaultSinkBufferSize = 4096

// Sink receives emitted bytes. Reserve returns a writable span of at least n
// bytes; Commit appends the first k bytes of the most recent span to the
// output. Committed bytes are never read back or rewritten.
type Sink interface {
	Reserve(n int) []byte
	Commit(k int)
}

// grow returns buf with room for n more bytes, doubling capacity as needed.
func grow(buf []byte, n int) []byte {
	if cap(buf)-len(buf) >= n {
		return buf
	}
	newCap := 2 * cap(buf)
	if newCap < len(buf)+n {
		newCap = len(buf) + n
	}
	grown := make([]byte, len(buf), newCap)
	copy(grown, buf)
	return grown
}

func commitCheck(buf []byte, k int) {
	if k < 0 || k > cap(buf)-len(buf) {
		panic(fmt.Sprintf("yaml emitter: commit of %d bytes exceeds reserved span of %d bytes", k, cap(buf)-len(buf)))
	}
}

// Buffer is an in-memory Sink.
type Buffer struct {
	buf []byte
}

var _ Sink = &Buffer{}

// NewBuffer returns an empty Buffer with room for size bytes.
func NewBuffer(size int) *Buffer {
	return &Buffer{buf: make([]byte, 0, size)}
}

func (b *Buffer) Reserve(n int) []byte {
	b.buf = grow(b.buf, n)
	return b.buf[len(b.buf) : len(b.buf)+n]
}

func (b *Buffer) Commit(k int) {
	commitCheck(b.buf, k)
	b.buf = b.buf[:len(b.buf)+k]
}

// Bytes returns the committed output; it is valid until the next Reserve.
func (b *Buffer) Bytes() []byte { return b.buf }
func (b *Buffer) String() string { return string(b.buf) }
func (b *Buffer) Len() int       { return len(b.buf) }

// Reset discards the output and keeps the allocated space.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

// WriterSink is a Sink that forwards committed bytes to an io.Writer once
// more than its threshold has accumulated. The first write error is kept and
// returned by every later Flush.
type WriterSink struct {
	w         io.Writer
	buf       []byte
	threshold int
	err       error
}

var _ Sink = &WriterSink{}

// NewWriterSink returns a WriterSink flushing to w past threshold bytes;
// threshold <= 0 selects a default.
func NewWriterSink(w io.Writer, threshold int) *WriterSink {
	if threshold <= 0 {
		threshold = defaultSinkBufferSize
	}
	return &WriterSink{w: w, buf: make([]byte, 0, threshold), threshold: threshold}
}

func (s *WriterSink) Reserve(n int) []byte {
	s.buf = grow(s.buf, n)
	return s.buf[len(s.buf) : len(s.buf)+n]
}

func (s *WriterSink) Commit(k int) {
	commitCheck(s.buf, k)
	s.buf = s.buf[:len(s.buf)+k]
	if len(s.buf) >= s.threshold {
		s.write()
	}
}

// Flush writes all committed bytes to the underlying writer.
func (s *WriterSink) Flush() error {
	s.write()
	return s.err
}

func (s *WriterSink) write() {
	if s.err == nil && len(s.buf) > 0 {
		_, s.err = s.w.Write(s.buf)
	}
	s.buf = s.buf[:0]
}
