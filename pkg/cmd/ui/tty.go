// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"io"
	"os"
)

// TTY writes converted documents to stdout, and warnings plus (with debug)
// timing and size details to stderr.
type TTY struct {
	debug  bool
	stdout io.Writer
	stderr io.Writer
}

var _ UI = TTY{}

func NewTTY(debug bool) TTY { return NewCustomWriterTTY(debug, nil, nil) }

// NewCustomWriterTTY falls back to the process streams for nil writers.
func NewCustomWriterTTY(debug bool, stdout, stderr io.Writer) TTY {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return TTY{debug: debug, stdout: stdout, stderr: stderr}
}

func (t TTY) Stdout() io.Writer { return t.stdout }

func (t TTY) Printf(str string, args ...interface{}) { fmt.Fprintf(t.stdout, str, args...) }

func (t TTY) Warnf(str string, args ...interface{}) {
	fmt.Fprintf(t.stderr, "Warning: "+str, args...)
}

func (t TTY) Debugf(str string, args ...interface{}) { fmt.Fprintf(t.DebugWriter(), str, args...) }

func (t TTY) DebugWriter() io.Writer {
	if !t.debug {
		return io.Discard
	}
	return t.stderr
}
