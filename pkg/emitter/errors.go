// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package emitter

import "fmt"

// ErrorKind classifies structural misuse of an Emitter.
type ErrorKind int

const (
	BlockInFlowNotSupported ErrorKind = iota + 1
	ComplexKeyNotSupported
	NotASequence
	NotAMapping
	IncompleteMapping
	MultipleRootNodes
	InvalidTag
	TagAlreadyPending
	DanglingTag
	UnclosedCollections
	CommentInFlow
	Disposed
)

var errorKindNames = map[ErrorKind]string{
	BlockInFlowNotSupported: "block in flow not supported",
	ComplexKeyNotSupported:  "complex key not supported",
	NotASequence:            "not a sequence",
	NotAMapping:             "not a mapping",
	IncompleteMapping:       "incomplete mapping",
	MultipleRootNodes:       "multiple root nodes",
	InvalidTag:              "invalid tag",
	TagAlreadyPending:       "tag already pending",
	DanglingTag:             "dangling tag",
	UnclosedCollections:     "unclosed collections",
	CommentInFlow:           "comment in flow",
	Disposed:                "disposed",
}

func (k ErrorKind) String() string {
	if name, found := errorKindNames[k]; found {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// EmitterError is returned when a call would produce invalid YAML. The
// document being written is invalid once it is returned.
type EmitterError struct {
	Kind    ErrorKind
	Problem string
}

func (e *EmitterError) Error() string {
	return "yaml emitter: " + e.Problem
}

func newError(kind ErrorKind, format string, args ...interface{}) *EmitterError {
	return &EmitterError{Kind: kind, Problem: fmt.Sprintf(format, args...)}
}

// NotSupportedError is returned for recognized but unimplemented features.
type NotSupportedError struct {
	Feature string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("yaml emitter: %s is not supported", e.Feature)
}
