// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package eventsource

import (
	"fmt"
	"io"

	"carvel.dev/yamlemit/pkg/emitter"
)

type Kind int

const (
	Scalar Kind = iota
	SequenceStart
	SequenceEnd
	MappingStart
	MappingEnd
	DocumentStart
	Comment
)

var kindNames = map[Kind]string{
	Scalar:        "scalar",
	SequenceStart: "sequence-start",
	SequenceEnd:   "sequence-end",
	MappingStart:  "mapping-start",
	MappingEnd:    "mapping-end",
	DocumentStart: "document-start",
	Comment:       "comment",
}

func (k Kind) String() string {
	if name, found := kindNames[k]; found {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is one step of a parsed document.
type Event struct {
	Kind Kind
	// Value is the scalar content or the comment text.
	Value []byte
	// Raw scalars (numbers, booleans, nulls) are written verbatim.
	Raw bool
	// Style is the style hint of a string scalar.
	Style emitter.ScalarStyle
	// Flow selects flow layout for SequenceStart and MappingStart.
	Flow bool
	Tag  string
	// Inline places a Comment at the end of the line just written.
	Inline bool
}

func (e Event) String() string {
	switch e.Kind {
	case Scalar, Comment:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Value)
	default:
		return e.Kind.String()
	}
}

// Source yields events until it returns io.EOF.
type Source interface {
	Next() (Event, error)
}

type sliceSource struct {
	events []Event
}

// NewSliceSource returns a Source replaying events.
func NewSliceSource(events ...Event) Source {
	return &sliceSource{events: events}
}

func (s *sliceSource) Next() (Event, error) {
	if len(s.events) == 0 {
		return Event{}, io.EOF
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

// scalar helpers used by the sources
func stringScalar(value string) Event {
	return Event{Kind: Scalar, Value: []byte(value)}
}

func rawScalar(value string) Event {
	return Event{Kind: Scalar, Value: []byte(value), Raw: true}
}
