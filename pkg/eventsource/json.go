// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package eventsource

import (
	"fmt"
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

type jsonContainer int

const (
	jsonObject jsonContainer = iota
	jsonArray
)

type jsonFrame struct {
	kind         jsonContainer
	expectingKey bool
}

type jsonSource struct {
	dec     *json.Decoder
	stack   []jsonFrame
	pending []Event
}

// NewJSONSource returns the events of the JSON values in r. Every top-level
// value starts a document; numbers keep their spelling.
func NewJSONSource(r io.Reader) Source {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec}
}

func (s *jsonSource) Next() (Event, error) {
	if len(s.pending) > 0 {
		ev := s.pending[0]
		s.pending = s.pending[1:]
		return ev, nil
	}

	tok, err := s.dec.Token()
	if err == io.EOF {
		if len(s.stack) > 0 {
			return Event{}, fmt.Errorf("Unmarshaling JSON: %w", io.ErrUnexpectedEOF)
		}
		return Event{}, io.EOF
	}
	if err != nil {
		return Event{}, fmt.Errorf("Unmarshaling JSON: %w", err)
	}

	atRoot := len(s.stack) == 0

	ev, err := s.event(tok)
	if err != nil {
		return Event{}, err
	}
	if atRoot {
		s.pending = append(s.pending, ev)
		return Event{Kind: DocumentStart}, nil
	}
	return ev, nil
}

func (s *jsonSource) event(tok interface{}) (Event, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, jsonFrame{kind: jsonObject, expectingKey: true})
			return Event{Kind: MappingStart}, nil
		case '}':
			s.pop()
			return Event{Kind: MappingEnd}, nil
		case '[':
			s.stack = append(s.stack, jsonFrame{kind: jsonArray})
			return Event{Kind: SequenceStart}, nil
		case ']':
			s.pop()
			return Event{Kind: SequenceEnd}, nil
		}
		return Event{}, fmt.Errorf("Unmarshaling JSON: unexpected delimiter %s", v)

	case string:
		if n := len(s.stack); n > 0 && s.stack[n-1].kind == jsonObject && s.stack[n-1].expectingKey {
			s.stack[n-1].expectingKey = false
			return stringScalar(v), nil
		}
		s.valueDone()
		return stringScalar(v), nil

	case json.Number:
		s.valueDone()
		return rawScalar(string(v)), nil

	case float64:
		s.valueDone()
		return rawScalar(strconv.FormatFloat(v, 'g', -1, 64)), nil

	case bool:
		s.valueDone()
		return rawScalar(strconv.FormatBool(v)), nil

	case nil:
		s.valueDone()
		return rawScalar("null"), nil
	}

	return Event{}, fmt.Errorf("Unmarshaling JSON: unexpected token %v", tok)
}

func (s *jsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

// valueDone records that a value completed the current object member.
func (s *jsonSource) valueDone() {
	if n := len(s.stack); n > 0 && s.stack[n-1].kind == jsonObject {
		s.stack[n-1].expectingKey = true
	}
}
