// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package eventsource

import (
	"fmt"
	"io"
	"strings"

	"carvel.dev/yamlemit/pkg/emitter"
	"gopkg.in/yaml.v3"
)

type yamlSource struct {
	dec   *yaml.Decoder
	queue []Event
}

// NewYAMLSource returns the events of every document in r. Scalar and
// collection styles, explicit tags and comments are kept; folded scalars
// become literal ones and aliases are replaced by the node they refer to.
func NewYAMLSource(r io.Reader) Source {
	return &yamlSource{dec: yaml.NewDecoder(r)}
}

func (s *yamlSource) Next() (Event, error) {
	for len(s.queue) == 0 {
		var doc yaml.Node
		err := s.dec.Decode(&doc)
		if err == io.EOF {
			return Event{}, io.EOF
		}
		if err != nil {
			return Event{}, fmt.Errorf("Unmarshaling YAML: %w", err)
		}

		s.queue = append(s.queue, Event{Kind: DocumentStart})
		s.walk(&doc)
	}

	ev := s.queue[0]
	s.queue = s.queue[1:]
	return ev, nil
}

func (s *yamlSource) walk(node *yaml.Node) {
	s.comment(node.HeadComment, false)

	switch node.Kind {
	case yaml.DocumentNode:
		for _, child := range node.Content {
			s.walk(child)
		}

	case yaml.SequenceNode:
		s.queue = append(s.queue, Event{Kind: SequenceStart, Flow: node.Style&yaml.FlowStyle != 0, Tag: explicitTag(node)})
		for _, child := range node.Content {
			s.walk(child)
		}
		s.queue = append(s.queue, Event{Kind: SequenceEnd})

	case yaml.MappingNode:
		s.queue = append(s.queue, Event{Kind: MappingStart, Flow: node.Style&yaml.FlowStyle != 0, Tag: explicitTag(node)})
		for _, child := range node.Content {
			s.walk(child)
		}
		s.queue = append(s.queue, Event{Kind: MappingEnd})

	case yaml.ScalarNode:
		s.queue = append(s.queue, scalarEvent(node))

	case yaml.AliasNode:
		if node.Alias != nil {
			s.walk(node.Alias)
		}
	}

	s.comment(node.LineComment, true)
	s.comment(node.FootComment, false)
}

func (s *yamlSource) comment(text string, inline bool) {
	if text == "" {
		return
	}
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimPrefix(line, "#")
		lines = append(lines, strings.TrimPrefix(line, " "))
	}
	s.queue = append(s.queue, Event{Kind: Comment, Value: []byte(strings.Join(lines, "\n")), Inline: inline})
}

func scalarEvent(node *yaml.Node) Event {
	ev := stringScalar(node.Value)
	ev.Tag = explicitTag(node)

	switch {
	case node.Style&yaml.DoubleQuotedStyle != 0:
		ev.Style = emitter.DoubleQuoted
	case node.Style&yaml.SingleQuotedStyle != 0:
		ev.Style = emitter.SingleQuoted
	case node.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0:
		ev.Style = emitter.Literal
	case node.ShortTag() == "!!null" && node.Value == "":
		ev = rawScalar("null")
		ev.Tag = explicitTag(node)
	case node.ShortTag() != "!!str":
		// plain numbers, booleans, nulls and timestamps keep their spelling
		ev.Raw = true
	}
	return ev
}

func explicitTag(node *yaml.Node) string {
	if node.Style&yaml.TaggedStyle != 0 {
		return node.Tag
	}
	return ""
}
