// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package eventsource

import (
	"fmt"
	"io"

	"carvel.dev/yamlemit/pkg/emitter"
)

// Replay writes every event of src with e. Comments inside flow collections
// have no place to go and are dropped.
func Replay(src Source, e *emitter.Emitter) error {
	for {
		ev, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		err = apply(ev, e)
		if err != nil {
			return fmt.Errorf("Replaying %s: %w", ev, err)
		}
	}
}

func apply(ev Event, e *emitter.Emitter) error {
	if ev.Tag != "" {
		switch ev.Kind {
		case Scalar, SequenceStart, MappingStart:
			if err := e.Tag(ev.Tag); err != nil {
				return err
			}
		}
	}

	switch ev.Kind {
	case DocumentStart:
		return e.BeginDocument()

	case Comment:
		if e.Current().IsFlow() {
			return nil
		}
		return e.WriteComment(string(ev.Value), ev.Inline)

	case SequenceStart:
		if ev.Flow {
			return e.BeginSequence(emitter.FlowSequence)
		}
		return e.BeginSequence(emitter.BlockSequence)

	case SequenceEnd:
		return e.EndSequence()

	case MappingStart:
		if ev.Flow {
			return e.BeginMapping(emitter.FlowMapping)
		}
		return e.BeginMapping(emitter.BlockMapping)

	case MappingEnd:
		return e.EndMapping()

	case Scalar:
		if ev.Raw {
			return e.WriteScalar(ev.Value)
		}
		return e.WriteString(string(ev.Value), ev.Style)

	default:
		return fmt.Errorf("Unknown event kind %s", ev.Kind)
	}
}
