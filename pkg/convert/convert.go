// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"carvel.dev/yamlemit/pkg/emitter"
	"carvel.dev/yamlemit/pkg/eventsource"
	"carvel.dev/yamlemit/pkg/files"
	"golang.org/x/sync/errgroup"
)

const defaultReadConcurrency = 4

type Options struct {
	Emit emitter.EmitOptions
	// Type, when known, is used for every input instead of its extension.
	Type files.Type
	// DefaultType is used for inputs whose extension is not recognized.
	DefaultType files.Type
	// ReadConcurrency limits how many inputs are fetched at once; inputs
	// are still written in order.
	ReadConcurrency int
}

func NewOptions() Options {
	return Options{Emit: emitter.DefaultEmitOptions(), ReadConcurrency: defaultReadConcurrency}
}

// Convert writes every input to w as YAML. Nothing is written unless every
// input could be read.
func Convert(ctx context.Context, inputs []*files.File, w io.Writer, opts Options) error {
	sink := emitter.NewWriterSink(w, opts.Emit.SinkBufferSize)

	e, err := emitter.NewEmitterWithOpts(sink, opts.Emit)
	if err != nil {
		return err
	}
	defer e.Dispose()

	contents, err := readInputs(ctx, inputs, opts.ReadConcurrency)
	if err != nil {
		return err
	}

	for i, input := range inputs {
		err = replay(contents[i], opts.InputType(input), e)
		if err != nil {
			return fmt.Errorf("Converting %s: %w", input.Description(), err)
		}
	}

	return e.Finish()
}

func readInputs(ctx context.Context, inputs []*files.File, concurrency int) ([][]byte, error) {
	contents := make([][]byte, len(inputs))

	eg, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		eg.SetLimit(concurrency)
	}
	for i, input := range inputs {
		i, input := i, input
		eg.Go(func() error {
			data, err := input.Bytes(ctx)
			if err != nil {
				return fmt.Errorf("Reading %s: %w", input.Description(), err)
			}
			contents[i] = data
			return nil
		})
	}

	return contents, eg.Wait()
}

// Bytes converts a single input held in memory.
func Bytes(data []byte, typ files.Type, opts emitter.EmitOptions) ([]byte, error) {
	buf := emitter.NewBuffer(len(data))

	e, err := emitter.NewEmitterWithOpts(buf, opts)
	if err != nil {
		return nil, err
	}
	defer e.Dispose()

	err = replay(data, typ, e)
	if err != nil {
		return nil, err
	}

	err = e.Finish()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewSource returns the events of data read as typ. Unknown types are read
// as YAML.
func NewSource(data []byte, typ files.Type) (eventsource.Source, error) {
	switch typ {
	case files.TypeJSON:
		return eventsource.NewJSONSource(bytes.NewReader(data)), nil
	case files.TypeTOML:
		return eventsource.NewTOMLSource(data)
	default:
		return eventsource.NewYAMLSource(bytes.NewReader(data)), nil
	}
}

func replay(data []byte, typ files.Type, e *emitter.Emitter) error {
	src, err := NewSource(data, typ)
	if err != nil {
		return err
	}
	return eventsource.Replay(src, e)
}

// InputType is the type input is read as: Type, else the type of its
// extension, else DefaultType. TypeUnknown is read as YAML.
func (o Options) InputType(input *files.File) files.Type {
	if o.Type != files.TypeUnknown {
		return o.Type
	}
	if typ := input.Type(); typ != files.TypeUnknown {
		return typ
	}
	return o.DefaultType
}
