// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package emitter_test

import (
	"testing"

	"carvel.dev/yamlemit/pkg/emitter"
	"github.com/stretchr/testify/require"
)

type op func(e *emitter.Emitter) error

var (
	beginSeq     op = func(e *emitter.Emitter) error { return e.BeginSequence(emitter.BlockSequence) }
	beginFlowSeq op = func(e *emitter.Emitter) error { return e.BeginSequence(emitter.FlowSequence) }
	endSeq       op = func(e *emitter.Emitter) error { return e.EndSequence() }
	beginMap     op = func(e *emitter.Emitter) error { return e.BeginMapping(emitter.BlockMapping) }
	beginFlowMap op = func(e *emitter.Emitter) error { return e.BeginMapping(emitter.FlowMapping) }
	endMap       op = func(e *emitter.Emitter) error { return e.EndMapping() }
	beginDoc     op = func(e *emitter.Emitter) error { return e.BeginDocument() }
	finish       op = func(e *emitter.Emitter) error { return e.Finish() }
	null         op = func(e *emitter.Emitter) error { return e.WriteNull() }
)

func str(value string) op {
	return func(e *emitter.Emitter) error { return e.WriteString(value, emitter.Any) }
}

func styled(value string, style emitter.ScalarStyle) op {
	return func(e *emitter.Emitter) error { return e.WriteString(value, style) }
}

func i32(v int32) op {
	return func(e *emitter.Emitter) error { return e.WriteInt32(v) }
}

func tag(name string) op {
	return func(e *emitter.Emitter) error { return e.Tag(name) }
}

func comment(text string, inline bool) op {
	return func(e *emitter.Emitter) error { return e.WriteComment(text, inline) }
}

func emit(t *testing.T, opts emitter.EmitOptions, ops ...op) string {
	t.Helper()

	buf := emitter.NewBuffer(0)
	e, err := emitter.NewEmitterWithOpts(buf, opts)
	require.NoError(t, err)
	defer e.Dispose()

	for i, o := range ops {
		require.NoError(t, o(e), "operation %d", i)
	}
	return buf.String()
}

// emitErr applies ops until one fails and returns that error.
func emitErr(t *testing.T, opts emitter.EmitOptions, ops ...op) error {
	t.Helper()

	e, err := emitter.NewEmitterWithOpts(emitter.NewBuffer(0), opts)
	require.NoError(t, err)
	defer e.Dispose()

	for _, o := range ops {
		if err := o(e); err != nil {
			return err
		}
	}
	return nil
}

func withComments() emitter.EmitOptions {
	opts := emitter.DefaultEmitOptions()
	opts.PreserveComments = true
	return opts
}
