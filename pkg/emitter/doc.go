// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package emitter writes YAML text from a stream of structural and scalar write
calls in a single forward pass, without building a document tree.

An Emitter keeps a stack of contexts (what kind of collection is being written
and, for mappings, whether a key or a value comes next), a counter of
completed elements per context and the current indentation level. Every call
decides its layout from that state, appends bytes to a Sink and advances the
state. Calls that would produce invalid YAML fail with an *EmitterError.

	buf := emitter.NewBuffer(0)
	e := emitter.NewEmitter(buf)
	defer e.Dispose()

	e.BeginMapping(emitter.BlockMapping)
	e.WriteString("key", emitter.Any)
	e.WriteString("value", emitter.Any)
	e.EndMapping()

	buf.String() // "key: value\n"
*/
package emitter
