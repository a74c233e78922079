// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package pkg is the collection of packages that make up the implementation of yamlemit.

Packages are layered; each depends on the others only as far as it must.

# Entry Point

yamlemit is built into three executable formats:

	./cmd/yamlemit          // a command-line tool
	./cmd/yamlemit-lambda   // an AWS Lambda function serving pkg/website
	./cmd/yamlemit-wasm     // a WebAssembly module

# Commands

	pkg/cmd      // convert (default), version, website
	pkg/cmd/ui   // stdout, stderr and debug output
	pkg/config   // .yamlemit.yml

# Conversion

Inputs are read as files, turned into parse events and replayed into an
emitter that writes YAML straight to its sink.

	pkg/files        // local, stdin, HTTP and in-memory inputs
	pkg/eventsource  // YAML, JSON and TOML event sources; Replay
	pkg/convert      // inputs -> eventsource -> emitter
	pkg/website      // conversion over HTTP

# Emitter

	pkg/emitter     // streaming emission state machine
	pkg/yamlscalar  // scalar style analysis and quoting

# Utilities

	pkg/orderedmap  // keeps TOML keys in definition order
	pkg/version
*/
package pkg
