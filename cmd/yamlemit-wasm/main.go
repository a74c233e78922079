// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"carvel.dev/yamlemit/pkg/convert"
	"carvel.dev/yamlemit/pkg/emitter"
	"carvel.dev/yamlemit/pkg/files"
)

type jsFunc func(js.Value, []js.Value) interface{}

func registerFunc(name string, fn jsFunc) {
	js.Global().Set(name, js.FuncOf(fn))
	fmt.Printf("Registered \"%s\" with Global.\n", name)
}

// convertFunc takes the input text and an optional input type and returns
// {output} or {error}.
func convertFunc(this js.Value, args []js.Value) interface{} {
	if len(args) == 0 {
		return map[string]interface{}{"error": "Expected input as first argument"}
	}

	inputType := ""
	if len(args) > 1 {
		inputType = args[1].String()
	}

	typ, err := files.ParseType(inputType)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	out, err := convert.Bytes([]byte(args[0].String()), typ, emitter.DefaultEmitOptions())
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}
	return map[string]interface{}{"output": string(out)}
}

func main() {
	registerFunc("yamlemit", convertFunc)

	// Go-based WASM modules must remain running to be available to the runtime.
	<-make(chan int)
}
