// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	stdinMu   sync.Mutex
	stdinRead bool

	// Stdin is read by the '-' input; tests swap it.
	Stdin io.Reader = os.Stdin
)

// ReadStdin returns all of standard input. Input can only be consumed once
// per process, so a second call fails instead of returning nothing.
func ReadStdin() ([]byte, error) {
	stdinMu.Lock()
	defer stdinMu.Unlock()

	if stdinRead {
		return nil, fmt.Errorf("Standard input has already been read, has '-' been given more than once?")
	}
	stdinRead = true
	return io.ReadAll(Stdin)
}

func resetStdin(r io.Reader) {
	stdinMu.Lock()
	defer stdinMu.Unlock()

	Stdin = r
	stdinRead = false
}
