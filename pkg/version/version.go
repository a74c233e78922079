// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the build version of yamlemit.
package version

var (
	// Version can be set via:
	// -ldflags="-X 'carvel.dev/yamlemit/pkg/version.Version=$TAG'"
	Version string
)

func init() {
	if Version == "" {
		Version = "develop"
	}
}
