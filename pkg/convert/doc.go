// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package convert streams YAML, JSON and TOML inputs through a single Emitter.

Each input document becomes one YAML document; documents after the first
are separated with "---".
*/
package convert
