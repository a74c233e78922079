// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package config loads emitter defaults from a .yamlemit.yml file.
package config
