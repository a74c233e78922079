// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

// Package website serves conversions over HTTP.
package website
