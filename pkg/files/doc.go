// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package files provides primitives for enumerating and loading data from various
file or file-like Source's and for writing converted output to a file.

Inputs are converted differently depending on their Type. For example,
File instances that are TypeJSON are read as a stream of JSON values.
*/
package files
