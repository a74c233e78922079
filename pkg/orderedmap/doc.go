// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a string-keyed map that keeps the order of its
keys (unlike the native Go map).

Decoders that hand back native maps lose the order keys had in their input;
converting those maps with a ranking of the original keys restores it, which
keeps emitted output deterministic and close to the input.
*/
package orderedmap
