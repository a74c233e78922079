// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package eventsource turns parsed documents into a stream of parse events and
replays such streams into an emitter.

Sources exist for YAML (including styles, tags and comments), JSON and TOML
input. Replay drives an *emitter.Emitter with the events of a Source, which
converts any of these inputs into YAML text.
*/
package eventsource
