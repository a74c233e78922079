// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package emitter

import "fmt"

// Context is what the emitter is positioned to write next.
type Context int

const (
	// None is the document root.
	None Context = iota
	BlockSequenceEntry
	BlockMappingKey
	BlockMappingValue
	FlowSequenceEntry
	FlowMappingKey
	FlowMappingValue
)

var contextNames = []string{
	None:               "none",
	BlockSequenceEntry: "block-sequence",
	BlockMappingKey:    "block-mapping-key",
	BlockMappingValue:  "block-mapping-value",
	FlowSequenceEntry:  "flow-sequence",
	FlowMappingKey:     "flow-mapping-key",
	FlowMappingValue:   "flow-mapping-value",
}

func (c Context) String() string {
	if c >= 0 && int(c) < len(contextNames) {
		return contextNames[c]
	}
	return fmt.Sprintf("context(%d)", int(c))
}

// IsBlock reports whether c is inside a block collection.
func (c Context) IsBlock() bool {
	return c == BlockSequenceEntry || c == BlockMappingKey || c == BlockMappingValue
}

// IsFlow reports whether c is inside a flow collection.
func (c Context) IsFlow() bool {
	return c == FlowSequenceEntry || c == FlowMappingKey || c == FlowMappingValue
}

// IsKey reports whether c expects a mapping key.
func (c Context) IsKey() bool {
	return c == BlockMappingKey || c == FlowMappingKey
}

// SequenceStyle selects how a sequence is laid out.
type SequenceStyle int

const (
	BlockSequence SequenceStyle = iota
	FlowSequence
)

// MappingStyle selects how a mapping is laid out.
type MappingStyle int

const (
	BlockMapping MappingStyle = iota
	FlowMapping
)

type collectionKind int

const (
	sequenceKind collectionKind = iota
	mappingKind
)

func (k collectionKind) name(flow bool) string {
	layout := "block"
	if flow {
		layout = "flow"
	}
	if k == sequenceKind {
		return layout + "-sequence"
	}
	return layout + "-mapping"
}

func (k collectionKind) brackets() (byte, byte) {
	if k == sequenceKind {
		return '[', ']'
	}
	return '{', '}'
}

// entryContext is the context pushed when a collection of kind opens.
func (k collectionKind) entryContext(flow bool) Context {
	switch {
	case k == sequenceKind && flow:
		return FlowSequenceEntry
	case k == sequenceKind:
		return BlockSequenceEntry
	case flow:
		return FlowMappingKey
	default:
		return BlockMappingKey
	}
}

// frame is one level of the context stack together with its element counter.
type frame struct {
	ctx   Context
	count int
	// indented records that opening this frame raised the indent level
	indented bool
	// tag of a block collection, written before its first element
	tag string
}
