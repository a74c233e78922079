// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package emitter

import "carvel.dev/yamlemit/pkg/yamlscalar"

// openLayout is what opening a collection writes and how it nests.
type openLayout struct {
	push Context
	// entryHeader writes the parent sequence's "-" first
	entryHeader bool
	// valueSpace separates a flow collection from the parent's key
	valueSpace bool
	// separator writes ", " unless first in the parent flow collection
	separator bool
	// indent places the collection one level deeper than its parent
	indent bool
}

func decideOpen(kind collectionKind, flow bool, current Context) (openLayout, error) {
	name := kind.name(flow)

	switch {
	case current.IsKey():
		return openLayout{}, newError(ComplexKeyNotSupported, "cannot start %s while in %s", name, current)
	case !flow && current.IsFlow():
		return openLayout{}, newError(BlockInFlowNotSupported, "cannot start %s while in %s", name, current)
	}

	layout := openLayout{push: kind.entryContext(flow)}

	switch current {
	case BlockSequenceEntry:
		layout.entryHeader = true
		layout.indent = !flow
	case BlockMappingValue:
		layout.valueSpace = flow
		layout.indent = !flow
	case FlowSequenceEntry:
		layout.separator = true
	case FlowMappingValue:
		layout.valueSpace = true
	}
	return layout, nil
}

// closeLayout is what closing a collection writes.
type closeLayout struct {
	// fold writes an empty block collection as [] or {}
	fold bool
	// foldSpace separates the fold from the parent's key
	foldSpace bool
	// bracket closes a flow collection
	bracket bool
	// lineBreak ends the line of the parent's entry or value
	lineBreak bool
}

func decideClose(kind collectionKind, current, parent Context, empty bool) (closeLayout, error) {
	switch kind {
	case sequenceKind:
		if current != BlockSequenceEntry && current != FlowSequenceEntry {
			return closeLayout{}, newError(NotASequence, "cannot end sequence while in %s", current)
		}
	case mappingKind:
		switch current {
		case BlockMappingKey, FlowMappingKey:
		case BlockMappingValue, FlowMappingValue:
			return closeLayout{}, newError(IncompleteMapping, "cannot end mapping while in %s: the last key has no value", current)
		default:
			return closeLayout{}, newError(NotAMapping, "cannot end mapping while in %s", current)
		}
	}

	layout := closeLayout{lineBreak: parent == BlockSequenceEntry || parent == BlockMappingValue}

	switch {
	case current.IsFlow():
		layout.bracket = true
	case empty:
		layout.fold = true
		layout.foldSpace = parent == BlockMappingValue
	default:
		// the last element already ended its line
		layout.lineBreak = false
	}
	return layout, nil
}

// scalarLayout is what surrounds a scalar written in a given context.
type scalarLayout struct {
	placement yamlscalar.Placement
	// indent writes indentation, indentOffset levels deeper than the current
	// level
	indent       bool
	indentOffset int
	// entryHeader writes "- "
	entryHeader bool
	// leadingSpace separates a value from its key
	leadingSpace bool
	// separator writes ", " unless first in the flow collection
	separator bool
	// keyIndicator writes ":" after a key
	keyIndicator bool
	// next is the context once the scalar is written
	next Context
	// completes counts the scalar as an element of the collection
	completes bool
	// lineBreak ends the line after the scalar
	lineBreak bool
}

func decideScalar(current Context, atLineStart bool) scalarLayout {
	layout := scalarLayout{next: current}

	switch current {
	case None:
		layout.placement = yamlscalar.PlacementTop
		layout.completes = true

	case BlockSequenceEntry:
		layout.placement = yamlscalar.PlacementBlock
		layout.indent = atLineStart
		layout.entryHeader = true
		layout.completes = true
		layout.lineBreak = true

	case BlockMappingKey:
		layout.placement = yamlscalar.PlacementKey
		layout.indent = atLineStart
		layout.keyIndicator = true
		layout.next = BlockMappingValue

	case BlockMappingValue:
		layout.placement = yamlscalar.PlacementBlock
		if atLineStart {
			layout.indent = true
			layout.indentOffset = 1
		} else {
			layout.leadingSpace = true
		}
		layout.next = BlockMappingKey
		layout.completes = true
		layout.lineBreak = true

	case FlowSequenceEntry:
		layout.placement = yamlscalar.PlacementFlow
		layout.separator = true
		layout.completes = true

	case FlowMappingKey:
		layout.placement = yamlscalar.PlacementKey
		layout.separator = true
		layout.keyIndicator = true
		layout.next = FlowMappingValue

	case FlowMappingValue:
		layout.placement = yamlscalar.PlacementFlow
		layout.leadingSpace = true
		layout.next = FlowMappingKey
		layout.completes = true
	}
	return layout
}

// commentLevel is the indentation level of a full line comment written in
// current when the emitter is at level.
func commentLevel(current Context, level int) int {
	switch current {
	case None:
		return 0
	case BlockMappingValue:
		return level + 1
	default:
		return level
	}
}
