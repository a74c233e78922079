// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package emitter

import (
	"fmt"

	"github.com/hashicorp/go-version"
)

const (
	minIndentWidth = 2
	maxIndentWidth = 9

	supportedYAMLVersions = ">= 1.1, < 2.0"
)

// EmitOptions configures an Emitter.
type EmitOptions struct {
	// IndentWidth is the number of spaces per nesting level.
	IndentWidth int `yaml:"indent_width"`
	// PreserveComments enables WriteComment; otherwise comments are dropped.
	PreserveComments bool `yaml:"preserve_comments"`
	// AddLeadingSpace writes "# " instead of "#" for empty comment lines.
	AddLeadingSpace bool `yaml:"add_leading_space"`
	// YAMLVersion, when set, is written as a %YAML directive before the
	// first document.
	YAMLVersion string `yaml:"yaml_version"`
	// SinkBufferSize is the flush threshold used for WriterSinks created on
	// behalf of callers.
	SinkBufferSize int `yaml:"sink_buffer_size"`

	// Pool provides scratch space; nil uses the package pool.
	Pool *ScratchPool `yaml:"-"`
}

// DefaultEmitOptions returns two-space indentation without comments.
func DefaultEmitOptions() EmitOptions {
	return EmitOptions{
		IndentWidth:    2,
		SinkBufferSize: defaultSinkBufferSize,
	}
}

// Validate checks option values.
func (o EmitOptions) Validate() error {
	if o.IndentWidth < minIndentWidth || o.IndentWidth > maxIndentWidth {
		return fmt.Errorf("Expected indent width to be between %d and %d, but was %d",
			minIndentWidth, maxIndentWidth, o.IndentWidth)
	}
	if o.SinkBufferSize < 0 {
		return fmt.Errorf("Expected sink buffer size to be non-negative, but was %d", o.SinkBufferSize)
	}
	if o.YAMLVersion != "" {
		if _, err := o.directive(); err != nil {
			return err
		}
	}
	return nil
}

// directive returns the %YAML directive line for YAMLVersion.
func (o EmitOptions) directive() (string, error) {
	ver, err := version.NewVersion(o.YAMLVersion)
	if err != nil {
		return "", fmt.Errorf("Parsing YAML version '%s': %s", o.YAMLVersion, err)
	}

	constraint, err := version.NewConstraint(supportedYAMLVersions)
	if err != nil {
		return "", err
	}
	if !constraint.Check(ver) {
		return "", fmt.Errorf("Expected YAML version to satisfy '%s', but was '%s'", supportedYAMLVersions, o.YAMLVersion)
	}

	segments := ver.Segments()
	return fmt.Sprintf("%%YAML %d.%d\n", segments[0], segments[1]), nil
}
