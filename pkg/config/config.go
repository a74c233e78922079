// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"carvel.dev/yamlemit/pkg/emitter"
	"carvel.dev/yamlemit/pkg/files"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when no path is given.
const DefaultPath = ".yamlemit.yml"

// Config holds emitter options plus the input type assumed for inputs
// without a recognized extension.
type Config struct {
	emitter.EmitOptions `yaml:",inline"`

	Type string `yaml:"type"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{EmitOptions: emitter.DefaultEmitOptions()}
}

// Loader reads config files from FS.
type Loader struct {
	FS afero.Fs
}

func NewLoader() Loader {
	return Loader{FS: afero.NewOsFs()}
}

// Load reads path from the working directory's filesystem.
func Load(path string) (Config, error) {
	return NewLoader().Load(path)
}

// Load reads path over the defaults. An empty path reads DefaultPath if it
// exists.
func (l Loader) Load(path string) (Config, error) {
	if path == "" {
		cfg, err := l.Load(DefaultPath)
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return cfg, err
	}

	data, err := afero.ReadFile(l.FS, path)
	if err != nil {
		return Config{}, fmt.Errorf("Reading config file '%s': %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("Loading config file '%s': %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&cfg)
	if err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("Unmarshaling config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	err := c.EmitOptions.Validate()
	if err != nil {
		return err
	}
	_, err = c.InputType()
	return err
}

// InputType is the configured fallback input type.
func (c Config) InputType() (files.Type, error) {
	return files.ParseType(c.Type)
}
