// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"carvel.dev/yamlemit/pkg/config"
	"carvel.dev/yamlemit/pkg/files"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
indent_width: 4
preserve_comments: true
yaml_version: "1.2"
type: json
`))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.IndentWidth)
	assert.True(t, cfg.PreserveComments)
	assert.False(t, cfg.AddLeadingSpace)
	assert.Equal(t, "1.2", cfg.YAMLVersion)
	assert.Equal(t, config.Default().SinkBufferSize, cfg.SinkBufferSize)

	typ, err := cfg.InputType()
	require.NoError(t, err)
	assert.Equal(t, files.TypeJSON, typ)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		desc     string
		input    string
		expected string
	}{
		{"unknown key", "indent: 4\n", "Unmarshaling config: yaml: unmarshal errors:\n  line 1: field indent not found in type config.Config"},
		{"indent width", "indent_width: 1\n", "Expected indent width to be between 2 and 9, but was 1"},
		{"yaml version", "yaml_version: \"2.0\"\n", "Expected YAML version to satisfy '>= 1.1, < 2.0', but was '2.0'"},
		{"type", "type: xml\n", "Expected input type to be one of yaml, json or toml, but was 'xml'"},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := config.Parse([]byte(tc.input))
			require.EqualError(t, err, tc.expected)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("indent_width: 3\n"), 0600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.IndentWidth)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("indent_width: 12\n"), 0600))
	_, err = config.Load(path)
	require.EqualError(t, err, "Loading config file '"+path+"': Expected indent width to be between 2 and 9, but was 12")
}

func TestLoadDefaultPath(t *testing.T) {
	loader := config.Loader{FS: afero.NewMemMapFs()}

	cfg, err := loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	require.NoError(t, afero.WriteFile(loader.FS, config.DefaultPath, []byte("add_leading_space: true\n"), 0600))

	cfg, err = loader.Load("")
	require.NoError(t, err)
	assert.True(t, cfg.AddLeadingSpace)

	require.NoError(t, afero.WriteFile(loader.FS, config.DefaultPath, []byte("indent_width: [\n"), 0600))

	_, err = loader.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Loading config file '"+config.DefaultPath+"': Unmarshaling config: ")
}
