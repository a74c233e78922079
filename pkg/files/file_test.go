// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"carvel.dev/yamlemit/pkg/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTypeFromExtension(t *testing.T) {
	cases := map[string]files.Type{
		"a.yml":        files.TypeYAML,
		"a.yaml":       files.TypeYAML,
		"a.json":       files.TypeJSON,
		"a.toml":       files.TypeTOML,
		"a.txt":        files.TypeUnknown,
		"a.json.bak":   files.TypeUnknown,
		"dir/b.toml":   files.TypeTOML,
		"stdin.yml":    files.TypeYAML,
		"no-extension": files.TypeUnknown,
	}
	for path, expected := range cases {
		file, err := files.NewFileFromSource(files.NewBytesSource(path, nil))
		require.NoError(t, err)
		assert.Equal(t, expected, file.Type(), path)
	}
}

func TestParseType(t *testing.T) {
	for name, expected := range map[string]files.Type{
		"":     files.TypeUnknown,
		"yaml": files.TypeYAML,
		"YML":  files.TypeYAML,
		"json": files.TypeJSON,
		"toml": files.TypeTOML,
	} {
		typ, err := files.ParseType(name)
		require.NoError(t, err)
		assert.Equal(t, expected, typ, name)
	}

	_, err := files.ParseType("xml")
	require.EqualError(t, err, "Expected input type to be one of yaml, json or toml, but was 'xml'")
}

func TestNewFilesFromDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.yml", "notes.txt", "sub/c.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
		require.NoError(t, os.WriteFile(path, []byte(name), 0600))
	}

	_, err := files.NewFiles([]string{dir}, false)
	require.EqualError(t, err, "Expected file '"+dir+"' to not be a directory")

	result, err := files.NewFiles([]string{dir}, true)
	require.NoError(t, err)

	var paths []string
	for _, file := range result {
		paths = append(paths, file.RelativePath())
	}
	assert.Equal(t, []string{"a.yml", "b.json", filepath.Join("sub", "c.toml")}, paths)

	data, err := result[1].Bytes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b.json", string(data))
}

func TestNewFilesMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yml")
	_, err := files.NewFiles([]string{path}, false)
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.True(t, strings.HasPrefix(err.Error(), "Checking file '"+path+"': "), err.Error())
}

func TestNewFilesFetchesRepeatedURLOnce(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		fmt.Fprint(w, `{"a": 1}`)
	}))
	defer server.Close()

	url := server.URL + "/values.json"
	result, err := files.NewFiles([]string{url, url}, false)
	require.NoError(t, err)
	require.Len(t, result, 2)

	for _, file := range result {
		data, err := file.Bytes(context.Background())
		require.NoError(t, err)
		assert.Equal(t, `{"a": 1}`, string(data))
		assert.Equal(t, files.TypeJSON, file.Type())
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestOutputFileCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.yml")

	require.NoError(t, files.NewOutputFile(path, []byte("a: 1\n")).Create())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))
}
