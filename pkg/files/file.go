// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	yamlExts = []string{".yaml", ".yml"}
	jsonExts = []string{".json"}
	tomlExts = []string{".toml"}
)

type Type int

const (
	TypeUnknown Type = iota
	TypeYAML
	TypeJSON
	TypeTOML
)

var typeNames = map[Type]string{
	TypeUnknown: "unknown",
	TypeYAML:    "yaml",
	TypeJSON:    "json",
	TypeTOML:    "toml",
}

func (t Type) String() string { return typeNames[t] }

// ParseType accepts the names used by the --type flag and the website.
// An empty name is TypeUnknown, leaving detection to the file extension.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(name) {
	case "":
		return TypeUnknown, nil
	case "yaml", "yml":
		return TypeYAML, nil
	case "json":
		return TypeJSON, nil
	case "toml":
		return TypeTOML, nil
	default:
		return TypeUnknown, fmt.Errorf("Expected input type to be one of yaml, json or toml, but was '%s'", name)
	}
}

type File struct {
	src     Source
	relPath string
}

// NewFiles resolves paths into inputs. A URL given more than once is fetched
// only once.
func NewFiles(paths []string, recursive bool) ([]*File, error) {
	var fileSrcs []Source
	urls := map[string]*CachedSource{}

	for _, path := range paths {
		switch {
		case path == "-":
			fileSrcs = append(fileSrcs, NewStdinSource())

		case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
			src, found := urls[path]
			if !found {
				src = NewCachedSource(NewHTTPSource(path))
				urls[path] = src
			}
			fileSrcs = append(fileSrcs, src)

		default:
			fileInfo, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("Checking file '%s': %w", path, err)
			}

			if fileInfo.IsDir() {
				if !recursive {
					return nil, fmt.Errorf("Expected file '%s' to not be a directory", path)
				}

				var selectedPaths []string

				err := filepath.Walk(path, func(walkedPath string, fi os.FileInfo, err error) error {
					if err != nil || fi.IsDir() {
						return err
					}
					selectedPaths = append(selectedPaths, walkedPath)
					return nil
				})
				if err != nil {
					return nil, fmt.Errorf("Listing files '%s': %w", path, err)
				}

				sort.Strings(selectedPaths)

				for _, selectedPath := range selectedPaths {
					src := NewLocalSource(selectedPath, path)
					// directories contribute only the inputs we know how to read
					if typeOfPath(selectedPath) != TypeUnknown {
						fileSrcs = append(fileSrcs, src)
					}
				}
			} else {
				fileSrcs = append(fileSrcs, NewLocalSource(path, ""))
			}
		}
	}

	var files []*File

	for _, fileSrc := range fileSrcs {
		file, err := NewFileFromSource(fileSrc)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, nil
}

func NewFileFromSource(fileSrc Source) (*File, error) {
	relPath, err := fileSrc.RelativePath()
	if err != nil {
		return nil, fmt.Errorf("Calculating relative path for '%s': %s", fileSrc.Description(), err)
	}

	return &File{src: fileSrc, relPath: relPath}, nil
}

func (r *File) Description() string  { return r.src.Description() }
func (r *File) RelativePath() string { return r.relPath }

func (r *File) Bytes(ctx context.Context) ([]byte, error) {
	return r.src.Bytes(ctx)
}

// Type is detected from the file extension; stdin counts as YAML.
func (r *File) Type() Type { return typeOfPath(r.RelativePath()) }

func typeOfPath(path string) Type {
	filename := filepath.Base(path)

	switch {
	case matchesExt(filename, yamlExts):
		return TypeYAML
	case matchesExt(filename, jsonExts):
		return TypeJSON
	case matchesExt(filename, tomlExts):
		return TypeTOML
	default:
		return TypeUnknown
	}
}

func matchesExt(filename string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}
