// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// Source supplies the raw bytes of one input. Bytes may block (HTTP, stdin)
// and should return once ctx is done.
type Source interface {
	Description() string
	RelativePath() (string, error)
	Bytes(ctx context.Context) ([]byte, error)
}

var _ []Source = []Source{BytesSource{}, &StdinSource{},
	LocalSource{}, HTTPSource{}, &CachedSource{}}

type BytesSource struct {
	name string
	data []byte
}

func NewBytesSource(name string, data []byte) BytesSource { return BytesSource{name, data} }

func (s BytesSource) Description() string                     { return s.name }
func (s BytesSource) RelativePath() (string, error)           { return s.name, nil }
func (s BytesSource) Bytes(_ context.Context) ([]byte, error) { return s.data, nil }

// StdinSource reads standard input the first time its bytes are requested.
type StdinSource struct {
	once sync.Once
	data []byte
	err  error
}

func NewStdinSource() *StdinSource { return &StdinSource{} }

func (s *StdinSource) Description() string           { return "stdin" }
func (s *StdinSource) RelativePath() (string, error) { return "stdin.yml", nil }

func (s *StdinSource) Bytes(_ context.Context) ([]byte, error) {
	s.once.Do(func() { s.data, s.err = ReadStdin() })
	return s.data, s.err
}

// LocalSource is a file on disk, optionally found by walking dir.
type LocalSource struct {
	path string
	dir  string
}

func NewLocalSource(path, dir string) LocalSource { return LocalSource{path, dir} }

func (s LocalSource) Description() string { return fmt.Sprintf("file '%s'", s.path) }

func (s LocalSource) RelativePath() (string, error) {
	if s.dir == "" {
		return filepath.Base(s.path), nil
	}

	rel, err := filepath.Rel(s.dir, s.path)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("Expected '%s' to be inside directory '%s'", s.path, s.dir)
	}
	return rel, nil
}

func (s LocalSource) Bytes(_ context.Context) ([]byte, error) { return os.ReadFile(s.path) }

// HTTPSource fetches a URL with Client. Responses outside 2xx are errors.
type HTTPSource struct {
	url    string
	Client *http.Client
}

func NewHTTPSource(rawURL string) HTTPSource { return HTTPSource{rawURL, http.DefaultClient} }

func (s HTTPSource) Description() string { return fmt.Sprintf("HTTP URL '%s'", s.url) }

// RelativePath is the last element of the URL path, so that the query
// string does not hide the extension used for type detection.
func (s HTTPSource) RelativePath() (string, error) {
	parsed, err := url.Parse(s.url)
	if err != nil {
		return "", err
	}
	return path.Base(parsed.Path), nil
}

func (s HTTPSource) Bytes(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("Building request for URL '%s': %w", s.url, err)
	}
	req.Header.Set("Accept", "application/yaml, application/json, application/toml;q=0.9, */*;q=0.8")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Requesting URL '%s': %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Requesting URL '%s': %s", s.url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Reading URL '%s': %w", s.url, err)
	}
	return data, nil
}

// CachedSource fetches its underlying source at most once, even when
// several goroutines ask for the bytes.
type CachedSource struct {
	src Source

	once sync.Once
	data []byte
	err  error
}

func NewCachedSource(src Source) *CachedSource { return &CachedSource{src: src} }

func (s *CachedSource) Description() string           { return s.src.Description() }
func (s *CachedSource) RelativePath() (string, error) { return s.src.RelativePath() }

func (s *CachedSource) Bytes(ctx context.Context) ([]byte, error) {
	s.once.Do(func() { s.data, s.err = s.src.Bytes(ctx) })
	return s.data, s.err
}
