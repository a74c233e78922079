// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carvel.dev/yamlemit/pkg/website"
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(opts website.ServerOpts) *httptest.Server {
	if opts.ConvertFunc == nil {
		opts.ConvertFunc = func(data []byte, inputType string) ([]byte, error) {
			if inputType == "bad" {
				return nil, fmt.Errorf("Unknown type")
			}
			return []byte(inputType + ":" + string(data)), nil
		}
	}
	opts.ErrorFunc = func(err error) ([]byte, error) {
		return []byte(`{"error":"` + err.Error() + `"}`), nil
	}
	return httptest.NewServer(website.NewServer(opts).Mux())
}

func readAll(t *testing.T, resp *http.Response) string {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestConvert(t *testing.T) {
	server := newServer(website.ServerOpts{})
	defer server.Close()

	resp, err := http.Post(server.URL+"/convert?type=json", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "json:{}", readAll(t, resp))
}

func TestConvertErrors(t *testing.T) {
	server := newServer(website.ServerOpts{MaxBodySize: 4})
	defer server.Close()

	resp, err := http.Post(server.URL+"/convert?type=bad", "text/plain", strings.NewReader("a"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, `{"error":"Unknown type"}`, readAll(t, resp))

	resp, err = http.Get(server.URL + "/convert")
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, `{"error":"Expected POST request, but was GET"}`, readAll(t, resp))

	resp, err = http.Post(server.URL+"/convert", "text/plain", strings.NewReader("too long"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	readAll(t, resp)
}

func TestHealthAndIndex(t *testing.T) {
	server := newServer(website.ServerOpts{})
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	assert.Equal(t, "ok", readAll(t, resp))

	resp, err = http.Get(server.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, "no-cache, private, max-age=0", resp.Header.Get("Cache-Control"))
	assert.Contains(t, readAll(t, resp), "/convert")

	resp, err = http.Get(server.URL + "/missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	readAll(t, resp)
}

func TestRedirectToHTTPS(t *testing.T) {
	handler := website.NewServer(website.ServerOpts{RedirectToHTTPS: true}).Mux()

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "https://example.com/", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "http://example.com/health", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "ok", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsAndLogging(t *testing.T) {
	var logs bytes.Buffer
	registry := prometheus.NewRegistry()

	server := newServer(website.ServerOpts{
		Logger:   log.NewLogfmtLogger(log.NewSyncWriter(&logs)),
		Registry: registry,
	})
	defer server.Close()

	for _, inputType := range []string{"yaml", "json", "bad"} {
		resp, err := http.Post(server.URL+"/convert?type="+inputType, "text/plain", strings.NewReader("abc"))
		require.NoError(t, err)
		readAll(t, resp)
	}

	expected := `
# HELP yamlemit_website_conversions_total Total number of conversion requests by outcome.
# TYPE yamlemit_website_conversions_total counter
yamlemit_website_conversions_total{outcome="failure"} 1
yamlemit_website_conversions_total{outcome="success"} 2
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "yamlemit_website_conversions_total"))
	count, err := testutil.GatherAndCount(registry, "yamlemit_website_conversion_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	assert.Contains(t, readAll(t, resp), "yamlemit_website_input_bytes_total 9")

	assert.Contains(t, logs.String(), `level=warn msg="request failed" status=400 err="Unknown type"`)
}
