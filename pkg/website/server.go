// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultMaxBodySize = 1 << 20

type ServerOpts struct {
	ListenAddr      string
	RedirectToHTTPS bool
	// ConvertFunc converts a request body; inputType is the "type" query
	// parameter and may be empty.
	ConvertFunc func(data []byte, inputType string) ([]byte, error)
	ErrorFunc   func(error) ([]byte, error)
	MaxBodySize int64

	// Logger defaults to a no-op logger.
	Logger log.Logger
	// Registry collects the server metrics served on /metrics; a private
	// registry is used when nil.
	Registry *prometheus.Registry
}

type Server struct {
	opts    ServerOpts
	metrics *serverMetrics
}

func NewServer(opts ServerOpts) *Server {
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = defaultMaxBodySize
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	return &Server{opts: opts, metrics: newServerMetrics(opts.Registry)}
}

func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.redirectToHTTPS(s.noCacheHandler(s.mainHandler)))
	// no need for caching as it's a POST
	mux.HandleFunc("/convert", s.redirectToHTTPS(s.corsHandler(s.convertHandler)))
	mux.HandleFunc("/health", s.healthHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{}))
	return mux
}

func (s *Server) Run() error {
	server := &http.Server{
		Addr:              s.opts.ListenAddr,
		Handler:           s.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	level.Info(s.opts.Logger).Log("msg", "listening", "addr", "http://"+server.Addr)
	return server.ListenAndServe()
}

func (s *Server) mainHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	s.write(w, []byte("POST a YAML, JSON or TOML document to /convert?type=yaml|json|toml\n"))
}

func (s *Server) convertHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodPost {
		s.logError(w, http.StatusMethodNotAllowed, fmt.Errorf("Expected POST request, but was %s", r.Method))
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodySize))
	if err != nil {
		s.metrics.conversions.WithLabelValues(outcomeFailure).Inc()
		s.logError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	s.metrics.inputBytes.Add(float64(len(data)))

	t1 := time.Now()
	resp, err := s.opts.ConvertFunc(data, r.URL.Query().Get("type"))
	s.metrics.duration.Observe(time.Since(t1).Seconds())
	if err != nil {
		s.metrics.conversions.WithLabelValues(outcomeFailure).Inc()
		s.logError(w, http.StatusBadRequest, err)
		return
	}
	s.metrics.conversions.WithLabelValues(outcomeSuccess).Inc()

	w.Header().Set("Content-Type", "application/yaml")
	s.write(w, resp)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.write(w, []byte("ok"))
}

func (s *Server) logError(w http.ResponseWriter, status int, err error) {
	level.Warn(s.opts.Logger).Log("msg", "request failed", "status", status, "err", err)

	resp, err := s.opts.ErrorFunc(err)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "conversion error: %s", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	s.write(w, resp)
}

func (s *Server) write(w http.ResponseWriter, data []byte) {
	w.Write(data) // not fmt.Fprintf!
}

func (s *Server) redirectToHTTPS(wrappedFunc func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	if !s.opts.RedirectToHTTPS {
		return wrappedFunc
	}
	return func(w http.ResponseWriter, r *http.Request) {
		checkHTTPS := true
		clientIP, _, err := net.SplitHostPort(r.RemoteAddr)
		if err == nil {
			if clientIP == "127.0.0.1" {
				checkHTTPS = false
			}
		}

		if checkHTTPS && r.Header.Get(http.CanonicalHeaderKey("x-forwarded-proto")) != "https" {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				host := r.Host
				if len(host) == 0 {
					s.logError(w, http.StatusBadRequest, fmt.Errorf("expected non-empty Host header"))
					return
				}

				http.Redirect(w, r, "https://"+host+r.URL.RequestURI(), http.StatusMovedPermanently)
				return
			}

			// Fail if it's not a GET or HEAD since req may have carried body insecurely
			s.logError(w, http.StatusForbidden, fmt.Errorf("expected HTTPs connection"))
			return
		}

		wrappedFunc(w, r)
	}
}

var (
	noCacheHeaders = map[string]string{
		"Expires":         time.Unix(0, 0).Format(time.RFC1123),
		"Cache-Control":   "no-cache, private, max-age=0",
		"Pragma":          "no-cache",
		"X-Accel-Expires": "0",
	}
)

func (s *Server) noCacheHandler(wrappedFunc func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		for k, v := range noCacheHeaders {
			w.Header().Set(k, v)
		}

		wrappedFunc(w, r)
	}
}

func (s *Server) corsHandler(wrappedFunc func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		wrappedFunc(w, r)
	}
}
