// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"carvel.dev/yamlemit/pkg/config"
	"carvel.dev/yamlemit/pkg/convert"
	"carvel.dev/yamlemit/pkg/emitter"
	"carvel.dev/yamlemit/pkg/files"
	"carvel.dev/yamlemit/pkg/website"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

type WebsiteOptions struct {
	ListenAddr      string
	RedirectToHTTPS bool
	ConfigPath      string
	MaxBodySize     int64
	LogLevel        string
}

type websiteError struct {
	Error string `json:"error"`
}

func NewWebsiteOptions() *WebsiteOptions {
	return &WebsiteOptions{}
}

func NewWebsiteCmd(o *WebsiteOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "website",
		Short: "Starts website HTTP server",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringVar(&o.ListenAddr, "listen-addr", "localhost:8080", "Listen address")
	cmd.Flags().BoolVar(&o.RedirectToHTTPS, "redirect-to-https", true, "Redirect to HTTPs address")
	cmd.Flags().StringVar(&o.ConfigPath, "config", "", "Config file (defaults to "+config.DefaultPath+" if present)")
	cmd.Flags().Int64Var(&o.MaxBodySize, "max-body-size", 1<<20, "Largest accepted request body in bytes")
	cmd.Flags().StringVar(&o.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}

func (o *WebsiteOptions) Server() (*website.Server, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}

	defaultType, err := cfg.InputType()
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(o.LogLevel)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	opts := website.ServerOpts{
		ListenAddr:      o.ListenAddr,
		RedirectToHTTPS: o.RedirectToHTTPS,
		ConvertFunc:     newWebsiteConvertFunc(cfg.EmitOptions, defaultType),
		ErrorFunc:       websiteErr,
		MaxBodySize:     o.MaxBodySize,
		Logger:          logger,
		Registry:        registry,
	}
	return website.NewServer(opts), nil
}

func newLogger(name string) (log.Logger, error) {
	if name == "" {
		name = level.InfoValue().String()
	}
	allowed, err := level.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("Parsing log level: %w", err)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return level.NewFilter(logger, level.Allow(allowed)), nil
}

func (o *WebsiteOptions) Run() error {
	server, err := o.Server()
	if err != nil {
		return err
	}
	return server.Run()
}

func newWebsiteConvertFunc(opts emitter.EmitOptions, defaultType files.Type) func([]byte, string) ([]byte, error) {
	return func(data []byte, inputType string) ([]byte, error) {
		typ, err := files.ParseType(inputType)
		if err != nil {
			return nil, err
		}
		if typ == files.TypeUnknown {
			typ = defaultType
		}
		return convert.Bytes(data, typ, opts)
	}
}

func websiteErr(err error) ([]byte, error) {
	return json.Marshal(websiteError{Error: err.Error()})
}
