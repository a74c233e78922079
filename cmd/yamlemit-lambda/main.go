// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"net/http"
	"os"

	"carvel.dev/yamlemit/pkg/cmd"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// HandlerFuncAdapter serves ALB target group events with an http.Handler.
type HandlerFuncAdapter struct {
	RequestAccessor
	handler http.Handler
}

func New(handler http.Handler) *HandlerFuncAdapter {
	return &HandlerFuncAdapter{
		handler: handler,
	}
}

func (h *HandlerFuncAdapter) Proxy(event events.ALBTargetGroupRequest) (events.ALBTargetGroupResponse, error) {
	req, err := h.ProxyEventToHTTPRequest(event)
	if err != nil {
		return events.ALBTargetGroupResponse{StatusCode: 421}, fmt.Errorf("Could not convert event to request: %v", err)
	}

	w := NewProxyResponseWriter()
	h.handler.ServeHTTP(http.ResponseWriter(w), req)

	resp, err := w.GetProxyResponse()
	if err != nil {
		return events.ALBTargetGroupResponse{StatusCode: 422}, fmt.Errorf("Error while generating response: %v", err)
	}

	return resp, nil
}

// newProxy builds the website behind the adapter, logging why it could not.
func newProxy(websiteOpts *cmd.WebsiteOptions, logger log.Logger) (*HandlerFuncAdapter, error) {
	server, err := websiteOpts.Server()
	if err != nil {
		level.Error(logger).Log("msg", "building server failed", "err", err)
		return nil, err
	}
	return New(server.Mux()), nil
}

func main() {
	websiteOpts := cmd.NewWebsiteOptions()
	websiteOpts.RedirectToHTTPS = true
	websiteOpts.MaxBodySize = 1 << 20

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

	proxy, err := newProxy(websiteOpts, logger)
	if err != nil {
		os.Exit(1)
	}
	lambda.Start(proxy.Proxy)
}
