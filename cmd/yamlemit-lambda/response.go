// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
)

const defaultStatusCode = -1

// ProxyResponseWriter collects what a handler writes into an ALB response.
type ProxyResponseWriter struct {
	headers http.Header
	body    bytes.Buffer
	status  int
}

func NewProxyResponseWriter() *ProxyResponseWriter {
	return &ProxyResponseWriter{
		headers: make(http.Header),
		status:  defaultStatusCode,
	}
}

func (r *ProxyResponseWriter) Header() http.Header { return r.headers }

func (r *ProxyResponseWriter) Write(body []byte) (int, error) {
	if r.status == defaultStatusCode {
		r.status = http.StatusOK
	}
	if r.headers.Get("Content-Type") == "" {
		r.headers.Set("Content-Type", http.DetectContentType(body))
	}
	return r.body.Write(body)
}

func (r *ProxyResponseWriter) WriteHeader(status int) {
	if r.status == defaultStatusCode {
		r.status = status
	}
}

func (r *ProxyResponseWriter) GetProxyResponse() (events.ALBTargetGroupResponse, error) {
	if r.status == defaultStatusCode {
		return events.ALBTargetGroupResponse{}, errors.New("Status code not set on response")
	}

	headers := map[string]string{}
	multiHeaders := map[string][]string{}
	for h, vs := range r.headers {
		multiHeaders[h] = vs
		headers[h] = strings.Join(vs, ",")
	}

	output := r.body.String()
	isBase64 := false
	if !utf8.Valid(r.body.Bytes()) {
		output = base64.StdEncoding.EncodeToString(r.body.Bytes())
		isBase64 = true
	}

	return events.ALBTargetGroupResponse{
		StatusCode:        r.status,
		StatusDescription: http.StatusText(r.status),
		Headers:           headers,
		MultiValueHeaders: multiHeaders,
		Body:              output,
		IsBase64Encoded:   isBase64,
	}, nil
}
