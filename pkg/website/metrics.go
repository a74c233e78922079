// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package website

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

type serverMetrics struct {
	conversions *prometheus.CounterVec
	inputBytes  prometheus.Counter
	duration    prometheus.Histogram
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	return &serverMetrics{
		conversions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "yamlemit_website_conversions_total",
			Help: "Total number of conversion requests by outcome.",
		}, []string{"outcome"}),
		inputBytes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "yamlemit_website_input_bytes_total",
			Help: "Total number of request body bytes read for conversion.",
		}),
		duration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "yamlemit_website_conversion_duration_seconds",
			Help:    "Time spent converting a request body.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}
