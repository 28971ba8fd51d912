// Copyright 2020 Coinbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultNamespace prefixes every metric name.
	DefaultNamespace = "carbon_api"

	// OutcomeSuccess and the other outcomes label request counters.
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	// Units metrics
	UnitsRequests *prometheus.CounterVec

	// Mint metrics
	MintRequests  *prometheus.CounterVec
	MintDuration  prometheus.Histogram
	MintedAmounts *prometheus.CounterVec

	// Token metrics
	TokenInfoRequests *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered
// on a dedicated registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		UnitsRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "units",
			Name:      "requests_total",
			Help:      "Total number of units requests by system and outcome",
		}, []string{"system", "outcome"}),

		MintRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mint",
			Name:      "requests_total",
			Help:      "Total number of mint requests by outcome",
		}, []string{"outcome"}),
		MintDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "mint",
			Name:      "duration_seconds",
			Help:      "Mint duration from request to receipt in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120},
		}),
		MintedAmounts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mint",
			Name:      "credits_total",
			Help:      "Total number of credits minted by system",
		}, []string{"system"}),

		TokenInfoRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "token",
			Name:      "info_requests_total",
			Help:      "Total number of token info requests by outcome",
		}, []string{"outcome"}),
	}
}

// Registry returns the registry all metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Outcome returns OutcomeError when failed is true.
func Outcome(failed bool) string {
	if failed {
		return OutcomeError
	}

	return OutcomeSuccess
}

// ObserveMint records a finished mint.
func (m *Metrics) ObserveMint(start time.Time, failed bool) {
	m.MintRequests.WithLabelValues(Outcome(failed)).Inc()
	m.MintDuration.Observe(time.Since(start).Seconds())
}
