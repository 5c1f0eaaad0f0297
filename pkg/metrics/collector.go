// Copyright (C) 2025 useme-com
//
// This file is part of transferwise-go.
//
// transferwise-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// transferwise-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with transferwise-go.  If not, see <https://www.gnu.org/licenses/>.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/useme-com/transferwise-go/pkg/client"
)

const (
	namespace = "transferwise"
	subsystem = "client"
)

var _ client.Observer = (*Collector)(nil)

// Collector records request attempts, step-up challenges and transport
// failures. It implements client.Observer.
type Collector struct {
	attempts         *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	stepUps          *prometheus.CounterVec
	connectionErrors *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its instruments with reg.
// A nil reg leaves the instruments unregistered.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "attempts_total",
			Help:      "HTTP exchanges with the TransferWise API by method, attempt and status code",
		}, []string{"method", "attempt", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "attempt_duration_seconds",
			Help:      "Latency of HTTP exchanges with the TransferWise API",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "attempt"}),
		stepUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "step_up_challenges_total",
			Help:      "Step-up approval challenges answered by the client",
		}, []string{"method"}),
		connectionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "connection_errors_total",
			Help:      "Attempts that failed before a response was received",
		}, []string{"method", "attempt"}),
	}

	if reg == nil {
		return c, nil
	}

	for _, col := range []prometheus.Collector{c.attempts, c.duration, c.stepUps, c.connectionErrors} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ObserveAttempt implements client.Observer
func (c *Collector) ObserveAttempt(method, attempt string, statusCode int, elapsed time.Duration) {
	c.attempts.WithLabelValues(method, attempt, strconv.Itoa(statusCode)).Inc()
	c.duration.WithLabelValues(method, attempt).Observe(elapsed.Seconds())
}

// ObserveStepUp implements client.Observer
func (c *Collector) ObserveStepUp(method string) {
	c.stepUps.WithLabelValues(method).Inc()
}

// ObserveConnectionError implements client.Observer
func (c *Collector) ObserveConnectionError(method, attempt string) {
	c.connectionErrors.WithLabelValues(method, attempt).Inc()
}
