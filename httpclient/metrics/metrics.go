// Package metrics exports Prometheus metrics for httpclient requests.
package metrics

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kbukum/gofetch/httpclient"
)

// Collector records request count, duration, in-flight requests and errors.
// It is safe for concurrent use.
type Collector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec
	errorsTotal      *prometheus.CounterVec
	cancelsTotal     *prometheus.CounterVec
}

// NewCollector creates a collector on the default registerer.
func NewCollector() *Collector {
	return NewCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector using the supplied registerer.
func NewCollectorWithRegistry(registry prometheus.Registerer) *Collector {
	factory := promauto.With(registry)
	return &Collector{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gofetch_requests_total",
				Help: "Total number of HTTP requests made",
			},
			[]string{"client", "method", "status_code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gofetch_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"client", "method", "status_code"},
		),
		requestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gofetch_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
			[]string{"client", "method"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gofetch_errors_total",
				Help: "Total number of failed requests by error code",
			},
			[]string{"client", "method", "code"},
		),
		cancelsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gofetch_cancels_total",
				Help: "Total number of canceled requests",
			},
			[]string{"client"},
		),
	}
}

// RecordRequest records request count and duration.
func (c *Collector) RecordRequest(client, method string, statusCode int, duration time.Duration) {
	if c == nil {
		return
	}
	status := strconv.Itoa(statusCode)
	c.requestsTotal.WithLabelValues(client, method, status).Inc()
	c.requestDuration.WithLabelValues(client, method, status).Observe(duration.Seconds())
}

// RecordRequestStart increments the in-flight gauge.
func (c *Collector) RecordRequestStart(client, method string) {
	if c == nil {
		return
	}
	c.requestsInFlight.WithLabelValues(client, method).Inc()
}

// RecordRequestEnd decrements the in-flight gauge.
func (c *Collector) RecordRequestEnd(client, method string) {
	if c == nil {
		return
	}
	c.requestsInFlight.WithLabelValues(client, method).Dec()
}

// RecordError counts a failed request. Cancellations are counted separately as well.
func (c *Collector) RecordError(client, method string, err error) {
	if c == nil || err == nil {
		return
	}
	code := "unknown"
	var e *httpclient.Error
	if errors.As(err, &e) {
		code = e.Code.String()
	}
	c.errorsTotal.WithLabelValues(client, method, code).Inc()
	if httpclient.IsCancel(err) {
		c.cancelsTotal.WithLabelValues(client).Inc()
	}
}

// Middleware returns an httpclient middleware recording every request of client.
func (c *Collector) Middleware(client string) httpclient.Middleware {
	return func(inner httpclient.Transport) httpclient.Transport {
		return httpclient.TransportFunc(func(ctx context.Context, d *httpclient.Descriptor) (*httpclient.Response, error) {
			method := strings.ToUpper(d.Method)
			c.RecordRequestStart(client, method)
			defer c.RecordRequestEnd(client, method)

			start := time.Now()
			resp, err := inner.Send(ctx, d)
			c.RecordRequest(client, method, statusCode(resp, err), time.Since(start))
			c.RecordError(client, method, err)
			return resp, err
		})
	}
}

func statusCode(resp *httpclient.Response, err error) int {
	if resp != nil {
		return resp.StatusCode
	}
	if r := httpclient.ResponseOf(err); r != nil {
		return r.StatusCode
	}
	return 0
}
