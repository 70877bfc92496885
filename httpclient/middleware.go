package httpclient

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/observability"
)

// Middleware transforms a Transport by wrapping it.
// The returned transport typically delegates to the original while
// adding cross-cutting behavior (logging, metrics, tracing, etc.).
type Middleware func(Transport) Transport

// Chain composes multiple middlewares into one. Middlewares are applied
// in order: the first middleware is outermost (executes first on the
// way in, last on the way out).
//
// Chain(a, b, c)(t) is equivalent to a(b(c(t))).
func Chain(middlewares ...Middleware) Middleware {
	return func(inner Transport) Transport {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}

// WithLogging returns a Middleware that logs each request.
// Logs: request id, method, url, status, duration, and error.
func WithLogging(log *logger.Logger) Middleware {
	return func(inner Transport) Transport {
		return TransportFunc(func(ctx context.Context, d *Descriptor) (*Response, error) {
			start := time.Now()
			resp, err := inner.Send(ctx, d)

			fields := logger.MergeWithDuration(logger.RequestFields(d.ID, d.Method, d.URL), time.Since(start))
			if status := statusOf(resp, err); status > 0 {
				fields[logger.FieldStatusCode] = status
			}
			l := log.WithContext(ctx)
			switch {
			case err == nil:
				l.Debug("request ok", fields)
			case IsCancel(err):
				l.Info("request canceled", logger.MergeWithError(fields, err))
			default:
				l.Error("request failed", logger.MergeWithError(fields, err))
			}
			return resp, err
		})
	}
}

// WithTracing returns a Middleware that creates a client span around each
// request and injects the trace context into the request headers.
func WithTracing(clientName string) Middleware {
	return func(inner Transport) Transport {
		return TransportFunc(func(ctx context.Context, d *Descriptor) (*Response, error) {
			method := strings.ToUpper(d.Method)
			ctx, span := observability.StartClientSpan(ctx, observability.SpanHTTPRequest+" "+method,
				attribute.String(observability.AttrClientName, clientName),
				attribute.String(observability.AttrRequestID, d.ID),
				attribute.String(observability.AttrMethod, method),
				attribute.String(observability.AttrURL, d.URL),
			)
			defer span.End()

			out := d.Clone()
			if out.Headers == nil {
				out.Headers = make(map[string]string)
			}
			otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(out.Headers))

			resp, err := inner.Send(ctx, out)
			if status := statusOf(resp, err); status > 0 {
				span.SetAttributes(attribute.Int(observability.AttrStatusCode, status))
			}
			if err != nil {
				span.SetAttributes(attribute.String(observability.AttrErrorCode, codeOf(err)))
				observability.SetSpanError(span, err)
			}
			return resp, err
		})
	}
}

// WithMetrics returns a Middleware that records request count, duration,
// in-flight requests, and errors on m.
func WithMetrics(clientName string, m *observability.Metrics) Middleware {
	return func(inner Transport) Transport {
		return TransportFunc(func(ctx context.Context, d *Descriptor) (*Response, error) {
			method := strings.ToUpper(d.Method)
			m.RecordRequestStart(ctx, clientName, method)
			start := time.Now()
			resp, err := inner.Send(ctx, d)
			m.RecordRequestEnd(ctx, clientName, method, statusOf(resp, err), time.Since(start))
			if err != nil {
				m.RecordError(ctx, clientName, codeOf(err))
			}
			return resp, err
		})
	}
}

// statusOf returns the HTTP status of a finished request, 0 when none arrived.
func statusOf(resp *Response, err error) int {
	if resp != nil {
		return resp.StatusCode
	}
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// codeOf returns the classification of err as a metric label.
func codeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code.String()
	}
	return "unknown"
}
