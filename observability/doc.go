// Package observability wires OpenTelemetry tracing and metrics for gofetch.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("orders"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("orders"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("gofetch"))
//	metrics.RecordRequestEnd(ctx, "orders", "GET", 200, duration)
//
// The httpclient tracing and metrics middlewares build on these helpers.
package observability
