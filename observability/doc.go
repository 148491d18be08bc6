// Package observability provides the OpenTelemetry tracing and metrics used by
// apimanager.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("billing-client"))
//	defer tp.Shutdown(ctx)
//
// Every request sent through a Manager opens an "apimanager.send" span on the
// global provider.
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("billing-client"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewRequestMetrics(observability.Meter("billing-client"))
//	m, err := apimanager.New(apimanager.WithMetrics(metrics))
package observability
