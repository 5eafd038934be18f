/*
Package observability turns engine lifecycle hooks into logs and Prometheus metrics.

Hooks compose with Chain, so a single engine can feed a structured logger and a metrics
registry at the same time:

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	hooks := observability.Chain(metrics.Hooks(), observability.LoggingHooks(logger))
	m, _ := turing.New(spec, turing.WithLifecycleHooks(hooks))
*/
package observability
