/*
Package observability provides lifecycle hooks for monitoring bevtree engines.

Metrics exports Prometheus counters, Tracing opens one OpenTelemetry span per leaf run
and Logging writes node events to a slog logger. Combine merges several hook sets into
the single domain.LifecycleHooks value an engine accepts.
*/
package observability
