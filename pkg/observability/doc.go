/*
Package observability turns engine lifecycle events into telemetry.

Metrics records Prometheus collectors and LoggingHooks writes structured logs.
Both return domain.LifecycleHooks; combine them with domain.MergeHooks.
*/
package observability
