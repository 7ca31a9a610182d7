/*
Package monitoring provides metrics collection for the client core.

# Overview

Metrics are registered on a registry owned by each Metrics value rather than
the global default registry, so several cores (or tests) can coexist in one
process.

# Features

- Protocol operation counts, latency and request size
- Media codec throughput by direction (encode/decode)
- Credential vault operations
- Authentication flag gauge

# Usage

	metrics := monitoring.NewMetrics()
	metrics.RecordOperation("login", "ok", elapsed, len(body))

	families, _ := metrics.Registry().Gather()

A nil *Metrics is valid and records nothing.
*/
package monitoring
