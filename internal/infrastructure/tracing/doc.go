/*
Package tracing records client-side spans for protocol operations.

# Overview

Each operation the protocol client sends runs inside a span. Spans that
share a context share a trace ID, so a multi-step flow such as fetching a
transcript and then extracting its pattern shows up as one trace. The trace
and span IDs travel to the server in headers so both sides can be joined.

# Usage

	tracer := tracing.New("pattern-core", logger)
	defer tracer.Close()

	span, ctx := tracer.StartSpan(ctx, "FetchAndExtract")
	defer func() { tracer.End(span, err) }()

# Trace Format

- X-Trace-ID: identifier for the whole flow
- X-Span-ID: identifier for the current operation

Spans are buffered (1000) and logged asynchronously at debug level, or at
warn when they carry an error.
*/
package tracing
