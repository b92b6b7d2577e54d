// Package trace records what the cstree driver is doing: which pass runs
// over which file and for how long.
//
// Enable tracing via command-line flags:
//
//	cstree check --trace=- --trace-level=detail ./src
//
// Tracers:
//
//   - Nop: no overhead when tracing is off
//   - StreamTracer: writes each event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events, dumped when the process panics
//   - MultiTracer: fans out to several tracers
//
// Levels select scopes: phase shows driver and pass spans, detail adds one
// span per file, debug adds everything.
//
// Spans nest through the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
