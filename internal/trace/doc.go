// Package trace records what the compiler is doing while it runs.
//
// Enable it from the command line:
//
//	cinder build --trace=- --trace-level=detail src/
//
// Tracers:
//
//   - Nop: disabled tracing
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory, dumped when a build fails
//   - MultiTracer: fan-out
//
// Levels, from quiet to verbose: off, error (driver spans), phase (+ per-file
// spans), detail (+ lex/parse/check/emit passes), debug (+ per-item events).
//
// Tracers travel through the pipeline in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parent)
//	defer span.End("")
package trace
