// Package trace records the phases of a busguard run as spans.
//
// Enable tracing from the command line:
//
//	busguard check --trace=- --trace-level=phase src/main/java
//
// Tracers:
//
//   - Nop: zero overhead when tracing is off
//   - StreamTracer: text or NDJSON lines written as events happen
//   - ZapTracer: events logged through the run's zap logger
//   - MultiTracer: fan-out to several tracers
//
// Levels select scopes: LevelPhase keeps driver and pass spans (load, parse,
// resolve, process), LevelDetail adds per-file spans, LevelDebug keeps
// everything.
//
// Tracers travel through the pipeline in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
