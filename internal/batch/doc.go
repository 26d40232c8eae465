// Package batch is the conversion orchestrator: it validates a request up
// front, converts each source file in order through the codec capability, and
// aggregates one outcome per source into an ordered report.
//
// Validation failures (unsupported format, unusable destination) reject the
// whole batch before any file I/O. Per-file failures are isolated: one bad
// source never affects its siblings, and the report always carries exactly one
// outcome per requested source in request order. The runner takes an advisory
// lock on the destination directory so concurrent invocations do not
// interleave writes; it retries nothing, because the codec failures it sees
// are deterministic.
package batch
