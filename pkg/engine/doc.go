// Package engine implements the recurrence materialization pipeline:
// converting user-authored templates into concrete, dated task
// instances exactly once per calendar day.
//
// The pieces compose in dependency order:
//   - Materializer proposes drafts for a date from templates whose
//     rule matches; it performs no I/O and never deduplicates.
//   - Guard is the session-lifetime set of claimed markers; claiming
//     synchronously before the create call is the sole
//     concurrency-correctness mechanism against overlapping passes.
//   - Janitor detects duplicate instances that slipped through (e.g.
//     across separate processes) for reactive cleanup.
//   - Pipeline wires the three against a TaskStore and a template
//     source.
//
// No failure in this package escalates: storage errors degrade to "no
// instance produced this cycle", logged and non-fatal. The engine may
// under-materialize until restart but never double-materializes.
package engine
