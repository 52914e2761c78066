// Package agent defines the producer contract shared by everything that
// proposes changes to the hypergraph.
//
// An Agent goes through a fixed lifecycle:
//
//	created -> Startup -> Produce (drained lazily) -> Summarize
//
// Startup validates configuration and fails with ErrConfiguration before
// any operation exists. Produce returns a lazy, single-pass sequence of
// core.Operation values; no work happens until the consumer pulls the
// next value, and stopping early is always safe because agents never
// write to the store themselves. Summarize reports the run's counters
// once the sequence has been drained.
//
// Concrete agents embed Base, which carries the name, the progress
// indicator and the generic counters.
package agent
