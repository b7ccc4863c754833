// Package reactor is a fine-grained reactivity runtime: Source Cells hold
// values, Derived Cells recompute from other cells lazily on read, Effects
// run for their side effects whenever a dependency changes, and Scopes
// form a lifetime tree that disposes everything created within it.
//
// Propagation is push/pull: writing a Source eagerly marks every dependent
// dirty (depth-first), but recomputation only happens lazily, the next
// time a dirty cell is actually read or an Effect is flushed. This keeps
// evaluation order glitch-free without ever sorting the dependency graph.
package reactor
