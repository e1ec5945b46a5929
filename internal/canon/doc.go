// Package canon rewrites graphs into a canonical form.
//
// The canonicalizer applies a fixed set of locally confluent rules -
// constant folding, cat flattening, identity elimination, and wire
// forwarding - until no rule fires or the step quota is exhausted.
// Every rewrite is re-checked against inference before it commits, so
// a graph that verifies cleanly going in verifies cleanly coming out.
//
// The caller must hold exclusive access to the graph for the duration
// of a Canonicalize call; rewrites mutate nodes in place.
package canon
