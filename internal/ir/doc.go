// Package ir provides the operation-graph data model shared by the
// sigil dialects.
//
// ir sits directly on internal/types and imports nothing else internal.
// Inference, verification, canonicalization and the textual frontends
// all build on the entities defined here.
//
// Key design constraints:
//   - A Value is owned by its defining Node (or is a graph argument);
//     using nodes hold non-owning references. A value's type is fixed at
//     creation and never mutated.
//   - Attributes are a sealed set: int64, string, arbitrary-precision
//     integer, type, and homogeneous lists of those. No floats anywhere.
//   - Diagnostics are structured records with stable string codes; they
//     describe the graph, they never mutate it.
package ir
