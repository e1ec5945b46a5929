// Package types defines the value-type algebra shared by all sigil
// dialects.
//
// This package contains the type lattice and its derived predicates only.
// All other internal packages import types; types imports nothing
// internal. This keeps the algebra the foundational layer with no
// circular dependencies.
//
// Key design constraints:
//   - Types are immutable value objects with structural equality.
//     Two independently constructed UInt{8} values are the same type;
//     identity comparison is never used.
//   - An integer type's width is either a known non-negative int or
//     WidthUnknown (-1). Zero is a legal width denoting an elided signal
//     and is distinct from unknown.
//   - Types never reference the operation graph, so there are no
//     ownership cycles to manage.
package types
