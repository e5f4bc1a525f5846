// Package merge copies members between objects.
//
// Two families of merges are provided:
//
//   - Deep recursively merges sources into a destination, dispatching on the
//     kind of every value:
//     1. sequences are rebuilt element by element into a fresh []any
//     2. mappings are merged key by key into the destination's existing
//        mapping, which accumulates across calls
//     3. everything else (scalars, functions, dates, patterns, opaque values)
//        is assigned by reference, last writer wins
//   - Shallow copies top-level members only, resolving collisions with an
//     explicit options.PolicyEnum. Extend, Defaults and Combine are the
//     named shortcuts used by the composition engine.
//
// All functions mutate and return their destination. Sources are read in
// call order and, within a source, in insertion order; nil sources are
// skipped.
package merge
