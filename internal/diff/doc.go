// Package diff implements the schema differencing engine.
//
// Compare takes two parsed fgd.Schema trees and produces a Report: the
// schema-level added/removed/modified entity sets, per-entity field
// diffs, a weighted backward-porting complexity score per modified
// entity, the backward-porting issue list, and the editor data diff.
//
// The engine is a pure function of its inputs: it never mutates either
// schema, holds no state between calls, and performs no I/O. Matching is
// case-insensitive on names (original casing is preserved in the report)
// and value-keyed for spawnflags. All emitted collections are sorted, so
// the serialized report is byte-identical across runs regardless of the
// input collections' iteration order.
//
// Routine differences are representable outcomes, never errors. The only
// error path is a duplicate identity within one schema (two entities,
// properties, or io signals with the same normalized name), which fails
// fast. Non-integer spawnflag values and ambiguous spawnflag bit
// collisions are reported as warnings and skipped, not raised.
package diff
