// Package fgd provides the parsed object model for FGD entity-definition
// schemas, plus a parser for the FGD text format.
//
// This package contains the model types and the code that produces them.
// All other internal packages import fgd; fgd imports nothing internal.
// This keeps the model the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Model values are read-only once parsed; the diff engine never
//     mutates them.
//   - Spawnflag values are kept as raw tokens, not integers. Malformed
//     (non-integer) values are a recoverable condition handled by the
//     diff engine, not a parse error.
//   - Editor data payloads (@mapsize, @include, @MaterialExclusion,
//     @AutoVisGroup) are opaque to everything downstream.
package fgd
