// Package store provides SQLite-backed storage for comparison history.
//
// Each saved run records the labels of the two compared schema versions,
// summary counts, and the full report as canonical JSON. Listing is
// ordered by created_at then id for deterministic output.
//
// Database configuration follows the usual SQLite single-writer setup:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
