// Package database is the per-workspace entity store engine.
//
// Each workspace owns one SQLite file under the managed data directory.
// The engine provides:
//
//   - InsertGeneric: the single upsert entry point the discovery pipeline
//     uses. Per entity kind it decides whether a discovered fact is new
//     (Inserted), a no-op (Unchanged), a mutation of an existing row
//     (Updated), or blocked because the row is out of scope (Rejected).
//   - Scope/Noscope: bulk scope-flag transitions over a compiled filter.
//   - List/Filter/Delete: typed read and delete paths, generic over kinds.
//   - TTL bookkeeping: expiry records reaped through the same delete path.
//
// # Scope stickiness
//
// An out-of-scope row is never resurrected or mutated by re-discovery; the
// upsert reports Rejected without touching the row. Only an explicit Scope
// call flips it back.
//
// # Database configuration
//
//   - WAL mode for crash-resilient durability
//   - foreign_keys=ON so join rows can only reference existing parents
//   - synchronous=NORMAL and a 5 second busy timeout
//   - single connection: SQLite is the sole serialization point
//
// The resolve-then-insert sequence runs in one transaction per upsert; the
// schema-level UNIQUE constraints on every natural key turn a lost race
// between two writers into a constraint error instead of a duplicate row.
package database
