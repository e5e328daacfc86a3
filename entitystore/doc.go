// Package entitystore defines the persistence contract of the engine:
// the record types stored per entity, the Store and UnitOfWork interfaces
// the feature handlers program against, and the sentinel errors every
// engine must return.
//
// Two engines implement the contract: sqlengine (Postgres or SQLite behind
// goqu-built SQL) and memoryengine (mutex-guarded maps, used in tests).
//
// Concurrency model: BookRecord carries a Version. UpdateBook succeeds only
// when the stored version still matches the one that was read, and returns
// ErrConcurrencyConflict otherwise. Callers retry the whole unit of work;
// partial retries are never safe.
package entitystore
