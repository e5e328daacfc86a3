// Package sqlengine implements the entitystore contract on a relational
// database. SQL is built with goqu and executed through a small database
// adapter abstraction, so the same engine runs on a pgx pool, a plain
// sql.DB (Postgres via lib/pq, or SQLite via mattn/go-sqlite3), or sqlx.
//
// Units of work map to database transactions. Book updates are guarded by
// a version column: zero rows affected means another transaction won the
// race and the caller receives entitystore.ErrConcurrencyConflict.
package sqlengine
