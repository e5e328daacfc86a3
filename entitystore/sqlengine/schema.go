package sqlengine

import (
	"context"
	"fmt"
)

// timestampColumnType returns the column type used for timestamps in the
// configured dialect. SQLite needs a DATETIME declared type so the driver
// scans values back as time.Time.
func (es *EntityStore) timestampColumnType() string {
	if es.dialect == DialectSQLite {
		return "DATETIME"
	}

	return "TIMESTAMPTZ"
}

// EnsureSchema creates the entity tables and indexes if they do not exist.
// It is idempotent and safe to run on every startup.
func (es *EntityStore) EnsureSchema(ctx context.Context) error {
	ts := es.timestampColumnType()

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT ''
		)`, es.tableName(tableAuthors)),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			isbn TEXT NOT NULL,
			published_at %s NOT NULL,
			author_id TEXT NOT NULL,
			total_copies INTEGER NOT NULL,
			available_copies INTEGER NOT NULL,
			version INTEGER NOT NULL DEFAULT 1
		)`, es.tableName(tableBooks), ts),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL,
			joined_at %s NOT NULL
		)`, es.tableName(tableMembers), ts),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			book_id TEXT NOT NULL,
			member_id TEXT NOT NULL,
			loaned_at %s NOT NULL,
			due_at %s NOT NULL,
			returned_at %s
		)`, es.tableName(tableLoans), ts, ts, ts),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_book_id ON %s (book_id)`,
			es.tableName(tableLoans), es.tableName(tableLoans)),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_member_id ON %s (member_id)`,
			es.tableName(tableLoans), es.tableName(tableLoans)),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_author_id ON %s (author_id)`,
			es.tableName(tableBooks), es.tableName(tableBooks)),
	}

	for _, statement := range statements {
		if _, err := es.executeStatement(ctx, es.db, statement); err != nil {
			return err
		}
	}

	return nil
}
