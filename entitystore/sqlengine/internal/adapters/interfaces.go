package adapters

import "context"

// DBExecutor defines the query/exec surface shared by a plain connection
// pool and an open transaction, so query code can run against either.
type DBExecutor interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBAdapter defines the interface for database operations needed by the entity store.
type DBAdapter interface {
	DBExecutor
	Begin(ctx context.Context) (DBTx, error)
}

// DBTx defines one open database transaction.
type DBTx interface {
	DBExecutor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
