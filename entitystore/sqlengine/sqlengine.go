package sqlengine

import (
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/openshelf/loanengine/entitystore"
	"github.com/openshelf/loanengine/entitystore/sqlengine/internal/adapters"
)

// Supported SQL dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

const (
	tableAuthors = "authors"
	tableBooks   = "books"
	tableMembers = "members"
	tableLoans   = "loans"

	logMsgBuildQueryFailed  = "failed to build sql query"
	logMsgDBQueryFailed     = "database query execution failed"
	logMsgDBExecFailed      = "database statement execution failed"
	logMsgCloseRowsFailed   = "failed to close database rows"
	logMsgScanRowFailed     = "failed to scan database row"
	logMsgRowsAffectedErr   = "failed to get rows affected count"
	logMsgConcurrencyHit    = "concurrency conflict detected"
	logMsgBeginFailed       = "failed to begin unit of work"
	logMsgCommitFailed      = "failed to commit unit of work"
	logMsgRollbackFailed    = "failed to roll back unit of work"
	logMsgUnitOfWorkDone    = "unit of work committed"
	logMsgSQLExecuted       = "executed sql"
	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrBookID           = "book_id"
	logAttrExpectedVersion  = "expected_version"
	logAttrDurationMS       = "duration_ms"
)

// Logger interface for SQL query logging, operational metrics, warnings, and
// error reporting. *slog.Logger satisfies it directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// EntityStore implements entitystore.Store on a relational database.
type EntityStore struct {
	db          adapters.DBAdapter
	dialect     string
	tablePrefix string
	logger      Logger
}

// compile-time interface check
var _ entitystore.Store = (*EntityStore)(nil)

// Option defines a functional option for configuring EntityStore.
type Option func(*EntityStore) error

// WithTablePrefix prefixes all table names, e.g. "library_" -> "library_books".
func WithTablePrefix(prefix string) Option {
	return func(es *EntityStore) error {
		if prefix == "" {
			return entitystore.ErrEmptyTablePrefix
		}

		es.tablePrefix = prefix

		return nil
	}
}

// WithDialect selects the SQL dialect, DialectPostgres (default) or DialectSQLite.
func WithDialect(dialect string) Option {
	return func(es *EntityStore) error {
		if dialect != DialectPostgres && dialect != DialectSQLite {
			return entitystore.ErrUnknownDialect
		}

		es.dialect = dialect

		return nil
	}
}

// WithLogger sets the logger for the EntityStore.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: committed units of work, concurrency conflicts (production-safe)
// Warn level: non-critical issues like cleanup failures
// Error level: critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(es *EntityStore) error {
		es.logger = logger
		return nil
	}
}

// NewEntityStoreFromPGXPool creates a new EntityStore using a pgx pool with optional configuration.
func NewEntityStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*EntityStore, error) {
	if db == nil {
		return nil, entitystore.ErrNilDatabaseConnection
	}

	return newEntityStore(adapters.NewPGXAdapter(db), options...)
}

// NewEntityStoreFromSQLDB creates a new EntityStore using a sql.DB with optional configuration.
// Combine with WithDialect(DialectSQLite) to run on SQLite.
func NewEntityStoreFromSQLDB(db *sql.DB, options ...Option) (*EntityStore, error) {
	if db == nil {
		return nil, entitystore.ErrNilDatabaseConnection
	}

	return newEntityStore(adapters.NewSQLAdapter(db), options...)
}

// NewEntityStoreFromSQLX creates a new EntityStore using a sqlx.DB with optional configuration.
func NewEntityStoreFromSQLX(db *sqlx.DB, options ...Option) (*EntityStore, error) {
	if db == nil {
		return nil, entitystore.ErrNilDatabaseConnection
	}

	return newEntityStore(adapters.NewSQLXAdapter(db), options...)
}

func newEntityStore(db adapters.DBAdapter, options ...Option) (*EntityStore, error) {
	es := &EntityStore{
		db:      db,
		dialect: DialectPostgres,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

func (es *EntityStore) builder() goqu.DialectWrapper {
	return goqu.Dialect(es.dialect)
}

func (es *EntityStore) tableName(base string) string {
	return es.tablePrefix + base
}

// logDebug logs SQL statements at debug level if the logger is configured.
func (es *EntityStore) logDebug(msg string, args ...any) {
	if es.logger != nil {
		es.logger.Debug(msg, args...)
	}
}

// logInfo logs operational information at info level if the logger is configured.
func (es *EntityStore) logInfo(msg string, args ...any) {
	if es.logger != nil {
		es.logger.Info(msg, args...)
	}
}

// logWarn logs non-critical issues at warn level if the logger is configured.
func (es *EntityStore) logWarn(msg string, args ...any) {
	if es.logger != nil {
		es.logger.Warn(msg, args...)
	}
}

// logError logs critical failures at error level if the logger is configured.
func (es *EntityStore) logError(msg string, args ...any) {
	if es.logger != nil {
		es.logger.Error(msg, args...)
	}
}

// buildFailed wraps a query-building failure and logs it.
func (es *EntityStore) buildFailed(err error) error {
	es.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
	return errors.Join(entitystore.ErrBuildingQueryFailed, err)
}
