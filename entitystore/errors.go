package entitystore

import "errors"

var (
	// ErrNilDatabaseConnection is returned by engine constructors when no database handle is supplied.
	ErrNilDatabaseConnection = errors.New("nil database connection supplied")

	// ErrEmptyTablePrefix is returned when an empty table prefix is supplied to WithTablePrefix.
	ErrEmptyTablePrefix = errors.New("empty table prefix supplied")

	// ErrUnknownDialect is returned when WithDialect receives a dialect the engine does not support.
	ErrUnknownDialect = errors.New("unknown sql dialect supplied")

	// ErrNotFound is returned by lookups when no row exists for the given id.
	ErrNotFound = errors.New("record not found")

	// ErrConcurrencyConflict is returned by version-guarded updates when no rows
	// were affected because another unit of work changed the record first.
	ErrConcurrencyConflict = errors.New("concurrency conflict, no rows were affected")
)

// Infrastructure failures, joined with the driver error by the engines.
var (
	ErrBuildingQueryFailed        = errors.New("building sql query failed")
	ErrQueryingRecordsFailed      = errors.New("querying records failed")
	ErrScanningRowFailed          = errors.New("scanning database row failed")
	ErrExecutingStatementFailed   = errors.New("executing sql statement failed")
	ErrGettingRowsAffectedFailed  = errors.New("getting rows affected count failed")
	ErrBeginningUnitOfWorkFailed  = errors.New("beginning unit of work failed")
	ErrCommittingUnitOfWorkFailed = errors.New("committing unit of work failed")
)
