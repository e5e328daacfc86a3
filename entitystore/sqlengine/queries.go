package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/openshelf/loanengine/entitystore"
	"github.com/openshelf/loanengine/entitystore/sqlengine/internal/adapters"
)

const (
	colID              = "id"
	colTitle           = "title"
	colISBN            = "isbn"
	colPublishedAt     = "published_at"
	colAuthorID        = "author_id"
	colTotalCopies     = "total_copies"
	colAvailableCopies = "available_copies"
	colVersion         = "version"
	colBookID          = "book_id"
	colMemberID        = "member_id"
	colLoanedAt        = "loaned_at"
	colDueAt           = "due_at"
	colReturnedAt      = "returned_at"
	colFirstName       = "first_name"
	colLastName        = "last_name"
	colDescription     = "description"
	colEmail           = "email"
	colJoinedAt        = "joined_at"
)

// timeStorageLayout renders timestamps with an explicit offset so the same
// literal is understood by Postgres (timestamptz) and SQLite (DATETIME).
const timeStorageLayout = "2006-01-02 15:04:05.999999999-07:00"

func storageTime(t time.Time) string {
	return t.UTC().Format(timeStorageLayout)
}

// executeQuery runs a select and returns rows with debug timing.
func (es *EntityStore) executeQuery(ctx context.Context, exec adapters.DBExecutor, sqlQuery string) (adapters.DBRows, error) {
	start := time.Now()
	rows, queryErr := exec.Query(ctx, sqlQuery)
	es.logDebug(logMsgSQLExecuted, logAttrDurationMS, durationToMilliseconds(time.Since(start)), logAttrQuery, sqlQuery)

	if queryErr != nil {
		es.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, errors.Join(entitystore.ErrQueryingRecordsFailed, queryErr)
	}

	return rows, nil
}

// executeStatement runs an insert/update/delete and returns the affected row count.
func (es *EntityStore) executeStatement(ctx context.Context, exec adapters.DBExecutor, sqlQuery string) (int64, error) {
	start := time.Now()
	result, execErr := exec.Exec(ctx, sqlQuery)
	es.logDebug(logMsgSQLExecuted, logAttrDurationMS, durationToMilliseconds(time.Since(start)), logAttrQuery, sqlQuery)

	if execErr != nil {
		es.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return 0, errors.Join(entitystore.ErrExecutingStatementFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		es.logError(logMsgRowsAffectedErr, logAttrError, rowsAffectedErr.Error())
		return 0, errors.Join(entitystore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// closeRows safely closes database rows and logs any errors.
func (es *EntityStore) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		es.logWarn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (es *EntityStore) scanFailed(err error) error {
	es.logError(logMsgScanRowFailed, logAttrError, err.Error())
	return errors.Join(entitystore.ErrScanningRowFailed, err)
}

func durationToMilliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

/* ---------- books ---------- */

func (es *EntityStore) getBook(ctx context.Context, exec adapters.DBExecutor, id uuid.UUID) (entitystore.BookRecord, error) {
	var empty entitystore.BookRecord

	sqlQuery, _, toSQLErr := es.builder().
		From(es.tableName(tableBooks)).
		Select(colID, colTitle, colISBN, colPublishedAt, colAuthorID, colTotalCopies, colAvailableCopies, colVersion).
		Where(goqu.Ex{colID: id.String()}).
		ToSQL()
	if toSQLErr != nil {
		return empty, es.buildFailed(toSQLErr)
	}

	rows, queryErr := es.executeQuery(ctx, exec, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer es.closeRows(rows)

	if !rows.Next() {
		return empty, entitystore.ErrNotFound
	}

	return es.scanBook(rows)
}

func (es *EntityStore) scanBook(rows adapters.DBRows) (entitystore.BookRecord, error) {
	var empty entitystore.BookRecord
	var idRaw, authorIDRaw string
	var record entitystore.BookRecord

	scanErr := rows.Scan(
		&idRaw,
		&record.Title,
		&record.ISBN,
		&record.PublishedAt,
		&authorIDRaw,
		&record.TotalCopies,
		&record.AvailableCopies,
		&record.Version,
	)
	if scanErr != nil {
		return empty, es.scanFailed(scanErr)
	}

	id, idErr := uuid.Parse(idRaw)
	if idErr != nil {
		return empty, es.scanFailed(idErr)
	}

	authorID, authorIDErr := uuid.Parse(authorIDRaw)
	if authorIDErr != nil {
		return empty, es.scanFailed(authorIDErr)
	}

	record.ID = id
	record.AuthorID = authorID
	record.PublishedAt = record.PublishedAt.UTC()

	return record, nil
}

func (es *EntityStore) insertBook(ctx context.Context, exec adapters.DBExecutor, book entitystore.BookRecord) error {
	sqlQuery, _, toSQLErr := es.builder().
		Insert(es.tableName(tableBooks)).
		Rows(goqu.Record{
			colID:              book.ID.String(),
			colTitle:           book.Title,
			colISBN:            book.ISBN,
			colPublishedAt:     storageTime(book.PublishedAt),
			colAuthorID:        book.AuthorID.String(),
			colTotalCopies:     book.TotalCopies,
			colAvailableCopies: book.AvailableCopies,
			colVersion:         book.Version,
		}).
		ToSQL()
	if toSQLErr != nil {
		return es.buildFailed(toSQLErr)
	}

	_, execErr := es.executeStatement(ctx, exec, sqlQuery)

	return execErr
}

// updateBook is version-guarded: it only matches the row if the stored
// version still equals book.Version and bumps the version by one. Zero rows
// affected means another unit of work won the race.
func (es *EntityStore) updateBook(ctx context.Context, exec adapters.DBExecutor, book entitystore.BookRecord) error {
	sqlQuery, _, toSQLErr := es.builder().
		Update(es.tableName(tableBooks)).
		Set(goqu.Record{
			colTitle:           book.Title,
			colISBN:            book.ISBN,
			colPublishedAt:     storageTime(book.PublishedAt),
			colAuthorID:        book.AuthorID.String(),
			colTotalCopies:     book.TotalCopies,
			colAvailableCopies: book.AvailableCopies,
			colVersion:         book.Version + 1,
		}).
		Where(goqu.Ex{
			colID:      book.ID.String(),
			colVersion: book.Version,
		}).
		ToSQL()
	if toSQLErr != nil {
		return es.buildFailed(toSQLErr)
	}

	rowsAffected, execErr := es.executeStatement(ctx, exec, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		es.logInfo(logMsgConcurrencyHit,
			logAttrBookID, book.ID.String(),
			logAttrExpectedVersion, book.Version)

		return entitystore.ErrConcurrencyConflict
	}

	return nil
}

func (es *EntityStore) removeBook(ctx context.Context, exec adapters.DBExecutor, id uuid.UUID) error {
	return es.removeByID(ctx, exec, es.tableName(tableBooks), id)
}

func (es *EntityStore) listBookIDs(ctx context.Context, exec adapters.DBExecutor) ([]uuid.UUID, error) {
	sqlQuery, _, toSQLErr := es.builder().
		From(es.tableName(tableBooks)).
		Select(colID).
		Order(goqu.I(colID).Asc()).
		ToSQL()
	if toSQLErr != nil {
		return nil, es.buildFailed(toSQLErr)
	}

	rows, queryErr := es.executeQuery(ctx, exec, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer es.closeRows(rows)

	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		var idRaw string
		if scanErr := rows.Scan(&idRaw); scanErr != nil {
			return nil, es.scanFailed(scanErr)
		}

		id, idErr := uuid.Parse(idRaw)
		if idErr != nil {
			return nil, es.scanFailed(idErr)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

/* ---------- loans ---------- */

func (es *EntityStore) getLoan(ctx context.Context, exec adapters.DBExecutor, id uuid.UUID) (entitystore.LoanRecord, error) {
	var empty entitystore.LoanRecord

	sqlQuery, _, toSQLErr := es.loanSelect().
		Where(goqu.Ex{colID: id.String()}).
		ToSQL()
	if toSQLErr != nil {
		return empty, es.buildFailed(toSQLErr)
	}

	rows, queryErr := es.executeQuery(ctx, exec, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer es.closeRows(rows)

	if !rows.Next() {
		return empty, entitystore.ErrNotFound
	}

	return es.scanLoan(rows)
}

func (es *EntityStore) getLoansForMember(ctx context.Context, exec adapters.DBExecutor, memberID uuid.UUID) ([]entitystore.LoanRecord, error) {
	sqlQuery, _, toSQLErr := es.loanSelect().
		Where(goqu.Ex{colMemberID: memberID.String()}).
		Order(goqu.I(colLoanedAt).Asc()).
		ToSQL()
	if toSQLErr != nil {
		return nil, es.buildFailed(toSQLErr)
	}

	rows, queryErr := es.executeQuery(ctx, exec, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer es.closeRows(rows)

	loans := make([]entitystore.LoanRecord, 0)

	for rows.Next() {
		loan, scanErr := es.scanLoan(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		loans = append(loans, loan)
	}

	return loans, nil
}

func (es *EntityStore) loanSelect() *goqu.SelectDataset {
	return es.builder().
		From(es.tableName(tableLoans)).
		Select(colID, colBookID, colMemberID, colLoanedAt, colDueAt, colReturnedAt)
}

func (es *EntityStore) scanLoan(rows adapters.DBRows) (entitystore.LoanRecord, error) {
	var empty entitystore.LoanRecord
	var idRaw, bookIDRaw, memberIDRaw string
	var returnedAt sql.NullTime
	var record entitystore.LoanRecord

	scanErr := rows.Scan(&idRaw, &bookIDRaw, &memberIDRaw, &record.LoanedAt, &record.DueAt, &returnedAt)
	if scanErr != nil {
		return empty, es.scanFailed(scanErr)
	}

	id, idErr := uuid.Parse(idRaw)
	if idErr != nil {
		return empty, es.scanFailed(idErr)
	}

	bookID, bookIDErr := uuid.Parse(bookIDRaw)
	if bookIDErr != nil {
		return empty, es.scanFailed(bookIDErr)
	}

	memberID, memberIDErr := uuid.Parse(memberIDRaw)
	if memberIDErr != nil {
		return empty, es.scanFailed(memberIDErr)
	}

	record.ID = id
	record.BookID = bookID
	record.MemberID = memberID
	record.LoanedAt = record.LoanedAt.UTC()
	record.DueAt = record.DueAt.UTC()

	if returnedAt.Valid {
		utc := returnedAt.Time.UTC()
		record.ReturnedAt = &utc
	}

	return record, nil
}

func (es *EntityStore) getActiveLoanCountForBook(ctx context.Context, exec adapters.DBExecutor, bookID uuid.UUID) (int, error) {
	sqlQuery, _, toSQLErr := es.builder().
		From(es.tableName(tableLoans)).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.Ex{
			colBookID:     bookID.String(),
			colReturnedAt: nil,
		}).
		ToSQL()
	if toSQLErr != nil {
		return 0, es.buildFailed(toSQLErr)
	}

	return es.queryCount(ctx, exec, sqlQuery)
}

func (es *EntityStore) countBooksByAuthor(ctx context.Context, exec adapters.DBExecutor, authorID uuid.UUID) (int, error) {
	sqlQuery, _, toSQLErr := es.builder().
		From(es.tableName(tableBooks)).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.Ex{colAuthorID: authorID.String()}).
		ToSQL()
	if toSQLErr != nil {
		return 0, es.buildFailed(toSQLErr)
	}

	return es.queryCount(ctx, exec, sqlQuery)
}

func (es *EntityStore) queryCount(ctx context.Context, exec adapters.DBExecutor, sqlQuery string) (int, error) {
	rows, queryErr := es.executeQuery(ctx, exec, sqlQuery)
	if queryErr != nil {
		return 0, queryErr
	}
	defer es.closeRows(rows)

	var count int

	if rows.Next() {
		if scanErr := rows.Scan(&count); scanErr != nil {
			return 0, es.scanFailed(scanErr)
		}
	}

	return count, nil
}

func (es *EntityStore) insertLoan(ctx context.Context, exec adapters.DBExecutor, loan entitystore.LoanRecord) error {
	record := goqu.Record{
		colID:         loan.ID.String(),
		colBookID:     loan.BookID.String(),
		colMemberID:   loan.MemberID.String(),
		colLoanedAt:   storageTime(loan.LoanedAt),
		colDueAt:      storageTime(loan.DueAt),
		colReturnedAt: nil,
	}
	if loan.ReturnedAt != nil {
		record[colReturnedAt] = storageTime(*loan.ReturnedAt)
	}

	sqlQuery, _, toSQLErr := es.builder().
		Insert(es.tableName(tableLoans)).
		Rows(record).
		ToSQL()
	if toSQLErr != nil {
		return es.buildFailed(toSQLErr)
	}

	_, execErr := es.executeStatement(ctx, exec, sqlQuery)

	return execErr
}

func (es *EntityStore) updateLoan(ctx context.Context, exec adapters.DBExecutor, loan entitystore.LoanRecord) error {
	record := goqu.Record{
		colBookID:     loan.BookID.String(),
		colMemberID:   loan.MemberID.String(),
		colLoanedAt:   storageTime(loan.LoanedAt),
		colDueAt:      storageTime(loan.DueAt),
		colReturnedAt: nil,
	}
	if loan.ReturnedAt != nil {
		record[colReturnedAt] = storageTime(*loan.ReturnedAt)
	}

	sqlQuery, _, toSQLErr := es.builder().
		Update(es.tableName(tableLoans)).
		Set(record).
		Where(goqu.Ex{colID: loan.ID.String()}).
		ToSQL()
	if toSQLErr != nil {
		return es.buildFailed(toSQLErr)
	}

	rowsAffected, execErr := es.executeStatement(ctx, exec, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return entitystore.ErrNotFound
	}

	return nil
}

func (es *EntityStore) removeLoan(ctx context.Context, exec adapters.DBExecutor, id uuid.UUID) error {
	return es.removeByID(ctx, exec, es.tableName(tableLoans), id)
}

func (es *EntityStore) removeLoansForBook(ctx context.Context, exec adapters.DBExecutor, bookID uuid.UUID) error {
	sqlQuery, _, toSQLErr := es.builder().
		Delete(es.tableName(tableLoans)).
		Where(goqu.Ex{colBookID: bookID.String()}).
		ToSQL()
	if toSQLErr != nil {
		return es.buildFailed(toSQLErr)
	}

	_, execErr := es.executeStatement(ctx, exec, sqlQuery)

	return execErr
}

/* ---------- members ---------- */

func (es *EntityStore) getMember(ctx context.Context, exec adapters.DBExecutor, id uuid.UUID) (entitystore.MemberRecord, error) {
	var empty entitystore.MemberRecord

	sqlQuery, _, toSQLErr := es.builder().
		From(es.tableName(tableMembers)).
		Select(colID, colFirstName, colLastName, colEmail, colJoinedAt).
		Where(goqu.Ex{colID: id.String()}).
		ToSQL()
	if toSQLErr != nil {
		return empty, es.buildFailed(toSQLErr)
	}

	rows, queryErr := es.executeQuery(ctx, exec, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer es.closeRows(rows)

	if !rows.Next() {
		return empty, entitystore.ErrNotFound
	}

	var idRaw string
	var record entitystore.MemberRecord

	scanErr := rows.Scan(&idRaw, &record.FirstName, &record.LastName, &record.Email, &record.JoinedAt)
	if scanErr != nil {
		return empty, es.scanFailed(scanErr)
	}

	memberID, idErr := uuid.Parse(idRaw)
	if idErr != nil {
		return empty, es.scanFailed(idErr)
	}

	record.ID = memberID
	record.JoinedAt = record.JoinedAt.UTC()

	return record, nil
}

func (es *EntityStore) insertMember(ctx context.Context, exec adapters.DBExecutor, member entitystore.MemberRecord) error {
	sqlQuery, _, toSQLErr := es.builder().
		Insert(es.tableName(tableMembers)).
		Rows(goqu.Record{
			colID:        member.ID.String(),
			colFirstName: member.FirstName,
			colLastName:  member.LastName,
			colEmail:     member.Email,
			colJoinedAt:  storageTime(member.JoinedAt),
		}).
		ToSQL()
	if toSQLErr != nil {
		return es.buildFailed(toSQLErr)
	}

	_, execErr := es.executeStatement(ctx, exec, sqlQuery)

	return execErr
}

func (es *EntityStore) removeMember(ctx context.Context, exec adapters.DBExecutor, id uuid.UUID) error {
	return es.removeByID(ctx, exec, es.tableName(tableMembers), id)
}

/* ---------- authors ---------- */

func (es *EntityStore) getAuthor(ctx context.Context, exec adapters.DBExecutor, id uuid.UUID) (entitystore.AuthorRecord, error) {
	var empty entitystore.AuthorRecord

	sqlQuery, _, toSQLErr := es.builder().
		From(es.tableName(tableAuthors)).
		Select(colID, colFirstName, colLastName, colDescription).
		Where(goqu.Ex{colID: id.String()}).
		ToSQL()
	if toSQLErr != nil {
		return empty, es.buildFailed(toSQLErr)
	}

	rows, queryErr := es.executeQuery(ctx, exec, sqlQuery)
	if queryErr != nil {
		return empty, queryErr
	}
	defer es.closeRows(rows)

	if !rows.Next() {
		return empty, entitystore.ErrNotFound
	}

	var idRaw string
	var record entitystore.AuthorRecord

	scanErr := rows.Scan(&idRaw, &record.FirstName, &record.LastName, &record.Description)
	if scanErr != nil {
		return empty, es.scanFailed(scanErr)
	}

	authorID, idErr := uuid.Parse(idRaw)
	if idErr != nil {
		return empty, es.scanFailed(idErr)
	}

	record.ID = authorID

	return record, nil
}

func (es *EntityStore) insertAuthor(ctx context.Context, exec adapters.DBExecutor, author entitystore.AuthorRecord) error {
	sqlQuery, _, toSQLErr := es.builder().
		Insert(es.tableName(tableAuthors)).
		Rows(goqu.Record{
			colID:          author.ID.String(),
			colFirstName:   author.FirstName,
			colLastName:    author.LastName,
			colDescription: author.Description,
		}).
		ToSQL()
	if toSQLErr != nil {
		return es.buildFailed(toSQLErr)
	}

	_, execErr := es.executeStatement(ctx, exec, sqlQuery)

	return execErr
}

func (es *EntityStore) removeAuthor(ctx context.Context, exec adapters.DBExecutor, id uuid.UUID) error {
	return es.removeByID(ctx, exec, es.tableName(tableAuthors), id)
}

/* ---------- shared ---------- */

func (es *EntityStore) removeByID(ctx context.Context, exec adapters.DBExecutor, table string, id uuid.UUID) error {
	sqlQuery, _, toSQLErr := es.builder().
		Delete(table).
		Where(goqu.Ex{colID: id.String()}).
		ToSQL()
	if toSQLErr != nil {
		return es.buildFailed(toSQLErr)
	}

	rowsAffected, execErr := es.executeStatement(ctx, exec, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		return entitystore.ErrNotFound
	}

	return nil
}
