package sqlengine

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/openshelf/loanengine/entitystore"
	"github.com/openshelf/loanengine/entitystore/sqlengine/internal/adapters"
)

// GetBook reads a single book outside any unit of work.
func (es *EntityStore) GetBook(ctx context.Context, id uuid.UUID) (entitystore.BookRecord, error) {
	return es.getBook(ctx, es.db, id)
}

// ListBookIDs returns the ids of all books, ordered for deterministic audits.
func (es *EntityStore) ListBookIDs(ctx context.Context) ([]uuid.UUID, error) {
	return es.listBookIDs(ctx, es.db)
}

// ExecuteUnitOfWork runs fn inside one database transaction.
// A nil return from fn commits; any error rolls back and is passed through
// unchanged so callers can match it with errors.Is.
func (es *EntityStore) ExecuteUnitOfWork(ctx context.Context, fn entitystore.UnitOfWorkFunc) error {
	tx, beginErr := es.db.Begin(ctx)
	if beginErr != nil {
		es.logError(logMsgBeginFailed, logAttrError, beginErr.Error())
		return errors.Join(entitystore.ErrBeginningUnitOfWorkFailed, beginErr)
	}

	uow := &unitOfWork{es: es, tx: tx}

	if fnErr := fn(ctx, uow); fnErr != nil {
		es.rollback(ctx, tx)
		return fnErr
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		es.logError(logMsgCommitFailed, logAttrError, commitErr.Error())
		es.rollback(ctx, tx)

		return errors.Join(entitystore.ErrCommittingUnitOfWorkFailed, commitErr)
	}

	es.logInfo(logMsgUnitOfWorkDone)

	return nil
}

func (es *EntityStore) rollback(ctx context.Context, tx adapters.DBTx) {
	if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
		es.logWarn(logMsgRollbackFailed, logAttrError, rollbackErr.Error())
	}
}

// unitOfWork exposes the engine's queries bound to one open transaction.
type unitOfWork struct {
	es *EntityStore
	tx adapters.DBTx
}

var _ entitystore.UnitOfWork = (*unitOfWork)(nil)

func (u *unitOfWork) GetBook(ctx context.Context, id uuid.UUID) (entitystore.BookRecord, error) {
	return u.es.getBook(ctx, u.tx, id)
}

func (u *unitOfWork) GetAuthor(ctx context.Context, id uuid.UUID) (entitystore.AuthorRecord, error) {
	return u.es.getAuthor(ctx, u.tx, id)
}

func (u *unitOfWork) GetMember(ctx context.Context, id uuid.UUID) (entitystore.MemberRecord, error) {
	return u.es.getMember(ctx, u.tx, id)
}

func (u *unitOfWork) GetLoan(ctx context.Context, id uuid.UUID) (entitystore.LoanRecord, error) {
	return u.es.getLoan(ctx, u.tx, id)
}

func (u *unitOfWork) GetLoansForMember(ctx context.Context, memberID uuid.UUID) ([]entitystore.LoanRecord, error) {
	return u.es.getLoansForMember(ctx, u.tx, memberID)
}

func (u *unitOfWork) GetActiveLoanCountForBook(ctx context.Context, bookID uuid.UUID) (int, error) {
	return u.es.getActiveLoanCountForBook(ctx, u.tx, bookID)
}

func (u *unitOfWork) CountBooksByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return u.es.countBooksByAuthor(ctx, u.tx, authorID)
}

func (u *unitOfWork) InsertBook(ctx context.Context, book entitystore.BookRecord) error {
	return u.es.insertBook(ctx, u.tx, book)
}

func (u *unitOfWork) UpdateBook(ctx context.Context, book entitystore.BookRecord) error {
	return u.es.updateBook(ctx, u.tx, book)
}

func (u *unitOfWork) RemoveBook(ctx context.Context, id uuid.UUID) error {
	return u.es.removeBook(ctx, u.tx, id)
}

func (u *unitOfWork) InsertLoan(ctx context.Context, loan entitystore.LoanRecord) error {
	return u.es.insertLoan(ctx, u.tx, loan)
}

func (u *unitOfWork) UpdateLoan(ctx context.Context, loan entitystore.LoanRecord) error {
	return u.es.updateLoan(ctx, u.tx, loan)
}

func (u *unitOfWork) RemoveLoan(ctx context.Context, id uuid.UUID) error {
	return u.es.removeLoan(ctx, u.tx, id)
}

func (u *unitOfWork) RemoveLoansForBook(ctx context.Context, bookID uuid.UUID) error {
	return u.es.removeLoansForBook(ctx, u.tx, bookID)
}

func (u *unitOfWork) InsertMember(ctx context.Context, member entitystore.MemberRecord) error {
	return u.es.insertMember(ctx, u.tx, member)
}

func (u *unitOfWork) RemoveMember(ctx context.Context, id uuid.UUID) error {
	return u.es.removeMember(ctx, u.tx, id)
}

func (u *unitOfWork) InsertAuthor(ctx context.Context, author entitystore.AuthorRecord) error {
	return u.es.insertAuthor(ctx, u.tx, author)
}

func (u *unitOfWork) RemoveAuthor(ctx context.Context, id uuid.UUID) error {
	return u.es.removeAuthor(ctx, u.tx, id)
}
