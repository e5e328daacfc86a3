package entitystore

import (
	"context"

	"github.com/google/uuid"
)

// UnitOfWork is the read/write surface available inside one atomic unit of
// work. All calls see the unit's own uncommitted writes; nothing becomes
// visible to other units before the surrounding ExecuteUnitOfWork commits.
type UnitOfWork interface {
	GetBook(ctx context.Context, id uuid.UUID) (BookRecord, error)
	GetAuthor(ctx context.Context, id uuid.UUID) (AuthorRecord, error)
	GetMember(ctx context.Context, id uuid.UUID) (MemberRecord, error)
	GetLoan(ctx context.Context, id uuid.UUID) (LoanRecord, error)
	GetLoansForMember(ctx context.Context, memberID uuid.UUID) ([]LoanRecord, error)
	GetActiveLoanCountForBook(ctx context.Context, bookID uuid.UUID) (int, error)
	CountBooksByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)

	InsertBook(ctx context.Context, book BookRecord) error
	// UpdateBook persists the record if the stored version still equals
	// book.Version, bumping the version by one. Returns ErrConcurrencyConflict
	// when another unit of work got there first.
	UpdateBook(ctx context.Context, book BookRecord) error
	RemoveBook(ctx context.Context, id uuid.UUID) error

	InsertLoan(ctx context.Context, loan LoanRecord) error
	UpdateLoan(ctx context.Context, loan LoanRecord) error
	RemoveLoan(ctx context.Context, id uuid.UUID) error
	RemoveLoansForBook(ctx context.Context, bookID uuid.UUID) error

	InsertMember(ctx context.Context, member MemberRecord) error
	RemoveMember(ctx context.Context, id uuid.UUID) error

	InsertAuthor(ctx context.Context, author AuthorRecord) error
	RemoveAuthor(ctx context.Context, id uuid.UUID) error
}

// UnitOfWorkFunc is the body of one atomic unit of work.
type UnitOfWorkFunc func(ctx context.Context, uow UnitOfWork) error

// Store is the persistence collaborator the feature handlers depend on.
//
// ExecuteUnitOfWork runs fn inside one transaction: if fn returns nil the
// unit commits, otherwise it rolls back and the error is passed through
// unchanged. Reads outside a unit of work are auto-committed single queries.
type Store interface {
	GetBook(ctx context.Context, id uuid.UUID) (BookRecord, error)
	ListBookIDs(ctx context.Context) ([]uuid.UUID, error)
	ExecuteUnitOfWork(ctx context.Context, fn UnitOfWorkFunc) error
}
