package helper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/loanengine/entitystore"
)

// GivenUniqueID returns a fresh id for arranging test data.
func GivenUniqueID(t testing.TB) uuid.UUID {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

// GivenStoredAuthor inserts an author and returns its record.
func GivenStoredAuthor(t testing.TB, ctx context.Context, store entitystore.Store) entitystore.AuthorRecord {
	t.Helper()

	author := entitystore.AuthorRecord{
		ID:          GivenUniqueID(t),
		FirstName:   "Vlad",
		LastName:    "Khononov",
		Description: "Writes about software design",
	}

	uowErr := store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		return uow.InsertAuthor(uowCtx, author)
	})
	require.NoError(t, uowErr, "error in arranging test data")

	return author
}

// GivenStoredBook inserts a book with all copies available and returns its record.
func GivenStoredBook(
	t testing.TB,
	ctx context.Context,
	store entitystore.Store,
	authorID uuid.UUID,
	totalCopies int,
) entitystore.BookRecord {

	t.Helper()

	book := entitystore.BookRecord{
		ID:              GivenUniqueID(t),
		Title:           "Learning Domain-Driven Design",
		ISBN:            "978-1-098-10013-1",
		PublishedAt:     time.Date(2021, 10, 1, 0, 0, 0, 0, time.UTC),
		AuthorID:        authorID,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		Version:         1,
	}

	uowErr := store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		return uow.InsertBook(uowCtx, book)
	})
	require.NoError(t, uowErr, "error in arranging test data")

	return book
}

// GivenStoredMember inserts a member and returns its record.
func GivenStoredMember(t testing.TB, ctx context.Context, store entitystore.Store) entitystore.MemberRecord {
	t.Helper()

	member := entitystore.MemberRecord{
		ID:        GivenUniqueID(t),
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.org",
		JoinedAt:  time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
	}

	uowErr := store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		return uow.InsertMember(uowCtx, member)
	})
	require.NoError(t, uowErr, "error in arranging test data")

	return member
}

// GivenStoredLoan inserts a raw loan record. It does NOT touch the book's
// availability - use it to arrange exactly the store state a test needs,
// including inconsistent states.
func GivenStoredLoan(
	t testing.TB,
	ctx context.Context,
	store entitystore.Store,
	bookID uuid.UUID,
	memberID uuid.UUID,
	returnedAt *time.Time,
) entitystore.LoanRecord {

	t.Helper()

	loanedAt := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	loan := entitystore.LoanRecord{
		ID:         GivenUniqueID(t),
		BookID:     bookID,
		MemberID:   memberID,
		LoanedAt:   loanedAt,
		DueAt:      loanedAt.AddDate(0, 0, 21),
		ReturnedAt: returnedAt,
	}

	uowErr := store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		return uow.InsertLoan(uowCtx, loan)
	})
	require.NoError(t, uowErr, "error in arranging test data")

	return loan
}

// OverwriteBookCounters force-sets a book's counters, bypassing the version
// guard semantics by writing with the current version. Used to arrange
// drifted availability.
func OverwriteBookCounters(
	t testing.TB,
	ctx context.Context,
	store entitystore.Store,
	bookID uuid.UUID,
	totalCopies int,
	availableCopies int,
) {

	t.Helper()

	uowErr := store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		book, getErr := uow.GetBook(uowCtx, bookID)
		if getErr != nil {
			return getErr
		}

		book.TotalCopies = totalCopies
		book.AvailableCopies = availableCopies

		return uow.UpdateBook(uowCtx, book)
	})
	require.NoError(t, uowErr, "error in arranging test data")
}

// ReadBook reads a book outside any unit of work, failing the test on error.
func ReadBook(t testing.TB, ctx context.Context, store entitystore.Store, bookID uuid.UUID) entitystore.BookRecord {
	t.Helper()

	book, err := store.GetBook(ctx, bookID)
	require.NoError(t, err, "error reading test data")

	return book
}
