package returnloan_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/loanengine/core"
	"github.com/openshelf/loanengine/entitystore/memoryengine"
	"github.com/openshelf/loanengine/features/command/createloan"
	"github.com/openshelf/loanengine/features/command/returnloan"
	"github.com/openshelf/loanengine/testutil/helper"
)

func Test_ReturnLoan_RestoresAvailability(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	book := helper.GivenStoredBook(t, ctx, store, author.ID, 2)
	member := helper.GivenStoredMember(t, ctx, store)

	lendHandler := createloan.NewCommandHandler(store)
	loanedAt := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	loan, lendErr := lendHandler.Handle(ctx,
		createloan.BuildCommand(book.ID, member.ID, loanedAt, loanedAt.AddDate(0, 0, 21)))
	require.NoError(t, lendErr)

	handler := returnloan.NewCommandHandler(store)
	returnedAt := loanedAt.AddDate(0, 0, 7)

	// act
	returned, err := handler.Handle(ctx, returnloan.BuildCommand(loan.ID, returnedAt))

	// assert
	require.NoError(t, err)
	assert.False(t, returned.IsActive())
	require.NotNil(t, returned.ReturnedAt)
	assert.Equal(t, returnedAt, *returned.ReturnedAt)

	storedBook := helper.ReadBook(t, ctx, store, book.ID)
	assert.Equal(t, 2, storedBook.AvailableCopies, "Lend then return should restore availability")
}

func Test_ReturnLoan_Error_WhenLoanNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	handler := returnloan.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, returnloan.BuildCommand(helper.GivenUniqueID(t), time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrLoanNotFound)
}

func Test_ReturnLoan_Error_WhenAlreadyReturned(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	book := helper.GivenStoredBook(t, ctx, store, author.ID, 1)
	member := helper.GivenStoredMember(t, ctx, store)

	lendHandler := createloan.NewCommandHandler(store)
	loan, lendErr := lendHandler.Handle(ctx,
		createloan.BuildCommand(book.ID, member.ID, time.Now(), time.Now().AddDate(0, 0, 21)))
	require.NoError(t, lendErr)

	handler := returnloan.NewCommandHandler(store)
	_, firstErr := handler.Handle(ctx, returnloan.BuildCommand(loan.ID, time.Now()))
	require.NoError(t, firstErr)

	// act
	_, err := handler.Handle(ctx, returnloan.BuildCommand(loan.ID, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrAlreadyReturned)
	assert.ErrorIs(t, err, core.ErrValidation)

	storedBook := helper.ReadBook(t, ctx, store, book.ID)
	assert.Equal(t, 1, storedBook.AvailableCopies, "Double return must not inflate availability")
}

func Test_ReturnLoan_IntegrityFault_WhenBookMissing(t *testing.T) {
	// arrange: a loan whose book row is gone - a state the engine itself
	// should never produce
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	member := helper.GivenStoredMember(t, ctx, store)
	loan := helper.GivenStoredLoan(t, ctx, store, helper.GivenUniqueID(t), member.ID, nil)

	logSpy := helper.NewLogHandlerSpy(false)
	handler := returnloan.NewCommandHandler(store, returnloan.WithLogger(slog.New(logSpy)))

	// act
	_, err := handler.Handle(ctx, returnloan.BuildCommand(loan.ID, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrIntegrityFault)
	assert.True(t,
		logSpy.HasErrorLogWithMessage("data integrity violation: loan references a book that no longer exists"),
		"Integrity fault should be logged as a defect")
}
