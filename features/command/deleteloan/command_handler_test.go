package deleteloan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/loanengine/core"
	"github.com/openshelf/loanengine/entitystore"
	"github.com/openshelf/loanengine/entitystore/memoryengine"
	"github.com/openshelf/loanengine/features/command/createloan"
	"github.com/openshelf/loanengine/features/command/deleteloan"
	"github.com/openshelf/loanengine/testutil/helper"
)

func Test_DeleteLoan_ActiveLoan_RestoresAvailability(t *testing.T) {
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

	handler := deleteloan.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deleteloan.BuildCommand(loan.ID))

	// assert
	require.NoError(t, err)

	storedBook := helper.ReadBook(t, ctx, store, book.ID)
	assert.Equal(t, 1, storedBook.AvailableCopies, "Deleting an active loan must give the copy back")

	uowErr := store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		_, getLoanErr := uow.GetLoan(uowCtx, loan.ID)
		assert.ErrorIs(t, getLoanErr, entitystore.ErrNotFound)

		return nil
	})
	require.NoError(t, uowErr)
}

func Test_DeleteLoan_ReturnedLoan_LeavesBookUntouched(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	book := helper.GivenStoredBook(t, ctx, store, author.ID, 1)
	member := helper.GivenStoredMember(t, ctx, store)

	returnedAt := time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC)
	loan := helper.GivenStoredLoan(t, ctx, store, book.ID, member.ID, &returnedAt)

	handler := deleteloan.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deleteloan.BuildCommand(loan.ID))

	// assert
	require.NoError(t, err)

	storedBook := helper.ReadBook(t, ctx, store, book.ID)
	assert.Equal(t, 1, storedBook.AvailableCopies)
	assert.Equal(t, uint(1), storedBook.Version, "Book should not have been written at all")
}

func Test_DeleteLoan_Error_WhenLoanNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	handler := deleteloan.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deleteloan.BuildCommand(helper.GivenUniqueID(t)))

	// assert
	assert.ErrorIs(t, err, core.ErrLoanNotFound)
}
