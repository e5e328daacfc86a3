package deletebook_test

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
	"github.com/openshelf/loanengine/features/command/deletebook"
	"github.com/openshelf/loanengine/testutil/helper"
)

func Test_DeleteBook_RemovesBookAndLoanHistory(t *testing.T) {
	// arrange: one returned loan in the book's history
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	book := helper.GivenStoredBook(t, ctx, store, author.ID, 1)
	member := helper.GivenStoredMember(t, ctx, store)

	returnedAt := time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC)
	loan := helper.GivenStoredLoan(t, ctx, store, book.ID, member.ID, &returnedAt)

	handler := deletebook.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deletebook.BuildCommand(book.ID))

	// assert
	require.NoError(t, err)

	_, getBookErr := store.GetBook(ctx, book.ID)
	assert.ErrorIs(t, getBookErr, entitystore.ErrNotFound)

	uowErr := store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		_, getLoanErr := uow.GetLoan(uowCtx, loan.ID)
		assert.ErrorIs(t, getLoanErr, entitystore.ErrNotFound, "Loan history goes with the book")

		return nil
	})
	require.NoError(t, uowErr)
}

func Test_DeleteBook_Error_WhenBookHasActiveLoans(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	book := helper.GivenStoredBook(t, ctx, store, author.ID, 1)
	member := helper.GivenStoredMember(t, ctx, store)

	lendHandler := createloan.NewCommandHandler(store)
	_, lendErr := lendHandler.Handle(ctx,
		createloan.BuildCommand(book.ID, member.ID, time.Now(), time.Now().AddDate(0, 0, 21)))
	require.NoError(t, lendErr)

	handler := deletebook.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deletebook.BuildCommand(book.ID))

	// assert
	assert.ErrorIs(t, err, core.ErrBookHasActiveLoans)
	assert.ErrorIs(t, err, core.ErrValidation)

	_, getBookErr := store.GetBook(ctx, book.ID)
	assert.NoError(t, getBookErr, "Rejected deletion must leave the book in place")
}

func Test_DeleteBook_Error_WhenBookNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	handler := deletebook.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deletebook.BuildCommand(helper.GivenUniqueID(t)))

	// assert
	assert.ErrorIs(t, err, core.ErrBookNotFound)
}
