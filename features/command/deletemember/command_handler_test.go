package deletemember_test

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
	"github.com/openshelf/loanengine/features/command/deletemember"
	"github.com/openshelf/loanengine/testutil/helper"
)

func Test_DeleteMember_ForceReturnsActiveLoans(t *testing.T) {
	// arrange: the member holds the only copy
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	book := helper.GivenStoredBook(t, ctx, store, author.ID, 1)
	member := helper.GivenStoredMember(t, ctx, store)

	lendHandler := createloan.NewCommandHandler(store)
	loan, lendErr := lendHandler.Handle(ctx,
		createloan.BuildCommand(book.ID, member.ID, time.Now(), time.Now().AddDate(0, 0, 21)))
	require.NoError(t, lendErr)
	require.Equal(t, 0, helper.ReadBook(t, ctx, store, book.ID).AvailableCopies)

	handler := deletemember.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deletemember.BuildCommand(member.ID))

	// assert
	require.NoError(t, err)

	storedBook := helper.ReadBook(t, ctx, store, book.ID)
	assert.Equal(t, 1, storedBook.AvailableCopies, "Force-return should restore the copy")

	uowErr := store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		_, getLoanErr := uow.GetLoan(uowCtx, loan.ID)
		assert.ErrorIs(t, getLoanErr, entitystore.ErrNotFound, "Loan history goes with the member")

		_, getMemberErr := uow.GetMember(uowCtx, member.ID)
		assert.ErrorIs(t, getMemberErr, entitystore.ErrNotFound)

		return nil
	})
	require.NoError(t, uowErr)
}

func Test_DeleteMember_RemovesReturnedLoansWithoutTouchingBooks(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	book := helper.GivenStoredBook(t, ctx, store, author.ID, 2)
	member := helper.GivenStoredMember(t, ctx, store)

	returnedAt := time.Date(2025, 6, 10, 16, 0, 0, 0, time.UTC)
	helper.GivenStoredLoan(t, ctx, store, book.ID, member.ID, &returnedAt)

	handler := deletemember.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deletemember.BuildCommand(member.ID))

	// assert
	require.NoError(t, err)

	storedBook := helper.ReadBook(t, ctx, store, book.ID)
	assert.Equal(t, 2, storedBook.AvailableCopies, "Returned loans must not credit the book again")
	assert.Equal(t, uint(1), storedBook.Version, "Book should not have been written at all")
}

func Test_DeleteMember_Error_WhenMemberNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	handler := deletemember.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deletemember.BuildCommand(helper.GivenUniqueID(t)))

	// assert
	assert.ErrorIs(t, err, core.ErrMemberNotFound)
}

func Test_DeleteMember_IntegrityFault_WhenActiveLoanBookMissing(t *testing.T) {
	// arrange: an active loan pointing at a missing book
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	member := helper.GivenStoredMember(t, ctx, store)
	helper.GivenStoredLoan(t, ctx, store, helper.GivenUniqueID(t), member.ID, nil)

	handler := deletemember.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deletemember.BuildCommand(member.ID))

	// assert
	assert.ErrorIs(t, err, core.ErrIntegrityFault)

	uowErr := store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		_, getMemberErr := uow.GetMember(uowCtx, member.ID)
		assert.NoError(t, getMemberErr, "Failed deletion must leave the member in place")

		return nil
	})
	require.NoError(t, uowErr)
}
