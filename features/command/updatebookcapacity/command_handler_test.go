package updatebookcapacity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/loanengine/core"
	"github.com/openshelf/loanengine/entitystore/memoryengine"
	"github.com/openshelf/loanengine/features/command/createloan"
	"github.com/openshelf/loanengine/features/command/updatebookcapacity"
	"github.com/openshelf/loanengine/testutil/helper"
)

func Test_UpdateBookCapacity_GrowsAvailability(t *testing.T) {
	// arrange: 3 copies, 1 on loan
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	book := helper.GivenStoredBook(t, ctx, store, author.ID, 3)
	member := helper.GivenStoredMember(t, ctx, store)

	lendHandler := createloan.NewCommandHandler(store)
	_, lendErr := lendHandler.Handle(ctx,
		createloan.BuildCommand(book.ID, member.ID, time.Now(), time.Now().AddDate(0, 0, 21)))
	require.NoError(t, lendErr)

	handler := updatebookcapacity.NewCommandHandler(store)

	// act
	resized, err := handler.Handle(ctx, updatebookcapacity.BuildCommand(book.ID, 5))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 5, resized.TotalCopies)
	assert.Equal(t, 4, resized.AvailableCopies, "Available must stay total minus active loans")

	stored := helper.ReadBook(t, ctx, store, book.ID)
	assert.Equal(t, 4, stored.AvailableCopies)
}

func Test_UpdateBookCapacity_ShrinksToActiveLoanCount(t *testing.T) {
	// arrange: 3 copies, 1 on loan, shrink to exactly 1
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	book := helper.GivenStoredBook(t, ctx, store, author.ID, 3)
	member := helper.GivenStoredMember(t, ctx, store)

	lendHandler := createloan.NewCommandHandler(store)
	_, lendErr := lendHandler.Handle(ctx,
		createloan.BuildCommand(book.ID, member.ID, time.Now(), time.Now().AddDate(0, 0, 21)))
	require.NoError(t, lendErr)

	handler := updatebookcapacity.NewCommandHandler(store)

	// act
	resized, err := handler.Handle(ctx, updatebookcapacity.BuildCommand(book.ID, 1))

	// assert
	require.NoError(t, err, "Shrinking to the active loan count is the allowed boundary")
	assert.Equal(t, 1, resized.TotalCopies)
	assert.Equal(t, 0, resized.AvailableCopies)
}

func Test_UpdateBookCapacity_Error_WhenBelowActiveLoanCount(t *testing.T) {
	// arrange: 2 copies, 2 on loan
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	book := helper.GivenStoredBook(t, ctx, store, author.ID, 2)
	member := helper.GivenStoredMember(t, ctx, store)

	lendHandler := createloan.NewCommandHandler(store)
	for i := 0; i < 2; i++ {
		_, lendErr := lendHandler.Handle(ctx,
			createloan.BuildCommand(book.ID, member.ID, time.Now(), time.Now().AddDate(0, 0, 21)))
		require.NoError(t, lendErr)
	}

	handler := updatebookcapacity.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, updatebookcapacity.BuildCommand(book.ID, 1))

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidCapacity)

	stored := helper.ReadBook(t, ctx, store, book.ID)
	assert.Equal(t, 2, stored.TotalCopies, "Rejected resize must leave the book unchanged")
	assert.Equal(t, 0, stored.AvailableCopies)
}

func Test_UpdateBookCapacity_Error_WhenBookNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	handler := updatebookcapacity.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, updatebookcapacity.BuildCommand(helper.GivenUniqueID(t), 5))

	// assert
	assert.ErrorIs(t, err, core.ErrBookNotFound)
}
