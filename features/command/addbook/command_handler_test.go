package addbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/loanengine/core"
	"github.com/openshelf/loanengine/entitystore/memoryengine"
	"github.com/openshelf/loanengine/features/command/addbook"
	"github.com/openshelf/loanengine/testutil/helper"
)

func Test_AddBook_StoresBookWithAllCopiesAvailable(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	handler := addbook.NewCommandHandler(store)

	command := addbook.BuildCommand(
		"Learning Domain-Driven Design",
		"978-1-098-10013-1",
		time.Date(2021, 10, 1, 0, 0, 0, 0, time.UTC),
		author.ID,
		3,
	)

	// act
	book, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies)

	stored := helper.ReadBook(t, ctx, store, book.ID)
	assert.Equal(t, 3, stored.AvailableCopies)
	assert.Equal(t, uint(1), stored.Version, "New book starts at the initial version")
}

func Test_AddBook_Error_WhenAuthorNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	handler := addbook.NewCommandHandler(store)

	command := addbook.BuildCommand("Title", "ISBN", time.Now(), helper.GivenUniqueID(t), 1)

	// act
	_, err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrAuthorNotFound)
}

func Test_AddBook_Error_WhenTotalCopiesBelowOne(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	handler := addbook.NewCommandHandler(store)

	command := addbook.BuildCommand("Title", "ISBN", time.Now(), author.ID, 0)

	// act
	_, err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidCapacity)
}
