package deleteauthor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/loanengine/core"
	"github.com/openshelf/loanengine/entitystore"
	"github.com/openshelf/loanengine/entitystore/memoryengine"
	"github.com/openshelf/loanengine/features/command/deleteauthor"
	"github.com/openshelf/loanengine/testutil/helper"
)

func Test_DeleteAuthor_RemovesAuthorWithoutBooks(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	handler := deleteauthor.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deleteauthor.BuildCommand(author.ID))

	// assert
	require.NoError(t, err)

	uowErr := store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		_, getErr := uow.GetAuthor(uowCtx, author.ID)
		assert.ErrorIs(t, getErr, entitystore.ErrNotFound)

		return nil
	})
	require.NoError(t, uowErr)
}

func Test_DeleteAuthor_Error_WhenAuthorStillHasBooks(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	author := helper.GivenStoredAuthor(t, ctx, store)
	helper.GivenStoredBook(t, ctx, store, author.ID, 1)
	handler := deleteauthor.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deleteauthor.BuildCommand(author.ID))

	// assert
	assert.ErrorIs(t, err, core.ErrAuthorHasBooks)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func Test_DeleteAuthor_Error_WhenAuthorNotFound(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	handler := deleteauthor.NewCommandHandler(store)

	// act
	err := handler.Handle(ctx, deleteauthor.BuildCommand(helper.GivenUniqueID(t)))

	// assert
	assert.ErrorIs(t, err, core.ErrAuthorNotFound)
}
