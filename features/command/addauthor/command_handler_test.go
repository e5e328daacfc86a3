package addauthor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/loanengine/entitystore"
	"github.com/openshelf/loanengine/entitystore/memoryengine"
	"github.com/openshelf/loanengine/features/command/addauthor"
)

func Test_AddAuthor_StoresAuthor(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	handler := addauthor.NewCommandHandler(store)

	// act
	author, err := handler.Handle(ctx, addauthor.BuildCommand("Vlad", "Khononov", "Writes about software design"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "Vlad", author.FirstName)
	assert.Equal(t, "Khononov", author.LastName)

	uowErr := store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		stored, getErr := uow.GetAuthor(uowCtx, author.ID)
		require.NoError(t, getErr)
		assert.Equal(t, author.ID, stored.ID)

		return nil
	})
	require.NoError(t, uowErr)
}
