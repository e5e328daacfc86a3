package registermember_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/loanengine/entitystore"
	"github.com/openshelf/loanengine/entitystore/memoryengine"
	"github.com/openshelf/loanengine/features/command/registermember"
)

func Test_RegisterMember_StoresMember(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewEntityStore()
	handler := registermember.NewCommandHandler(store)
	joinedAt := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	// act
	member, err := handler.Handle(ctx, registermember.BuildCommand("Ada", "Lovelace", "ada@example.org", joinedAt))

	// assert
	require.NoError(t, err)
	assert.Equal(t, "ada@example.org", member.Email)
	assert.Equal(t, joinedAt, member.JoinedAt)

	uowErr := store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		stored, getErr := uow.GetMember(uowCtx, member.ID)
		require.NoError(t, getErr)
		assert.Equal(t, member.ID, stored.ID)

		return nil
	})
	require.NoError(t, uowErr)
}
