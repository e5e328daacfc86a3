package registermember

import (
	"context"

	"github.com/google/uuid"

	"github.com/openshelf/loanengine/core"
	"github.com/openshelf/loanengine/entitystore"
	"github.com/openshelf/loanengine/shell"
)

// EntityStore defines the interface needed by the CommandHandler for persistence.
type EntityStore interface {
	ExecuteUnitOfWork(ctx context.Context, fn entitystore.UnitOfWorkFunc) error
}

// CommandHandler registers a new library member.
type CommandHandler struct {
	store EntityStore
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store EntityStore) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the command and returns the newly registered member.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Member, error) {
	member := core.BuildMember(uuid.New(), command.FirstName, command.LastName, command.Email, command.JoinedAt)

	uowErr := h.store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		return uow.InsertMember(uowCtx, shell.MemberRecordFromMember(member))
	})

	if uowErr != nil {
		return core.Member{}, uowErr
	}

	return member, nil
}
