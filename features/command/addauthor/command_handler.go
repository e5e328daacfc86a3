package addauthor

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

// CommandHandler adds an author to the catalog.
type CommandHandler struct {
	store EntityStore
}

// NewCommandHandler creates a new CommandHandler.
func NewCommandHandler(store EntityStore) CommandHandler {
	return CommandHandler{store: store}
}

// Handle executes the command and returns the newly created author.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Author, error) {
	author := core.BuildAuthor(uuid.New(), command.FirstName, command.LastName, command.Description)

	uowErr := h.store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		return uow.InsertAuthor(uowCtx, shell.AuthorRecordFromAuthor(author))
	})

	if uowErr != nil {
		return core.Author{}, uowErr
	}

	return author, nil
}
