package deleteauthor

import (
	"context"
	"errors"

	"github.com/openshelf/loanengine/core"
	"github.com/openshelf/loanengine/entitystore"
	"github.com/openshelf/loanengine/shell"
)

// EntityStore defines the interface needed by the CommandHandler for persistence.
type EntityStore interface {
	ExecuteUnitOfWork(ctx context.Context, fn entitystore.UnitOfWorkFunc) error
}

// CommandHandler removes an author, but only while no book in the catalog
// still references them.
type CommandHandler struct {
	store        EntityStore
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store EntityStore, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command.
//
// Failure kinds: core.ErrAuthorNotFound, core.ErrAuthorHasBooks while any
// book still references the author, core.ErrTransient after exhausted retries.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	return shell.RetryOnConcurrencyConflict(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)
}

// executeCommand contains the unit of work that can be retried as a whole.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	return h.store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		if _, getAuthorErr := uow.GetAuthor(uowCtx, command.AuthorID); getAuthorErr != nil {
			if errors.Is(getAuthorErr, entitystore.ErrNotFound) {
				return core.ErrAuthorNotFound
			}

			return getAuthorErr
		}

		bookCount, countErr := uow.CountBooksByAuthor(uowCtx, command.AuthorID)
		if countErr != nil {
			return countErr
		}

		if bookCount > 0 {
			return core.ErrAuthorHasBooks
		}

		return uow.RemoveAuthor(uowCtx, command.AuthorID)
	})
}
