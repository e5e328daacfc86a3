package deletebook

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

// CommandHandler removes a book from the catalog. Removal is rejected while
// any copy is still on loan; the returned-loan history for the book goes
// with it.
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
// Failure kinds: core.ErrBookNotFound, core.ErrBookHasActiveLoans while any
// copy is still out, core.ErrTransient after exhausted retries.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	return shell.RetryOnConcurrencyConflict(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)
}

// executeCommand contains the unit of work that can be retried as a whole.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	return h.store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		if _, getBookErr := uow.GetBook(uowCtx, command.BookID); getBookErr != nil {
			if errors.Is(getBookErr, entitystore.ErrNotFound) {
				return core.ErrBookNotFound
			}

			return getBookErr
		}

		activeLoanCount, countErr := uow.GetActiveLoanCountForBook(uowCtx, command.BookID)
		if countErr != nil {
			return countErr
		}

		if activeLoanCount > 0 {
			return core.ErrBookHasActiveLoans
		}

		if removeLoansErr := uow.RemoveLoansForBook(uowCtx, command.BookID); removeLoansErr != nil {
			return removeLoansErr
		}

		return uow.RemoveBook(uowCtx, command.BookID)
	})
}
