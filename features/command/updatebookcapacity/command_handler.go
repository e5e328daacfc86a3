package updatebookcapacity

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

// CommandHandler changes a book's total copy count and re-derives its
// availability from the active loan count inside the same unit of work,
// so the counter stays consistent with outstanding loans.
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

// Handle executes the command and returns the book with its new capacity.
//
// Failure kinds: core.ErrBookNotFound, core.ErrInvalidCapacity when the new
// total is zero or below the number of copies currently on loan,
// core.ErrTransient after exhausted retries.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Book, error) {
	var book core.Book

	retryErr := shell.RetryOnConcurrencyConflict(ctx, func(retryCtx context.Context) error {
		var executeErr error
		book, executeErr = h.executeCommand(retryCtx, command)

		return executeErr
	}, h.retryOptions...)

	if retryErr != nil {
		return core.Book{}, retryErr
	}

	return book, nil
}

// executeCommand contains the unit of work that can be retried as a whole.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.Book, error) {
	var book core.Book

	uowErr := h.store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		bookRecord, getBookErr := uow.GetBook(uowCtx, command.BookID)
		if errors.Is(getBookErr, entitystore.ErrNotFound) {
			return core.ErrBookNotFound
		}
		if getBookErr != nil {
			return getBookErr
		}

		activeLoanCount, countErr := uow.GetActiveLoanCountForBook(uowCtx, command.BookID)
		if countErr != nil {
			return countErr
		}

		resized, resizeErr := shell.BookFromRecord(bookRecord).WithTotalCopies(command.TotalCopies, activeLoanCount)
		if resizeErr != nil {
			return resizeErr
		}

		if updateErr := uow.UpdateBook(uowCtx, shell.BookRecordFromBook(resized, bookRecord.Version)); updateErr != nil {
			return updateErr
		}

		book = resized

		return nil
	})

	if uowErr != nil {
		return core.Book{}, uowErr
	}

	return book, nil
}
