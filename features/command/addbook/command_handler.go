package addbook

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/openshelf/loanengine/core"
	"github.com/openshelf/loanengine/entitystore"
	"github.com/openshelf/loanengine/shell"
)

// EntityStore defines the interface needed by the CommandHandler for persistence.
type EntityStore interface {
	ExecuteUnitOfWork(ctx context.Context, fn entitystore.UnitOfWorkFunc) error
}

// CommandHandler adds a book to the catalog with all copies available.
// The referenced author must exist.
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

// Handle executes the command and returns the newly created book.
//
// Failure kinds: core.ErrAuthorNotFound, core.ErrInvalidCapacity when
// totalCopies is below 1, core.ErrTransient after exhausted retries.
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
		if _, getAuthorErr := uow.GetAuthor(uowCtx, command.AuthorID); getAuthorErr != nil {
			if errors.Is(getAuthorErr, entitystore.ErrNotFound) {
				return core.ErrAuthorNotFound
			}

			return getAuthorErr
		}

		built, buildErr := core.BuildBook(
			uuid.New(),
			command.Title,
			command.ISBN,
			command.PublishedAt,
			command.AuthorID,
			command.TotalCopies,
		)
		if buildErr != nil {
			return buildErr
		}

		if insertErr := uow.InsertBook(uowCtx, shell.NewBookRecord(built)); insertErr != nil {
			return insertErr
		}

		book = built

		return nil
	})

	if uowErr != nil {
		return core.Book{}, uowErr
	}

	return book, nil
}
