package deleteloan

import (
	"context"
	"errors"
	"fmt"

	"github.com/openshelf/loanengine/core"
	"github.com/openshelf/loanengine/entitystore"
	"github.com/openshelf/loanengine/shell"
)

const (
	logMsgOrphanedLoan = "data integrity violation: loan references a book that no longer exists"
	logAttrLoanID      = "loan_id"
	logAttrBookID      = "book_id"
)

// EntityStore defines the interface needed by the CommandHandler for persistence.
type EntityStore interface {
	ExecuteUnitOfWork(ctx context.Context, fn entitystore.UnitOfWorkFunc) error
}

// CommandHandler removes a loan record administratively. Deleting a still
// active loan restores the book's availability first, so an open loan can
// never disappear leaving inventory under-counted.
type CommandHandler struct {
	store        EntityStore
	logger       shell.Logger
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

// WithLogger sets the logger used to report integrity faults.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
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
// Failure kinds: core.ErrLoanNotFound, core.ErrIntegrityFault when an
// active loan's book row is missing, core.ErrTransient after exhausted retries.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	return shell.RetryOnConcurrencyConflict(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)
}

// executeCommand contains the unit of work that can be retried as a whole.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	return h.store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		loanRecord, getLoanErr := uow.GetLoan(uowCtx, command.LoanID)
		if errors.Is(getLoanErr, entitystore.ErrNotFound) {
			return core.ErrLoanNotFound
		}
		if getLoanErr != nil {
			return getLoanErr
		}

		if loanRecord.ReturnedAt == nil {
			if restoreErr := h.restoreBookAvailability(uowCtx, uow, loanRecord); restoreErr != nil {
				return restoreErr
			}
		}

		return uow.RemoveLoan(uowCtx, loanRecord.ID)
	})
}

func (h CommandHandler) restoreBookAvailability(
	ctx context.Context,
	uow entitystore.UnitOfWork,
	loanRecord entitystore.LoanRecord,
) error {

	bookRecord, getBookErr := uow.GetBook(ctx, loanRecord.BookID)
	if errors.Is(getBookErr, entitystore.ErrNotFound) {
		if h.logger != nil {
			h.logger.Error(logMsgOrphanedLoan,
				logAttrLoanID, loanRecord.ID.String(),
				logAttrBookID, loanRecord.BookID.String())
		}

		return fmt.Errorf("%w: loan %s references missing book %s",
			core.ErrIntegrityFault, loanRecord.ID, loanRecord.BookID)
	}
	if getBookErr != nil {
		return getBookErr
	}

	book := shell.BookFromRecord(bookRecord).ReturnCopy()

	return uow.UpdateBook(ctx, shell.BookRecordFromBook(book, bookRecord.Version))
}
