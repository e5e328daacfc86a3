package returnloan

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

// CommandHandler orchestrates the return of a loan: mark the loan returned
// and put the copy back into availability, committed as one unit of work.
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

// Handle executes the command and returns the loan in its Returned state.
//
// Failure kinds: core.ErrLoanNotFound, core.ErrAlreadyReturned,
// core.ErrIntegrityFault when the loan's book row is missing (a defect,
// logged, never a user error), core.ErrTransient after exhausted retries.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Loan, error) {
	var loan core.Loan

	err := shell.RetryOnConcurrencyConflict(ctx, func(retryCtx context.Context) error {
		returned, execErr := h.executeCommand(retryCtx, command)
		if execErr != nil {
			return execErr
		}

		loan = returned

		return nil
	}, h.retryOptions...)
	if err != nil {
		return core.Loan{}, err
	}

	return loan, nil
}

// executeCommand contains the unit of work that can be retried as a whole.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.Loan, error) {
	var loan core.Loan

	err := h.store.ExecuteUnitOfWork(ctx, func(uowCtx context.Context, uow entitystore.UnitOfWork) error {
		loanRecord, getLoanErr := uow.GetLoan(uowCtx, command.LoanID)
		if errors.Is(getLoanErr, entitystore.ErrNotFound) {
			return core.ErrLoanNotFound
		}
		if getLoanErr != nil {
			return getLoanErr
		}

		returned, markErr := shell.LoanFromRecord(loanRecord).MarkReturned(command.ReturnedAt)
		if markErr != nil {
			return markErr
		}

		bookRecord, getBookErr := uow.GetBook(uowCtx, loanRecord.BookID)
		if errors.Is(getBookErr, entitystore.ErrNotFound) {
			// The system itself guarantees a loan's book exists, so this is
			// a defect to investigate, not a user error.
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

		if updateBookErr := uow.UpdateBook(uowCtx, shell.BookRecordFromBook(book, bookRecord.Version)); updateBookErr != nil {
			return updateBookErr
		}

		if updateLoanErr := uow.UpdateLoan(uowCtx, shell.LoanRecordFromLoan(returned)); updateLoanErr != nil {
			return updateLoanErr
		}

		loan = returned

		return nil
	})
	if err != nil {
		return core.Loan{}, err
	}

	return loan, nil
}
