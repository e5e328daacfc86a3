package createloan

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

// CommandHandler orchestrates loan creation: look up book and member, take
// one copy, insert the loan - all inside one unit of work, retried on
// concurrency conflict.
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

// Handle executes the command and returns the new Active loan.
//
// Failure kinds: core.ErrBookNotFound, core.ErrMemberNotFound,
// core.ErrCapacityExhausted, core.ErrTransient after exhausted retries.
// A rejected command leaves all entity state untouched.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Loan, error) {
	var loan core.Loan

	err := shell.RetryOnConcurrencyConflict(ctx, func(retryCtx context.Context) error {
		created, execErr := h.executeCommand(retryCtx, command)
		if execErr != nil {
			return execErr
		}

		loan = created

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
		bookRecord, getBookErr := uow.GetBook(uowCtx, command.BookID)
		if errors.Is(getBookErr, entitystore.ErrNotFound) {
			return core.ErrBookNotFound
		}
		if getBookErr != nil {
			return getBookErr
		}

		if _, getMemberErr := uow.GetMember(uowCtx, command.MemberID); getMemberErr != nil {
			if errors.Is(getMemberErr, entitystore.ErrNotFound) {
				return core.ErrMemberNotFound
			}

			return getMemberErr
		}

		book, checkoutErr := shell.BookFromRecord(bookRecord).CheckoutCopy()
		if checkoutErr != nil {
			return checkoutErr
		}

		if updateErr := uow.UpdateBook(uowCtx, shell.BookRecordFromBook(book, bookRecord.Version)); updateErr != nil {
			return updateErr
		}

		loan = core.BuildLoan(uuid.New(), command.BookID, command.MemberID, command.LoanedAt, command.DueAt)

		return uow.InsertLoan(uowCtx, shell.LoanRecordFromLoan(loan))
	})
	if err != nil {
		return core.Loan{}, err
	}

	return loan, nil
}
