package core

import (
	"time"

	"github.com/google/uuid"
)

// Loan records one copy of a book being lent to a member.
//
// A loan is Active while ReturnedAt is nil and Returned once it is set.
// Returned is terminal. BookID and MemberID never change after creation.
type Loan struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	MemberID   uuid.UUID
	LoanedAt   time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
}

// BuildLoan creates a new Active loan.
func BuildLoan(
	id uuid.UUID,
	bookID uuid.UUID,
	memberID uuid.UUID,
	loanedAt time.Time,
	dueAt time.Time,
) Loan {

	return Loan{
		ID:       id,
		BookID:   bookID,
		MemberID: memberID,
		LoanedAt: loanedAt,
		DueAt:    dueAt,
	}
}

// IsActive reports whether the loan is still open.
func (l Loan) IsActive() bool {
	return l.ReturnedAt == nil
}

// MarkReturned transitions the loan from Active to Returned.
// Fails with ErrAlreadyReturned if the loan is already in its terminal
// state; a returned loan is immutable.
func (l Loan) MarkReturned(at time.Time) (Loan, error) {
	if l.ReturnedAt != nil {
		return l, ErrAlreadyReturned
	}

	l.ReturnedAt = &at

	return l, nil
}
