package core

import (
	"time"

	"github.com/google/uuid"
)

// Book is a catalog entry with its copy inventory.
//
// Invariant at rest: 0 <= AvailableCopies <= TotalCopies and
// AvailableCopies == TotalCopies - activeLoanCount(book).
// The methods below are the only way the counters change.
type Book struct {
	ID              uuid.UUID
	Title           string
	ISBN            string
	PublishedAt     time.Time
	AuthorID        uuid.UUID
	TotalCopies     int
	AvailableCopies int
}

// BuildBook creates a new Book with all copies available.
// Fails with ErrInvalidCapacity if totalCopies is below 1.
func BuildBook(
	id uuid.UUID,
	title string,
	isbn string,
	publishedAt time.Time,
	authorID uuid.UUID,
	totalCopies int,
) (Book, error) {

	if totalCopies < 1 {
		return Book{}, ErrInvalidCapacity
	}

	return Book{
		ID:              id,
		Title:           title,
		ISBN:            isbn,
		PublishedAt:     publishedAt,
		AuthorID:        authorID,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
	}, nil
}

// CheckoutCopy takes one available copy for a new loan.
// Fails with ErrCapacityExhausted when no copy is available - the caller
// must not create the loan in that case.
func (b Book) CheckoutCopy() (Book, error) {
	if b.AvailableCopies <= 0 {
		return b, ErrCapacityExhausted
	}

	b.AvailableCopies--

	return b, nil
}

// ReturnCopy puts one copy back into availability.
// The counter is clamped at TotalCopies: returning a loan whose book's
// total was administratively lowered must never push available above total.
func (b Book) ReturnCopy() Book {
	if b.AvailableCopies < b.TotalCopies {
		b.AvailableCopies++
	}

	return b
}

// RecomputeAvailability derives the available counter from the true active
// loan count, flooring at zero. Used for administrative repair.
func (b Book) RecomputeAvailability(activeLoanCount int) Book {
	available := b.TotalCopies - activeLoanCount
	if available < 0 {
		available = 0
	}

	b.AvailableCopies = available

	return b
}

// WithTotalCopies changes the total copy count and recomputes availability.
// Fails with ErrInvalidCapacity when newTotal is below the current active
// loan count (equal is allowed) or below 1.
func (b Book) WithTotalCopies(newTotal int, activeLoanCount int) (Book, error) {
	if newTotal < 1 || newTotal < activeLoanCount {
		return b, ErrInvalidCapacity
	}

	b.TotalCopies = newTotal
	b.AvailableCopies = newTotal - activeLoanCount

	return b, nil
}
