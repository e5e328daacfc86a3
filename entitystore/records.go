package entitystore

import (
	"time"

	"github.com/google/uuid"
)

// BookRecord is the stored representation of a book.
// Version implements optimistic concurrency for the copy counters: it is
// bumped on every successful UpdateBook and checked against the value the
// caller read.
type BookRecord struct {
	ID              uuid.UUID
	Title           string
	ISBN            string
	PublishedAt     time.Time
	AuthorID        uuid.UUID
	TotalCopies     int
	AvailableCopies int
	Version         uint
}

// LoanRecord is the stored representation of a loan.
// ReturnedAt is nil while the loan is active.
type LoanRecord struct {
	ID         uuid.UUID
	BookID     uuid.UUID
	MemberID   uuid.UUID
	LoanedAt   time.Time
	DueAt      time.Time
	ReturnedAt *time.Time
}

// MemberRecord is the stored representation of a member.
type MemberRecord struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	JoinedAt  time.Time
}

// AuthorRecord is the stored representation of an author.
type AuthorRecord struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Description string
}
