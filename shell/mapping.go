package shell

import (
	"github.com/openshelf/loanengine/core"
	"github.com/openshelf/loanengine/entitystore"
)

// The record version a freshly inserted book starts with.
const initialBookVersion = 1

// BookFromRecord converts a stored book into the core value type.
// The record's version stays behind: it belongs to the storage layer and is
// carried by the caller alongside the core value.
func BookFromRecord(record entitystore.BookRecord) core.Book {
	return core.Book{
		ID:              record.ID,
		Title:           record.Title,
		ISBN:            record.ISBN,
		PublishedAt:     record.PublishedAt,
		AuthorID:        record.AuthorID,
		TotalCopies:     record.TotalCopies,
		AvailableCopies: record.AvailableCopies,
	}
}

// BookRecordFromBook converts a core book back into a record carrying the
// version the caller read, so the engine's guard can detect lost updates.
func BookRecordFromBook(book core.Book, version uint) entitystore.BookRecord {
	return entitystore.BookRecord{
		ID:              book.ID,
		Title:           book.Title,
		ISBN:            book.ISBN,
		PublishedAt:     book.PublishedAt,
		AuthorID:        book.AuthorID,
		TotalCopies:     book.TotalCopies,
		AvailableCopies: book.AvailableCopies,
		Version:         version,
	}
}

// NewBookRecord converts a freshly built core book into a record with the
// initial version.
func NewBookRecord(book core.Book) entitystore.BookRecord {
	return BookRecordFromBook(book, initialBookVersion)
}

// LoanFromRecord converts a stored loan into the core value type.
func LoanFromRecord(record entitystore.LoanRecord) core.Loan {
	return core.Loan{
		ID:         record.ID,
		BookID:     record.BookID,
		MemberID:   record.MemberID,
		LoanedAt:   record.LoanedAt,
		DueAt:      record.DueAt,
		ReturnedAt: record.ReturnedAt,
	}
}

// LoanRecordFromLoan converts a core loan into its stored representation.
func LoanRecordFromLoan(loan core.Loan) entitystore.LoanRecord {
	return entitystore.LoanRecord{
		ID:         loan.ID,
		BookID:     loan.BookID,
		MemberID:   loan.MemberID,
		LoanedAt:   loan.LoanedAt,
		DueAt:      loan.DueAt,
		ReturnedAt: loan.ReturnedAt,
	}
}

// MemberFromRecord converts a stored member into the core value type.
func MemberFromRecord(record entitystore.MemberRecord) core.Member {
	return core.Member{
		ID:        record.ID,
		FirstName: record.FirstName,
		LastName:  record.LastName,
		Email:     record.Email,
		JoinedAt:  record.JoinedAt,
	}
}

// MemberRecordFromMember converts a core member into its stored representation.
func MemberRecordFromMember(member core.Member) entitystore.MemberRecord {
	return entitystore.MemberRecord{
		ID:        member.ID,
		FirstName: member.FirstName,
		LastName:  member.LastName,
		Email:     member.Email,
		JoinedAt:  member.JoinedAt,
	}
}

// AuthorFromRecord converts a stored author into the core value type.
func AuthorFromRecord(record entitystore.AuthorRecord) core.Author {
	return core.Author{
		ID:          record.ID,
		FirstName:   record.FirstName,
		LastName:    record.LastName,
		Description: record.Description,
	}
}

// AuthorRecordFromAuthor converts a core author into its stored representation.
func AuthorRecordFromAuthor(author core.Author) entitystore.AuthorRecord {
	return entitystore.AuthorRecord{
		ID:          author.ID,
		FirstName:   author.FirstName,
		LastName:    author.LastName,
		Description: author.Description,
	}
}
