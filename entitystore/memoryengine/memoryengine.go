// Package memoryengine implements the entitystore contract on plain maps
// guarded by one mutex. It exists for unit and concurrency tests: behavior
// matches sqlengine (same sentinel errors, same version-guarded book
// updates) without a database.
//
// A unit of work holds the store lock from begin to commit, so units are
// fully serialized - the per-row-lock variant of the engine's concurrency
// model. The rollback path restores a snapshot taken at begin.
package memoryengine

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/openshelf/loanengine/entitystore"
)

type state struct {
	books   map[uuid.UUID]entitystore.BookRecord
	loans   map[uuid.UUID]entitystore.LoanRecord
	members map[uuid.UUID]entitystore.MemberRecord
	authors map[uuid.UUID]entitystore.AuthorRecord
}

func newState() *state {
	return &state{
		books:   make(map[uuid.UUID]entitystore.BookRecord),
		loans:   make(map[uuid.UUID]entitystore.LoanRecord),
		members: make(map[uuid.UUID]entitystore.MemberRecord),
		authors: make(map[uuid.UUID]entitystore.AuthorRecord),
	}
}

func (s *state) clone() *state {
	c := newState()

	for id, book := range s.books {
		c.books[id] = book
	}
	for id, loan := range s.loans {
		c.loans[id] = copyLoan(loan)
	}
	for id, member := range s.members {
		c.members[id] = member
	}
	for id, author := range s.authors {
		c.authors[id] = author
	}

	return c
}

// copyLoan detaches the ReturnedAt pointer so callers can never alias
// stored state.
func copyLoan(loan entitystore.LoanRecord) entitystore.LoanRecord {
	if loan.ReturnedAt != nil {
		returnedAt := *loan.ReturnedAt
		loan.ReturnedAt = &returnedAt
	}

	return loan
}

// EntityStore implements entitystore.Store in memory.
type EntityStore struct {
	mu    sync.Mutex
	state *state
}

var _ entitystore.Store = (*EntityStore)(nil)

// NewEntityStore creates an empty in-memory EntityStore.
func NewEntityStore() *EntityStore {
	return &EntityStore{state: newState()}
}

// GetBook reads a single book outside any unit of work.
func (es *EntityStore) GetBook(_ context.Context, id uuid.UUID) (entitystore.BookRecord, error) {
	es.mu.Lock()
	defer es.mu.Unlock()

	return es.state.getBook(id)
}

// ListBookIDs returns the ids of all books.
func (es *EntityStore) ListBookIDs(_ context.Context) ([]uuid.UUID, error) {
	es.mu.Lock()
	defer es.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(es.state.books))
	for id := range es.state.books {
		ids = append(ids, id)
	}

	return ids, nil
}

// ExecuteUnitOfWork runs fn while holding the store lock. A nil return
// commits the mutations, any error restores the snapshot taken at begin
// and is passed through unchanged.
func (es *EntityStore) ExecuteUnitOfWork(ctx context.Context, fn entitystore.UnitOfWorkFunc) error {
	es.mu.Lock()
	defer es.mu.Unlock()

	snapshot := es.state.clone()

	if err := fn(ctx, (*unitOfWork)(es.state)); err != nil {
		es.state = snapshot
		return err
	}

	return nil
}

// unitOfWork is the state with the entitystore.UnitOfWork methods attached.
// It is only ever used while the store lock is held.
type unitOfWork state

var _ entitystore.UnitOfWork = (*unitOfWork)(nil)

func (s *state) getBook(id uuid.UUID) (entitystore.BookRecord, error) {
	book, ok := s.books[id]
	if !ok {
		return entitystore.BookRecord{}, entitystore.ErrNotFound
	}

	return book, nil
}

func (u *unitOfWork) GetBook(_ context.Context, id uuid.UUID) (entitystore.BookRecord, error) {
	return (*state)(u).getBook(id)
}

func (u *unitOfWork) GetAuthor(_ context.Context, id uuid.UUID) (entitystore.AuthorRecord, error) {
	author, ok := u.authors[id]
	if !ok {
		return entitystore.AuthorRecord{}, entitystore.ErrNotFound
	}

	return author, nil
}

func (u *unitOfWork) GetMember(_ context.Context, id uuid.UUID) (entitystore.MemberRecord, error) {
	member, ok := u.members[id]
	if !ok {
		return entitystore.MemberRecord{}, entitystore.ErrNotFound
	}

	return member, nil
}

func (u *unitOfWork) GetLoan(_ context.Context, id uuid.UUID) (entitystore.LoanRecord, error) {
	loan, ok := u.loans[id]
	if !ok {
		return entitystore.LoanRecord{}, entitystore.ErrNotFound
	}

	return copyLoan(loan), nil
}

func (u *unitOfWork) GetLoansForMember(_ context.Context, memberID uuid.UUID) ([]entitystore.LoanRecord, error) {
	loans := make([]entitystore.LoanRecord, 0)

	for _, loan := range u.loans {
		if loan.MemberID == memberID {
			loans = append(loans, copyLoan(loan))
		}
	}

	return loans, nil
}

func (u *unitOfWork) GetActiveLoanCountForBook(_ context.Context, bookID uuid.UUID) (int, error) {
	count := 0

	for _, loan := range u.loans {
		if loan.BookID == bookID && loan.ReturnedAt == nil {
			count++
		}
	}

	return count, nil
}

func (u *unitOfWork) CountBooksByAuthor(_ context.Context, authorID uuid.UUID) (int, error) {
	count := 0

	for _, book := range u.books {
		if book.AuthorID == authorID {
			count++
		}
	}

	return count, nil
}

func (u *unitOfWork) InsertBook(_ context.Context, book entitystore.BookRecord) error {
	u.books[book.ID] = book
	return nil
}

// UpdateBook mirrors sqlengine's version guard: the stored version must
// still equal book.Version, and the stored record gets version+1.
func (u *unitOfWork) UpdateBook(_ context.Context, book entitystore.BookRecord) error {
	stored, ok := u.books[book.ID]
	if !ok || stored.Version != book.Version {
		return entitystore.ErrConcurrencyConflict
	}

	book.Version++
	u.books[book.ID] = book

	return nil
}

func (u *unitOfWork) RemoveBook(_ context.Context, id uuid.UUID) error {
	if _, ok := u.books[id]; !ok {
		return entitystore.ErrNotFound
	}

	delete(u.books, id)

	return nil
}

func (u *unitOfWork) InsertLoan(_ context.Context, loan entitystore.LoanRecord) error {
	u.loans[loan.ID] = copyLoan(loan)
	return nil
}

func (u *unitOfWork) UpdateLoan(_ context.Context, loan entitystore.LoanRecord) error {
	if _, ok := u.loans[loan.ID]; !ok {
		return entitystore.ErrNotFound
	}

	u.loans[loan.ID] = copyLoan(loan)

	return nil
}

func (u *unitOfWork) RemoveLoan(_ context.Context, id uuid.UUID) error {
	if _, ok := u.loans[id]; !ok {
		return entitystore.ErrNotFound
	}

	delete(u.loans, id)

	return nil
}

func (u *unitOfWork) RemoveLoansForBook(_ context.Context, bookID uuid.UUID) error {
	for id, loan := range u.loans {
		if loan.BookID == bookID {
			delete(u.loans, id)
		}
	}

	return nil
}

func (u *unitOfWork) InsertMember(_ context.Context, member entitystore.MemberRecord) error {
	u.members[member.ID] = member
	return nil
}

func (u *unitOfWork) RemoveMember(_ context.Context, id uuid.UUID) error {
	if _, ok := u.members[id]; !ok {
		return entitystore.ErrNotFound
	}

	delete(u.members, id)

	return nil
}

func (u *unitOfWork) InsertAuthor(_ context.Context, author entitystore.AuthorRecord) error {
	u.authors[author.ID] = author
	return nil
}

func (u *unitOfWork) RemoveAuthor(_ context.Context, id uuid.UUID) error {
	if _, ok := u.authors[id]; !ok {
		return entitystore.ErrNotFound
	}

	delete(u.authors, id)

	return nil
}
