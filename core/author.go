package core

import "github.com/google/uuid"

// Author is a catalog author. Authors own their books only for the
// deletion guard: an author with at least one book cannot be removed.
type Author struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Description string
}

// BuildAuthor creates a new Author.
func BuildAuthor(id uuid.UUID, firstName string, lastName string, description string) Author {
	return Author{
		ID:          id,
		FirstName:   firstName,
		LastName:    lastName,
		Description: description,
	}
}
