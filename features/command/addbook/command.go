package addbook

import (
	"time"

	"github.com/google/uuid"
)

const commandType = "AddBook"

// Command represents the intent to add a book to the catalog.
type Command struct {
	Title       string
	ISBN        string
	PublishedAt time.Time
	AuthorID    uuid.UUID
	TotalCopies int
}

// CommandType returns the type identifier for this command, used for logging and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	title string,
	isbn string,
	publishedAt time.Time,
	authorID uuid.UUID,
	totalCopies int,
) Command {

	return Command{
		Title:       title,
		ISBN:        isbn,
		PublishedAt: publishedAt,
		AuthorID:    authorID,
		TotalCopies: totalCopies,
	}
}
