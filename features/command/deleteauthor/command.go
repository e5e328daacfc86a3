package deleteauthor

import "github.com/google/uuid"

const commandType = "DeleteAuthor"

// Command represents the intent to remove an author from the catalog.
type Command struct {
	AuthorID uuid.UUID
}

// CommandType returns the type identifier for this command, used for logging and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(authorID uuid.UUID) Command {
	return Command{AuthorID: authorID}
}
