package updatebookcapacity

import "github.com/google/uuid"

const commandType = "UpdateBookCapacity"

// Command represents the intent to change how many copies of a book the
// library owns.
type Command struct {
	BookID      uuid.UUID
	TotalCopies int
}

// CommandType returns the type identifier for this command, used for logging and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, totalCopies int) Command {
	return Command{BookID: bookID, TotalCopies: totalCopies}
}
