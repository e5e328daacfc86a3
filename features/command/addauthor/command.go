package addauthor

const commandType = "AddAuthor"

// Command represents the intent to add an author to the catalog.
type Command struct {
	FirstName   string
	LastName    string
	Description string
}

// CommandType returns the type identifier for this command, used for logging and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(firstName string, lastName string, description string) Command {
	return Command{
		FirstName:   firstName,
		LastName:    lastName,
		Description: description,
	}
}
