package registermember

import "time"

const commandType = "RegisterMember"

// Command represents the intent to register a new library member.
type Command struct {
	FirstName string
	LastName  string
	Email     string
	JoinedAt  time.Time
}

// CommandType returns the type identifier for this command, used for logging and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(firstName string, lastName string, email string, joinedAt time.Time) Command {
	return Command{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		JoinedAt:  joinedAt,
	}
}
