package deletemember

import "github.com/google/uuid"

const commandType = "DeleteMember"

// Command represents the intent to remove a member together with all loans
// the member owns.
type Command struct {
	MemberID uuid.UUID
}

// CommandType returns the type identifier for this command, used for logging and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID uuid.UUID) Command {
	return Command{MemberID: memberID}
}
