package deleteloan

import "github.com/google/uuid"

const commandType = "DeleteLoan"

// Command represents the administrative intent to remove a loan record.
type Command struct {
	LoanID uuid.UUID
}

// CommandType returns the type identifier for this command, used for logging and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID) Command {
	return Command{LoanID: loanID}
}
