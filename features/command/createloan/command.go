package createloan

import (
	"time"

	"github.com/google/uuid"
)

const commandType = "CreateLoan"

// Command represents the intent to lend one copy of a book to a member.
type Command struct {
	BookID   uuid.UUID
	MemberID uuid.UUID
	LoanedAt time.Time
	DueAt    time.Time
}

// CommandType returns the type identifier for this command, used for logging and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, memberID uuid.UUID, loanedAt time.Time, dueAt time.Time) Command {
	return Command{
		BookID:   bookID,
		MemberID: memberID,
		LoanedAt: loanedAt,
		DueAt:    dueAt,
	}
}
