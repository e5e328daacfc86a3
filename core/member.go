package core

import (
	"time"

	"github.com/google/uuid"
)

// Member is a registered library member. A member owns its loans: deleting
// the member force-returns every active loan and removes the loan history
// with it, never leaving orphans.
type Member struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	JoinedAt  time.Time
}

// BuildMember creates a new Member joined at the given time.
func BuildMember(id uuid.UUID, firstName string, lastName string, email string, joinedAt time.Time) Member {
	return Member{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		JoinedAt:  joinedAt,
	}
}
