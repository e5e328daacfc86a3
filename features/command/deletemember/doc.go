// Package deletemember implements the Delete Member use case.
//
// A member owns its loans, so deletion force-returns every active loan,
// removes the whole loan history, and only then removes the member. The
// sequence commits as a single unit of work: either everything happens or
// nothing does, and books are never left double-credited by a retry.
package deletemember
