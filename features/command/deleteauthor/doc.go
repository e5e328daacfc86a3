// Package deleteauthor implements the Delete Author use case.
//
// An author can only be removed while no book references them; removal is
// rejected with core.ErrAuthorHasBooks otherwise.
package deleteauthor
