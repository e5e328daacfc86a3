// Package deletebook implements the Delete Book use case.
//
// A book with active loans cannot be removed. Removing a book also removes
// its returned-loan history, so no loan is ever left pointing at a missing
// book.
package deletebook
