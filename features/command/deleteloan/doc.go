// Package deleteloan implements the Delete Loan use case.
//
// This is an administrative operation: it removes a loan record outright.
// When the loan is still active the book's availability is restored first,
// inside the same unit of work, so inventory never ends up under-counted.
package deleteloan
