// Package createloan implements the Create Loan use case.
//
// A loan is created only if its book and member exist and the book still
// has an available copy. Check-and-decrement and the loan insert commit as
// one unit of work; the book's version guard serializes concurrent creates
// against the same book, so capacity can never go negative.
package createloan
