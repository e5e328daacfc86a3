// Package returnloan implements the Return Loan use case.
//
// Returning is the single state transition a loan ever makes: Active to
// Returned, exactly once. The book's availability is restored in the same
// unit of work, clamped so it never exceeds the total copy count even if
// the total was administratively lowered while the loan was out.
package returnloan
