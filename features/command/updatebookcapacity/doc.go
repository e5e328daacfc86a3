// Package updatebookcapacity implements the Update Book Capacity use case.
//
// Capacity changes re-derive availability from the number of copies
// currently on loan, and a new total below that number is rejected, so the
// invariant available = total - active loans survives every resize.
package updatebookcapacity
