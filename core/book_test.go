package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/loanengine/core"
)

func buildTestBook(t *testing.T, totalCopies int) core.Book {
	t.Helper()

	book, err := core.BuildBook(
		uuid.New(),
		"Learning Domain-Driven Design",
		"978-1-098-10013-1",
		time.Date(2021, 10, 1, 0, 0, 0, 0, time.UTC),
		uuid.New(),
		totalCopies,
	)
	require.NoError(t, err, "Should build a valid book")

	return book
}

func Test_BuildBook_StartsWithAllCopiesAvailable(t *testing.T) {
	// act
	book := buildTestBook(t, 3)

	// assert
	assert.Equal(t, 3, book.TotalCopies)
	assert.Equal(t, 3, book.AvailableCopies, "New book should have available == total")
}

func Test_BuildBook_Error_WhenTotalCopiesBelowOne(t *testing.T) {
	// act
	_, err := core.BuildBook(uuid.New(), "Title", "ISBN", time.Now(), uuid.New(), 0)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidCapacity)
	assert.ErrorIs(t, err, core.ErrValidation, "Invalid capacity should be a validation error")
}

func Test_CheckoutCopy_DecrementsAvailable(t *testing.T) {
	// arrange
	book := buildTestBook(t, 2)

	// act
	book, err := book.CheckoutCopy()

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, book.AvailableCopies)
	assert.Equal(t, 2, book.TotalCopies, "Total must not change on checkout")
}

func Test_CheckoutCopy_Error_WhenCapacityExhausted(t *testing.T) {
	// arrange
	book := buildTestBook(t, 1)
	book, err := book.CheckoutCopy()
	require.NoError(t, err)
	require.Equal(t, 0, book.AvailableCopies)

	// act
	unchanged, err := book.CheckoutCopy()

	// assert
	assert.ErrorIs(t, err, core.ErrCapacityExhausted)
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Equal(t, 0, unchanged.AvailableCopies, "Failed checkout must not change the counter")
}

func Test_ReturnCopy_IncrementsAvailable(t *testing.T) {
	// arrange
	book := buildTestBook(t, 2)
	book, err := book.CheckoutCopy()
	require.NoError(t, err)

	// act
	book = book.ReturnCopy()

	// assert
	assert.Equal(t, 2, book.AvailableCopies)
}

func Test_ReturnCopy_ClampsAtTotal(t *testing.T) {
	// arrange: total was administratively lowered below the previously
	// available count, so a return must not push available above total
	book := buildTestBook(t, 3)
	book.TotalCopies = 1
	book.AvailableCopies = 1

	// act
	book = book.ReturnCopy()

	// assert
	assert.Equal(t, 1, book.AvailableCopies, "Available must never exceed total")
}

func Test_RecomputeAvailability_DerivesFromActiveLoanCount(t *testing.T) {
	// arrange: drifted counter
	book := buildTestBook(t, 5)
	book.AvailableCopies = 5

	// act
	book = book.RecomputeAvailability(2)

	// assert
	assert.Equal(t, 3, book.AvailableCopies)
}

func Test_RecomputeAvailability_FloorsAtZero(t *testing.T) {
	// arrange
	book := buildTestBook(t, 2)

	// act
	book = book.RecomputeAvailability(5)

	// assert
	assert.Equal(t, 0, book.AvailableCopies)
}

func Test_WithTotalCopies_RecomputesAvailable(t *testing.T) {
	// arrange
	book := buildTestBook(t, 3)
	book.AvailableCopies = 2 // one active loan

	// act
	book, err := book.WithTotalCopies(5, 1)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 5, book.TotalCopies)
	assert.Equal(t, 4, book.AvailableCopies)
}

func Test_WithTotalCopies_AllowsEqualToActiveLoanCount(t *testing.T) {
	// arrange
	book := buildTestBook(t, 3)
	book.AvailableCopies = 2

	// act
	book, err := book.WithTotalCopies(1, 1)

	// assert
	assert.NoError(t, err, "newTotal == activeLoanCount is the allowed boundary")
	assert.Equal(t, 1, book.TotalCopies)
	assert.Equal(t, 0, book.AvailableCopies)
}

func Test_WithTotalCopies_Error_WhenBelowActiveLoanCount(t *testing.T) {
	// arrange
	book := buildTestBook(t, 3)
	book.AvailableCopies = 1 // two active loans

	// act
	unchanged, err := book.WithTotalCopies(1, 2)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidCapacity)
	assert.Equal(t, 3, unchanged.TotalCopies, "Rejected update must not change the book")
	assert.Equal(t, 1, unchanged.AvailableCopies)
}
