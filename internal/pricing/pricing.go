// Package pricing holds the rental pricing arithmetic. Everything here is
// pure; callers are responsible for refusing checkout on a zero day count.
package pricing

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// RentalDays returns the number of billable 24-hour units between start and
// end, rounded up. Degenerate input (zero times, end before start) yields 0.
func RentalDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}

	diff := end.Sub(start)
	if diff <= 0 {
		return 0
	}

	return int(math.Ceil(float64(diff) / float64(day)))
}

// LineTotals computes the derived money fields of a cart line.
// The deposit is charged per unit and is independent of the rental length.
func LineTotals(pricePerDay, securityDeposit float64, rentalDays, quantity int) (subtotal, depositTotal float64) {
	if rentalDays < 0 || quantity < 0 {
		return 0, 0
	}

	subtotal = pricePerDay * float64(rentalDays) * float64(quantity)
	depositTotal = securityDeposit * float64(quantity)

	return subtotal, depositTotal
}
