// Package valueobject contains domain value objects for the project ledger.
package valueobject

import (
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places money values are kept at.
const MoneyPlaces int32 = 2

// RoundMoney rounds an amount half away from zero to whole cents.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyPlaces)
}

// FloorMoney rounds an amount down to whole cents.
func FloorMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundFloor(MoneyPlaces)
}

// SplitEvenly divides total into n parts of floor(total/n) cents each, with the
// remainder absorbed by the last part, so the parts always sum to total exactly.
// n must be positive.
func SplitEvenly(total decimal.Decimal, n int) []decimal.Decimal {
	total = RoundMoney(total)
	parts := make([]decimal.Decimal, n)

	share := FloorMoney(total.Div(decimal.NewFromInt(int64(n))))
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = share
		allocated = allocated.Add(share)
	}
	parts[n-1] = total.Sub(allocated)

	return parts
}

// SumMoney adds amounts together.
func SumMoney(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// FormatMoney renders an amount with two decimal places.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPlaces)
}
