// Package core holds the sales dataset and the pure derivation functions
// that turn a category selection into chart series and a formatted total.
package core

import "strconv"

// FormatDollars renders a whole-dollar amount with a currency prefix and
// thousands separators, zero decimal places (e.g. 119000 -> "$119,000").
func FormatDollars(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if neg {
		return "-$" + string(out)
	}
	return "$" + string(out)
}
