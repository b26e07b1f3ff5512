package models

import "strconv"

// FormatMoney renders a monetary amount in the compact notation used across
// quote names and tower displays: amounts of $1M and up render as "$NM",
// amounts of $1K and up as "$NK", smaller amounts as the literal dollar
// figure. Whole values carry no decimals ("$5M", "$25K"); fractional values
// keep them ("$2.5M").
func FormatMoney(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return "$" + compactNumber(amount/1_000_000) + "M"
	case amount >= 1_000:
		return "$" + compactNumber(amount/1_000) + "K"
	default:
		return "$" + compactNumber(amount)
	}
}

func compactNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
