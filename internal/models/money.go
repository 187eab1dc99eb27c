package models

import "github.com/shopspring/decimal"

// CurrencySymbol prefixes every rendered amount
const CurrencySymbol = "$"

// FormatMoney renders an amount with two fraction digits, e.g. "$16.00"
func FormatMoney(amount decimal.Decimal) string {
	return CurrencySymbol + amount.StringFixed(2)
}

// ParseMoney parses a decimal price such as "6.00"
func ParseMoney(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
