package utils

import (
	"strings"

	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 7300.4 with PYG (precision 0) returns "7300"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(int32(currency.Precision)).StringFixed(int32(currency.Precision))
}

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).StringFixed(int32(precision))
}

// FormatGrouped renders an amount with '.' thousands separators and ',' decimals, the es-PY
// convention used on printed documents. Example: 7300 with precision 0 returns "7.300".
func FormatGrouped(amount decimal.Decimal, precision int) string {
	s := FormatWithPrecision(amount.Abs(), precision)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if amount.Round(int32(precision)).IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

// FormatRate renders a rate to local currency for display, e.g. "7.300 Gs".
func FormatRate(rate decimal.Decimal) string {
	return FormatGrouped(rate, 0) + " Gs"
}
