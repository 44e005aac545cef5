package accounting

import (
	"fmt"
	"strings"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	ten     = decimal.NewFromInt(10)
	five    = decimal.NewFromInt(5)
	eleven  = decimal.NewFromInt(11)
	twenty1 = decimal.NewFromInt(21)
)

// TaxSchedule maps each tax category to its rate in percent.
type TaxSchedule map[domain.TaxCategory]decimal.Decimal

// DefaultTaxSchedule is the fixed IVA schedule: exempt 0%, reduced 5%, standard 10%.
func DefaultTaxSchedule() TaxSchedule {
	return TaxSchedule{
		domain.TaxExempt:   decimal.Zero,
		domain.TaxReduced:  five,
		domain.TaxStandard: ten,
	}
}

// ParseTaxCategory normalizes a category name, accepting the iva_5 / iva_10 aliases.
func ParseTaxCategory(s string) (domain.TaxCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exempt", "exenta", "exento":
		return domain.TaxExempt, nil
	case "reduced", "iva_5", "iva5":
		return domain.TaxReduced, nil
	case "standard", "iva_10", "iva10":
		return domain.TaxStandard, nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidTaxCategory, s)
}

// TaxCalculator splits line amounts using its schedule.
type TaxCalculator struct {
	Schedule TaxSchedule
}

// NewTaxCalculator returns a calculator over the default schedule.
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{Schedule: DefaultTaxSchedule()}
}

// ComputeTax splits amount with the default schedule.
func ComputeTax(amount decimal.Decimal, category domain.TaxCategory, priceIncludesTax bool) (domain.TaxCalculation, error) {
	return NewTaxCalculator().Compute(amount, category, priceIncludesTax)
}

// Compute splits amount into base and tax for category.
// With priceIncludesTax the amount is gross and the tax is backed out; otherwise it is added on top.
// Amounts must be whole local-currency units; results are rounded half-up to whole units.
func (c *TaxCalculator) Compute(amount decimal.Decimal, category domain.TaxCategory, priceIncludesTax bool) (domain.TaxCalculation, error) {
	if amount.IsNegative() {
		return domain.TaxCalculation{}, fmt.Errorf("%w: amount %s is negative", apperrors.ErrInvalidAmount, amount.String())
	}
	if !amount.Equal(amount.Truncate(0)) {
		return domain.TaxCalculation{}, fmt.Errorf("%w: amount %s is not a whole local unit", apperrors.ErrInvalidAmount, amount.String())
	}
	rate, ok := c.Schedule[category]
	if !ok {
		return domain.TaxCalculation{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidTaxCategory, string(category))
	}

	if rate.IsZero() {
		return domain.TaxCalculation{
			Category:       category,
			BaseAmount:     amount,
			TaxAmount:      decimal.Zero,
			TotalAmount:    amount,
			TaxRatePercent: decimal.Zero,
		}, nil
	}

	if priceIncludesTax {
		tax := backOutTax(amount, rate)
		return domain.TaxCalculation{
			Category:       category,
			BaseAmount:     amount.Sub(tax),
			TaxAmount:      tax,
			TotalAmount:    amount,
			TaxRatePercent: rate,
		}, nil
	}

	tax := RoundLocal(amount.Mul(rate).Div(hundred))
	return domain.TaxCalculation{
		Category:       category,
		BaseAmount:     amount,
		TaxAmount:      tax,
		TotalAmount:    amount.Add(tax),
		TaxRatePercent: rate,
	}, nil
}

// backOutTax extracts the tax contained in a gross amount. The 10% and 5% rates use the
// exact divisors 11 and 21; rounding of the general formula differs from them at the margins.
func backOutTax(gross, rate decimal.Decimal) decimal.Decimal {
	switch {
	case rate.Equal(ten):
		return RoundLocal(gross.Div(eleven))
	case rate.Equal(five):
		return RoundLocal(gross.Div(twenty1))
	default:
		return RoundLocal(gross.Mul(rate).Div(hundred.Add(rate)))
	}
}

// RoundLocal rounds to whole local-currency units, half-up for non-negative values.
func RoundLocal(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
