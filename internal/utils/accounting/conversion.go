package accounting

import (
	"fmt"
	"strings"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DefaultLocalCurrency is the currency selling prices and taxes are expressed in.
const DefaultLocalCurrency = "PYG"

// Conversion is the result of converting an amount between two currencies.
type Conversion struct {
	OriginalAmount decimal.Decimal `json:"originalAmount"`
	Amount         decimal.Decimal `json:"amount"`
	Rate           decimal.Decimal `json:"rate"`
	From           string          `json:"from"`
	To             string          `json:"to"`
}

// Converter converts amounts using rates quoted as "1 foreign unit = rate local units".
type Converter struct {
	LocalCurrency string
}

// NewConverter returns a converter for the given local currency.
func NewConverter(localCurrency string) *Converter {
	if localCurrency == "" {
		localCurrency = DefaultLocalCurrency
	}
	return &Converter{LocalCurrency: strings.ToUpper(localCurrency)}
}

// Convert converts with the default local currency.
func Convert(amount decimal.Decimal, from, to string, rate decimal.Decimal) (Conversion, error) {
	return NewConverter(DefaultLocalCurrency).Convert(amount, from, to, rate)
}

// Convert converts amount from one currency to another.
// Identical currencies convert to themselves regardless of rate. Any pair that does not
// involve the local currency pivots through it with the same rate on both legs.
func (c *Converter) Convert(amount decimal.Decimal, from, to string, rate decimal.Decimal) (Conversion, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return Conversion{OriginalAmount: amount, Amount: amount, Rate: decimal.NewFromInt(1), From: from, To: to}, nil
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return Conversion{}, fmt.Errorf("%w: rate %s must be positive", apperrors.ErrInvalidRate, rate.String())
	}

	var converted decimal.Decimal
	switch {
	case from == c.LocalCurrency:
		converted = amount.Div(rate)
	case to == c.LocalCurrency:
		converted = amount.Mul(rate)
	default:
		converted = amount.Mul(rate).Div(rate)
	}

	return Conversion{
		OriginalAmount: amount,
		Amount:         c.round(converted, from, to),
		Rate:           rate,
		From:           from,
		To:             to,
	}, nil
}

// ConvertCross converts between two foreign currencies using each one's rate to local.
func (c *Converter) ConvertCross(amount decimal.Decimal, from, to string, fromRate, toRate decimal.Decimal) (Conversion, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return Conversion{OriginalAmount: amount, Amount: amount, Rate: decimal.NewFromInt(1), From: from, To: to}, nil
	}
	if fromRate.LessThanOrEqual(decimal.Zero) || toRate.LessThanOrEqual(decimal.Zero) {
		return Conversion{}, fmt.Errorf("%w: cross rates must be positive", apperrors.ErrInvalidRate)
	}
	local := amount.Mul(fromRate)
	return Conversion{
		OriginalAmount: amount,
		Amount:         c.round(local.Div(toRate), from, to),
		Rate:           fromRate.Div(toRate),
		From:           from,
		To:             to,
	}, nil
}

func (c *Converter) round(amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == c.LocalCurrency && to == c.LocalCurrency {
		return amount.Round(0)
	}
	return amount.Round(2)
}
