package dto

import (
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest is the ledger-level input for recording a new active rate.
type CreateExchangeRateRequest struct {
	CurrencyCode string            `json:"currencyCode" binding:"required,currency_code"`
	Rate         decimal.Decimal   `json:"rate" binding:"required"`
	Source       domain.RateSource `json:"source"`
	Notes        string            `json:"notes"`
}

// UpdateExchangeRateRequest records a new rate and, unless disabled, reprices the catalog.
type UpdateExchangeRateRequest struct {
	Currency        string            `json:"currency" binding:"required,currency_code"`
	NewRate         decimal.Decimal   `json:"newRate" binding:"required"`
	Source          domain.RateSource `json:"source"`
	Notes           string            `json:"notes"`
	ApplyToProducts *bool             `json:"applyToProducts"` // Defaults to true
}

// ShouldApply reports whether products must be repriced.
func (r UpdateExchangeRateRequest) ShouldApply() bool {
	return r.ApplyToProducts == nil || *r.ApplyToProducts
}

// SimulateExchangeRateRequest previews the effect of a rate without writing anything.
type SimulateExchangeRateRequest struct {
	Currency   string                `json:"currency" binding:"required,currency_code"`
	NewRate    decimal.Decimal       `json:"newRate" binding:"required"`
	ProductIDs []string              `json:"productIds"`
	Formula    domain.PricingFormula `json:"formula" binding:"omitempty,oneof=margin_on_price markup_on_cost"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID   string                  `json:"exchangeRateID,omitempty"`
	CurrencyCode     string                  `json:"currencyCode"`
	Rate             decimal.Decimal         `json:"rate"`
	FormattedRate    string                  `json:"formattedRate"`
	EffectiveDate    time.Time               `json:"effectiveDate"`
	Source           domain.RateSource       `json:"source"`
	IsActive         bool                    `json:"isActive"`
	IsDefault        bool                    `json:"isDefault"`
	Notes            string                  `json:"notes,omitempty"`
	UpdateStatistics domain.UpdateStatistics `json:"updateStatistics"`
	CreatedAt        time.Time               `json:"createdAt"`
	CreatedBy        string                  `json:"createdBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO.
// formatted is the human readable rate, e.g. "7.300 Gs".
func ToExchangeRateResponse(rate *domain.ExchangeRate, formatted string) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		CurrencyCode:     rate.CurrencyCode,
		Rate:             rate.RateToLocal,
		FormattedRate:    formatted,
		EffectiveDate:    rate.EffectiveDate,
		Source:           rate.Source,
		IsActive:         rate.IsActive,
		IsDefault:        rate.IsSynthesized(),
		Notes:            rate.Notes,
		UpdateStatistics: rate.UpdateStatistics,
		CreatedAt:        rate.CreatedAt,
		CreatedBy:        rate.CreatedBy,
	}
}

// RateHistoryResponse lists ledger records, most recent first.
type RateHistoryResponse struct {
	CurrencyCode string                    `json:"currencyCode"`
	Days         int                       `json:"days"`
	Entries      []domain.RateHistoryEntry `json:"entries"`
}

// RateUpdateResponse is returned by both the update and the simulate operations.
type RateUpdateResponse struct {
	CurrencyCode     string                      `json:"currencyCode"`
	NewRate          decimal.Decimal             `json:"newRate"`
	PreviousRate     decimal.Decimal             `json:"previousRate"`
	Change           decimal.Decimal             `json:"change"`
	ChangePercentage decimal.Decimal             `json:"changePercentage"`
	Rate             *ExchangeRateResponse       `json:"rate,omitempty"`
	Report           *domain.RecalculationReport `json:"report"`
}

// ToRateUpdateResponse converts an outcome to its response DTO.
func ToRateUpdateResponse(o *domain.RateUpdateOutcome, formatted string) RateUpdateResponse {
	res := RateUpdateResponse{
		CurrencyCode:     o.CurrencyCode,
		NewRate:          o.NewRate,
		PreviousRate:     o.PreviousRate,
		Change:           o.Change,
		ChangePercentage: o.ChangePercentage.Round(2),
		Report:           o.Report,
	}
	if o.Rate != nil {
		rate := ToExchangeRateResponse(o.Rate, formatted)
		res.Rate = &rate
	}
	return res
}

// RateQueryParams selects a currency and a look-back window for the ledger reads.
type RateQueryParams struct {
	Currency string `form:"currency" binding:"omitempty,currency_code"` // Defaults to USD
	Days     int    `form:"days" binding:"omitempty,gt=0,lte=3650"`     // Defaults to 30
}
