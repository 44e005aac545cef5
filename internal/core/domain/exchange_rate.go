package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource identifies who produced an exchange rate record.
type RateSource string

const (
	RateSourceManual RateSource = "manual"
	RateSourceAPI    RateSource = "api"
	RateSourceSystem RateSource = "system"
)

// IsValid reports whether s is one of the known sources.
func (s RateSource) IsValid() bool {
	switch s {
	case RateSourceManual, RateSourceAPI, RateSourceSystem:
		return true
	}
	return false
}

// UpdateStatistics is the denormalized outcome of the recalculation triggered by a rate change.
type UpdateStatistics struct {
	PreviousRate       decimal.Decimal `json:"previousRate"`
	AffectedProducts   int             `json:"affectedProducts"`
	PriceIncreaseCount int             `json:"priceIncreaseCount"`
	PriceDecreaseCount int             `json:"priceDecreaseCount"`
	TotalPriceChange   decimal.Decimal `json:"totalPriceChange"`
	AveragePriceChange decimal.Decimal `json:"averagePriceChange"`
	UpdateDurationMs   int64           `json:"updateDurationMs"`
}

// ExchangeRate is one entry of the append-only rate ledger.
// RateToLocal expresses how many local units one unit of CurrencyCode is worth.
type ExchangeRate struct {
	ExchangeRateID   string           `json:"exchangeRateID"` // Empty for synthesized defaults
	CurrencyCode     string           `json:"currencyCode"`
	RateToLocal      decimal.Decimal  `json:"rateToLocal"`
	EffectiveDate    time.Time        `json:"effectiveDate"`
	Source           RateSource       `json:"source"`
	IsActive         bool             `json:"isActive"`
	Notes            string           `json:"notes"`
	UpdateStatistics UpdateStatistics `json:"updateStatistics"`
	AuditFields
}

// IsSynthesized reports whether the record was made up because the ledger had no active rate.
func (r *ExchangeRate) IsSynthesized() bool {
	return r.ExchangeRateID == ""
}

// ChangePercentage returns (rate - previous) / previous * 100, or zero without a usable previous rate.
func ChangePercentage(rate, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return rate.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
}

// RateHistoryEntry is a ledger record enriched with the change against the next older record.
type RateHistoryEntry struct {
	ExchangeRate
	Change           decimal.Decimal `json:"change"`
	ChangePercentage decimal.Decimal `json:"changePercentage"`
}

// RateUpdateStats aggregates the update statistics of the records inside a time window.
type RateUpdateStats struct {
	CurrencyCode          string          `json:"currencyCode"`
	WindowDays            int             `json:"windowDays"`
	TotalUpdates          int             `json:"totalUpdates"`
	TotalAffectedProducts int             `json:"totalAffectedProducts"`
	AvgAffectedProducts   decimal.Decimal `json:"avgAffectedProducts"`
	AvgPriceIncrease      decimal.Decimal `json:"avgPriceIncrease"`
	AvgPriceDecrease      decimal.Decimal `json:"avgPriceDecrease"`
	AvgPriceChange        decimal.Decimal `json:"avgPriceChange"`
	AvgUpdateDurationMs   decimal.Decimal `json:"avgUpdateDurationMs"`
}

// RateUpdateOutcome is the result of updating or simulating a currency's rate.
// Rate is nil for simulations.
type RateUpdateOutcome struct {
	CurrencyCode     string               `json:"currencyCode"`
	NewRate          decimal.Decimal      `json:"newRate"`
	PreviousRate     decimal.Decimal      `json:"previousRate"`
	Change           decimal.Decimal      `json:"change"`
	ChangePercentage decimal.Decimal      `json:"changePercentage"`
	Rate             *ExchangeRate        `json:"rate,omitempty"`
	Report           *RecalculationReport `json:"report"`
}
