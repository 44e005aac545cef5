package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate represents a row of the exchange_rates ledger.
// The update statistics are stored as flat columns.
type ExchangeRate struct {
	ExchangeRateID     string          `json:"exchangeRateID"` // Primary Key (UUID)
	CurrencyCode       string          `json:"currencyCode"`   // FK -> Currency.currencyCode
	RateToLocal        decimal.Decimal `json:"rateToLocal"`
	EffectiveDate      time.Time       `json:"effectiveDate"`
	Source             string          `json:"source"`
	IsActive           bool            `json:"isActive"`
	Notes              string          `json:"notes"`
	PreviousRate       decimal.Decimal `json:"previousRate"`
	AffectedProducts   int             `json:"affectedProducts"`
	PriceIncreaseCount int             `json:"priceIncreaseCount"`
	PriceDecreaseCount int             `json:"priceDecreaseCount"`
	TotalPriceChange   decimal.Decimal `json:"totalPriceChange"`
	AveragePriceChange decimal.Decimal `json:"averagePriceChange"`
	UpdateDurationMs   int64           `json:"updateDurationMs"`
	AuditFields
}
