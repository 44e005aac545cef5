package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
)

// ExchangeRateReader defines read operations for the rate ledger
type ExchangeRateReader interface {
	// FindActiveRate returns the active record of a currency, or apperrors.ErrLedgerNotFound.
	FindActiveRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)

	// FindExchangeRateByID retrieves a ledger record by its ID.
	FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error)

	// ListRatesSince returns every record of a currency created at or after since, most recent first.
	ListRatesSince(ctx context.Context, currencyCode string, since time.Time) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for the rate ledger
type ExchangeRateWriter interface {
	// ActivateExchangeRate deactivates every active record of rate.CurrencyCode and inserts rate
	// as the new active record, atomically. When an active record existed its rate is stored in
	// UpdateStatistics.PreviousRate. The stored record is returned.
	ActivateExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error)

	// UpdateRateStatistics overwrites the statistics of an existing record.
	UpdateRateStatistics(ctx context.Context, rateID string, stats domain.UpdateStatistics) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
