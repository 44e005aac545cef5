package services

import (
	"context"

	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
)

// ExchangeRateReaderSvc defines read operations on the rate ledger.
// Reads never fail because a currency is unknown.
type ExchangeRateReaderSvc interface {
	// GetCurrentRate returns the active rate or a synthesized, unsaved default.
	GetCurrentRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)

	// GetHistory returns the records of the last windowDays days, most recent first.
	GetHistory(ctx context.Context, currencyCode string, windowDays int) ([]domain.RateHistoryEntry, error)

	// GetUpdateStats aggregates the update statistics of the last windowDays days.
	GetUpdateStats(ctx context.Context, currencyCode string, windowDays int) (*domain.RateUpdateStats, error)
}

// ExchangeRateWriterSvc defines write operations on the rate ledger
type ExchangeRateWriterSvc interface {
	// RecordNewRate stores a new active rate, deactivating the previous one.
	RecordNewRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// AttachStatistics stores the recalculation outcome on a record.
	AttachStatistics(ctx context.Context, rateID string, stats domain.UpdateStatistics) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
