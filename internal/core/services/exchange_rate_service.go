package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
	"github.com/SscSPs/storefront_backoffice/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const (
	// DefaultHistoryDays is used when a history or stats window is not given.
	DefaultHistoryDays = 30

	defaultRateCacheTTL = 5 * time.Minute
)

// DefaultExchangeRate is the rate served for a currency that has no active record yet.
var DefaultExchangeRate = decimal.NewFromInt(7300)

type exchangeRateService struct {
	BaseService
	rateRepo      portsrepo.ExchangeRateRepositoryFacade
	cache         *cache.Cache
	cacheTTL      time.Duration
	cacheMu       sync.Mutex
	generations   map[string]uint64 // bumped on every activation, guards cache writes from reads
	localCurrency string
	defaultRate   decimal.Decimal
	now           func() time.Time
}

// ExchangeRateServiceOption configures the ledger service.
type ExchangeRateServiceOption func(*exchangeRateService)

// WithRateCacheTTL sets how long a current rate stays cached.
func WithRateCacheTTL(ttl time.Duration) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithDefaultRate sets the rate synthesized for currencies without an active record.
func WithDefaultRate(rate decimal.Decimal) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if rate.IsPositive() {
			s.defaultRate = rate
		}
	}
}

// WithLocalCurrency sets the currency rates are quoted in.
func WithLocalCurrency(code string) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		if code != "" {
			s.localCurrency = strings.ToUpper(code)
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.now = now
	}
}

// NewExchangeRateService creates the exchange-rate ledger service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, opts ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	s := &exchangeRateService{
		rateRepo:      rateRepo,
		cacheTTL:      defaultRateCacheTTL,
		localCurrency: accounting.DefaultLocalCurrency,
		defaultRate:   DefaultExchangeRate,
		now:           time.Now,
		generations:   make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = cache.New(s.cacheTTL, 2*s.cacheTTL)
	return s
}

func cacheKey(currencyCode string) string {
	return "rate:" + currencyCode
}

func (s *exchangeRateService) generation(code string) uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.generations[code]
}

// cacheIfCurrent caches a rate read from the repository unless an activation
// happened since gen was taken; the read may predate that activation.
func (s *exchangeRateService) cacheIfCurrent(code string, gen uint64, rate domain.ExchangeRate) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.generations[code] == gen {
		s.cache.Set(cacheKey(code), rate, cache.DefaultExpiration)
	}
}

func (s *exchangeRateService) generationSnapshot() map[string]uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	snapshot := make(map[string]uint64, len(s.generations))
	for code, gen := range s.generations {
		snapshot[code] = gen
	}
	return snapshot
}

func (s *exchangeRateService) cacheActivated(rate domain.ExchangeRate) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.generations[rate.CurrencyCode]++
	s.cache.Set(cacheKey(rate.CurrencyCode), rate, cache.DefaultExpiration)
}

func (s *exchangeRateService) GetCurrentRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == s.localCurrency {
		return s.synthesize(code, decimal.NewFromInt(1)), nil
	}

	if cached, found := s.cache.Get(cacheKey(code)); found {
		rate := cached.(domain.ExchangeRate)
		return &rate, nil
	}

	gen := s.generation(code)
	rate, err := s.rateRepo.FindActiveRate(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrLedgerNotFound) && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to get current rate for %s: %w", code, err)
		}
		s.LogDebug(ctx, "No active exchange rate, serving default", slog.String("currency", code))
		rate = s.synthesize(code, s.defaultRate)
	}

	s.cacheIfCurrent(code, gen, *rate)
	return rate, nil
}

func (s *exchangeRateService) synthesize(code string, rate decimal.Decimal) *domain.ExchangeRate {
	now := s.now().UTC()
	return &domain.ExchangeRate{
		CurrencyCode:  code,
		RateToLocal:   rate,
		EffectiveDate: now,
		Source:        domain.RateSourceSystem,
		IsActive:      true,
		Notes:         "default rate",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     string(domain.RateSourceSystem),
			LastUpdatedAt: now,
			LastUpdatedBy: string(domain.RateSourceSystem),
		},
	}
}

func (s *exchangeRateService) RecordNewRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if code == "" || code == s.localCurrency {
		return nil, fmt.Errorf("%w: cannot record a rate for %q", apperrors.ErrUnknownCurrency, req.CurrencyCode)
	}
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate %s must be positive", apperrors.ErrInvalidRate, req.Rate.String())
	}
	source := req.Source
	if source == "" {
		source = domain.RateSourceManual
	}
	if !source.IsValid() {
		return nil, fmt.Errorf("%w: unknown rate source %q", apperrors.ErrValidation, string(source))
	}

	now := s.now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyCode:   code,
		RateToLocal:    req.Rate,
		EffectiveDate:  now,
		Source:         source,
		IsActive:       true,
		Notes:          req.Notes,
		// PreviousRate is filled in by the repository from the record being replaced.
		UpdateStatistics: domain.UpdateStatistics{
			PreviousRate:       decimal.Zero,
			TotalPriceChange:   decimal.Zero,
			AveragePriceChange: decimal.Zero,
		},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	stored, err := s.rateRepo.ActivateExchangeRate(ctx, rate)
	if err != nil {
		s.LogError(ctx, err, "Failed to activate exchange rate", slog.String("currency", code))
		return nil, fmt.Errorf("failed to record exchange rate: %w", err)
	}

	s.cacheActivated(*stored)
	s.LogInfo(ctx, "Exchange rate recorded",
		slog.String("currency", code),
		slog.String("rate", stored.RateToLocal.String()),
		slog.String("previous_rate", stored.UpdateStatistics.PreviousRate.String()),
		slog.String("source", string(stored.Source)))
	return stored, nil
}

func (s *exchangeRateService) AttachStatistics(ctx context.Context, rateID string, stats domain.UpdateStatistics) error {
	if err := s.rateRepo.UpdateRateStatistics(ctx, rateID, stats); err != nil {
		return fmt.Errorf("failed to attach statistics to rate %s: %w", rateID, err)
	}

	// The currency is unknown until the record is read, so take every generation up front.
	gens := s.generationSnapshot()
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, rateID)
	if err != nil {
		s.LogWarn(ctx, "Could not refresh cached rate after statistics update", slog.String("rate_id", rateID), slog.String("error", err.Error()))
		return nil
	}
	if rate.IsActive {
		s.cacheIfCurrent(rate.CurrencyCode, gens[rate.CurrencyCode], *rate)
	}
	return nil
}

func (s *exchangeRateService) window(windowDays int) (int, time.Time) {
	if windowDays <= 0 {
		windowDays = DefaultHistoryDays
	}
	return windowDays, s.now().UTC().AddDate(0, 0, -windowDays)
}

func (s *exchangeRateService) GetHistory(ctx context.Context, currencyCode string, windowDays int) ([]domain.RateHistoryEntry, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	_, since := s.window(windowDays)

	rates, err := s.rateRepo.ListRatesSince(ctx, code, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate history for %s: %w", code, err)
	}

	entries := make([]domain.RateHistoryEntry, len(rates))
	for i, rate := range rates {
		previous := rate.UpdateStatistics.PreviousRate
		if i+1 < len(rates) {
			previous = rates[i+1].RateToLocal
		}
		entry := domain.RateHistoryEntry{ExchangeRate: rate, Change: decimal.Zero, ChangePercentage: decimal.Zero}
		if previous.IsPositive() {
			entry.Change = rate.RateToLocal.Sub(previous)
			entry.ChangePercentage = domain.ChangePercentage(rate.RateToLocal, previous).Round(2)
		}
		entries[i] = entry
	}
	return entries, nil
}

func (s *exchangeRateService) GetUpdateStats(ctx context.Context, currencyCode string, windowDays int) (*domain.RateUpdateStats, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	days, since := s.window(windowDays)

	rates, err := s.rateRepo.ListRatesSince(ctx, code, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates for stats of %s: %w", code, err)
	}

	stats := &domain.RateUpdateStats{
		CurrencyCode:        code,
		WindowDays:          days,
		TotalUpdates:        len(rates),
		AvgAffectedProducts: decimal.Zero,
		AvgPriceIncrease:    decimal.Zero,
		AvgPriceDecrease:    decimal.Zero,
		AvgPriceChange:      decimal.Zero,
		AvgUpdateDurationMs: decimal.Zero,
	}
	if len(rates) == 0 {
		return stats, nil
	}

	var increases, decreases int
	var durationMs int64
	avgChange := decimal.Zero
	for _, rate := range rates {
		st := rate.UpdateStatistics
		stats.TotalAffectedProducts += st.AffectedProducts
		increases += st.PriceIncreaseCount
		decreases += st.PriceDecreaseCount
		durationMs += st.UpdateDurationMs
		avgChange = avgChange.Add(st.AveragePriceChange)
	}

	n := decimal.NewFromInt(int64(len(rates)))
	stats.AvgAffectedProducts = decimal.NewFromInt(int64(stats.TotalAffectedProducts)).Div(n).Round(2)
	stats.AvgPriceIncrease = decimal.NewFromInt(int64(increases)).Div(n).Round(2)
	stats.AvgPriceDecrease = decimal.NewFromInt(int64(decreases)).Div(n).Round(2)
	stats.AvgPriceChange = avgChange.Div(n).Round(2)
	stats.AvgUpdateDurationMs = decimal.NewFromInt(durationMs).Div(n).Round(2)
	return stats, nil
}
