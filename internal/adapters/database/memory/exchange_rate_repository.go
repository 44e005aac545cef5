package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
)

func (s *Store) FindActiveRate(_ context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.activeRateLocked(currencyCode); ok {
		return &r, nil
	}
	return nil, apperrors.ErrLedgerNotFound
}

func (s *Store) activeRateLocked(currencyCode string) (domain.ExchangeRate, bool) {
	for _, id := range s.rateOrder {
		r := s.rates[id]
		if r.CurrencyCode == currencyCode && r.IsActive {
			return r, true
		}
	}
	return domain.ExchangeRate{}, false
}

func (s *Store) FindExchangeRateByID(_ context.Context, rateID string) (*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rates[rateID]
	if !ok {
		return nil, apperrors.NewNotFoundError("exchange rate " + rateID + " not found")
	}
	return &r, nil
}

// ListRatesSince returns the records of a currency created at or after since, most recent first.
func (s *Store) ListRatesSince(_ context.Context, currencyCode string, since time.Time) ([]domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ExchangeRate, 0)
	for i := len(s.rateOrder) - 1; i >= 0; i-- {
		r := s.rates[s.rateOrder[i]]
		if r.CurrencyCode == currencyCode && !r.CreatedAt.Before(since) {
			out = append(out, r)
		}
	}
	// Insertion order breaks ties between equal timestamps.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ActivateExchangeRate deactivates the active record of the currency and appends rate as
// the new active one under the write lock.
func (s *Store) ActivateExchangeRate(_ context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rates[rate.ExchangeRateID]; exists {
		return nil, fmt.Errorf("%w: exchange rate %s", apperrors.ErrDuplicate, rate.ExchangeRateID)
	}

	for _, id := range s.rateOrder {
		r := s.rates[id]
		if r.CurrencyCode != rate.CurrencyCode || !r.IsActive {
			continue
		}
		rate.UpdateStatistics.PreviousRate = r.RateToLocal
		r.IsActive = false
		r.LastUpdatedAt = rate.CreatedAt
		r.LastUpdatedBy = rate.CreatedBy
		s.rates[id] = r
	}

	rate.IsActive = true
	s.rates[rate.ExchangeRateID] = rate
	s.rateOrder = append(s.rateOrder, rate.ExchangeRateID)
	return &rate, nil
}

func (s *Store) UpdateRateStatistics(_ context.Context, rateID string, stats domain.UpdateStatistics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rates[rateID]
	if !ok {
		return apperrors.NewNotFoundError("exchange rate " + rateID + " not found")
	}
	r.UpdateStatistics = stats
	r.LastUpdatedAt = time.Now().UTC()
	s.rates[rateID] = r
	return nil
}
