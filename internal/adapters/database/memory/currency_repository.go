package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
)

// SaveCurrency inserts or updates a currency. Only one currency may be local.
func (s *Store) SaveCurrency(_ context.Context, currency domain.Currency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.currencies[currency.CurrencyCode]
	if ok {
		currency.CreatedAt = existing.CreatedAt
		currency.CreatedBy = existing.CreatedBy
		currency.IsLocal = existing.IsLocal
	} else if currency.IsLocal {
		for _, c := range s.currencies {
			if c.IsLocal {
				return fmt.Errorf("%w: only one local currency is allowed", apperrors.ErrDuplicate)
			}
		}
	}
	s.currencies[currency.CurrencyCode] = currency
	return nil
}

func (s *Store) FindCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.currencies[currencyCode]
	if !ok {
		return nil, apperrors.NewNotFoundError("currency " + currencyCode + " not found")
	}
	return &c, nil
}

func (s *Store) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Currency, 0, len(s.currencies))
	for _, c := range s.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}
