// Package memory holds a process-local implementation of the repository ports.
// It backs STORAGE_DRIVER=memory and the adapter tests.
package memory

import (
	"sync"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/storefront_backoffice/internal/core/ports/repositories"
)

// Store keeps every table behind a single lock, so multi-table writes are atomic.
type Store struct {
	mu         sync.RWMutex
	currencies map[string]domain.Currency
	rates      map[string]domain.ExchangeRate // by exchange_rate_id
	rateOrder  []string                       // insertion order of rates
	products   map[string]domain.Product
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		currencies: make(map[string]domain.Currency),
		rates:      make(map[string]domain.ExchangeRate),
		products:   make(map[string]domain.Product),
	}
}

// NewSeededStore returns a store holding the local currency and the US dollar.
func NewSeededStore(localCurrency string) *Store {
	s := NewStore()
	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: "system", LastUpdatedAt: now, LastUpdatedBy: "system"}
	s.currencies[localCurrency] = domain.Currency{
		CurrencyCode: localCurrency, Symbol: "₲", Name: "Guaraní", PluralName: "guaraníes",
		Precision: 0, IsLocal: true, AuditFields: audit,
	}
	if localCurrency != "USD" {
		s.currencies["USD"] = domain.Currency{
			CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", PluralName: "dólares estadounidenses",
			Precision: 2, AuditFields: audit,
		}
	}
	return s
}

// NewRepositoryProvider builds a provider whose repositories all share one seeded store.
func NewRepositoryProvider(localCurrency string) portsrepo.RepositoryProvider {
	return NewSeededStore(localCurrency).Provider()
}

// Provider exposes s through the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     s,
		ExchangeRateRepo: s,
		ProductRepo:      s,
	}
}

var (
	_ portsrepo.CurrencyRepositoryFacade     = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*Store)(nil)
	_ portsrepo.ProductRepositoryFacade      = (*Store)(nil)
)
