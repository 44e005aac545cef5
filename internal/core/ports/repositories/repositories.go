package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Both the Postgres and the in-memory adapters build one.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	ProductRepo      ProductRepositoryFacade
}
