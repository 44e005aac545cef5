package services

import (
	portsrepo "github.com/SscSPs/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo, cfg.LocalCurrency)

	// The ledger goes first; every pricing path reads rates through it.
	container.ExchangeRate = NewExchangeRateService(
		repos.ExchangeRateRepo,
		WithLocalCurrency(cfg.LocalCurrency),
		WithDefaultRate(cfg.DefaultExchangeRate),
		WithRateCacheTTL(cfg.RateCacheTTL),
	)

	container.Recalculation = NewRecalculationService(
		repos.ProductRepo,
		WithRecalcWorkers(cfg.RecalcWorkers),
		WithRecalcTimeout(cfg.RecalcTimeout),
	)

	container.PricingAdmin = NewPricingAdminService(container.ExchangeRate, container.Recalculation)
	container.Product = NewProductService(repos.ProductRepo, container.ExchangeRate, cfg.LocalCurrency)
	container.Sale = NewSaleService(repos.ProductRepo, repos.CurrencyRepo, container.ExchangeRate, cfg.LocalCurrency)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade     = (*currencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)
	_ portssvc.RecalculationSvc      = (*recalculationService)(nil)
	_ portssvc.PricingAdminSvc       = (*pricingAdminService)(nil)
	_ portssvc.ProductSvcFacade      = (*productService)(nil)
	_ portssvc.SaleSvc               = (*saleService)(nil)
)
