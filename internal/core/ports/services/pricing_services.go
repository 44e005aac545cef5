package services

import (
	"context"

	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
)

// RecalculationSvc is the batch price recalculation engine.
type RecalculationSvc interface {
	// Recalculate reprices every candidate of req.Currency at req.NewRate.
	// Per-product failures are reported, not returned.
	Recalculate(ctx context.Context, req domain.RecalculationRequest) (*domain.RecalculationReport, error)
}

// PricingAdminSvc drives rate changes from the back-office.
type PricingAdminSvc interface {
	UpdateExchangeRate(ctx context.Context, req dto.UpdateExchangeRateRequest, userID string) (*domain.RateUpdateOutcome, error)
	SimulateExchangeRate(ctx context.Context, req dto.SimulateExchangeRateRequest) (*domain.RateUpdateOutcome, error)
}

// ProductReaderSvc defines read operations on product pricing
type ProductReaderSvc interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, *string, error)
}

// ProductWriterSvc defines the manual pricing write paths
type ProductWriterSvc interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)
	UpdateProductPricing(ctx context.Context, productID string, req dto.UpdateProductPricingRequest, userID string) (*domain.Product, error)
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
