package repositories

import (
	"context"

	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
)

// ProductReader defines read operations on the pricing facet of products
type ProductReader interface {
	// FindProductByID retrieves a product, or apperrors.ErrNotFound.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListPricingCandidates returns the products purchased in currencyCode that carry a purchase
	// price and a purchase rate, in a stable order. A non-empty productIDs restricts the result.
	ListPricingCandidates(ctx context.Context, currencyCode string, productIDs []string) ([]domain.Product, error)

	// ListProducts pages through all products ordered by creation time.
	ListProducts(ctx context.Context, limit int, nextToken *string) ([]domain.Product, *string, error)
}

// ProductWriter defines write operations on the pricing facet of products
type ProductWriter interface {
	// SaveProduct inserts or fully replaces a product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProductPricing overwrites the derived pricing fields of one product.
	UpdateProductPricing(ctx context.Context, productID string, update domain.PricingUpdate) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}
