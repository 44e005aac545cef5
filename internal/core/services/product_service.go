package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
	"github.com/SscSPs/storefront_backoffice/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultProductPageSize = 50

type productService struct {
	BaseService
	productRepo   portsrepo.ProductRepositoryFacade
	rates         portssvc.ExchangeRateReaderSvc
	localCurrency string
}

// NewProductService creates the service behind the manual pricing write paths.
// Every write goes through the canonical pricing formula.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, rates portssvc.ExchangeRateReaderSvc, localCurrency string) portssvc.ProductSvcFacade {
	if localCurrency == "" {
		localCurrency = accounting.DefaultLocalCurrency
	}
	return &productService{productRepo: productRepo, rates: rates, localCurrency: strings.ToUpper(localCurrency)}
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultProductPageSize
	}
	products, next, err := s.productRepo.ListProducts(ctx, limit, params.NextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, next, nil
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	now := time.Now().UTC()
	product := domain.Product{
		ProductID:            uuid.NewString(),
		Name:                 req.Name,
		Code:                 req.Code,
		PurchaseCurrency:     strings.ToUpper(req.PurchaseCurrency),
		PurchasePriceForeign: req.PurchasePriceForeign,
		FinancingRatePercent: req.FinancingRatePercent,
		DeliveryCostLocal:    req.DeliveryCostLocal,
		ProfitMarginPercent:  req.ProfitMarginPercent,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			CreatedBy: creatorUserID,
		},
	}

	if err := s.reprice(ctx, &product, now, creatorUserID); err != nil {
		return nil, err
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product", slog.String("code", product.Code))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

func (s *productService) UpdateProductPricing(ctx context.Context, productID string, req dto.UpdateProductPricingRequest, userID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", productID, err)
	}

	if req.PurchasePriceForeign != nil {
		product.PurchasePriceForeign = *req.PurchasePriceForeign
	}
	if req.FinancingRatePercent != nil {
		product.FinancingRatePercent = *req.FinancingRatePercent
	}
	if req.DeliveryCostLocal != nil {
		product.DeliveryCostLocal = *req.DeliveryCostLocal
	}
	if req.ProfitMarginPercent != nil {
		product.ProfitMarginPercent = *req.ProfitMarginPercent
	}

	if err := s.reprice(ctx, product, time.Now().UTC(), userID); err != nil {
		return nil, err
	}
	if err := s.productRepo.SaveProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "Failed to save product pricing", slog.String("product_id", productID))
		return nil, fmt.Errorf("failed to update product pricing: %w", err)
	}

	s.LogInfo(ctx, "Product pricing updated",
		slog.String("product_id", productID),
		slog.String("selling_price", product.SellingPriceLocal.String()))
	return product, nil
}

// reprice derives the pricing outputs of p at the current rate of its purchase currency.
func (s *productService) reprice(ctx context.Context, p *domain.Product, now time.Time, userID string) error {
	if p.PurchaseCurrency == "" {
		p.PurchaseCurrency = s.localCurrency
	}

	rate := decimal.NewFromInt(1)
	var rateUsed *decimal.Decimal
	if p.PurchaseCurrency != s.localCurrency {
		current, err := s.rates.GetCurrentRate(ctx, p.PurchaseCurrency)
		if err != nil {
			return fmt.Errorf("failed to get rate for %s: %w", p.PurchaseCurrency, err)
		}
		rate = current.RateToLocal
		rateUsed = &rate
	}

	if p.ProfitMarginPercent.IsNegative() {
		return fmt.Errorf("%w: profit margin cannot be negative", apperrors.ErrValidation)
	}
	price, err := accounting.ComputePrice(accounting.InputsOf(*p), rate)
	if err != nil {
		return err
	}

	p.PurchasePriceLocal = price.PurchasePriceLocal
	p.RateUsedAtPurchase = rateUsed
	p.SellingPriceLocal = price.SellingPrice
	p.ProfitAmountLocal = price.ProfitAmount
	p.LastPricingUpdate = &now
	p.LastUpdatedAt = now
	p.LastUpdatedBy = userID
	return nil
}
