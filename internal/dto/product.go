package dto

import (
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest registers a product with its pricing inputs. The selling price is derived.
type CreateProductRequest struct {
	Name                 string          `json:"name" binding:"required"`
	Code                 string          `json:"code" binding:"required"`
	PurchaseCurrency     string          `json:"purchaseCurrency" binding:"required,currency_code"`
	PurchasePriceForeign decimal.Decimal `json:"purchasePriceForeign"`
	FinancingRatePercent decimal.Decimal `json:"financingRatePercent"`
	DeliveryCostLocal    decimal.Decimal `json:"deliveryCostLocal"`
	ProfitMarginPercent  decimal.Decimal `json:"profitMarginPercent"`
}

// UpdateProductPricingRequest is a manual edit of the pricing inputs. Nil fields keep their value.
type UpdateProductPricingRequest struct {
	PurchasePriceForeign *decimal.Decimal `json:"purchasePriceForeign"`
	FinancingRatePercent *decimal.Decimal `json:"financingRatePercent"`
	DeliveryCostLocal    *decimal.Decimal `json:"deliveryCostLocal"`
	ProfitMarginPercent  *decimal.Decimal `json:"profitMarginPercent"`
}

// RecalculateProductsRequest runs the batch engine directly.
type RecalculateProductsRequest struct {
	Currency        string                `json:"currency" binding:"required,currency_code"`
	NewExchangeRate decimal.Decimal       `json:"newExchangeRate" binding:"required"`
	ProductIDs      []string              `json:"productIds"`
	DryRun          bool                  `json:"dryRun"`
	Formula         domain.PricingFormula `json:"formula" binding:"omitempty,oneof=margin_on_price markup_on_cost"`
}

// ListProductsParams holds the query parameters of the product listing.
type ListProductsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,gt=0,lte=200"`
	NextToken *string `form:"nextToken"`
}

// ProductResponse is the pricing facet of a product.
type ProductResponse struct {
	ProductID            string           `json:"productID"`
	Name                 string           `json:"name"`
	Code                 string           `json:"code"`
	PurchaseCurrency     string           `json:"purchaseCurrency"`
	PurchasePriceForeign decimal.Decimal  `json:"purchasePriceForeign"`
	PurchasePriceLocal   decimal.Decimal  `json:"purchasePriceLocal"`
	RateUsedAtPurchase   *decimal.Decimal `json:"rateUsedAtPurchase,omitempty"`
	FinancingRatePercent decimal.Decimal  `json:"financingRatePercent"`
	DeliveryCostLocal    decimal.Decimal  `json:"deliveryCostLocal"`
	ProfitMarginPercent  decimal.Decimal  `json:"profitMarginPercent"`
	SellingPriceLocal    decimal.Decimal  `json:"sellingPriceLocal"`
	ProfitAmountLocal    decimal.Decimal  `json:"profitAmountLocal"`
	LastPricingUpdate    *time.Time       `json:"lastPricingUpdate,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
	LastUpdatedAt        time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy        string           `json:"lastUpdatedBy"`
}

// ListProductsResponse is one page of products.
type ListProductsResponse struct {
	Products  []ProductResponse `json:"products"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToProductResponse converts a domain.Product to its response DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:            p.ProductID,
		Name:                 p.Name,
		Code:                 p.Code,
		PurchaseCurrency:     p.PurchaseCurrency,
		PurchasePriceForeign: p.PurchasePriceForeign,
		PurchasePriceLocal:   p.PurchasePriceLocal,
		RateUsedAtPurchase:   p.RateUsedAtPurchase,
		FinancingRatePercent: p.FinancingRatePercent,
		DeliveryCostLocal:    p.DeliveryCostLocal,
		ProfitMarginPercent:  p.ProfitMarginPercent,
		SellingPriceLocal:    p.SellingPriceLocal,
		ProfitAmountLocal:    p.ProfitAmountLocal,
		LastPricingUpdate:    p.LastPricingUpdate,
		CreatedAt:            p.CreatedAt,
		LastUpdatedAt:        p.LastUpdatedAt,
		LastUpdatedBy:        p.LastUpdatedBy,
	}
}

// ToListProductsResponse converts a page of products.
func ToListProductsResponse(products []domain.Product, nextToken *string) ListProductsResponse {
	res := ListProductsResponse{Products: make([]ProductResponse, len(products)), NextToken: nextToken}
	for i := range products {
		res.Products[i] = ToProductResponse(&products[i])
	}
	return res
}

// ToRecalculationRequest converts the request into an engine run attributed to updatedBy.
func (r RecalculateProductsRequest) ToRecalculationRequest(updatedBy string) domain.RecalculationRequest {
	return domain.RecalculationRequest{
		Currency:  r.Currency,
		NewRate:   r.NewExchangeRate,
		Apply:     !r.DryRun,
		TargetIDs: r.ProductIDs,
		Formula:   r.Formula,
		UpdatedBy: updatedBy,
	}
}
