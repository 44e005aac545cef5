package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product holds the pricing facet of a catalog product.
// SellingPriceLocal is denormalized and must always match the canonical pricing formula
// applied to the remaining fields.
type Product struct {
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
	AuditFields
}

// IsRecalculable reports whether the product takes part in exchange-rate driven recalculation.
func (p *Product) IsRecalculable() bool {
	return p.PurchasePriceForeign.GreaterThan(decimal.Zero) && p.RateUsedAtPurchase != nil
}

// PricingUpdate is the set of fields a pricing write overwrites.
type PricingUpdate struct {
	SellingPriceLocal  decimal.Decimal
	PurchasePriceLocal decimal.Decimal
	RateUsedAtPurchase decimal.Decimal
	ProfitAmountLocal  decimal.Decimal
	UpdatedAt          time.Time
	UpdatedBy          string
}

// PricingInputs is the subset of a manual edit that feeds the formula.
type PricingInputs struct {
	PurchasePriceForeign decimal.Decimal
	FinancingRatePercent decimal.Decimal
	DeliveryCostLocal    decimal.Decimal
	ProfitMarginPercent  decimal.Decimal
}
