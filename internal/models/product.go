package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a row of the products table, limited to its pricing columns.
type Product struct {
	ProductID            string              `json:"productID"`
	Name                 string              `json:"name"`
	Code                 string              `json:"code"`
	PurchaseCurrency     string              `json:"purchaseCurrency"`
	PurchasePriceForeign decimal.Decimal     `json:"purchasePriceForeign"`
	PurchasePriceLocal   decimal.Decimal     `json:"purchasePriceLocal"`
	RateUsedAtPurchase   decimal.NullDecimal `json:"rateUsedAtPurchase"`
	FinancingRatePercent decimal.Decimal     `json:"financingRatePercent"`
	DeliveryCostLocal    decimal.Decimal     `json:"deliveryCostLocal"`
	ProfitMarginPercent  decimal.Decimal     `json:"profitMarginPercent"`
	SellingPriceLocal    decimal.Decimal     `json:"sellingPriceLocal"`
	ProfitAmountLocal    decimal.Decimal     `json:"profitAmountLocal"`
	LastPricingUpdate    *time.Time          `json:"lastPricingUpdate"`
	AuditFields
}
