package mapping

import (
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/SscSPs/storefront_backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	m := models.Product{
		ProductID:            d.ProductID,
		Name:                 d.Name,
		Code:                 d.Code,
		PurchaseCurrency:     d.PurchaseCurrency,
		PurchasePriceForeign: d.PurchasePriceForeign,
		PurchasePriceLocal:   d.PurchasePriceLocal,
		FinancingRatePercent: d.FinancingRatePercent,
		DeliveryCostLocal:    d.DeliveryCostLocal,
		ProfitMarginPercent:  d.ProfitMarginPercent,
		SellingPriceLocal:    d.SellingPriceLocal,
		ProfitAmountLocal:    d.ProfitAmountLocal,
		LastPricingUpdate:    d.LastPricingUpdate,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
	if d.RateUsedAtPurchase != nil {
		m.RateUsedAtPurchase = decimal.NewNullDecimal(*d.RateUsedAtPurchase)
	}
	return m
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	d := domain.Product{
		ProductID:            m.ProductID,
		Name:                 m.Name,
		Code:                 m.Code,
		PurchaseCurrency:     m.PurchaseCurrency,
		PurchasePriceForeign: m.PurchasePriceForeign,
		PurchasePriceLocal:   m.PurchasePriceLocal,
		FinancingRatePercent: m.FinancingRatePercent,
		DeliveryCostLocal:    m.DeliveryCostLocal,
		ProfitMarginPercent:  m.ProfitMarginPercent,
		SellingPriceLocal:    m.SellingPriceLocal,
		ProfitAmountLocal:    m.ProfitAmountLocal,
		LastPricingUpdate:    m.LastPricingUpdate,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
	if m.RateUsedAtPurchase.Valid {
		rate := m.RateUsedAtPurchase.Decimal
		d.RateUsedAtPurchase = &rate
	}
	return d
}

// ToDomainProductSlice converts a slice of model Products to domain Products
func ToDomainProductSlice(ms []models.Product) []domain.Product {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
