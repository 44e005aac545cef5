package accounting

import (
	"fmt"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ChangeDeadband is the absolute selling-price delta, in local units, treated as no change.
var ChangeDeadband = decimal.NewFromInt(100)

// PriceBreakdown is the local-currency cost build-up of one product at one rate.
// Every amount is rounded to whole local units.
type PriceBreakdown struct {
	PurchasePriceLocal decimal.Decimal `json:"purchasePriceLocal"`
	FinancingAmount    decimal.Decimal `json:"financingAmount"`
	CostBeforeMargin   decimal.Decimal `json:"costBeforeMargin"`
	SellingPrice       decimal.Decimal `json:"sellingPrice"`
	ProfitAmount       decimal.Decimal `json:"profitAmount"`
}

// ComputePrice applies the canonical margin-on-price formula:
//
//	purchaseLocal = purchaseForeign * rate
//	cost          = purchaseLocal * (1 + financing/100)
//	selling       = cost / (1 - margin/100) + delivery
//	profit        = selling - cost - delivery
//
// This is the only formula allowed on a persisted write.
func ComputePrice(in domain.PricingInputs, rate decimal.Decimal) (PriceBreakdown, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return PriceBreakdown{}, fmt.Errorf("%w: rate %s must be positive", apperrors.ErrInvalidRate, rate.String())
	}
	if err := validateInputs(in); err != nil {
		return PriceBreakdown{}, err
	}
	marginFactor := decimal.NewFromInt(1).Sub(in.ProfitMarginPercent.Div(hundred))
	if marginFactor.LessThanOrEqual(decimal.Zero) {
		return PriceBreakdown{}, fmt.Errorf("%w: got %s", apperrors.ErrInvalidMargin, in.ProfitMarginPercent.String())
	}

	purchaseLocal := in.PurchasePriceForeign.Mul(rate)
	financing := purchaseLocal.Mul(in.FinancingRatePercent).Div(hundred)
	cost := purchaseLocal.Add(financing)
	selling := cost.Div(marginFactor).Add(in.DeliveryCostLocal)
	profit := selling.Sub(cost).Sub(in.DeliveryCostLocal)

	return PriceBreakdown{
		PurchasePriceLocal: RoundLocal(purchaseLocal),
		FinancingAmount:    RoundLocal(financing),
		CostBeforeMargin:   RoundLocal(cost),
		SellingPrice:       RoundLocal(selling),
		ProfitAmount:       RoundLocal(profit),
	}, nil
}

// LegacyMarkupPrice is the markup-on-cost formula once used by rate simulations:
//
//	selling = (purchaseLocal + interest + delivery) * (1 + margin/100)
//
// It does not agree with ComputePrice and must never be persisted.
func LegacyMarkupPrice(in domain.PricingInputs, rate decimal.Decimal) (PriceBreakdown, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return PriceBreakdown{}, fmt.Errorf("%w: rate %s must be positive", apperrors.ErrInvalidRate, rate.String())
	}
	if err := validateInputs(in); err != nil {
		return PriceBreakdown{}, err
	}
	purchaseLocal := in.PurchasePriceForeign.Mul(rate)
	interest := purchaseLocal.Mul(in.FinancingRatePercent).Div(hundred)
	totalCost := purchaseLocal.Add(interest).Add(in.DeliveryCostLocal)
	selling := totalCost.Mul(decimal.NewFromInt(1).Add(in.ProfitMarginPercent.Div(hundred)))

	return PriceBreakdown{
		PurchasePriceLocal: RoundLocal(purchaseLocal),
		FinancingAmount:    RoundLocal(interest),
		CostBeforeMargin:   RoundLocal(purchaseLocal.Add(interest)),
		SellingPrice:       RoundLocal(selling),
		ProfitAmount:       RoundLocal(selling.Sub(totalCost)),
	}, nil
}

// PriceWith dispatches on formula. An empty formula means the canonical one.
func PriceWith(formula domain.PricingFormula, in domain.PricingInputs, rate decimal.Decimal) (PriceBreakdown, error) {
	switch formula {
	case "", domain.FormulaMarginOnPrice:
		return ComputePrice(in, rate)
	case domain.FormulaMarkupOnCost:
		return LegacyMarkupPrice(in, rate)
	}
	return PriceBreakdown{}, fmt.Errorf("%w: unknown pricing formula %q", apperrors.ErrValidation, string(formula))
}

// ClassifyChange applies the deadband with strict inequalities: a delta of exactly
// +100 or -100 is unchanged.
func ClassifyChange(delta decimal.Decimal) domain.ChangeType {
	switch {
	case delta.GreaterThan(ChangeDeadband):
		return domain.ChangeIncrease
	case delta.LessThan(ChangeDeadband.Neg()):
		return domain.ChangeDecrease
	default:
		return domain.ChangeUnchanged
	}
}

// PercentChange returns delta / old * 100 rounded to two decimals, zero when old is not positive.
func PercentChange(delta, old decimal.Decimal) decimal.Decimal {
	if !old.IsPositive() {
		return decimal.Zero
	}
	return delta.Div(old).Mul(hundred).Round(2)
}

// InputsOf extracts the formula inputs from a product.
func InputsOf(p domain.Product) domain.PricingInputs {
	return domain.PricingInputs{
		PurchasePriceForeign: p.PurchasePriceForeign,
		FinancingRatePercent: p.FinancingRatePercent,
		DeliveryCostLocal:    p.DeliveryCostLocal,
		ProfitMarginPercent:  p.ProfitMarginPercent,
	}
}

func validateInputs(in domain.PricingInputs) error {
	if in.PurchasePriceForeign.IsNegative() {
		return fmt.Errorf("%w: purchase price is negative", apperrors.ErrInvalidAmount)
	}
	if in.DeliveryCostLocal.IsNegative() {
		return fmt.Errorf("%w: delivery cost is negative", apperrors.ErrInvalidAmount)
	}
	if in.FinancingRatePercent.IsNegative() {
		return fmt.Errorf("%w: financing rate is negative", apperrors.ErrInvalidRate)
	}
	return nil
}
