package domain

import "github.com/shopspring/decimal"

// TaxCategory selects a rate from the tax schedule.
type TaxCategory string

const (
	TaxExempt   TaxCategory = "exempt"
	TaxReduced  TaxCategory = "reduced"
	TaxStandard TaxCategory = "standard"
)

// TaxCalculation is the split of one line amount into base and tax.
type TaxCalculation struct {
	Category       TaxCategory     `json:"category"`
	BaseAmount     decimal.Decimal `json:"baseAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TaxRatePercent decimal.Decimal `json:"taxRatePercent"`
}
