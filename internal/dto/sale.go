package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest is one requested line of a sale quote.
// Either ProductID or UnitPrice must be given; UnitPrice overrides the catalog price.
type SaleItemRequest struct {
	ProductID        string           `json:"productId"`
	Description      string           `json:"description"`
	Quantity         int64            `json:"quantity" binding:"required,gt=0"`
	UnitPrice        *decimal.Decimal `json:"unitPrice"`
	Currency         string           `json:"currency" binding:"omitempty,currency_code"` // Defaults to the sale currency
	TaxCategory      string           `json:"taxCategory" binding:"omitempty,tax_category"`
	PriceIncludesTax *bool            `json:"priceIncludesTax"`
}

// IncludesTax reports whether the unit price is gross. Unset means gross.
func (r SaleItemRequest) IncludesTax() bool {
	return r.PriceIncludesTax == nil || *r.PriceIncludesTax
}

// QuoteSaleRequest builds a priced sale document.
type QuoteSaleRequest struct {
	Currency           string            `json:"currency" binding:"omitempty,currency_code"` // Defaults to the local currency
	SaleDate           *time.Time        `json:"saleDate"`
	PaymentTerms       string            `json:"paymentTerms"`
	CustomPaymentTerms string            `json:"customPaymentTerms"`
	Strict             bool              `json:"strict"`
	Items              []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// TaxRequest splits an amount into base and tax.
type TaxRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	TaxCategory      string          `json:"taxCategory" binding:"required,tax_category"`
	PriceIncludesTax *bool           `json:"priceIncludesTax"` // Defaults to true
}

// IncludesTax reports whether Amount is a gross amount.
func (r TaxRequest) IncludesTax() bool {
	return r.PriceIncludesTax == nil || *r.PriceIncludesTax
}

// AmountInWordsRequest spells out an amount.
type AmountInWordsRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Currency string          `json:"currency"`
	Strict   bool            `json:"strict"`
}

// AmountInWordsResponse carries the spelled amount.
type AmountInWordsResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Text     string          `json:"text"`
}

// DueDateRequest resolves payment terms into a due date.
type DueDateRequest struct {
	SaleDate           *time.Time `json:"saleDate"`
	PaymentTerms       string     `json:"paymentTerms" binding:"required"`
	CustomPaymentTerms string     `json:"customPaymentTerms"`
	Strict             bool       `json:"strict"`
}

// DueDateResponse carries the resolved due date.
type DueDateResponse struct {
	SaleDate time.Time `json:"saleDate"`
	DueDate  time.Time `json:"dueDate"`
}
