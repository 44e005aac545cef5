package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTerms is the code of a sale's payment terms.
type PaymentTerms string

const (
	TermsImmediate PaymentTerms = "immediate"
	TermsNet15     PaymentTerms = "net15"
	TermsNet30     PaymentTerms = "net30"
	TermsNet60     PaymentTerms = "net60"
	TermsNet90     PaymentTerms = "net90"
	TermsCustom    PaymentTerms = "custom"
)

// ProductSnapshot freezes the product data a sale line was priced from.
type ProductSnapshot struct {
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	SellingPriceLocal decimal.Decimal `json:"sellingPriceLocal"`
}

// SaleItem is one priced line of a sale document.
type SaleItem struct {
	ProductID        string           `json:"productID,omitempty"`
	ProductSnapshot  *ProductSnapshot `json:"productSnapshot,omitempty"`
	Description      string           `json:"description"`
	Quantity         int64            `json:"quantity"`
	UnitPrice        decimal.Decimal  `json:"unitPrice"`
	Currency         string           `json:"currency"`
	ExchangeRate     decimal.Decimal  `json:"exchangeRate"`
	UnitPriceLocal   decimal.Decimal  `json:"unitPriceLocal"`
	PriceIncludesTax bool             `json:"priceIncludesTax"`
	TaxCategory      TaxCategory      `json:"taxCategory"`
	TaxRatePercent   decimal.Decimal  `json:"taxRatePercent"`
	TaxAmount        decimal.Decimal  `json:"taxAmount"`
	Subtotal         decimal.Decimal  `json:"subtotal"`
	SubtotalWithTax  decimal.Decimal  `json:"subtotalWithTax"`
}

// Sale is a fully priced sale document. Storing it is the caller's job.
// Subtotal, TaxAmount and TotalAmountLocal are in local currency, TotalAmount is in Currency
// and TotalAmountForeign is in ForeignCurrency.
type Sale struct {
	SaleID              string          `json:"saleID"`
	SaleDate            time.Time       `json:"saleDate"`
	Currency            string          `json:"currency"`
	ExchangeRate        decimal.Decimal `json:"exchangeRate"`
	PaymentTerms        PaymentTerms    `json:"paymentTerms"`
	CustomPaymentTerms  string          `json:"customPaymentTerms,omitempty"`
	DueDate             time.Time       `json:"dueDate"`
	Items               []SaleItem      `json:"items"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	TaxAmount           decimal.Decimal `json:"taxAmount"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	TotalAmountLocal    decimal.Decimal `json:"totalAmountLocal"`
	TotalAmountForeign  decimal.Decimal `json:"totalAmountForeign"`
	ForeignCurrency     string          `json:"foreignCurrency"`
	EffectiveTaxPercent decimal.Decimal `json:"effectiveTaxPercent"`
	AmountInWords       string          `json:"amountInWords"`
	CreatedBy           string          `json:"createdBy"`
}
