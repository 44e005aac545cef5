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
	"github.com/SscSPs/storefront_backoffice/internal/utils/terms"
	"github.com/SscSPs/storefront_backoffice/internal/utils/words"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultReferenceCurrency is the foreign currency totals are quoted in for local-currency sales.
const DefaultReferenceCurrency = "USD"

type saleService struct {
	BaseService
	products          portsrepo.ProductReader
	currencies        portsrepo.CurrencyReader
	rates             portssvc.ExchangeRateReaderSvc
	converter         *accounting.Converter
	taxes             *accounting.TaxCalculator
	localCurrency     string
	referenceCurrency string
	now               func() time.Time
}

// SaleServiceOption configures the sale service.
type SaleServiceOption func(*saleService)

// WithReferenceCurrency sets the currency of TotalAmountForeign for local sales.
func WithReferenceCurrency(code string) SaleServiceOption {
	return func(s *saleService) {
		if code != "" {
			s.referenceCurrency = strings.ToUpper(code)
		}
	}
}

// WithSaleClock overrides the clock used for undated sales.
func WithSaleClock(now func() time.Time) SaleServiceOption {
	return func(s *saleService) {
		s.now = now
	}
}

// NewSaleService creates the sale builder.
func NewSaleService(
	products portsrepo.ProductReader,
	currencies portsrepo.CurrencyReader,
	rates portssvc.ExchangeRateReaderSvc,
	localCurrency string,
	opts ...SaleServiceOption,
) portssvc.SaleSvc {
	converter := accounting.NewConverter(localCurrency)
	s := &saleService{
		products:          products,
		currencies:        currencies,
		rates:             rates,
		converter:         converter,
		taxes:             accounting.NewTaxCalculator(),
		localCurrency:     converter.LocalCurrency,
		referenceCurrency: DefaultReferenceCurrency,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *saleService) QuoteSale(ctx context.Context, req dto.QuoteSaleRequest, userID string) (*domain.Sale, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: a sale needs at least one item", apperrors.ErrValidation)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.localCurrency
	}
	saleDate := s.now().UTC()
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}

	termsCode := req.PaymentTerms
	if termsCode == "" {
		termsCode = string(domain.TermsImmediate)
	}
	dueDate, paymentTerms, err := s.resolveDueDate(saleDate, termsCode, req.CustomPaymentTerms, req.Strict)
	if err != nil {
		return nil, err
	}

	rates := make(map[string]decimal.Decimal)
	saleRate, err := s.rateFor(ctx, rates, currency)
	if err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		SaleID:             uuid.NewString(),
		SaleDate:           saleDate,
		Currency:           currency,
		ExchangeRate:       saleRate,
		PaymentTerms:       paymentTerms,
		CustomPaymentTerms: req.CustomPaymentTerms,
		DueDate:            dueDate,
		Items:              make([]domain.SaleItem, 0, len(req.Items)),
		Subtotal:           decimal.Zero,
		TaxAmount:          decimal.Zero,
		CreatedBy:          userID,
	}

	total := decimal.Zero
	for i, itemReq := range req.Items {
		item, err := s.buildItem(ctx, rates, currency, itemReq)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		sale.Items = append(sale.Items, item)
		sale.Subtotal = sale.Subtotal.Add(item.Subtotal)
		sale.TaxAmount = sale.TaxAmount.Add(item.TaxAmount)
		total = total.Add(item.SubtotalWithTax)
	}
	sale.TotalAmountLocal = total
	if sale.Subtotal.IsPositive() {
		sale.EffectiveTaxPercent = sale.TaxAmount.Div(sale.Subtotal).Mul(decimal.NewFromInt(100)).Round(2)
	}

	if currency == s.localCurrency {
		sale.TotalAmount = total
	} else {
		conv, err := s.converter.Convert(total, s.localCurrency, currency, saleRate)
		if err != nil {
			return nil, err
		}
		sale.TotalAmount = conv.Amount
	}

	sale.ForeignCurrency = currency
	if currency == s.localCurrency {
		sale.ForeignCurrency = s.referenceCurrency
	}
	foreignRate, err := s.rateFor(ctx, rates, sale.ForeignCurrency)
	if err != nil {
		return nil, err
	}
	conv, err := s.converter.Convert(total, s.localCurrency, sale.ForeignCurrency, foreignRate)
	if err != nil {
		return nil, err
	}
	sale.TotalAmountForeign = conv.Amount

	speller := s.speller(ctx)
	sale.AmountInWords = speller.ToWordsDecimal(total, s.localCurrency)

	s.LogInfo(ctx, "Sale quoted",
		slog.String("sale_id", sale.SaleID),
		slog.String("currency", currency),
		slog.Int("items", len(sale.Items)),
		slog.String("total_local", total.String()))
	return sale, nil
}

// buildItem prices one line in local currency. Tax is backed out of a gross unit price
// and added on top of a net one.
func (s *saleService) buildItem(ctx context.Context, rates map[string]decimal.Decimal, saleCurrency string, req dto.SaleItemRequest) (domain.SaleItem, error) {
	if req.Quantity <= 0 {
		return domain.SaleItem{}, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}

	item := domain.SaleItem{
		ProductID:   req.ProductID,
		Description: req.Description,
		Quantity:    req.Quantity,
	}

	var unitPrice decimal.Decimal
	itemCurrency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.ProductID != "" {
		product, err := s.products.FindProductByID(ctx, req.ProductID)
		if err != nil {
			return domain.SaleItem{}, fmt.Errorf("failed to load product %s: %w", req.ProductID, err)
		}
		item.ProductSnapshot = &domain.ProductSnapshot{
			Name:              product.Name,
			Code:              product.Code,
			SellingPriceLocal: product.SellingPriceLocal,
		}
		if item.Description == "" {
			item.Description = product.Name
		}
		unitPrice = product.SellingPriceLocal
		if req.UnitPrice == nil {
			itemCurrency = s.localCurrency
		}
	}
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	} else if req.ProductID == "" {
		return domain.SaleItem{}, fmt.Errorf("%w: unit price is required without a product", apperrors.ErrValidation)
	}
	if unitPrice.IsNegative() {
		return domain.SaleItem{}, fmt.Errorf("%w: unit price %s is negative", apperrors.ErrInvalidAmount, unitPrice.String())
	}
	if itemCurrency == "" {
		itemCurrency = saleCurrency
	}

	rate, err := s.rateFor(ctx, rates, itemCurrency)
	if err != nil {
		return domain.SaleItem{}, err
	}
	conv, err := s.converter.Convert(unitPrice, itemCurrency, s.localCurrency, rate)
	if err != nil {
		return domain.SaleItem{}, err
	}
	unitLocal := accounting.RoundLocal(conv.Amount)

	category := domain.TaxStandard
	if req.TaxCategory != "" {
		category, err = accounting.ParseTaxCategory(req.TaxCategory)
		if err != nil {
			return domain.SaleItem{}, err
		}
	}
	tax, err := s.taxes.Compute(unitLocal, category, req.IncludesTax())
	if err != nil {
		return domain.SaleItem{}, err
	}

	qty := decimal.NewFromInt(req.Quantity)
	item.UnitPrice = unitPrice
	item.Currency = itemCurrency
	item.ExchangeRate = rate
	item.UnitPriceLocal = unitLocal
	item.TaxCategory = category
	item.PriceIncludesTax = req.IncludesTax()
	item.TaxRatePercent = tax.TaxRatePercent
	item.TaxAmount = tax.TaxAmount.Mul(qty)
	item.Subtotal = tax.BaseAmount.Mul(qty)
	item.SubtotalWithTax = tax.TotalAmount.Mul(qty)
	return item, nil
}

// rateFor returns the current rate of code, reading the ledger once per quote.
func (s *saleService) rateFor(ctx context.Context, rates map[string]decimal.Decimal, code string) (decimal.Decimal, error) {
	if code == s.localCurrency {
		return decimal.NewFromInt(1), nil
	}
	if rate, ok := rates[code]; ok {
		return rate, nil
	}
	current, err := s.rates.GetCurrentRate(ctx, code)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get rate for %s: %w", code, err)
	}
	rates[code] = current.RateToLocal
	return current.RateToLocal, nil
}

func (s *saleService) resolveDueDate(saleDate time.Time, code, customText string, strict bool) (time.Time, domain.PaymentTerms, error) {
	parsed, ok := terms.ParseTerms(code)
	if strict {
		due, err := terms.DueDateStrict(saleDate, code, customText)
		if err != nil {
			return time.Time{}, "", err
		}
		return due, parsed, nil
	}
	if !ok {
		parsed = domain.PaymentTerms(strings.ToLower(strings.TrimSpace(code)))
	}
	return terms.DueDate(saleDate, code, customText), parsed, nil
}

// speller builds a speller over the catalog's plural names, or the built-in names when the
// catalog cannot be read.
func (s *saleService) speller(ctx context.Context) *words.Speller {
	names := make(map[string]string)
	if s.currencies != nil {
		currencies, err := s.currencies.ListCurrencies(ctx)
		if err != nil {
			s.LogWarn(ctx, "Currency catalog unavailable, using built-in names", slog.String("error", err.Error()))
		}
		for _, c := range currencies {
			names[c.CurrencyCode] = c.PluralName
		}
	}
	return words.NewSpeller(s.localCurrency, names)
}

func (s *saleService) CalculateTax(ctx context.Context, req dto.TaxRequest) (*domain.TaxCalculation, error) {
	category, err := accounting.ParseTaxCategory(req.TaxCategory)
	if err != nil {
		return nil, err
	}
	calc, err := s.taxes.Compute(req.Amount, category, req.IncludesTax())
	if err != nil {
		return nil, err
	}
	return &calc, nil
}

func (s *saleService) AmountInWords(ctx context.Context, req dto.AmountInWordsRequest) (string, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.localCurrency
	}
	if !req.Amount.Equal(req.Amount.Truncate(0)) && req.Strict {
		return "", fmt.Errorf("%w: %s has a fractional part", apperrors.ErrInvalidAmount, req.Amount.String())
	}

	speller := s.speller(ctx)
	if req.Strict {
		if req.Amount.Abs().GreaterThan(decimal.NewFromInt(words.MaxAmount)) {
			return "", fmt.Errorf("%w: %s is outside 0..%d", apperrors.ErrInvalidAmount, req.Amount.String(), words.MaxAmount)
		}
		text, err := speller.ToWordsStrict(req.Amount.IntPart(), currency)
		if err != nil {
			return "", err
		}
		return text, nil
	}
	return speller.ToWordsDecimal(req.Amount, currency), nil
}

func (s *saleService) DueDate(ctx context.Context, req dto.DueDateRequest) (*dto.DueDateResponse, error) {
	saleDate := s.now().UTC()
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}
	due, _, err := s.resolveDueDate(saleDate, req.PaymentTerms, req.CustomPaymentTerms, req.Strict)
	if err != nil {
		return nil, err
	}
	return &dto.DueDateResponse{SaleDate: saleDate, DueDate: due}, nil
}
