package handlers_test

import (
	"context"

	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
	"github.com/stretchr/testify/mock"
)

type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetCurrentRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) GetHistory(ctx context.Context, currencyCode string, windowDays int) ([]domain.RateHistoryEntry, error) {
	args := m.Called(ctx, currencyCode, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateHistoryEntry), args.Error(1)
}

func (m *MockExchangeRateService) GetUpdateStats(ctx context.Context, currencyCode string, windowDays int) (*domain.RateUpdateStats, error) {
	args := m.Called(ctx, currencyCode, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateUpdateStats), args.Error(1)
}

func (m *MockExchangeRateService) RecordNewRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) AttachStatistics(ctx context.Context, rateID string, stats domain.UpdateStatistics) error {
	return m.Called(ctx, rateID, stats).Error(0)
}

type MockPricingAdminService struct {
	mock.Mock
}

func (m *MockPricingAdminService) UpdateExchangeRate(ctx context.Context, req dto.UpdateExchangeRateRequest, userID string) (*domain.RateUpdateOutcome, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateUpdateOutcome), args.Error(1)
}

func (m *MockPricingAdminService) SimulateExchangeRate(ctx context.Context, req dto.SimulateExchangeRateRequest) (*domain.RateUpdateOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateUpdateOutcome), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, *string, error) {
	args := m.Called(ctx, params)
	var products []domain.Product
	if args.Get(0) != nil {
		products = args.Get(0).([]domain.Product)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return products, next, args.Error(2)
}

func (m *MockProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductService) UpdateProductPricing(ctx context.Context, productID string, req dto.UpdateProductPricingRequest, userID string) (*domain.Product, error) {
	args := m.Called(ctx, productID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

type MockRecalculationService struct {
	mock.Mock
}

func (m *MockRecalculationService) Recalculate(ctx context.Context, req domain.RecalculationRequest) (*domain.RecalculationReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecalculationReport), args.Error(1)
}

type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) QuoteSale(ctx context.Context, req dto.QuoteSaleRequest, userID string) (*domain.Sale, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleService) CalculateTax(ctx context.Context, req dto.TaxRequest) (*domain.TaxCalculation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCalculation), args.Error(1)
}

func (m *MockSaleService) AmountInWords(ctx context.Context, req dto.AmountInWordsRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockSaleService) DueDate(ctx context.Context, req dto.DueDateRequest) (*dto.DueDateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DueDateResponse), args.Error(1)
}

var (
	_ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)
	_ portssvc.PricingAdminSvc       = (*MockPricingAdminService)(nil)
	_ portssvc.ProductSvcFacade      = (*MockProductService)(nil)
	_ portssvc.RecalculationSvc      = (*MockRecalculationService)(nil)
	_ portssvc.SaleSvc               = (*MockSaleService)(nil)
)
