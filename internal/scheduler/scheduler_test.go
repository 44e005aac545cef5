package scheduler_test

import (
	"context"
	"testing"

	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
	"github.com/SscSPs/storefront_backoffice/internal/platform/config"
	"github.com/SscSPs/storefront_backoffice/internal/scheduler"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFeed struct {
	mock.Mock
}

func (m *MockFeed) FetchRate(ctx context.Context, currencyCode, localCurrency string) (decimal.Decimal, error) {
	args := m.Called(ctx, currencyCode, localCurrency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockPricingAdmin struct {
	mock.Mock
}

func (m *MockPricingAdmin) UpdateExchangeRate(ctx context.Context, req dto.UpdateExchangeRateRequest, userID string) (*domain.RateUpdateOutcome, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateUpdateOutcome), args.Error(1)
}

func (m *MockPricingAdmin) SimulateExchangeRate(ctx context.Context, req dto.SimulateExchangeRateRequest) (*domain.RateUpdateOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateUpdateOutcome), args.Error(1)
}

func TestRefreshRates(t *testing.T) {
	cfg := &config.Config{
		LocalCurrency:           "PYG",
		RateFeedCron:            "0 9 * * 1-5",
		RateFeedCurrencies:      []string{"USD", "PYG", "EUR", "BRL"},
		RateFeedApplyToProducts: false,
	}
	feed := new(MockFeed)
	pricing := new(MockPricingAdmin)
	ctx := context.Background()

	feed.On("FetchRate", ctx, "USD", "PYG").Return(decimal.NewFromInt(7350), nil).Once()
	feed.On("FetchRate", ctx, "EUR", "PYG").Return(decimal.Zero, assert.AnError).Once()
	feed.On("FetchRate", ctx, "BRL", "PYG").Return(decimal.NewFromInt(1450), nil).Once()

	report := domain.NewRecalculationReport(domain.RecalculationRequest{Currency: "USD", NewRate: decimal.NewFromInt(7350)})
	pricing.On("UpdateExchangeRate", ctx, mock.MatchedBy(func(req dto.UpdateExchangeRateRequest) bool {
		return req.Currency == "USD" && req.Source == domain.RateSourceAPI &&
			req.NewRate.Equal(decimal.NewFromInt(7350)) && !req.ShouldApply()
	}), scheduler.FeedOperator).Return(&domain.RateUpdateOutcome{Report: report}, nil).Once()
	pricing.On("UpdateExchangeRate", ctx, mock.MatchedBy(func(req dto.UpdateExchangeRateRequest) bool {
		return req.Currency == "BRL"
	}), scheduler.FeedOperator).Return(nil, assert.AnError).Once()

	s := scheduler.NewScheduler(cfg, feed, pricing, nil)
	recorded := s.RefreshRates(ctx)

	assert.Equal(t, 1, recorded)
	feed.AssertExpectations(t)
	pricing.AssertExpectations(t)
	feed.AssertNotCalled(t, "FetchRate", mock.Anything, "PYG", mock.Anything)
}

func TestStart_InvalidSpec(t *testing.T) {
	s := scheduler.NewScheduler(&config.Config{RateFeedCron: "not a cron"}, new(MockFeed), new(MockPricingAdmin), nil)

	assert.Error(t, s.Start())
}
