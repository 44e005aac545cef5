package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/core/services"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	service      portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo,
		services.WithLocalCurrency("PYG"),
		services.WithClock(func() time.Time { return fixedNow }),
	)
}

func activeRate(id string, rate int64) *domain.ExchangeRate {
	return &domain.ExchangeRate{
		ExchangeRateID: id,
		CurrencyCode:   "USD",
		RateToLocal:    decimal.NewFromInt(rate),
		Source:         domain.RateSourceManual,
		IsActive:       true,
	}
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrentRate_NoRecordSynthesizesDefault() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindActiveRate", ctx, "USD").Return(nil, apperrors.ErrLedgerNotFound).Once()

	rate, err := suite.service.GetCurrentRate(ctx, "usd")

	suite.Require().NoError(err)
	suite.True(rate.IsSynthesized())
	suite.True(rate.RateToLocal.Equal(decimal.NewFromInt(7300)))
	suite.Equal(domain.RateSourceSystem, rate.Source)
	suite.True(rate.IsActive)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrentRate_Cached() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindActiveRate", ctx, "USD").Return(activeRate("r1", 7350), nil).Once()

	first, err := suite.service.GetCurrentRate(ctx, "USD")
	suite.Require().NoError(err)
	second, err := suite.service.GetCurrentRate(ctx, "USD")
	suite.Require().NoError(err)

	suite.Equal(first.ExchangeRateID, second.ExchangeRateID)
	suite.True(second.RateToLocal.Equal(decimal.NewFromInt(7350)))
	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "FindActiveRate", 1)
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrentRate_LocalCurrencyIsOne() {
	rate, err := suite.service.GetCurrentRate(context.Background(), "PYG")

	suite.Require().NoError(err)
	suite.True(rate.RateToLocal.Equal(decimal.NewFromInt(1)))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindActiveRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrentRate_RepoError() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindActiveRate", ctx, "USD").Return(nil, assert.AnError).Once()

	rate, err := suite.service.GetCurrentRate(ctx, "USD")

	suite.Nil(rate)
	suite.ErrorIs(err, assert.AnError)
}

func (suite *ExchangeRateServiceTestSuite) TestRecordNewRate_ActivatesAndRefreshesCache() {
	ctx := context.Background()
	stored := activeRate("r2", 7400)
	stored.UpdateStatistics.PreviousRate = decimal.NewFromInt(7300)

	suite.mockRateRepo.On("ActivateExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.CurrencyCode == "USD" && r.IsActive && r.Source == domain.RateSourceManual &&
			r.RateToLocal.Equal(decimal.NewFromInt(7400)) && r.CreatedBy == "ops" && r.ExchangeRateID != ""
	})).Return(stored, nil).Once()

	rate, err := suite.service.RecordNewRate(ctx, dto.CreateExchangeRateRequest{
		CurrencyCode: "usd",
		Rate:         decimal.NewFromInt(7400),
	}, "ops")
	suite.Require().NoError(err)
	suite.Equal("r2", rate.ExchangeRateID)

	current, err := suite.service.GetCurrentRate(ctx, "USD")
	suite.Require().NoError(err)
	suite.Equal("r2", current.ExchangeRateID)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindActiveRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestRecordNewRate_Validation() {
	ctx := context.Background()
	cases := []struct {
		name string
		req  dto.CreateExchangeRateRequest
		err  error
	}{
		{"zero rate", dto.CreateExchangeRateRequest{CurrencyCode: "USD", Rate: decimal.Zero}, apperrors.ErrInvalidRate},
		{"negative rate", dto.CreateExchangeRateRequest{CurrencyCode: "USD", Rate: decimal.NewFromInt(-1)}, apperrors.ErrInvalidRate},
		{"local currency", dto.CreateExchangeRateRequest{CurrencyCode: "PYG", Rate: decimal.NewFromInt(1)}, apperrors.ErrUnknownCurrency},
		{"bad source", dto.CreateExchangeRateRequest{CurrencyCode: "USD", Rate: decimal.NewFromInt(1), Source: "scraper"}, apperrors.ErrValidation},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			rate, err := suite.service.RecordNewRate(ctx, tc.req, "ops")
			suite.Nil(rate)
			suite.ErrorIs(err, tc.err)
		})
	}
	suite.mockRateRepo.AssertNotCalled(suite.T(), "ActivateExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestAttachStatistics() {
	ctx := context.Background()
	stats := domain.UpdateStatistics{PreviousRate: decimal.NewFromInt(7300), AffectedProducts: 4}
	withStats := activeRate("r3", 7400)
	withStats.UpdateStatistics = stats

	suite.mockRateRepo.On("UpdateRateStatistics", ctx, "r3", stats).Return(nil).Once()
	suite.mockRateRepo.On("FindExchangeRateByID", ctx, "r3").Return(withStats, nil).Once()

	suite.Require().NoError(suite.service.AttachStatistics(ctx, "r3", stats))

	current, err := suite.service.GetCurrentRate(ctx, "USD")
	suite.Require().NoError(err)
	suite.Equal(4, current.UpdateStatistics.AffectedProducts)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestAttachStatistics_RepoError() {
	ctx := context.Background()
	suite.mockRateRepo.On("UpdateRateStatistics", ctx, "r4", mock.Anything).Return(assert.AnError).Once()

	err := suite.service.AttachStatistics(ctx, "r4", domain.UpdateStatistics{})

	suite.ErrorIs(err, assert.AnError)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindExchangeRateByID", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetHistory_ChangeAgainstOlderRecord() {
	ctx := context.Background()
	since := fixedNow.AddDate(0, 0, -30)
	newest := *activeRate("r3", 7500)
	middle := *activeRate("r2", 7400)
	middle.IsActive = false
	oldest := *activeRate("r1", 7300)
	oldest.IsActive = false
	oldest.UpdateStatistics.PreviousRate = decimal.NewFromInt(7200)

	suite.mockRateRepo.On("ListRatesSince", ctx, "USD", since).
		Return([]domain.ExchangeRate{newest, middle, oldest}, nil).Once()

	history, err := suite.service.GetHistory(ctx, "USD", 0)

	suite.Require().NoError(err)
	suite.Require().Len(history, 3)
	suite.True(history[0].Change.Equal(decimal.NewFromInt(100)))
	suite.Equal("1.35", history[0].ChangePercentage.StringFixed(2))
	suite.True(history[1].Change.Equal(decimal.NewFromInt(100)))
	suite.Equal("1.37", history[1].ChangePercentage.StringFixed(2))
	suite.True(history[2].Change.Equal(decimal.NewFromInt(100)))
	suite.Equal("1.39", history[2].ChangePercentage.StringFixed(2))
}

func (suite *ExchangeRateServiceTestSuite) TestGetHistory_Empty() {
	ctx := context.Background()
	suite.mockRateRepo.On("ListRatesSince", ctx, "USD", fixedNow.AddDate(0, 0, -7)).Return([]domain.ExchangeRate{}, nil).Once()

	history, err := suite.service.GetHistory(ctx, "USD", 7)

	suite.Require().NoError(err)
	suite.Empty(history)
	suite.NotNil(history)
}

func (suite *ExchangeRateServiceTestSuite) TestGetUpdateStats() {
	ctx := context.Background()
	a := *activeRate("r2", 7400)
	a.UpdateStatistics = domain.UpdateStatistics{
		AffectedProducts: 3, PriceIncreaseCount: 3, AveragePriceChange: decimal.NewFromInt(500), UpdateDurationMs: 40,
	}
	b := *activeRate("r1", 7300)
	b.UpdateStatistics = domain.UpdateStatistics{
		AffectedProducts: 2, PriceDecreaseCount: 1, AveragePriceChange: decimal.NewFromInt(100), UpdateDurationMs: 20,
	}
	suite.mockRateRepo.On("ListRatesSince", ctx, "USD", fixedNow.AddDate(0, 0, -30)).
		Return([]domain.ExchangeRate{a, b}, nil).Once()

	stats, err := suite.service.GetUpdateStats(ctx, "USD", 30)

	suite.Require().NoError(err)
	suite.Equal(2, stats.TotalUpdates)
	suite.Equal(5, stats.TotalAffectedProducts)
	suite.Equal("2.50", stats.AvgAffectedProducts.StringFixed(2))
	suite.Equal("1.50", stats.AvgPriceIncrease.StringFixed(2))
	suite.Equal("0.50", stats.AvgPriceDecrease.StringFixed(2))
	suite.Equal("300.00", stats.AvgPriceChange.StringFixed(2))
	suite.Equal("30.00", stats.AvgUpdateDurationMs.StringFixed(2))
}

func (suite *ExchangeRateServiceTestSuite) TestGetUpdateStats_NoRecords() {
	ctx := context.Background()
	suite.mockRateRepo.On("ListRatesSince", ctx, "USD", mock.Anything).Return([]domain.ExchangeRate{}, nil).Once()

	stats, err := suite.service.GetUpdateStats(ctx, "USD", 0)

	suite.Require().NoError(err)
	suite.Equal(0, stats.TotalUpdates)
	suite.Equal(services.DefaultHistoryDays, stats.WindowDays)
	suite.True(stats.AvgPriceChange.IsZero())
}

func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
