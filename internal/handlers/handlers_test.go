package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
	"github.com/SscSPs/storefront_backoffice/internal/handlers"
	"github.com/SscSPs/storefront_backoffice/internal/middleware"
	"github.com/SscSPs/storefront_backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlersTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockRates    *MockExchangeRateService
	mockPricing  *MockPricingAdminService
	mockProducts *MockProductService
	mockEngine   *MockRecalculationService
	mockSales    *MockSaleService
}

func (suite *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlersTestSuite) SetupTest() {
	suite.mockRates = new(MockExchangeRateService)
	suite.mockPricing = new(MockPricingAdminService)
	suite.mockProducts = new(MockProductService)
	suite.mockEngine = new(MockRecalculationService)
	suite.mockSales = new(MockSaleService)

	writeLimiter, err := middleware.NewLimiter("2-M")
	suite.Require().NoError(err)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{
		ExchangeRate:  suite.mockRates,
		PricingAdmin:  suite.mockPricing,
		Product:       suite.mockProducts,
		Recalculation: suite.mockEngine,
		Sale:          suite.mockSales,
	}, writeLimiter)
}

func (suite *HandlersTestSuite) do(method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (suite *HandlersTestSuite) TestHealth() {
	w, _ := suite.do(http.MethodGet, "/health", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestGetCurrentRate_DefaultsToUSD() {
	suite.mockRates.On("GetCurrentRate", mock.Anything, "USD").Return(&domain.ExchangeRate{
		CurrencyCode:  "USD",
		RateToLocal:   decimal.NewFromInt(7300),
		EffectiveDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Source:        domain.RateSourceSystem,
		IsActive:      true,
	}, nil).Once()

	w, body := suite.do(http.MethodGet, "/api/v1/exchange-rates/current", nil, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("7.300 Gs", body["formattedRate"])
	suite.Equal(true, body["isDefault"])
	suite.Equal("7300", body["rate"])
}

func (suite *HandlersTestSuite) TestGetHistory_InvalidCurrency() {
	w, _ := suite.do(http.MethodGet, "/api/v1/exchange-rates/history?currency=US1", nil, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRates.AssertNotCalled(suite.T(), "GetHistory", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestGetHistory_DefaultWindow() {
	suite.mockRates.On("GetHistory", mock.Anything, "EUR", 30).Return([]domain.RateHistoryEntry{}, nil).Once()

	w, body := suite.do(http.MethodGet, "/api/v1/exchange-rates/history?currency=eur", nil, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("EUR", body["currencyCode"])
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestUpdateExchangeRate_RecordsOperator() {
	stored := &domain.ExchangeRate{ExchangeRateID: "r1", CurrencyCode: "USD", RateToLocal: decimal.NewFromInt(7400), IsActive: true}
	report := domain.NewRecalculationReport(domain.RecalculationRequest{Currency: "USD", NewRate: decimal.NewFromInt(7400), Apply: true})
	suite.mockPricing.On("UpdateExchangeRate", mock.Anything, mock.MatchedBy(func(req dto.UpdateExchangeRateRequest) bool {
		return req.Currency == "USD" && req.NewRate.Equal(decimal.NewFromInt(7400)) && req.ShouldApply()
	}), "ana").Return(&domain.RateUpdateOutcome{
		CurrencyCode:     "USD",
		NewRate:          decimal.NewFromInt(7400),
		PreviousRate:     decimal.NewFromInt(7300),
		Change:           decimal.NewFromInt(100),
		ChangePercentage: decimal.RequireFromString("1.3698"),
		Rate:             stored,
		Report:           report,
	}, nil).Once()

	w, body := suite.do(http.MethodPost, "/api/v1/exchange-rates",
		map[string]any{"currency": "USD", "newRate": "7400"},
		map[string]string{middleware.OperatorHeader: "ana"})

	suite.Equal(http.StatusCreated, w.Code)
	suite.Equal("1.37", body["changePercentage"])
	suite.Equal("7300", body["previousRate"])
	suite.mockPricing.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestUpdateExchangeRate_ValidationError() {
	suite.mockPricing.On("UpdateExchangeRate", mock.Anything, mock.Anything, middleware.DefaultOperator).
		Return(nil, apperrors.ErrInvalidRate).Once()

	w, body := suite.do(http.MethodPost, "/api/v1/exchange-rates", map[string]any{"currency": "USD", "newRate": "-1"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(body["error"], "invalid rate")
}

func (suite *HandlersTestSuite) TestWritesAreRateLimited() {
	suite.mockPricing.On("SimulateExchangeRate", mock.Anything, mock.Anything).
		Return(&domain.RateUpdateOutcome{Report: &domain.RecalculationReport{}}, nil)
	suite.mockPricing.On("UpdateExchangeRate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrInvalidRate)

	for i := 0; i < 2; i++ {
		w, _ := suite.do(http.MethodPost, "/api/v1/exchange-rates", map[string]any{"currency": "USD", "newRate": "0"}, nil)
		suite.Equal(http.StatusBadRequest, w.Code)
	}
	w, _ := suite.do(http.MethodPost, "/api/v1/exchange-rates", map[string]any{"currency": "USD", "newRate": "0"}, nil)
	suite.Equal(http.StatusTooManyRequests, w.Code)

	// Simulations never write and are not limited.
	w, _ = suite.do(http.MethodPost, "/api/v1/exchange-rates/simulate", map[string]any{"currency": "USD", "newRate": "7000"}, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestGetProduct_NotFound() {
	suite.mockProducts.On("GetProduct", mock.Anything, "missing").
		Return(nil, apperrors.NewNotFoundError("product missing not found")).Once()

	w, _ := suite.do(http.MethodGet, "/api/v1/products/missing", nil, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestRecalculate_DryRun() {
	report := domain.NewRecalculationReport(domain.RecalculationRequest{Currency: "USD", NewRate: decimal.NewFromInt(7300)})
	suite.mockEngine.On("Recalculate", mock.Anything, mock.MatchedBy(func(req domain.RecalculationRequest) bool {
		return !req.Apply && req.Currency == "USD" && req.UpdatedBy == middleware.DefaultOperator &&
			len(req.TargetIDs) == 1 && req.TargetIDs[0] == "p1"
	})).Return(report, nil).Once()

	w, _ := suite.do(http.MethodPost, "/api/v1/products/recalculate",
		map[string]any{"currency": "USD", "newExchangeRate": "7300", "productIds": []string{"p1"}, "dryRun": true}, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockEngine.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestCalculateTax_UnknownCategory() {
	w, _ := suite.do(http.MethodPost, "/api/v1/sales/tax", map[string]any{"amount": "110000", "taxCategory": "luxury"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSales.AssertNotCalled(suite.T(), "CalculateTax", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestAmountInWords() {
	suite.mockSales.On("AmountInWords", mock.Anything, mock.MatchedBy(func(req dto.AmountInWordsRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(1500))
	})).Return("Mil quinientos guaraníes", nil).Once()

	w, body := suite.do(http.MethodPost, "/api/v1/sales/amount-in-words", map[string]any{"amount": "1500"}, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Mil quinientos guaraníes", body["text"])
}

func (suite *HandlersTestSuite) TestDueDate_UnknownTerms() {
	suite.mockSales.On("DueDate", mock.Anything, mock.Anything).Return(nil, apperrors.ErrUnknownPaymentTerms).Once()

	w, _ := suite.do(http.MethodPost, "/api/v1/sales/due-date", map[string]any{"paymentTerms": "net_45", "strict": true}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestQuoteSale_RequiresItems() {
	w, _ := suite.do(http.MethodPost, "/api/v1/sales/quote", map[string]any{"items": []any{}}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	assert.Empty(suite.T(), suite.mockSales.Calls)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
