package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/core/services"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
	"github.com/SscSPs/storefront_backoffice/internal/middleware"
	"github.com/SscSPs/storefront_backoffice/internal/utils"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to the rate ledger.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	pricingService      portssvc.PricingAdminSvc
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade, pas portssvc.PricingAdminSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
		pricingService:      pas,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, writes gin.HandlerFunc, ers portssvc.ExchangeRateSvcFacade, pas portssvc.PricingAdminSvc) {
	h := newExchangeRateHandler(ers, pas)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("/current", h.getCurrentRate)
		exchangeRates.GET("/history", h.getHistory)
		exchangeRates.GET("/stats", h.getUpdateStats)
		exchangeRates.POST("", writes, h.updateExchangeRate)
		exchangeRates.POST("/simulate", h.simulateExchangeRate)
	}
}

func bindRateQuery(c *gin.Context) (dto.RateQueryParams, error) {
	var q dto.RateQueryParams
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, err
	}
	q.Currency = strings.ToUpper(q.Currency)
	if q.Currency == "" {
		q.Currency = services.DefaultReferenceCurrency
	}
	return q, nil
}

// getCurrentRate godoc
// @Summary Get the current exchange rate
// @Description Returns the active rate of a currency, or the configured default when none was ever recorded
// @Tags exchange rates
// @Produce  json
// @Param   currency query string false "Currency code" default(USD)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Router /exchange-rates/current [get]
func (h *exchangeRateHandler) getCurrentRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	q, err := bindRateQuery(c)
	if err != nil {
		respondBindError(c, logger, err, "GetCurrentRate")
		return
	}

	rate, err := h.exchangeRateService.GetCurrentRate(c.Request.Context(), q.Currency)
	if err != nil {
		respondError(c, logger.With(slog.String("currency", q.Currency)), err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate, utils.FormatRate(rate.RateToLocal)))
}

// getHistory godoc
// @Summary Get the exchange rate history
// @Description Lists the ledger records of the last days, most recent first, with the change against the previous record
// @Tags exchange rates
// @Produce  json
// @Param   currency query string false "Currency code" default(USD)
// @Param   days query int false "Window in days" default(30)
// @Success 200 {object} dto.RateHistoryResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to retrieve rate history"
// @Router /exchange-rates/history [get]
func (h *exchangeRateHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	q, err := bindRateQuery(c)
	if err != nil {
		respondBindError(c, logger, err, "GetHistory")
		return
	}
	if q.Days == 0 {
		q.Days = services.DefaultHistoryDays
	}

	entries, err := h.exchangeRateService.GetHistory(c.Request.Context(), q.Currency, q.Days)
	if err != nil {
		respondError(c, logger.With(slog.String("currency", q.Currency)), err, "Failed to retrieve rate history")
		return
	}

	c.JSON(http.StatusOK, dto.RateHistoryResponse{CurrencyCode: q.Currency, Days: q.Days, Entries: entries})
}

// getUpdateStats godoc
// @Summary Get exchange rate update statistics
// @Description Aggregates the repricing statistics of the rate updates of the last days
// @Tags exchange rates
// @Produce  json
// @Param   currency query string false "Currency code" default(USD)
// @Param   days query int false "Window in days" default(30)
// @Success 200 {object} domain.RateUpdateStats
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Failed to compute update statistics"
// @Router /exchange-rates/stats [get]
func (h *exchangeRateHandler) getUpdateStats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	q, err := bindRateQuery(c)
	if err != nil {
		respondBindError(c, logger, err, "GetUpdateStats")
		return
	}

	stats, err := h.exchangeRateService.GetUpdateStats(c.Request.Context(), q.Currency, q.Days)
	if err != nil {
		respondError(c, logger.With(slog.String("currency", q.Currency)), err, "Failed to compute update statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// updateExchangeRate godoc
// @Summary Update an exchange rate
// @Description Records a new active rate and, unless applyToProducts is false, reprices every product bought in that currency
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.UpdateExchangeRateRequest true "New rate"
// @Success 201 {object} dto.RateUpdateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to update exchange rate"
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "UpdateExchangeRate")
		return
	}

	operator := middleware.GetOperatorFromCtx(c.Request.Context())
	logger = logger.With(slog.String("currency", req.Currency))
	logger.Info("Received request to update exchange rate",
		slog.String("new_rate", req.NewRate.String()),
		slog.Bool("apply", req.ShouldApply()),
	)

	outcome, err := h.pricingService.UpdateExchangeRate(c.Request.Context(), req, operator)
	if err != nil {
		respondError(c, logger, err, "Failed to update exchange rate")
		return
	}

	logger.Info("Exchange rate updated",
		slog.String("rate_id", outcome.Rate.ExchangeRateID),
		slog.Int("updated_products", outcome.Report.Updated),
		slog.Int("errors", len(outcome.Report.Errors)),
	)
	c.JSON(http.StatusCreated, dto.ToRateUpdateResponse(outcome, utils.FormatRate(outcome.NewRate)))
}

// simulateExchangeRate godoc
// @Summary Simulate an exchange rate
// @Description Previews the repricing a rate would cause. Nothing is written. formula=markup_on_cost selects the legacy formula.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.SimulateExchangeRateRequest true "Simulated rate"
// @Success 200 {object} dto.RateUpdateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to simulate exchange rate"
// @Router /exchange-rates/simulate [post]
func (h *exchangeRateHandler) simulateExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SimulateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "SimulateExchangeRate")
		return
	}

	outcome, err := h.pricingService.SimulateExchangeRate(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger.With(slog.String("currency", req.Currency)), err, "Failed to simulate exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToRateUpdateResponse(outcome, utils.FormatRate(outcome.NewRate)))
}
