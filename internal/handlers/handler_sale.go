package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
	"github.com/SscSPs/storefront_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// saleHandler exposes sale pricing and the document utilities.
type saleHandler struct {
	saleService portssvc.SaleSvc
}

func newSaleHandler(ss portssvc.SaleSvc) *saleHandler {
	return &saleHandler{saleService: ss}
}

// registerSaleRoutes registers routes related to sales.
func registerSaleRoutes(rg *gin.RouterGroup, ss portssvc.SaleSvc) {
	h := newSaleHandler(ss)

	sales := rg.Group("/sales")
	{
		sales.POST("/quote", h.quoteSale)
		sales.POST("/tax", h.calculateTax)
		sales.POST("/amount-in-words", h.amountInWords)
		sales.POST("/due-date", h.dueDate)
	}
}

// quoteSale godoc
// @Summary Price a sale
// @Description Builds a priced sale document: rates, conversion, tax per line, due date and amount in words. Nothing is stored.
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.QuoteSaleRequest true "Sale lines and terms"
// @Success 200 {object} domain.Sale
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to quote sale"
// @Router /sales/quote [post]
func (h *saleHandler) quoteSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.QuoteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "QuoteSale")
		return
	}

	operator := middleware.GetOperatorFromCtx(c.Request.Context())
	sale, err := h.saleService.QuoteSale(c.Request.Context(), req, operator)
	if err != nil {
		respondError(c, logger.With(slog.Int("items", len(req.Items))), err, "Failed to quote sale")
		return
	}

	c.JSON(http.StatusOK, sale)
}

// calculateTax godoc
// @Summary Calculate tax
// @Description Splits an amount into taxable base and IVA for a tax category
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   request body dto.TaxRequest true "Amount and category"
// @Success 200 {object} domain.TaxCalculation
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /sales/tax [post]
func (h *saleHandler) calculateTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "CalculateTax")
		return
	}

	calc, err := h.saleService.CalculateTax(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to calculate tax")
		return
	}

	c.JSON(http.StatusOK, calc)
}

// amountInWords godoc
// @Summary Spell an amount
// @Description Spells an amount in Spanish words followed by the currency's plural name
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   request body dto.AmountInWordsRequest true "Amount"
// @Success 200 {object} dto.AmountInWordsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /sales/amount-in-words [post]
func (h *saleHandler) amountInWords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AmountInWordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "AmountInWords")
		return
	}

	text, err := h.saleService.AmountInWords(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to spell amount")
		return
	}

	c.JSON(http.StatusOK, dto.AmountInWordsResponse{Amount: req.Amount, Currency: req.Currency, Text: text})
}

// dueDate godoc
// @Summary Resolve a due date
// @Description Resolves payment terms (immediate, net_15, net_30, net_60, custom) into a due date
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   request body dto.DueDateRequest true "Sale date and terms"
// @Success 200 {object} dto.DueDateResponse
// @Failure 400 {object} map[string]string "Invalid or unknown terms"
// @Router /sales/due-date [post]
func (h *saleHandler) dueDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "DueDate")
		return
	}

	res, err := h.saleService.DueDate(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger.With(slog.String("terms", req.PaymentTerms)), err, "Failed to resolve due date")
		return
	}

	c.JSON(http.StatusOK, res)
}
