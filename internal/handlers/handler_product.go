package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
	"github.com/SscSPs/storefront_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// productHandler handles HTTP requests on the pricing facet of products.
type productHandler struct {
	productService       portssvc.ProductSvcFacade
	recalculationService portssvc.RecalculationSvc
}

func newProductHandler(ps portssvc.ProductSvcFacade, rs portssvc.RecalculationSvc) *productHandler {
	return &productHandler{
		productService:       ps,
		recalculationService: rs,
	}
}

// registerProductRoutes registers routes related to product pricing.
func registerProductRoutes(rg *gin.RouterGroup, writes gin.HandlerFunc, ps portssvc.ProductSvcFacade, rs portssvc.RecalculationSvc) {
	h := newProductHandler(ps, rs)

	products := rg.Group("/products")
	{
		products.GET("", h.listProducts)
		products.POST("", writes, h.createProduct)
		products.POST("/recalculate", writes, h.recalculatePrices)
		products.GET("/:productID", h.getProduct)
		products.PUT("/:productID/pricing", writes, h.updateProductPricing)
	}
}

// listProducts godoc
// @Summary List products
// @Description Pages through the pricing facet of all products, oldest first
// @Tags products
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token returned by the previous page"
// @Success 200 {object} dto.ListProductsResponse
// @Failure 400 {object} map[string]string "Invalid query or token"
// @Failure 500 {object} map[string]string "Failed to list products"
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "ListProducts")
		return
	}

	products, nextToken, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, dto.ToListProductsResponse(products, nextToken))
}

// getProduct godoc
// @Summary Get a product
// @Tags products
// @Produce  json
// @Param   productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to retrieve product"
// @Router /products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	productID := c.Param("productID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("product_id", productID))

	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve product")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// createProduct godoc
// @Summary Create a product
// @Description Registers a product with its pricing inputs; the selling price is derived at the current rate
// @Tags products
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product pricing inputs"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Product code already exists"
// @Failure 500 {object} map[string]string "Failed to create product"
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "CreateProduct")
		return
	}

	operator := middleware.GetOperatorFromCtx(c.Request.Context())
	product, err := h.productService.CreateProduct(c.Request.Context(), req, operator)
	if err != nil {
		respondError(c, logger.With(slog.String("code", req.Code)), err, "Failed to create product")
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.String("selling_price", product.SellingPriceLocal.String()))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// updateProductPricing godoc
// @Summary Edit product pricing
// @Description Overwrites the given pricing inputs and recomputes the selling price at the current rate
// @Tags products
// @Accept  json
// @Produce  json
// @Param   productID path string true "Product ID"
// @Param   pricing body dto.UpdateProductPricingRequest true "Pricing inputs to change"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Failed to update product pricing"
// @Router /products/{productID}/pricing [put]
func (h *productHandler) updateProductPricing(c *gin.Context) {
	productID := c.Param("productID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("product_id", productID))
	var req dto.UpdateProductPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "UpdateProductPricing")
		return
	}

	operator := middleware.GetOperatorFromCtx(c.Request.Context())
	product, err := h.productService.UpdateProductPricing(c.Request.Context(), productID, req, operator)
	if err != nil {
		respondError(c, logger, err, "Failed to update product pricing")
		return
	}

	logger.Info("Product pricing updated", slog.String("selling_price", product.SellingPriceLocal.String()))
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// recalculatePrices godoc
// @Summary Recalculate product prices
// @Description Runs the batch recalculation engine for one currency. dryRun previews without writing.
// @Tags products
// @Accept  json
// @Produce  json
// @Param   request body dto.RecalculateProductsRequest true "Recalculation request"
// @Success 200 {object} domain.RecalculationReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to recalculate prices"
// @Router /products/recalculate [post]
func (h *productHandler) recalculatePrices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecalculateProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "RecalculatePrices")
		return
	}

	operator := middleware.GetOperatorFromCtx(c.Request.Context())
	report, err := h.recalculationService.Recalculate(c.Request.Context(), req.ToRecalculationRequest(operator))
	if err != nil {
		respondError(c, logger.With(slog.String("currency", req.Currency)), err, "Failed to recalculate prices")
		return
	}

	c.JSON(http.StatusOK, report)
}
