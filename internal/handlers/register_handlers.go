package handlers

import (
	"github.com/SscSPs/storefront_backoffice/cmd/docs"
	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/middleware"
	"github.com/SscSPs/storefront_backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// writeLimiter throttles the endpoints that change prices or the catalog; nil disables it.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	writeLimiter *limiter.Limiter,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services, writeLimiter)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	service *portssvc.ServiceContainer,
	writeLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.OperatorMiddleware())

	var writes gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if writeLimiter != nil {
		writes = middleware.RateLimit(writeLimiter)
	}

	registerCurrencyRoutes(v1, writes, service.Currency)
	registerExchangeRateRoutes(v1, writes, service.ExchangeRate, service.PricingAdmin)
	registerProductRoutes(v1, writes, service.Product, service.Recalculation)
	registerSaleRoutes(v1, service.Sale)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
