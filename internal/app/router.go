// internal/app/router.go
package app

import (
	bonusHandler "fitlife-service/internal/handlers/bonus"
	catalogHandler "fitlife-service/internal/handlers/catalog"
	checkoutHandler "fitlife-service/internal/handlers/checkout"
	promoHandler "fitlife-service/internal/handlers/promo"
	quoteHandler "fitlife-service/internal/handlers/quote"
	upgradeHandler "fitlife-service/internal/handlers/upgrade"
	"fitlife-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	CatalogHandler     *catalogHandler.CatalogHandler
	PromoHandler       *promoHandler.PromoHandler
	BonusHandler       *bonusHandler.BonusHandler
	CheckoutHandler    *checkoutHandler.CheckoutHandler
	UpgradeHandler     *upgradeHandler.UpgradeHandler
	QuoteStreamHandler *quoteHandler.QuoteStreamHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Live Quotes (WebSocket) ====================
	r.GET("/ws/quote", h.QuoteStreamHandler.HandleConnection)

	// ==================== Catalog (public) ====================
	products := api.Group("/products")
	{
		products.GET("", h.CatalogHandler.ListProducts)
		products.GET("/:id", h.CatalogHandler.GetProduct)
		products.GET("/sku/:sku", h.CatalogHandler.GetProductBySKU)
	}

	// ==================== Checkout ====================
	checkout := api.Group("/checkout")
	checkout.Use(h.AuthMiddleware.Auth())
	{
		checkout.POST("/quote", h.CheckoutHandler.Quote)
		checkout.POST("", h.CheckoutHandler.Checkout)
		checkout.POST("/:reference/confirm", h.CheckoutHandler.ConfirmPayment)
		checkout.GET("/purchases", h.CheckoutHandler.ListPurchases)
	}

	// ==================== Promo Codes ====================
	promo := api.Group("/promo")
	promo.Use(h.AuthMiddleware.Auth())
	{
		promo.POST("/validate", h.PromoHandler.Validate)
	}

	// ==================== Bonus ====================
	bonus := api.Group("/bonus")
	bonus.Use(h.AuthMiddleware.Auth())
	{
		bonus.GET("/balance", h.BonusHandler.GetBalance)
	}

	// ==================== Subscription & Upgrades ====================
	subscription := api.Group("/subscription")
	subscription.Use(h.AuthMiddleware.Auth())
	{
		subscription.GET("", h.UpgradeHandler.GetSubscription)
	}

	upgrade := api.Group("/upgrade")
	upgrade.Use(h.AuthMiddleware.Auth())
	{
		upgrade.GET("/preview", h.UpgradeHandler.Preview)
	}
}
