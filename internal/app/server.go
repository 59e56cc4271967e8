// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"fitlife-service/internal/config"
	"fitlife-service/internal/db"
	bonusHandler "fitlife-service/internal/handlers/bonus"
	catalogHandler "fitlife-service/internal/handlers/catalog"
	checkoutHandler "fitlife-service/internal/handlers/checkout"
	promoHandler "fitlife-service/internal/handlers/promo"
	quoteHandler "fitlife-service/internal/handlers/quote"
	upgradeHandler "fitlife-service/internal/handlers/upgrade"
	"fitlife-service/internal/middleware"
	"fitlife-service/internal/pkg/jwt"
	"fitlife-service/internal/pricing"
	"fitlife-service/internal/repository/postgres"
	bonusUsecase "fitlife-service/internal/service/bonus"
	catalogUsecase "fitlife-service/internal/service/catalog"
	checkoutUsecase "fitlife-service/internal/service/checkout"
	promoUsecase "fitlife-service/internal/service/promo"
	upgradeUsecase "fitlife-service/internal/service/upgrade"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.Connect(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		log.Fatalf("[REDIS] ❌ Failed to connect to Redis: %v", err)
	}
	log.Println("[REDIS] ✅ Connected successfully")

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- JWT Verifier -----
	verifier, err := jwt.LoadVerifier(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT verifier: %w", err)
	}

	// ----- Pricing engine -----
	calculator := pricing.NewCalculator(s.cfg.Pricing)

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	productRepo := postgres.NewProductRepository(pool)
	promoRepo := postgres.NewPromoCodeRepository(pool)
	bonusRepo := postgres.NewBonusRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)

	// ----- Services (Usecases) -----
	catalogService := catalogUsecase.NewCatalogService(productRepo, logger)
	promoService := promoUsecase.NewPromoService(promoRepo, logger)
	bonusService := bonusUsecase.NewBonusService(bonusRepo, redisClient, s.cfg.Pricing, logger)
	upgradeService := upgradeUsecase.NewUpgradeService(subscriptionRepo, calculator, logger)
	checkoutService := checkoutUsecase.NewCheckoutService(
		productRepo,
		promoRepo,
		purchaseRepo,
		subscriptionRepo,
		promoService,
		bonusService,
		upgradeService,
		dbWrapper,
		calculator,
		logger,
	)

	// ----- Handlers -----
	catalogHandlerInst := catalogHandler.NewCatalogHandler(catalogService)
	promoHandlerInst := promoHandler.NewPromoHandler(promoService)
	bonusHandlerInst := bonusHandler.NewBonusHandler(bonusService)
	checkoutHandlerInst := checkoutHandler.NewCheckoutHandler(checkoutService)
	upgradeHandlerInst := upgradeHandler.NewUpgradeHandler(upgradeService)
	quoteStreamHandlerInst := quoteHandler.NewQuoteStreamHandler(checkoutService, verifier, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(verifier)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		CatalogHandler:     catalogHandlerInst,
		PromoHandler:       promoHandlerInst,
		BonusHandler:       bonusHandlerInst,
		CheckoutHandler:    checkoutHandlerInst,
		UpgradeHandler:     upgradeHandlerInst,
		QuoteStreamHandler: quoteStreamHandlerInst,
		AuthMiddleware:     authMiddleware,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("🚀 Server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
