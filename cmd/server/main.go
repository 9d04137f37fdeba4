package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	cartapp "github.com/renztrending/backend/internal/application/cart"
	catalogapp "github.com/renztrending/backend/internal/application/catalog"
	engagementapp "github.com/renztrending/backend/internal/application/engagement"
	identityapp "github.com/renztrending/backend/internal/application/identity"
	"github.com/renztrending/backend/internal/application/notification"
	orderapp "github.com/renztrending/backend/internal/application/order"
	reportapp "github.com/renztrending/backend/internal/application/report"
	"github.com/renztrending/backend/internal/domain/order"
	"github.com/renztrending/backend/internal/infrastructure/audit"
	"github.com/renztrending/backend/internal/infrastructure/auth"
	"github.com/renztrending/backend/internal/infrastructure/cache"
	"github.com/renztrending/backend/internal/infrastructure/config"
	"github.com/renztrending/backend/internal/infrastructure/email"
	"github.com/renztrending/backend/internal/infrastructure/event"
	"github.com/renztrending/backend/internal/infrastructure/logger"
	"github.com/renztrending/backend/internal/infrastructure/migration"
	"github.com/renztrending/backend/internal/infrastructure/payment"
	"github.com/renztrending/backend/internal/infrastructure/persistence"
	"github.com/renztrending/backend/internal/infrastructure/storage"
	"github.com/renztrending/backend/internal/infrastructure/telemetry"
	"github.com/renztrending/backend/internal/interfaces/http/handler"
	"github.com/renztrending/backend/internal/interfaces/http/middleware"
	"github.com/renztrending/backend/internal/interfaces/http/router"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// mailConcurrency bounds in-flight notification emails
	mailConcurrency = 4
	// orderNotificationTTL is how long a delivered order email is remembered
	orderNotificationTTL = 24 * time.Hour
	// shutdownTimeout bounds the whole graceful shutdown sequence
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry comes up before everything else so the bridged logger,
	// the DB plugin and the HTTP middleware share one provider
	tel, err := telemetry.Setup(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log := tel.BridgeLogger(baseLog, zapcore.InfoLevel)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting RenzTrending backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", telemetry.ServiceVersion),
	)
	meter := tel.Meter("renztrending/backend")

	// Database
	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, meter, log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	if cfg.Database.AutoMigrate {
		if err := applyMigrations(db, cfg.Database.MigrationsPath, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// Redis is optional; every consumer has an in-memory fallback
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}
	var stores cache.Stores
	var revocations auth.Revocations
	var authLimiter middleware.Limiter
	if redisClient != nil {
		stores = cache.NewStores(redisClient, cache.ProductCacheOptions{
			KeyPrefix: cfg.Cache.KeyPrefix,
			TTL:       cfg.Cache.ProductTTL,
		}, log)
		revocations = auth.NewRedisRevocations(redisClient, cfg.Cache.KeyPrefix+"revoked_token:")
		authLimiter = middleware.NewRedisLimiter(redisClient, cfg.Cache.KeyPrefix+"ratelimit:", cfg.HTTP.AuthRateLimit, time.Minute)
	} else {
		stores = cache.NewStores(nil, cache.ProductCacheOptions{}, log)
		revocations = auth.NewMemoryRevocations()
		memLimiter := middleware.NewMemoryLimiter(cfg.HTTP.AuthRateLimit, time.Minute)
		defer memLimiter.Stop()
		authLimiter = memLimiter
	}

	// Audit trail
	auditStore, err := audit.NewStore(ctx, cfg.Audit, log)
	if err != nil {
		log.Fatal("Failed to initialize audit log", zap.Error(err))
	}

	// Product images
	imageStorage, err := storage.NewImageStorage(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	// Outbound email runs on the dispatcher and never blocks a request
	mailer, err := email.NewMailer(cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}
	dispatcher := notification.NewDispatcher(mailer, cfg.Mail.SendTimeout, mailConcurrency, log)

	gateway, err := payment.NewGateway(cfg.Payment)
	if err != nil {
		log.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}
	log.Info("Payment gateway ready", zap.String("provider", cfg.Payment.Provider))

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	attributeRepo := persistence.NewGormAttributeRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	intentRepo := persistence.NewGormPaymentIntentRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	analyticsRepo := persistence.NewGormOrderAnalyticsRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	orderNotifier := notification.NewOrderUpdateNotifier(customerRepo, dispatcher, cfg.App.SiteURL, log)
	eventBus.Subscribe(
		event.NewDedupHandler("order_update_email", orderNotifier, stores.Idempotency, orderNotificationTTL, log),
		order.EventTypeOrderStatusChanged,
	)
	eventBus.Subscribe(notification.NewOrderAuditHandler(auditStore, log))

	shopMetrics, err := telemetry.NewShopMetrics(meter, productRepo, log)
	if err != nil {
		log.Fatal("Failed to register shop metrics", zap.Error(err))
	}
	eventBus.Subscribe(shopMetrics, shopMetrics.EventTypes()...)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	log.Info("Event bus started")

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(customerRepo, jwtService, revocations, eventBus, log)
	profileService := identityapp.NewProfileService(customerRepo, addressRepo)

	productService := catalogapp.NewProductService(productRepo, categoryRepo, stores.Products, imageStorage, auditStore, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	attributeService := catalogapp.NewAttributeService(attributeRepo)
	inventoryService := catalogapp.NewInventoryService(productRepo, stores.Products, auditStore, log)

	cartService := cartapp.NewCartService(cartRepo, productRepo, log)

	checkoutService := orderapp.NewCheckoutService(orderapp.CheckoutServiceDeps{
		TxScope:     txScope,
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		AddressRepo: addressRepo,
		Gateway:     gateway,
		Intents:     intentRepo,
		Idempotency: stores.Idempotency,
		Publisher:   eventBus,
		Logger:      log,
	})
	orderService := orderapp.NewOrderService(orderRepo, addressRepo, txScope, eventBus, log)
	adminOrderService := orderapp.NewAdminOrderService(orderRepo, txScope, auditStore, eventBus, log)

	reviewService := engagementapp.NewReviewService(reviewRepo, productRepo, persistence.NewGormReviewScope(db.DB), stores.Products, log)
	wishlistService := engagementapp.NewWishlistService(wishlistRepo, productRepo, log)
	newsletterService := engagementapp.NewNewsletterService(subscriptionRepo, dispatcher, cfg.App.SiteURL, log)

	analyticsService := reportapp.NewAnalyticsService(analyticsRepo, log)
	exportService := reportapp.NewExportService(orderRepo, customerRepo, categoryRepo, log)

	// Handlers
	handlers := router.Handlers{
		System:       handler.NewSystemHandler(db, telemetry.ServiceVersion),
		Auth:         handler.NewAuthHandler(authService),
		Account:      handler.NewAccountHandler(profileService),
		Catalog:      handler.NewCatalogHandler(productService, categoryService, reviewService),
		Cart:         handler.NewCartHandler(cartService),
		Order:        handler.NewOrderHandler(checkoutService, orderService),
		Review:       handler.NewReviewHandler(reviewService),
		Wishlist:     handler.NewWishlistHandler(wishlistService),
		Newsletter:   handler.NewNewsletterHandler(newsletterService),
		AdminCatalog: handler.NewAdminCatalogHandler(productService, categoryService, attributeService, inventoryService),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderService),
		Report:       handler.NewReportHandler(analyticsService, exportService, auditStore),
	}

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to register HTTP metrics", zap.Error(err))
	}
	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.HSTSEnabled = cfg.IsProduction()

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		otelgin.Middleware(cfg.Telemetry.ServiceName),
		middleware.SpanEnricher(),
		telemetry.GinProfilingLabels(),
		logger.GinMiddleware(log, "/api/v1/health"),
		httpMetrics,
		middleware.Secure(securityCfg),
		middleware.CORS(cfg.HTTP),
		middleware.BodyLimitByRoute(cfg.HTTP.MaxBodySize, map[string]int64{
			router.ImageUploadRoute: cfg.HTTP.MaxUploadSize,
			router.StockImportRoute: cfg.HTTP.MaxUploadSize,
		}),
	)

	if !cfg.Storage.Enabled {
		engine.Static(storage.MediaRoute, cfg.Storage.LocalDir)
	}

	guards := router.Guards{
		Authenticated: middleware.Authenticate(middleware.AuthConfig{
			Tokens:      jwtService,
			Revocations: revocations,
			Logger:      log,
		}),
		Staff:        middleware.RequireStaff(),
		AuthAttempts: middleware.AuthRateLimit(authLimiter),
	}
	api := router.RegisterAPI(router.NewRouter(engine), handlers, guards)
	api.Setup()
	log.Debug("Routes mounted", zap.Int("count", len(api.Table())))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("Pending emails abandoned", zap.Error(err))
	}
	if err := auditStore.Close(shutdownCtx); err != nil {
		log.Error("Error closing audit log", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis", zap.Error(err))
		}
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		baseLog.Error("Error shutting down telemetry", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// applyMigrations brings the schema up to date before serving traffic
func applyMigrations(db *persistence.Database, path string, log *zap.Logger) error {
	sqlDB, err := db.SQL()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migration.DialectPostgres, path, log)
	if err != nil {
		return err
	}
	// Closing the migrator would close the shared pool
	return m.Up()
}
