package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/ikpixels/marketplace/internal/application/catalog"
	identityapp "github.com/ikpixels/marketplace/internal/application/identity"
	paymentapp "github.com/ikpixels/marketplace/internal/application/payment"
	supportapp "github.com/ikpixels/marketplace/internal/application/support"
	domainpayment "github.com/ikpixels/marketplace/internal/domain/payment"
	"github.com/ikpixels/marketplace/internal/infrastructure/auth"
	"github.com/ikpixels/marketplace/internal/infrastructure/cache"
	"github.com/ikpixels/marketplace/internal/infrastructure/config"
	"github.com/ikpixels/marketplace/internal/infrastructure/event"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	paymentinfra "github.com/ikpixels/marketplace/internal/infrastructure/payment"
	"github.com/ikpixels/marketplace/internal/infrastructure/persistence"
	"github.com/ikpixels/marketplace/internal/infrastructure/storage"
	"github.com/ikpixels/marketplace/internal/infrastructure/telemetry"
	"github.com/ikpixels/marketplace/internal/interfaces/http/handler"
	"github.com/ikpixels/marketplace/internal/interfaces/http/middleware"
	"github.com/ikpixels/marketplace/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/ikpixels/marketplace/docs"
)

//	@title			Marketplace API
//	@version		1.0
//	@description	Digital product marketplace with PayChangu mobile money and card checkout.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const (
	shutdownTimeout      = 30 * time.Second
	limiterSweepInterval = 5 * time.Minute
	authRateLimit        = 10
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	if cfg.Telemetry.Enabled {
		// re-create the logger so entries are also exported over OTLP
		log, err = logger.New(logCfg, loggerProvider.Core(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		logger.Sync(log)
	}()

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if cfg.Telemetry.ProfilingEnabled {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting marketplace",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry.DBTraceEnabled, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Redis backs token revocation and charge idempotency when enabled
	var redisClient redis.UniversalClient
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("Error closing redis", zap.Error(err))
			}
		}()
		redisClient = client
		blacklist = auth.NewRedisTokenBlacklist(client)
		log.Info("Redis enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	idempotency := cache.NewIdempotencyStore(redisClient, log)
	defer func() {
		_ = idempotency.Close()
	}()

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	attemptRepo := persistence.NewGormPaymentAttemptRepository(db.DB)
	withdrawalRepo := persistence.NewGormWithdrawalRepository(db.DB)
	galleryRepo := persistence.NewGormGalleryRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Object storage
	var objects catalogapp.ObjectStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(ctx, cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Warn("Bucket check failed", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		}
		objects = s3Storage
	} else {
		objects = storage.NewPublicObjectStorage(cfg.Storage.PublicBaseURL)
	}

	// Payment gateway
	operatorRefs := paymentinfra.DefaultOperatorRefs()
	if cfg.PayChangu.AirtelOperatorID != "" {
		operatorRefs[domainpayment.OperatorAirtel] = cfg.PayChangu.AirtelOperatorID
	}
	if cfg.PayChangu.MpambaOperatorID != "" {
		operatorRefs[domainpayment.OperatorMpamba] = cfg.PayChangu.MpambaOperatorID
	}
	gateway, err := paymentinfra.NewPayChanguAdapter(paymentinfra.PayChanguConfig{
		BaseURL:      cfg.PayChangu.BaseURL,
		SecretKey:    cfg.PayChangu.SecretKey,
		Currency:     cfg.PayChangu.Currency,
		Platform:     cfg.PayChangu.Platform,
		Timeout:      cfg.PayChangu.Timeout,
		OperatorRefs: operatorRefs,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingHandler(log))
	if cfg.Events.SNSEnabled {
		snsClient, err := event.NewSNSClient(ctx, cfg.Events)
		if err != nil {
			log.Fatal("Failed to initialize SNS client", zap.Error(err))
		}
		snsHandler, err := event.NewSNSHandler(snsClient, cfg.Events.SNSTopicARN, log)
		if err != nil {
			log.Fatal("Failed to initialize SNS handler", zap.Error(err))
		}
		eventBus.Subscribe(snsHandler)
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	clientService := identityapp.NewClientService(clientRepo)
	authService := identityapp.NewAuthService(accountRepo, clientService, jwtService, blacklist, log)
	productService := catalogapp.NewProductService(productRepo, clientRepo, orderRepo, objects, catalogapp.ProductServiceConfig{
		ImageURLExpiry:    cfg.Storage.PresignExpiration,
		DownloadURLExpiry: cfg.Storage.PresignExpiration,
		UploadURLExpiry:   cfg.Storage.PresignExpiration,
	}, log)
	checkoutService := paymentapp.NewCheckoutService(
		accountRepo, clientRepo, productRepo, attemptRepo, gateway, txScope, eventBus,
		paymentapp.CheckoutConfig{
			Currency:        cfg.PayChangu.Currency,
			CardRedirectURL: cfg.PayChangu.CardRedirectURL,
		}, log)
	withdrawalService := paymentapp.NewWithdrawalService(clientRepo, withdrawalRepo, gateway, txScope, log)
	galleryService := catalogapp.NewGalleryService(galleryRepo, productRepo, objects, cfg.Storage.PresignExpiration, log)
	contactService := supportapp.NewContactService(contactRepo, clientRepo, log)

	// Rate limiting
	var authLimiter, paymentLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		authLimiter = middleware.NewRateLimiter(authRateLimit, authRateLimit)
		paymentLimiter = middleware.NewRateLimiter(cfg.HTTP.PaymentRateLimit, cfg.HTTP.RateLimitBurst)
		go authLimiter.RunSweeper(ctx, limiterSweepInterval)
		go paymentLimiter.RunSweeper(ctx, limiterSweepInterval)
	}

	checks := map[string]handler.HealthCheck{
		"database": db.Ping,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	engine, err := router.New(router.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		HTTP:        cfg.HTTP,
		Swagger:     cfg.Swagger,
		Tracing:     cfg.Telemetry.Enabled,
		Profiling:   cfg.Telemetry.ProfilingEnabled,
		HSTS:        cfg.IsProduction(),
		Auth: middleware.JWTMiddlewareConfig{
			Tokens:    jwtService,
			Blacklist: blacklist,
			Logger:    log,
		},
		Logger:         log,
		AuthLimiter:    authLimiter,
		PaymentLimiter: paymentLimiter,
		Idempotency:    idempotency,
	}, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Payment:    handler.NewPaymentHandler(checkoutService),
		Product:    handler.NewProductHandler(productService),
		Withdrawal: handler.NewWithdrawalHandler(withdrawalService),
		Gallery:    handler.NewGalleryHandler(galleryService),
		Contact:    handler.NewContactHandler(contactService),
		Health:     handler.NewHealthHandler(checks),
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
