package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ikpixels/marketplace/internal/infrastructure/cache"
	"github.com/ikpixels/marketplace/internal/infrastructure/config"
	"github.com/ikpixels/marketplace/internal/infrastructure/logger"
	"github.com/ikpixels/marketplace/internal/interfaces/http/handler"
	"github.com/ikpixels/marketplace/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers are the HTTP handlers mounted by New
type Handlers struct {
	Auth       *handler.AuthHandler
	Payment    *handler.PaymentHandler
	Product    *handler.ProductHandler
	Withdrawal *handler.WithdrawalHandler
	Gallery    *handler.GalleryHandler
	Contact    *handler.ContactHandler
	Health     *handler.HealthHandler
}

// Config configures the engine built by New
type Config struct {
	ServiceName string
	HTTP        config.HTTPConfig
	Swagger     config.SwaggerConfig
	Tracing     bool
	Profiling   bool
	HSTS        bool
	Auth        middleware.JWTMiddlewareConfig
	Logger      *zap.Logger

	// AuthLimiter guards sign-in, sign-up and the contact form,
	// PaymentLimiter the /pay routes. Nil disables the limit.
	AuthLimiter    *middleware.RateLimiter
	PaymentLimiter *middleware.RateLimiter

	// Idempotency deduplicates charge initiation by Idempotency-Key.
	// Nil disables the check.
	Idempotency cache.IdempotencyStore
}

// New builds the gin engine: global middleware, the health probe, the
// protected swagger UI and the /api/v1 routes.
func New(cfg Config, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	cors := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{ServiceName: cfg.ServiceName, Enabled: cfg.Tracing}),
		middleware.SpanEnricher(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(cors),
		middleware.SecureHeaders(cfg.HSTS),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.Profiling(cfg.Profiling),
	)

	jwtAuth := middleware.JWTAuth(cfg.Auth)
	optionalAuth := middleware.OptionalJWTAuth(cfg.Auth)

	engine.GET("/health", h.Health.Check)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger, jwtAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{Store: cfg.Idempotency, Logger: log})
	groups := []*DomainGroup{
		NewDomainGroup("system", "").GET("/health", h.Health.Check),
		authRoutes(h.Auth, jwtAuth, rateLimit(cfg.AuthLimiter, "auth")),
		accountRoutes(h.Auth, h.Withdrawal, jwtAuth),
		marketplaceRoutes(h.Product, jwtAuth),
		showcaseRoutes(h.Gallery, h.Contact, optionalAuth, rateLimit(cfg.AuthLimiter, "contact")),
		paymentRoutes(h.Payment, jwtAuth, idempotent, rateLimit(cfg.PaymentLimiter, "pay")),
		adminRoutes(h, jwtAuth),
	}
	Mount(engine, APIPrefix, groups...)
	for _, g := range groups {
		log.Debug("Routes mounted", zap.String("group", g.Name()), zap.Int("routes", g.RouteCount()))
	}

	return engine, nil
}

func rateLimit(rl *middleware.RateLimiter, scope string) gin.HandlerFunc {
	if rl == nil {
		return nil
	}
	return middleware.RateLimit(rl, scope)
}

func authRoutes(auth *handler.AuthHandler, jwtAuth, limit gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("auth", "/auth").
		Use(limit).
		POST("/register", auth.Register).
		POST("/login", auth.Login).
		POST("/refresh", auth.Refresh).
		POST("/logout", jwtAuth, auth.Logout)
}

func accountRoutes(auth *handler.AuthHandler, withdrawals *handler.WithdrawalHandler, jwtAuth gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("account", "").
		Use(jwtAuth).
		GET("/me", auth.Me).
		PUT("/me", auth.UpdateProfile).
		POST("/withdrawals", withdrawals.Create).
		GET("/withdrawals", withdrawals.ListMine)
}

func marketplaceRoutes(products *handler.ProductHandler, jwtAuth gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("marketplace", "/marketplace/products").
		GET("", products.ListMarketplace).
		GET("/:id", products.GetProductDetail).
		GET("/:id/download", jwtAuth, products.Download)
}

func showcaseRoutes(gallery *handler.GalleryHandler, contact *handler.ContactHandler, optionalAuth, limit gin.HandlerFunc) *DomainGroup {
	showcase := NewDomainGroup("showcase", "").
		GET("/home", gallery.Home).
		GET("/gallery", gallery.List)

	showcase.Group("contact", "/contact").
		Use(limit, optionalAuth).
		POST("", contact.Submit)

	return showcase
}

// paymentRoutes leaves verification public: the gateway redirects the
// buyer there and may call it as a webhook.
func paymentRoutes(payments *handler.PaymentHandler, jwtAuth, idempotent, limit gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("payments", "/pay").
		Use(limit).
		POST("/mobile/:product_id", jwtAuth, idempotent, payments.MobileCharge).
		POST("/card/:product_id", jwtAuth, idempotent, payments.CardCharge).
		POST("/verify/:tx_ref", payments.Verify)
}

func adminRoutes(h Handlers, jwtAuth gin.HandlerFunc) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin").Use(jwtAuth, middleware.RequireAdmin())

	admin.Group("admin-products", "/products").
		POST("", h.Product.CreateProduct).
		POST("/upload-url", h.Product.CreateUploadURL).
		GET("/:id", h.Product.GetProduct).
		PUT("/:id", h.Product.UpdateProduct).
		DELETE("/:id", h.Product.DeleteProduct)

	admin.Group("admin-withdrawals", "/withdrawals").
		GET("", h.Withdrawal.List).
		POST("/:id/process", h.Withdrawal.Process).
		POST("/:id/fail", h.Withdrawal.Fail)

	admin.Group("admin-gallery", "/gallery").
		GET("", h.Gallery.AdminList).
		POST("", h.Gallery.Create).
		GET("/:id", h.Gallery.Get).
		PUT("/:id", h.Gallery.Update).
		DELETE("/:id", h.Gallery.Delete)

	admin.Group("admin-contact", "/contact-messages").
		GET("", h.Contact.List).
		POST("/:id/handle", h.Contact.MarkHandled)

	return admin
}
