package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockbuddy07/styleswap/internal/api/handlers"
	"github.com/stockbuddy07/styleswap/internal/api/middleware"
	"github.com/stockbuddy07/styleswap/internal/cache"
	"github.com/stockbuddy07/styleswap/internal/config"
	"github.com/stockbuddy07/styleswap/internal/health"
	"github.com/stockbuddy07/styleswap/internal/metrics"
	repository "github.com/stockbuddy07/styleswap/internal/repositories"
	service "github.com/stockbuddy07/styleswap/internal/services"
	"github.com/stockbuddy07/styleswap/internal/telemetry"
	"github.com/stockbuddy07/styleswap/pkg/sendgrid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdownTracing, err := telemetry.SetupTracing(context.Background(), &cfg.Telemetry)
		if err != nil {
			slog.Error("❌ Error setting up tracing", "error", err.Error())
			os.Exit(1)
		}

		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := shutdownTracing(flushCtx); err != nil {
				slog.Warn("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
			}
		}()
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	sendGridClient := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	userService := service.NewUserService(repos.User, rateLimitRepo, &cfg.Security)
	userHandler := handlers.NewUserHandler(userService)
	productService := service.NewProductService(repos.Product, productCache, cfg.Cache.ProductTTL)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	cartHandler := handlers.NewCartHandler(cartService)
	notificationService := service.NewNotificationService(repos.Notification, sendGridClient)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	checkoutService := service.NewCheckoutService(repos.Order, cartService, repos.Coupon, notificationService, productCache)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderService := service.NewOrderService(repos.Order, repos.Product, productCache)
	orderHandler := handlers.NewOrderHandler(orderService)
	couponService := service.NewCouponService(repos.Coupon)
	couponHandler := handlers.NewCouponHandler(couponService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:          repos.DB,
		RedisClient: redisClient,
	})
	if err != nil {
		slog.Error("❌ Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/me", authMiddleware.Authenticate(userHandler.Profile()))

	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.Authenticate(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/v1/products/mine", authMiddleware.Authenticate(productHandler.ListMyProducts()))
	routerMux.HandleFunc("PUT /api/v1/products/{id}", authMiddleware.Authenticate(productHandler.UpdateProduct()))
	routerMux.HandleFunc("PATCH /api/v1/products/{id}/stock", authMiddleware.Authenticate(productHandler.Restock()))

	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("GET /api/v1/cart/summary", authMiddleware.Authenticate(cartHandler.Summary()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{lineId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{lineId}/quantity", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{lineId}/dates", authMiddleware.Authenticate(cartHandler.UpdateDates()))
	routerMux.HandleFunc("PATCH /api/v1/cart/items/{lineId}/size", authMiddleware.Authenticate(cartHandler.UpdateSize()))

	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Checkout()))

	routerMux.HandleFunc("GET /api/v1/orders", authMiddleware.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authMiddleware.Authenticate(orderHandler.GetOrder()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/status", authMiddleware.Authenticate(orderHandler.UpdateStatus()))
	routerMux.HandleFunc("PUT /api/v1/orders/{id}/feedback", authMiddleware.Authenticate(orderHandler.SubmitFeedback()))
	routerMux.HandleFunc("POST /api/v1/orders/{id}/issues", authMiddleware.Authenticate(orderHandler.RaiseIssue()))
	routerMux.HandleFunc("PATCH /api/v1/orders/{id}/issues/{issueId}", authMiddleware.Authenticate(orderHandler.ResolveIssue()))

	routerMux.HandleFunc("POST /api/v1/coupons", authMiddleware.Authenticate(couponHandler.CreateCoupon()))
	routerMux.HandleFunc("DELETE /api/v1/coupons/{code}", authMiddleware.Authenticate(couponHandler.DeactivateCoupon()))

	routerMux.HandleFunc("GET /api/v1/notifications", authMiddleware.Authenticate(notificationHandler.ListNotifications()))

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "styleswap")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
