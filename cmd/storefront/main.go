package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dreamworldhq/storefront/internal/api/handlers"
	"github.com/dreamworldhq/storefront/internal/api/middleware"
	"github.com/dreamworldhq/storefront/internal/config"
	"github.com/dreamworldhq/storefront/internal/health"
	"github.com/dreamworldhq/storefront/internal/invoice"
	"github.com/dreamworldhq/storefront/internal/metrics"
	repository "github.com/dreamworldhq/storefront/internal/repositories"
	service "github.com/dreamworldhq/storefront/internal/services"
	"github.com/dreamworldhq/storefront/pkg/backoffice"
	"github.com/dreamworldhq/storefront/pkg/sendgrid"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

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

	jwtKey := []byte(cfg.Security.JWTKey)
	backOfficeClient := backoffice.NewClient(cfg.Checkout.BackOfficeURL, cfg.Checkout.SubmitTimeout)
	emailService := sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	cartRepo := repository.NewCartRepo(redisClient)
	snapshotRepo := repository.NewSnapshotRepo(redisClient, cfg.Checkout.SnapshotTTL)
	stateRepo := repository.NewOAuthStateRepo(redisClient, cfg.OAuth.StateTTL)
	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg)
	userRepo := repository.NewUserRepo(repos.DB)
	journalRepo := repository.NewOrderJournalRepo(repos.DB)

	invoiceGenerator := invoice.NewGenerator(invoice.Company{
		Name:    cfg.Invoice.CompanyName,
		Tagline: cfg.Invoice.CompanyTagline,
		Street:  cfg.Invoice.CompanyStreet,
		City:    cfg.Invoice.CompanyCity,
		Phone:   cfg.Invoice.CompanyPhone,
		Email:   cfg.Invoice.CompanyEmail,
	})

	userService := service.NewUserService(userRepo, rateLimitRepo, jwtKey)
	userHandler := handlers.NewUserHandler(userService)
	oauthService := service.NewOAuthService(userRepo, stateRepo, &cfg.OAuth, jwtKey)
	oauthHandler := handlers.NewOAuthHandler(oauthService)
	cartService := service.NewCartService(cartRepo)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutService := service.NewCheckoutService(cartRepo, snapshotRepo, journalRepo, backOfficeClient, emailService, cfg.Checkout.TaxRate, cfg.Checkout.SubmitTimeout, cfg.Checkout.ConfirmationFrom)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, invoiceGenerator)
	catalogHandler := handlers.NewCatalogHandler(backOfficeClient)
	adminHandler := handlers.NewAdminHandler(backOfficeClient)
	authMiddleware := middleware.NewAuthMiddleware(jwtKey)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		DB:          repos.DB,
		RedisClient: redisClient,
		BackOffice:  backOfficeClient,
	})
	if err != nil {
		slog.Error("❌ Error creating the health checker", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("POST /api/v1/users/register", userHandler.Register())
	routerMux.HandleFunc("POST /api/v1/users/login", userHandler.Login())
	routerMux.HandleFunc("GET /api/v1/users/profile", authMiddleware.Authenticate(userHandler.Profile()))
	routerMux.HandleFunc("GET /api/v1/auth/github/begin", oauthHandler.BeginGitHub())
	routerMux.HandleFunc("GET /api/v1/auth/github/callback", oauthHandler.CompleteGitHub())
	routerMux.HandleFunc("POST /api/v1/auth/google", oauthHandler.GoogleSignIn())
	routerMux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authMiddleware.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", authMiddleware.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authMiddleware.Authenticate(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/checkout", authMiddleware.Authenticate(checkoutHandler.Submit()))
	routerMux.HandleFunc("GET /api/v1/checkout/{id}/invoice", authMiddleware.Authenticate(checkoutHandler.DownloadInvoice()))
	routerMux.HandleFunc("GET /api/v1/admin/{resource}", authMiddleware.Authenticate(adminHandler.List()))
	routerMux.HandleFunc("POST /api/v1/admin/{resource}", authMiddleware.Authenticate(adminHandler.Create()))
	routerMux.HandleFunc("GET /api/v1/admin/{resource}/{id}", authMiddleware.Authenticate(adminHandler.Get()))
	routerMux.HandleFunc("PUT /api/v1/admin/{resource}/{id}", authMiddleware.Authenticate(adminHandler.Update()))
	routerMux.HandleFunc("DELETE /api/v1/admin/{resource}/{id}", authMiddleware.Authenticate(adminHandler.Delete()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

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
