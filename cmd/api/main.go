// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/dangerclosesec/accountd/internal/auth"
	"github.com/dangerclosesec/accountd/internal/config"
	"github.com/dangerclosesec/accountd/internal/database"
	"github.com/dangerclosesec/accountd/internal/handler"
	"github.com/dangerclosesec/accountd/internal/metrics"
	"github.com/dangerclosesec/accountd/internal/middleware"
	"github.com/dangerclosesec/accountd/internal/provision"
	"github.com/dangerclosesec/accountd/internal/repository"
	"github.com/dangerclosesec/accountd/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()
	if cfg.JWT.Secret == "" {
		return errors.New("JWT_SECRET is not configured")
	}

	// Initialize database
	sqlDB, err := database.Open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	db, err := database.Wrap(sqlDB)
	if err != nil {
		return fmt.Errorf("setting up gorm: %w", err)
	}

	// Initialize metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	productRepo := repository.NewProductRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	securityRepo := repository.NewSecurityRepository(db)

	// Initialize auth primitives
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.BaseExpiry, cfg.JWT.ResetExpiry)

	// Initialize the provisioning client
	provisioner := provision.NewClient(&provision.Config{
		ServiceURLs: cfg.Provisioning.ServiceURLs,
		Timeout:     cfg.Provisioning.Timeout,
	})

	// Initialize services
	securityService := service.NewSecurityService(securityRepo, collector)
	authService := service.NewAuthService(userRepo, accountRepo, passwordHasher, tokenManager, securityService, collector, cfg.WebappURL)
	accountService := service.NewAccountService(accountRepo, enrollmentRepo, productRepo, orgRepo, provisioner, tokenManager, securityService, collector)
	orgService := service.NewOrganizationService(orgRepo)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo)
	platformService := service.NewPlatformService(userRepo, accountRepo, productRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, accountService)
	accountHandler := handler.NewAccountHandler(accountService)
	orgHandler := handler.NewOrganizationHandler(orgService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	platformHandler := handler.NewPlatformHandler(platformService, securityService)

	// Rate limiter for credential endpoints
	limiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	defer limiter.Stop()

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(chimw.AllowContentType("application/json"))
				r.Use(limiter.Middleware())

				r.Post("/register", authHandler.RegisterHandler)
				r.Post("/login", authHandler.LoginHandler)
				r.Post("/forgot-password", authHandler.ForgotPasswordHandler)
				r.Post("/reset-password", authHandler.ResetPasswordHandler)
			})

			r.Get("/verify", authHandler.VerifyHandler)

			// Switch-product needs a valid base credential
			r.Group(func(r chi.Router) {
				r.Use(chimw.AllowContentType("application/json"))
				r.Use(middleware.RequireAuth(tokenManager))

				r.Post("/switch-product", authHandler.SwitchProductHandler)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokenManager))

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/{accountId}", accountHandler.GetAccountHandler)
				r.Get("/{accountId}/products", accountHandler.GetAccountProductsHandler)
				r.Post("/{accountId}/products", accountHandler.EnrollProductHandler)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me/accounts", accountHandler.GetUserAccountsHandler)
				r.Get("/profile", userHandler.GetProfileHandler)
				r.Put("/profile", userHandler.UpdateProfileHandler)
			})

			r.Route("/organizations", func(r chi.Router) {
				r.Post("/", orgHandler.CreateHandler)
				r.Get("/{organizationId}", orgHandler.GetHandler)
				r.Put("/{organizationId}", orgHandler.UpdateHandler)
				r.Get("/{organizationId}/members", orgHandler.ListMembersHandler)
				r.Post("/{organizationId}/members", orgHandler.AddMemberHandler)
				r.Delete("/{organizationId}/members/{userId}", orgHandler.RemoveMemberHandler)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", productHandler.ListHandler)
				r.Post("/", productHandler.CreateHandler)
				r.Get("/stats", productHandler.StatsHandler)
				r.Get("/{code}/accounts", productHandler.EnrolledAccountsHandler)
			})

			r.Route("/platform", func(r chi.Router) {
				r.Get("/analytics", platformHandler.AnalyticsHandler)
				r.Get("/security/overview", platformHandler.SecurityOverviewHandler)
			})
		})
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"requestID", chimw.GetReqID(r.Context()),
			)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						"panic", rec,
						"stack", string(debug.Stack()),
						"path", r.URL.Path,
					)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
