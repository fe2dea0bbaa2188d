package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/zakatfund/backend/docs"
	"github.com/zakatfund/backend/internal/auth"
	"github.com/zakatfund/backend/internal/config"
	"github.com/zakatfund/backend/internal/database"
	"github.com/zakatfund/backend/internal/events"
	"github.com/zakatfund/backend/internal/handlers"
	"github.com/zakatfund/backend/internal/logging"
	mW "github.com/zakatfund/backend/internal/middleware"
	"github.com/zakatfund/backend/internal/models"
	"github.com/zakatfund/backend/internal/services"
	"github.com/zakatfund/backend/internal/store"
)

// @title Zakat Campaign Ledger API
// @version 1.0
// @description Donation-campaign ledger: campaigns, donations, withdrawals and live donation events
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.issuer", "JWT_ISSUER")
	viper.BindEnv("ledger.admin", "LEDGER_ADMIN")
	viper.BindEnv("ledger.store", "LEDGER_STORE")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("port", "PORT")

	viper.SetDefault("ledger.store", "postgres")
	viper.SetDefault("app.env", "production")
	viper.SetDefault("port", "8080")

	configErr := viper.ReadInConfig()

	logger := logging.NewLogger(viper.GetString("app.env"))
	if configErr != nil {
		logger.Info().Err(configErr).Msg("Config file not found, using environment and defaults")
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Host = "localhost:" + viper.GetString("port")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	var ledgerStore store.Store
	switch backend := viper.GetString("ledger.store"); backend {
	case "memory":
		logger.Warn().Msg("Using in-memory ledger store, state is lost on restart")
		ledgerStore = store.NewMemory()
	case "postgres":
		db, err := database.InitDB(ctx, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()
		ledgerStore = store.NewPostgres(db)
	default:
		logger.Fatal().Str("store", backend).Msg("Unknown LEDGER_STORE, expected postgres or memory")
	}

	redisClient := database.InitRedis(ctx, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	ledgerCfg := config.LoadLedgerConfig()
	authorizer := auth.NewJWTAuthorizer(viper.GetString("jwt.secret_key"), viper.GetString("jwt.issuer"))

	// Donation events fan out to WebSocket clients and, when available, Redis
	hub := events.NewHub(logging.Component(logger, "WS"))
	go hub.Run(ctx)

	var recent handlers.RecentEvents
	publishers := events.Multi{hub}
	if redisClient != nil {
		redisPublisher := events.NewRedisPublisher(redisClient, ledgerCfg.EventChannel, ledgerCfg.EventQueue)
		publishers = append(publishers, redisPublisher)
		recent = redisPublisher
	}

	payoutService := services.NewPayoutService(redisClient, ledgerCfg, logger)
	campaignService := services.NewCampaignService(ledgerStore, authorizer, publishers, payoutService, logger)

	if admin := models.Principal(viper.GetString("ledger.admin")); admin != "" {
		if err := bootstrapAdmin(ctx, campaignService, authorizer, admin, logger); err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize ledger admin")
		}
	}

	campaignHandler := handlers.NewCampaignHandler(campaignService)

	var qrHandler *handlers.QRHandler
	if redisClient != nil {
		qrHandler = handlers.NewQRHandler(services.NewQRService(redisClient, campaignService, ledgerCfg))
	} else {
		logger.Warn().Msg("QR donation codes disabled without Redis")
	}

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mW.Logger(logging.Component(logger, "HTTP")))
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "healthy",
			"redis":     redisClient != nil,
			"wsClients": hub.ClientCount(),
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	feedHandler := handlers.NewFeedHandler(recent, hub.ServeWS)
	r.Route("/api/v1", handlers.APIRoutes(campaignHandler, qrHandler, feedHandler))

	port := viper.GetString("port")

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	logger.Info().Msg("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server stopped")
}

// bootstrapAdmin records admin on first start. A restart with the same admin
// is a no-op; a different stored admin is an error.
func bootstrapAdmin(ctx context.Context, svc *services.CampaignService, authorizer *auth.JWTAuthorizer, admin models.Principal, logger zerolog.Logger) error {
	token, err := authorizer.Issue(admin, time.Minute)
	if err != nil {
		return err
	}

	err = svc.Initialize(ctx, auth.Token(token), admin)
	if errors.Is(err, models.ErrAlreadyInitialized) {
		current, getErr := svc.GetAdmin(ctx)
		if getErr != nil {
			return getErr
		}
		if current != admin {
			return err
		}
		logger.Info().Str("admin", string(admin)).Msg("Ledger admin already initialized")
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info().Str("admin", string(admin)).Msg("Ledger admin initialized")
	return nil
}
