package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/TaniCatat/tani_catat_app/internal/adapters/database/pgsql"
	"github.com/TaniCatat/tani_catat_app/internal/adapters/gemini"
	"github.com/TaniCatat/tani_catat_app/internal/core/services"
	"github.com/TaniCatat/tani_catat_app/internal/handlers"
	"github.com/TaniCatat/tani_catat_app/internal/middleware"
	"github.com/TaniCatat/tani_catat_app/pkg/config"
	"github.com/TaniCatat/tani_catat_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run database migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey,
		gemini.WithModel(cfg.GeminiModel),
		gemini.WithTimeout(cfg.GeminiTimeout),
	)
	if err != nil {
		logger.Error("Failed to initialize Gemini client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The chat widget sends POST only; anything else gets a proper 405.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Only POST allowed"})
	})

	handlers.RegisterHomeRoutes(r)
	setupAPIV1Routes(r, cfg, dbPool, geminiClient, logger)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, dbPool *pgxpool.Pool, geminiClient *gemini.Client, logger *slog.Logger) {
	v1 := r.Group("/api/v1")

	ledgerRepo := pgsql.NewPgxLedgerRepository(dbPool)
	recorderSvc := services.NewRecorderService(ledgerRepo)
	reporterSvc := services.NewReporterService(ledgerRepo, geminiClient)
	dispatcherSvc := services.NewDispatcherService(recorderSvc, reporterSvc)
	chatSvc := services.NewChatService(geminiClient, dispatcherSvc)
	itemLedgerSvc := services.NewItemLedgerService(ledgerRepo)

	// Every chat request costs at least one model call, so the chat route is
	// rate limited per client IP.
	rate, err := limiter.NewRateFromFormatted(cfg.ChatRateLimit)
	if err != nil {
		logger.Error("Invalid CHAT_RATE_LIMIT value", slog.String("value", cfg.ChatRateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	chatLimiter := limiter.New(limitermem.NewStore(), rate)

	handlers.RegisterChatRoutes(v1, chatSvc, middleware.RateLimit(chatLimiter))
	handlers.RegisterReportRoutes(v1, reporterSvc)
	handlers.RegisterLedgerRoutes(v1, itemLedgerSvc)
}

// runMigrations applies all pending "up" migrations before the server
// accepts traffic.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations,
	// using the pgx/v5/stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
