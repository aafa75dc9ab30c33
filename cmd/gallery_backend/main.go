package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/gallery_app/internal/adapters/mail"
	portsrepo "github.com/SscSPs/gallery_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/gallery_app/internal/core/ports/services"
	"github.com/SscSPs/gallery_app/internal/core/services"
	"github.com/SscSPs/gallery_app/internal/handlers"
	"github.com/SscSPs/gallery_app/internal/middleware"
	"github.com/SscSPs/gallery_app/internal/platform/config"
	"github.com/SscSPs/gallery_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/gallery_app/internal/repositories/session"
	"github.com/SscSPs/gallery_app/internal/utils"
	"github.com/SscSPs/gallery_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Gallery Auth API
// @version 1.0
// @description Authentication backend of the gallery app: local and provider logins, sessions and admin user listing.

// @host localhost:5000
// @BasePath /
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
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	closeStore, err := setupSessionStore(context.Background(), cfg, &repos, logger)
	if err != nil {
		logger.Error("Failed to initialize session store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	serviceContainer := services.NewServiceContainer(cfg, repos, newMailer(cfg, logger))

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	authLimiter, err := middleware.NewIPRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		logger.Error("Invalid AUTH_RATE_LIMIT", slog.String("rate", cfg.AuthRateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.ErrorHandler(),
		secure.New(middleware.SecureConfig(cfg.IsProduction)),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendBaseURL},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.AccessInfoMiddleware(),
		middleware.SessionMiddleware(serviceContainer.Session, middleware.SessionCookie{
			Name:   cfg.SessionCookieName,
			MaxAge: cfg.SessionMaxAge,
			Secure: cfg.IsProduction,
		}),
		middleware.DeserializeUserMiddleware(serviceContainer.Session),
		middleware.PosthogMiddleware(posthogClient),
	)

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, middleware.RateLimit(authLimiter))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from ./migrations.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// setupSessionStore picks the session backend named by SESSION_STORE and returns its cleanup.
func setupSessionStore(ctx context.Context, cfg *config.Config, repos *portsrepo.RepositoryProvider, logger *slog.Logger) (func(), error) {
	if cfg.SessionStore == config.SessionStoreRedis {
		rdb, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		repos.SessionStore = session.NewRedisStore(rdb)
		logger.Info("Using redis session store", slog.String("addr", cfg.RedisAddr))
		return func() {
			if err := rdb.Close(); err != nil {
				logger.Error("Error closing redis client", slog.String("error", err.Error()))
			}
		}, nil
	}

	repos.SessionStore = session.NewMemoryStore(session.DefaultMemoryStoreSize, cfg.SessionMaxAge)
	logger.Info("Using in-memory session store")
	return func() {}, nil
}

// newMailer sends over SMTP when configured and only logs the links otherwise.
func newMailer(cfg *config.Config, logger *slog.Logger) portssvc.MailerSvc {
	if cfg.SMTPHost == "" {
		return mail.NewLogMailer(logger)
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
}
