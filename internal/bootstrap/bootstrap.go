package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/campusreg/internal/app/controllers"
	appMigrations "github.com/yigit/campusreg/internal/app/migrations"
	appRepos "github.com/yigit/campusreg/internal/app/repositories"
	appRoutes "github.com/yigit/campusreg/internal/app/routes"
	appServices "github.com/yigit/campusreg/internal/app/services"
	"github.com/yigit/campusreg/internal/config"
	"github.com/yigit/campusreg/internal/db"
	appMiddleware "github.com/yigit/campusreg/internal/middleware"
	pkgAuth "github.com/yigit/campusreg/internal/pkg/auth"
	"github.com/yigit/campusreg/internal/pkg/email"
	"github.com/yigit/campusreg/internal/pkg/logger"
	"github.com/yigit/campusreg/internal/pkg/metrics"
	"github.com/yigit/campusreg/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	InstitutionService    appServices.InstitutionService
	InstitutionController *appControllers.InstitutionController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Notifier              email.Notifier
	Metrics               *metrics.Metrics
	Database              *db.PostgresDB
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Format: logger.Format(cfg.Logging.Format),
	})

	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Server.MigrationsPath
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	// Demo data never reaches production databases
	if cfg.Server.SeedDemoData && !cfg.IsProduction() {
		if err := seed.CreateDemoData(ctx, appRepos.NewInstitutionRepository(database.Pool), lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Database: database, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)
	deps.Metrics = metrics.New(prometheus.DefaultRegisterer)

	deps.Notifier = email.NewSMTPNotifier(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.InstitutionService = appServices.NewInstitutionService(
		deps.Repos.InstitutionRepository,
		deps.Repos.UserRepository,
		deps.Notifier,
		deps.Metrics,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.InstitutionController = appControllers.NewInstitutionController(deps.InstitutionService)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr))

	var health appRoutes.HealthCheck
	if deps.Database != nil {
		health = deps.Database.Ping
	}

	appRoutes.SetupRouter(router,
		deps.InstitutionController,
		deps.AuthMiddleware,
		health,
	)

	return router
}
