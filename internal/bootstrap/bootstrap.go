// Package bootstrap wires configuration, storage, repositories, services
// and HTTP handlers into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/winshaurya/alumnet/internal/app/controllers"
	appMigrations "github.com/winshaurya/alumnet/internal/app/migrations"
	appRepos "github.com/winshaurya/alumnet/internal/app/repositories"
	appRoutes "github.com/winshaurya/alumnet/internal/app/routes"
	appServices "github.com/winshaurya/alumnet/internal/app/services"
	"github.com/winshaurya/alumnet/internal/config"
	"github.com/winshaurya/alumnet/internal/db"
	appMiddleware "github.com/winshaurya/alumnet/internal/middleware"
	pkgAuth "github.com/winshaurya/alumnet/internal/pkg/auth"
	"github.com/winshaurya/alumnet/internal/pkg/email"
	"github.com/winshaurya/alumnet/internal/pkg/filestorage"
	"github.com/winshaurya/alumnet/internal/pkg/identity"
	"github.com/winshaurya/alumnet/internal/pkg/logger"
	"github.com/winshaurya/alumnet/internal/pkg/websocket"
	"github.com/winshaurya/alumnet/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	AuthMiddleware *appMiddleware.AuthMiddleware
	Hub            *websocket.Hub
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations, and
// seeds the default admin account
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.EnsureDefaultAdmin(ctx, dbPool); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed default admin")
		dbPool.Close()
		return nil, err
	}

	return dbPool, nil
}

// BuildDependencies constructs the full dependency graph
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	repos := appRepos.NewRepositories(dbPool)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.GetAccessTokenDuration(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		BaseURL:   cfg.SMTP.BaseURL,
	}, lgr.With().Str("component", "email").Logger())

	storage, err := buildFileStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	hub := websocket.NewHub()
	go hub.Run()

	services := appServices.NewServices(repos, jwtService, emailService, storage, hub, lgr)

	introspector := identity.NewSupabaseClient(cfg.Supabase.URL, cfg.Supabase.AnonKey)
	authMiddleware := appMiddleware.NewAuthMiddleware(jwtService, introspector, repos.UserRepository)

	controllers := appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(services.AuthService, lgr.With().Str("controller", "auth").Logger()),
		Job:          appControllers.NewJobController(services.JobService, lgr.With().Str("controller", "job").Logger()),
		Application:  appControllers.NewApplicationController(services.ApplicationService, lgr.With().Str("controller", "application").Logger()),
		Student:      appControllers.NewStudentController(services.StudentService, lgr.With().Str("controller", "student").Logger()),
		Alumni:       appControllers.NewAlumniController(services.AlumniService, lgr.With().Str("controller", "alumni").Logger()),
		Admin:        appControllers.NewAdminController(services.AdminService, lgr.With().Str("controller", "admin").Logger()),
		Notification: appControllers.NewNotificationController(services.NotificationService, hub, lgr.With().Str("controller", "notification").Logger()),
	}

	return &Dependencies{
		Repos:          repos,
		Services:       services,
		AuthMiddleware: authMiddleware,
		Hub:            hub,
		Controllers:    controllers,
		Logger:         lgr,
	}, nil
}

// buildFileStorage picks the storage backend from configuration
func buildFileStorage(cfg *config.Config) (filestorage.FileStorage, error) {
	switch cfg.Storage.Driver {
	case "minio":
		return filestorage.NewMinioStorage(filestorage.MinioConfig{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
	default:
		return filestorage.NewLocalStorage(cfg.Storage.LocalPath, "/uploads")
	}
}

// SetupRouter builds the gin engine with all routes attached
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	return router
}
