package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/conghanh/luanho/internal/app/controllers"
	appMigrations "github.com/conghanh/luanho/internal/app/migrations"
	appRepos "github.com/conghanh/luanho/internal/app/repositories"
	appRoutes "github.com/conghanh/luanho/internal/app/routes"
	appServices "github.com/conghanh/luanho/internal/app/services"
	"github.com/conghanh/luanho/internal/config"
	"github.com/conghanh/luanho/internal/db"
	appMiddleware "github.com/conghanh/luanho/internal/middleware"
	pkgAuth "github.com/conghanh/luanho/internal/pkg/auth"
	"github.com/conghanh/luanho/internal/pkg/genai"
	"github.com/conghanh/luanho/internal/pkg/helpers"
	"github.com/conghanh/luanho/internal/pkg/logger"
	"github.com/conghanh/luanho/internal/pkg/realtime"
	"github.com/conghanh/luanho/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           *appServices.AuthService
	PostService           *appServices.PostService
	EngagementService     *appServices.EngagementService
	ProfileService        *appServices.ProfileService
	LeaderboardService    *appServices.LeaderboardService
	CategoryService       *appServices.CategoryService
	AILabService          *appServices.AILabService
	AuthController        *appControllers.AuthController
	PostController        *appControllers.PostController
	UserController        *appControllers.UserController
	LeaderboardController *appControllers.LeaderboardController
	CategoryController    *appControllers.CategoryController
	AIController          *appControllers.AIController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Hub                   *realtime.Hub
	WSHandler             *realtime.Handler
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

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds demo content when enabled.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(context.Background(), database, lgr); err != nil {
			// A failed seed is annoying but not fatal
			lgr.Error().Err(err).Msg("Failed to seed demo content, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Hub = realtime.NewHub(lgr)
	deps.WSHandler = realtime.NewHandler(deps.Hub, deps.JWTService)

	genaiClient := genai.NewClient(genai.Config{
		APIKey:  cfg.GenAI.APIKey,
		Model:   cfg.GenAI.Model,
		BaseURL: cfg.GenAI.BaseURL,
		Timeout: helpers.ParseDuration(cfg.GenAI.Timeout, 30*time.Second),
	}, lgr)
	if !genaiClient.Available() {
		lgr.Warn().Msg("No generative API key configured, AI endpoints will degrade to fallbacks")
	}

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		database,
		deps.JWTService,
		cfg.Admin.Email,
		lgr,
	)
	deps.PostService = appServices.NewPostService(
		deps.Repos.PostRepository,
		deps.Repos.UserRepository,
		database,
		deps.Hub,
		lgr,
	)
	deps.EngagementService = appServices.NewEngagementService(
		deps.Repos.PostRepository,
		deps.Repos.CommentRepository,
		deps.Repos.UserRepository,
		deps.Repos.NotificationRepository,
		database,
		deps.Hub,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(
		deps.Repos.UserRepository,
		deps.Repos.PostRepository,
		deps.Hub,
		lgr,
	)
	deps.LeaderboardService = appServices.NewLeaderboardService(deps.Repos.UserRepository, lgr)
	deps.CategoryService = appServices.NewCategoryService(
		deps.Repos.CategoryRepository,
		deps.Repos.PostRepository,
		lgr,
	)
	deps.AILabService = appServices.NewAILabService(
		genaiClient,
		deps.Repos.PostRepository,
		deps.Repos.CommentRepository,
		database,
		deps.Hub,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.PostController = appControllers.NewPostController(deps.PostService, deps.EngagementService, lgr)
	deps.UserController = appControllers.NewUserController(deps.ProfileService, deps.PostService, deps.EngagementService, lgr)
	deps.LeaderboardController = appControllers.NewLeaderboardController(deps.LeaderboardService, lgr)
	deps.CategoryController = appControllers.NewCategoryController(deps.CategoryService, lgr)
	deps.AIController = appControllers.NewAIController(deps.AILabService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	// The web client is served from a different origin
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.PostController,
		deps.UserController,
		deps.LeaderboardController,
		deps.CategoryController,
		deps.AIController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
