package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/bms-digital/user-service/config"
	"github.com/bms-digital/user-service/internal/constants"
	"github.com/bms-digital/user-service/internal/handler"
	"github.com/bms-digital/user-service/internal/middleware"
	"github.com/bms-digital/user-service/internal/repository"
	"github.com/bms-digital/user-service/internal/router"
	"github.com/bms-digital/user-service/internal/service"
	"github.com/bms-digital/user-service/pkg/database"
	"github.com/bms-digital/user-service/pkg/health"
	"github.com/bms-digital/user-service/pkg/logger"
	"github.com/bms-digital/user-service/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config.App.Environment); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	// Run auto migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// Seed default system parameters, existing rows are left untouched
	if err := database.Seed(db); err != nil {
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	} else {
		logger.GetLogger().Info("Database seeded successfully")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db, logger.GetLogger())
	sessionRepo := repository.NewSessionRepository(db, logger.GetLogger())
	paramRepo := repository.NewSystemParameterRepository(db, logger.GetLogger())

	redisClient := redis.NewClient(redis.Config{
		Host:         config.Redis.Host,
		Port:         config.Redis.Port,
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		Enabled:      config.Redis.Enabled,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
	}, logger.GetLogger())
	defer redisClient.Close()

	logger.GetLogger().Info("Redis client initialized",
		zap.Bool("enabled", redisClient.IsEnabled()),
	)

	// System parameter cache, loaded once here and refreshed on its own timer
	systemCache := service.NewSystemCache(paramRepo, logger.GetLogger())

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := systemCache.Refresh(startupCtx); err != nil {
		logger.GetLogger().Warn("Failed to load system parameters at startup, using defaults",
			zap.Error(err),
		)
	} else {
		logger.GetLogger().Info("System parameter cache loaded")
	}
	cancelStartup()

	cacheCtx, stopCache := context.WithCancel(context.Background())
	defer stopCache()
	systemCache.Start(cacheCtx)

	// Background dependency monitor, logs transitions to unhealthy
	monitor := health.NewMonitor(time.Minute, logger.GetLogger())
	monitor.RegisterDatabaseChecker("postgres", db)
	monitor.RegisterRedisChecker("redis", redisClient)
	monitor.Start()
	defer monitor.Stop()

	// Services
	tokenService, err := service.NewTokenService(config.JWT.Secret, config.JWT.Validity, sessionRepo, logger.GetLogger())
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize token service", zap.Error(err))
	}
	authService := service.NewAuthService(tokenService, sessionRepo, logger.GetLogger())
	userService := service.NewUserService(userRepo, tokenService, systemCache, redisClient, logger.GetLogger())

	// Handlers
	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	systemHandler := handler.NewSystemHandler(systemCache)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	validationMiddleware := middleware.NewValidationMiddleware()

	r := router.NewRouter(
		authHandler,
		userHandler,
		systemHandler,
		healthHandler,

		authMiddleware,
		validationMiddleware,
		config,
	).SetupRoutes()

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := r.Run(":" + config.App.Port); err != nil {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")
}
