package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fundstack.backend/internal/config"
	"fundstack.backend/internal/infrastructure/repositories"
	"fundstack.backend/internal/interfaces/http/handlers"
	"fundstack.backend/internal/interfaces/http/middleware"
	"fundstack.backend/internal/usecases"
	"fundstack.backend/pkg/jwt"
	"fundstack.backend/pkg/logger"
	"fundstack.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to create session store: %w", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	structureRepo := repositories.NewStructureRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)
	contractRepo := repositories.NewSmartContractRepository(db)

	// Usecases
	userUsecase := usecases.NewUserUsecase(userRepo, jwtService, sessionStore, cfg.Security.SessionTTL)
	structureUsecase := usecases.NewStructureUsecase(structureRepo, investmentRepo, userRepo)
	contractUsecase := usecases.NewContractUsecase(contractRepo, structureRepo)

	// Handlers
	deps := routeDeps{
		authHandler:          handlers.NewAuthHandler(userUsecase),
		userHandler:          handlers.NewUserHandler(userUsecase),
		structureHandler:     handlers.NewStructureHandler(structureUsecase),
		smartContractHandler: handlers.NewSmartContractHandler(contractUsecase),
		authMiddleware:       middleware.AuthMiddleware(jwtService, sessionStore),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerAPIV1Routes(r, deps)

	logger.Info(context.Background(), "Server starting", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}
