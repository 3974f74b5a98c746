package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"novel-board/internal/config"
	"novel-board/internal/database"
	"novel-board/internal/handler"
	"novel-board/internal/interfaces"
	"novel-board/internal/logger"
	"novel-board/internal/middleware"
	"novel-board/internal/models"
	"novel-board/internal/service"
	"novel-board/pkg/ai"
	pkgdb "novel-board/pkg/database"
	"novel-board/pkg/migration"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

func main() {
	envFile := flag.String("env", ".env", "path to .env file")
	flag.Parse()

	// --- Configuration ---
	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Setup ---
	log, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
		Service:  "novel-board",
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	zap.ReplaceGlobals(log)
	cfg.Log(log)

	// --- AI client ---
	aiClient, err := ai.NewClient(ai.Config{
		ClientType:  cfg.AIClientType,
		APIKey:      cfg.AIAPIKey,
		BaseURL:     cfg.AIBaseURL,
		Model:       cfg.AIModel,
		Timeout:     cfg.AITimeout,
		MaxAttempts: cfg.AIMaxAttempts,
		RetryDelay:  cfg.AIRetryDelay,
	}, log)
	if err != nil {
		log.Fatal("Failed to create AI client", zap.Error(err))
	}

	// --- Board store ---
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	postRepo, closeStore, err := setupPostRepository(startupCtx, cfg, log)
	startupCancel()
	if err != nil {
		log.Fatal("Failed to initialize board store", zap.Error(err), zap.String("driver", cfg.DBDriver))
	}
	defer closeStore()

	// --- Dependency Injection ---
	storySvc := service.NewStoryService(aiClient, log)
	boardSvc := service.NewBoardService(postRepo, log)
	httpHandler := handler.NewHandler(storySvc, boardSvc, cfg.StaticDir, log)

	// --- HTTP Server Setup (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.ZapLoggingMiddlewareForGin(log))
	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(cfg, log)))

	// До регистрации маршрутов: middleware gin применяется только к маршрутам, добавленным после Use
	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	httpHandler.RegisterRoutes(router, generationRateLimiter(cfg, log))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AITimeout*time.Duration(max(cfg.AIMaxAttempts, 1)) + cfg.AIRetryDelay*time.Duration(max(cfg.AIMaxAttempts-1, 0)) + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Starting HTTP server", zap.String("port", cfg.Port))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP Server listen error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exiting")
}

// setupPostRepository открывает хранилище доски согласно DB_DRIVER и применяет миграции.
func setupPostRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (interfaces.PostRepository, func(), error) {
	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		pool, err := pkgdb.Connect(ctx, pkgdb.Config{
			DSN:             cfg.GetDSN(),
			MaxConns:        cfg.DBMaxConns,
			IdleTimeout:     cfg.DBIdleTimeout,
			ConnectAttempts: 30,
			ConnectDelay:    2 * time.Second,
		}, log)
		if err != nil {
			return nil, nil, err
		}

		migrator := migration.NewPostgresMigrator(migration.Config{
			MigrationsPath: database.PostgresMigrationsPath,
			MigrationsFS:   database.MigrationsFS,
		}, pool, log)
		if err := migrator.Up(); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("%w: apply migrations: %w", models.ErrStoreFailure, err)
		}

		log.Info("Board store ready", zap.String("driver", config.DBDriverPostgres))
		return database.NewPgPostRepository(pool, log), pool.Close, nil

	case config.DBDriverSQLite:
		repo, err := database.OpenSQLitePostRepository(cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Board store ready", zap.String("driver", config.DBDriverSQLite), zap.String("path", cfg.SQLitePath))
		return repo, func() {
			if err := repo.Close(); err != nil {
				log.Error("Failed to close SQLite store", zap.Error(err))
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func corsConfig(cfg *config.Config, log *zap.Logger) cors.Config {
	corsCfg := cors.DefaultConfig()
	if cfg.AllowAllOrigins() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.GetAllowedOrigins()
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsCfg.MaxAge = 12 * time.Hour
	log.Info("CORS configured", zap.Bool("allowAll", corsCfg.AllowAllOrigins), zap.Strings("origins", corsCfg.AllowOrigins))
	return corsCfg
}

// generationRateLimiter ограничивает число запросов генерации с одного IP в минуту.
// Возвращает nil, если GENERATION_RATE_LIMIT=0.
func generationRateLimiter(cfg *config.Config, log *zap.Logger) gin.HandlerFunc {
	if cfg.GenerationRateLimit == 0 {
		log.Warn("Generation rate limit disabled")
		return nil
	}

	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: cfg.GenerationRateLimit,
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			log.Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error: "요청이 너무 많습니다. " + time.Until(info.ResetTime).Round(time.Second).String() + " 후에 다시 시도해주세요.",
			})
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
