package app

import (
	"assessment_engine/internal/config"
	"assessment_engine/internal/controller"
	"assessment_engine/internal/repository"
	"assessment_engine/internal/service"
	"assessment_engine/pkg/configwatcher"
	"assessment_engine/pkg/database"
	"assessment_engine/pkg/logger"
	"assessment_engine/pkg/monitoring"
	"assessment_engine/pkg/security"
	"assessment_engine/pkg/tracing"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	evaluation *repository.EvaluationRepository
	catalog    service.EvaluationCatalog
	attempt    *repository.AttemptRepository
	reopen     *repository.ReopenRepository
	directory  *repository.DirectoryRepository
}

type services struct {
	storage    *service.StorageService
	access     *service.AccessService
	attempt    *service.AttemptService
	reopen     *service.ReopenService
	result     *service.ResultService
	evaluation *service.EvaluationService
}

type controllers struct {
	evaluation *controller.EvaluationController
	attempt    *controller.AttemptController
	result     *controller.ResultController
	reopen     *controller.ReopenController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	evaluation := repository.NewEvaluationRepository(db)
	repos := &repositories{
		evaluation: evaluation,
		catalog:    evaluation,
		attempt:    repository.NewAttemptRepository(db),
		reopen:     repository.NewReopenRepository(db),
		directory:  repository.NewDirectoryRepository(db),
	}
	if rdb != nil {
		ttl := time.Duration(cfg.Redis.CatalogTTLSeconds) * time.Second
		repos.catalog = repository.NewCatalogCache(evaluation, rdb, ttl)
	}
	return repos
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.access = service.NewAccessService(repos.catalog, repos.directory, repos.directory, repos.directory, repos.attempt)
	s.attempt = service.NewAttemptService(db, repos.attempt, repos.catalog, s.access)
	s.reopen = service.NewReopenService(db, repos.reopen, repos.attempt, s.access)
	s.result = service.NewResultService(repos.attempt, repos.catalog, s.access, s.storage)
	s.evaluation = service.NewEvaluationService(repos.evaluation, repos.attempt, repos.catalog, s.access)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		evaluation: controller.NewEvaluationController(s.evaluation, s.attempt, s.access),
		attempt:    controller.NewAttemptController(s.attempt),
		result:     controller.NewResultController(s.result),
		reopen:     controller.NewReopenController(s.reopen),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 初始化依赖；MigrateOnly 时只迁移表结构，不构建路由
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	if cfg.MigrateOnly || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		logger.Log.Info("Database migrated")
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app, nil
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			// 缓存不可用时直接读库
			logger.Log.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	repos := app.initRepositories(db, app.Redis, cfg)
	svcs := app.initServices(repos, cfg, db)
	ctrls := app.initControllers(svcs, db, app.Redis)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls, cfg)

	// 远端存储初始化失败时同样落在本地目录
	if local, ok := svcs.storage.Store.(*service.LocalStore); ok {
		router.Static("/uploads", local.Root)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		if logger.SetLevel(newCfg.Log.Level) {
			logger.Log.Info("Log level reloaded", zap.String("level", newCfg.Log.Level))
		}
	})

	return app, nil
}

func (a *App) watchConfig(ctx context.Context) {
	path := filepath.Join(a.Config.Path, "config.yaml")
	err := configwatcher.Watch(ctx, path, func(newCfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(newCfg)
		}
	})
	if err != nil {
		logger.Log.Warn("Config watcher stopped", zap.Error(err))
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go a.watchConfig(ctx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	a.Close(shutdownCtx)

	logger.Log.Info("Server exiting")
}

// Close 释放外部连接
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Log.Sync()
}
