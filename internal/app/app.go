package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Env1sage/LMS-MED-sub001/internal/config"
	"github.com/Env1sage/LMS-MED-sub001/internal/controller"
	"github.com/Env1sage/LMS-MED-sub001/internal/repository"
	"github.com/Env1sage/LMS-MED-sub001/internal/service"
	"github.com/Env1sage/LMS-MED-sub001/internal/util"
	"github.com/Env1sage/LMS-MED-sub001/pkg/configwatcher"
	"github.com/Env1sage/LMS-MED-sub001/pkg/database"
	"github.com/Env1sage/LMS-MED-sub001/pkg/logger"
	"github.com/Env1sage/LMS-MED-sub001/pkg/monitoring"
	"github.com/Env1sage/LMS-MED-sub001/pkg/security"
	"github.com/Env1sage/LMS-MED-sub001/pkg/tracing"
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
	Clock  util.Clock

	services        *services
	origins         *security.OriginAllowList
	limiter         *security.RateLimiter
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	test     *repository.TestRepository
	mcq      *repository.MCQRepository
	attempt  *repository.AttemptRepository
	practice *repository.PracticeRepository
}

type services struct {
	testAttempt *service.TestAttemptService
	practice    *service.PracticeService
}

type controllers struct {
	testAttempt *controller.TestAttemptController
	practice    *controller.PracticeController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig hands a reloaded configuration to every registered callback.
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	a.Config = cfg
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		test:     repository.NewTestRepository(db),
		mcq:      repository.NewMCQRepository(db, rdb, a.Config.Cache.QuestionTTL),
		attempt:  repository.NewAttemptRepository(db),
		practice: repository.NewPracticeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.testAttempt = service.NewTestAttemptService(repos.test, repos.attempt, repos.mcq, a.Clock)

	s.practice = service.NewPracticeService(repos.practice, repos.mcq, a.Clock)
	s.practice.SetLimits(cfg.Practice.DefaultCount, cfg.Practice.MaxCount)
	a.RegisterConfigCallback(func(c *config.Config) {
		s.practice.SetLimits(c.Practice.DefaultCount, c.Practice.MaxCount)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		testAttempt: controller.NewTestAttemptController(s.testAttempt),
		practice:    controller.NewPracticeController(s.practice),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	a.origins = security.NewOriginAllowList(cfg.CORS.AllowedOrigins)
	a.limiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	a.RegisterConfigCallback(func(c *config.Config) {
		a.origins.Set(c.CORS.AllowedOrigins)
		a.limiter.SetLimit(c.RateLimit.MaxRequests, time.Duration(c.RateLimit.WindowMinutes)*time.Minute)
		logger.SetMode(c.Server.Mode)
	})

	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// build wires repositories, services and HTTP routes on top of an open
// database. rdb may be nil.
func (a *App) build(db *gorm.DB, rdb *redis.Client) {
	a.DB = db
	a.Redis = rdb
	if a.Clock == nil {
		a.Clock = util.SystemClock{}
	}

	repos := a.initRepositories(db, rdb)
	a.services = a.initServices(repos, a.Config)
	controllers := a.initControllers(a.services, db, rdb)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	a.Router = router

	a.setupMiddlewares(router, a.Config)
	a.registerRoutes(router, controllers)
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	migrate := cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{Config: cfg}
	if cfg.MigrateOnly {
		app.DB = db
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("lms-exam", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	app.build(db, rdb)
	return app
}

// Run serves HTTP until SIGINT/SIGTERM, watching configDir for reloads meanwhile.
func (a *App) Run(configDir string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := configwatcher.WatchConfig(ctx, configDir, a.ApplyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
