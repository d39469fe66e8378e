package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopdash/backend/internal/application/catalog"
	partnerapp "github.com/shopdash/backend/internal/application/partner"
	tradeapp "github.com/shopdash/backend/internal/application/trade"
	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/shopdash/backend/internal/infrastructure/auth"
	"github.com/shopdash/backend/internal/infrastructure/cache"
	"github.com/shopdash/backend/internal/infrastructure/config"
	"github.com/shopdash/backend/internal/infrastructure/event"
	"github.com/shopdash/backend/internal/infrastructure/export"
	"github.com/shopdash/backend/internal/infrastructure/logger"
	"github.com/shopdash/backend/internal/infrastructure/orderstatus"
	"github.com/shopdash/backend/internal/infrastructure/persistence"
	"github.com/shopdash/backend/internal/infrastructure/storage"
	"github.com/shopdash/backend/internal/infrastructure/telemetry"
	"github.com/shopdash/backend/internal/interfaces/http/handler"
	"github.com/shopdash/backend/internal/interfaces/http/middleware"
	"github.com/shopdash/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/shopdash/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// cacheProbeKey is read by the health check to reach the cache backend
const cacheProbeKey = "health:probe"

//	@title			Shop Dashboard API
//	@version		1.0
//	@description	Merchant dashboard backend: customers, orders and product types
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// Telemetry first so the final logger can tee into the OTLP log bridge
	tel, err := telemetry.Setup(context.Background(), cfg.Telemetry, version, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log, err := logger.New(logCfg, tel.Logs.ZapCore(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = logger.Sync(log)
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tel.Shutdown(ctx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	log.Info("Starting Shop Dashboard",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	metrics, err := telemetry.NewDashboardMetrics(tel.Meter.Meter("shopdash/dashboard"))
	if err != nil {
		log.Fatal("Failed to create dashboard metrics", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry, cfg.Database.Driver, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	filterTabRepo := persistence.NewGormFilterTabRepository(db.DB)
	productTypeRepo := persistence.NewGormProductTypeRepository(db.DB)

	// Cache
	store, err := cache.NewStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to create cache store", zap.Error(err))
	}

	// Order preparation status: HTTP client -> shared cache -> per-request batch loader
	statusClient := orderstatus.NewClient(cfg.OrderStatus, orderstatus.WithClientLogger(log))
	cachedStatus := orderstatus.NewCachedReader(statusClient, store, cfg.OrderStatus.StaleTime,
		orderstatus.WithRecorder(metrics))
	loaderFactory := orderstatus.NewLoaderFactory(cachedStatus, cfg.OrderStatus.BatchWait, cfg.OrderStatus.Concurrency)
	prepStatus := orderstatus.NewContextReader(cachedStatus)

	objectStorage, err := newExportStorage(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize export storage", zap.Error(err))
	}

	// Domain events
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))
	eventBus.Subscribe(event.NewMetricsHandler(metrics))

	// Application services
	listSettings := partnerapp.ListSettings{
		DefaultPageSize:   cfg.Dashboard.DefaultPageSize,
		MaxPageSize:       cfg.Dashboard.MaxPageSize,
		RecentOrdersLimit: cfg.Dashboard.RecentOrdersLimit,
	}
	customerService := partnerapp.NewCustomerService(customerRepo, orderRepo, filterTabRepo,
		partnerapp.WithEventPublisher(eventBus),
		partnerapp.WithFilterUsageRecorder(metrics),
		partnerapp.WithListSettings(listSettings),
	)
	filterTabService := partnerapp.NewFilterTabService(filterTabRepo, partner.CustomerFiltersKey)
	exportService := partnerapp.NewExportService(customerRepo, export.NewXLSXEncoder(), objectStorage,
		cfg.Storage.ExportPrefix, cfg.Dashboard.ExportMaxRows)
	orderService := tradeapp.NewOrderService(orderRepo)
	orderViewService := tradeapp.NewOrderViewService(orderRepo, customerRepo, prepStatus, tradeapp.ViewSettings{
		RecentOrdersLimit: cfg.Dashboard.RecentOrdersLimit,
		Concurrency:       cfg.OrderStatus.Concurrency,
		Deadline:          cfg.OrderStatus.ViewDeadline,
	})
	productTypeService := catalogapp.NewProductTypeService(productTypeRepo, eventBus)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	skipPaths := []string{"/health", "/api/v1/system/health"}
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, skipPaths...))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		Filter: func(r *http.Request) bool {
			return r.URL.Path != "/health" && !strings.HasPrefix(r.URL.Path, "/swagger")
		},
	}))
	engine.Use(middleware.Profiling(middleware.ProfilingConfig{
		Enabled:          tel.Profiler.IsEnabled(),
		SkipPathPrefixes: []string{"/swagger", "/health"},
	}))

	jwtService := auth.NewJWTService(cfg.JWT)
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	jwtMiddleware := middleware.JWTAuthMiddlewareWithConfig(jwtConfig)

	// Client IPs are limited before authentication and tenants after it
	var apiMiddleware []gin.HandlerFunc
	if cfg.HTTP.RateLimitEnabled {
		ipLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitBurst)
		apiMiddleware = append(apiMiddleware, middleware.RateLimitByIP(ipLimiter))
	}
	apiMiddleware = append(apiMiddleware,
		jwtMiddleware,
		middleware.TracingAttributeInjector(),
		middleware.OrderStatusLoader(loaderFactory),
	)
	if cfg.HTTP.RateLimitEnabled {
		tenantLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitBurst)
		apiMiddleware = append(apiMiddleware, middleware.RateLimitByTenant(tenantLimiter))
	}

	systemHandler := handler.NewSystemHandler(cfg.App.Name, version, healthChecks(db, store)...)
	engine.GET("/health", systemHandler.Health)

	if mem, ok := objectStorage.(*storage.MemoryObjectStorage); ok {
		engine.GET("/exports/*key", handler.NewExportDownloadHandler(mem).Download)
	}

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(cfg.Swagger, jwtMiddleware),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
		log.Info("Swagger UI enabled", zap.Bool("require_auth", cfg.Swagger.RequireAuth))
	}

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(apiMiddleware...),
	)
	router.RegisterDashboard(r, router.Handlers{
		Customer:    handler.NewCustomerHandler(customerService, filterTabService, exportService, orderViewService),
		Order:       handler.NewOrderHandler(orderService, orderViewService),
		ProductType: handler.NewProductTypeHandler(productTypeService),
		System:      systemHandler,
	})
	r.Setup()

	for _, route := range r.Routes() {
		log.Debug("Route registered",
			zap.String("method", route.Method),
			zap.String("path", route.Path),
			zap.String("group", route.Group),
		)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// newExportStorage returns the S3 bucket for exports, or an in-process store
// when object storage is disabled
func newExportStorage(cfg *config.Config, log *zap.Logger) (partnerapp.ExportStorage, error) {
	if !cfg.Storage.Enabled {
		log.Warn("Object storage disabled, exports are kept in memory and served under /exports")
		mem := storage.NewMemoryObjectStorage("http://localhost:" + cfg.App.Port + "/exports")
		mem.Expiration = cfg.Storage.PresignExpiration
		return mem, nil
	}

	s3, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return s3, nil
}

func healthChecks(db *persistence.Database, store cache.Store) []handler.HealthCheck {
	return []handler.HealthCheck{
		{Name: "database", Check: db.Ping},
		{Name: "cache", Check: func(ctx context.Context) error {
			_, _, err := store.Get(ctx, cacheProbeKey)
			return err
		}},
	}
}
