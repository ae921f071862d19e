package main

import (
	"context"

	appcontext "github.com/SeakMengs/RenovaSite/internal/app_context"
	"github.com/SeakMengs/RenovaSite/internal/auth"
	"github.com/SeakMengs/RenovaSite/internal/cache"
	"github.com/SeakMengs/RenovaSite/internal/config"
	"github.com/SeakMengs/RenovaSite/internal/controller"
	"github.com/SeakMengs/RenovaSite/internal/database"
	"github.com/SeakMengs/RenovaSite/internal/env"
	filestorage "github.com/SeakMengs/RenovaSite/internal/file_storage"
	"github.com/SeakMengs/RenovaSite/internal/mailer"
	"github.com/SeakMengs/RenovaSite/internal/metrics"
	"github.com/SeakMengs/RenovaSite/internal/middleware"
	"github.com/SeakMengs/RenovaSite/internal/queue"
	ratelimiter "github.com/SeakMengs/RenovaSite/internal/rate_limiter"
	"github.com/SeakMengs/RenovaSite/internal/repository"
	"github.com/SeakMengs/RenovaSite/internal/route"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	defer logger.Sync()
	logger.Debugf("Configuration: %+v \n", cfg)

	ctx := context.Background()

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected \n")

	storage := newStorage(ctx, cfg, logger)

	rdb, err := cache.Open(ctx, cfg.Redis)
	if err != nil {
		logger.Warnf("Redis unavailable, site settings will not be cached: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info("Redis connected \n")
	}

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := util.RegisterCustomValidations(v); err != nil {
			logger.Panicf("Failed to register custom validations: %v", err)
		}
	}

	_metrics := metrics.New()
	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	mail := mailer.New(cfg.Mail, cfg.IsProduction(), logger)
	jwtService := auth.NewJwt(cfg.Auth, logger)
	repo := repository.NewRepository(db, logger, jwtService, storage, repository.SettingsCacheOptions{
		Cache:   cache.NewJSONCache(rdb),
		TTL:     cfg.SettingsCacheTTL,
		Metrics: _metrics,
	})

	app := appcontext.Application{
		Config:     &cfg,
		Repository: repo,
		Logger:     logger,
		Mailer:     mail,
		JWTService: jwtService,
		Storage:    storage,
		Metrics:    _metrics,
	}

	dispatcher, closeDispatcher := newMailDispatcher(cfg, &app)
	defer closeDispatcher()
	app.MailDispatcher = dispatcher

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	// Uploads are read from disk past this size.
	r.MaxMultipartMemory = 32 << 20

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Cors.AllowOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Refresh", "X-Requested-With", "Accept"}
	r.Use(cors.New(corsConfig))
	r.Use(_metrics.Middleware)
	r.Use(_middleware.RateLimitMiddleware)

	_controller := controller.NewController(&app)

	r.GET("/", _controller.Index.Index)
	r.GET("/healthz", _controller.Index.Healthz)
	r.GET("/metrics", gin.WrapH(_metrics.Handler()))

	rApi := r.Group("/api")

	route.V1_Public(rApi, _controller.Public, _controller.Contact)
	route.V1_Auth(rApi, _controller.Auth)
	route.V1_OAuth(rApi, _controller.OAuth)
	route.V1_Me(rApi, _controller.User, _middleware)
	route.V1_Admin(rApi, _controller, _middleware)

	if err := r.Run("0.0.0.0:" + app.Config.Port); err != nil {
		logger.Panicf("Error running server: %v \n", err)
	}
}

// newStorage falls back to in-memory storage when MinIO has no credentials, so the API can run locally.
func newStorage(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger) filestorage.ObjectStorage {
	if cfg.Minio.ACCESS_KEY == "" {
		logger.Warn("MinIO is not configured, uploads are kept in memory")
		return filestorage.NewMemoryStorage(cfg.Minio.PublicBaseURL())
	}

	client, err := filestorage.NewMinioClient(&cfg.Minio)
	if err != nil {
		logger.Error("Error connecting to minio")
		logger.Panic(err)
	}

	storage := filestorage.NewMinioStorage(client, &cfg.Minio)
	if err := storage.EnsureBucket(ctx); err != nil {
		logger.Panicf("Failed to prepare bucket %s: %v", cfg.Minio.BUCKET, err)
	}
	logger.Infof("MinIO bucket %s ready \n", cfg.Minio.BUCKET)

	return storage
}

// newMailDispatcher publishes to RabbitMQ when configured, otherwise sends mail in the request.
func newMailDispatcher(cfg config.Config, app *appcontext.Application) (queue.MailDispatcher, func()) {
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			app.Logger.Panic("Error connecting to RabbitMQ: ", err)
		}
		app.Logger.Info("RabbitMQ connected \n")

		return rabbitMQ, func() {
			if err := rabbitMQ.Close(); err != nil {
				app.Logger.Errorf("Failed to close RabbitMQ connection: %v", err)
			}
		}
	}

	if app.Mailer == nil {
		app.Logger.Warn("No mail transport configured, contact messages are disabled")
		return nil, func() {}
	}

	return queue.NewDirectMailDispatcher(&queue.MailConsumerContext{
		Config: app.Config,
		Logger: app.Logger,
		Mailer: app.Mailer,
	}), func() {}
}
