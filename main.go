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

	"github.com/gin-gonic/gin"

	"github.com/realboxofme/sintas/bootstrap"
	"github.com/realboxofme/sintas/common"
	"github.com/realboxofme/sintas/config"
	"github.com/realboxofme/sintas/database"
	"github.com/realboxofme/sintas/middleware"
	arsipAPI "github.com/realboxofme/sintas/modules/arsip/delivery/api"
	arsipRepo "github.com/realboxofme/sintas/modules/arsip/repository"
	arsipUC "github.com/realboxofme/sintas/modules/arsip/usecase"
	attachmentAPI "github.com/realboxofme/sintas/modules/attachment/delivery/api"
	attachmentUC "github.com/realboxofme/sintas/modules/attachment/usecase"
	authAPI "github.com/realboxofme/sintas/modules/auth/delivery/api"
	authUC "github.com/realboxofme/sintas/modules/auth/usecase"
	dashboardAPI "github.com/realboxofme/sintas/modules/dashboard/delivery/api"
	dashboardUC "github.com/realboxofme/sintas/modules/dashboard/usecase"
	disposisiAPI "github.com/realboxofme/sintas/modules/disposisi/delivery/api"
	disposisiRepo "github.com/realboxofme/sintas/modules/disposisi/repository"
	disposisiUC "github.com/realboxofme/sintas/modules/disposisi/usecase"
	laporanAPI "github.com/realboxofme/sintas/modules/laporan/delivery/api"
	laporanUC "github.com/realboxofme/sintas/modules/laporan/usecase"
	notificationUC "github.com/realboxofme/sintas/modules/notification/usecase"
	roleAPI "github.com/realboxofme/sintas/modules/role/delivery/api"
	roleRepo "github.com/realboxofme/sintas/modules/role/repository"
	roleUC "github.com/realboxofme/sintas/modules/role/usecase"
	setupAPI "github.com/realboxofme/sintas/modules/setup/delivery/api"
	setupUC "github.com/realboxofme/sintas/modules/setup/usecase"
	suratKeluarAPI "github.com/realboxofme/sintas/modules/suratkeluar/delivery/api"
	suratKeluarRepo "github.com/realboxofme/sintas/modules/suratkeluar/repository"
	suratKeluarUC "github.com/realboxofme/sintas/modules/suratkeluar/usecase"
	suratMasukAPI "github.com/realboxofme/sintas/modules/suratmasuk/delivery/api"
	suratMasukRepo "github.com/realboxofme/sintas/modules/suratmasuk/repository"
	suratMasukUC "github.com/realboxofme/sintas/modules/suratmasuk/usecase"
	userAPI "github.com/realboxofme/sintas/modules/user/delivery/api"
	userRepo "github.com/realboxofme/sintas/modules/user/repository"
	userUC "github.com/realboxofme/sintas/modules/user/usecase"
	"github.com/realboxofme/sintas/pkg/cache"
	"github.com/realboxofme/sintas/pkg/email"
	"github.com/realboxofme/sintas/pkg/log"
	"github.com/realboxofme/sintas/pkg/upload"
	appvalidator "github.com/realboxofme/sintas/validator"
)

func newLogger(cfg config.Config) (log.Logger, error) {
	lc := log.Config{
		Level:            cfg.Logger().Level(),
		Format:           cfg.Logger().Format(),
		Environment:      "development",
		ServiceName:      cfg.App().Name(),
		OutputPath:       cfg.Logger().OutputPath(),
		FileMaxSizeInMB:  cfg.Logger().MaxFileSizeMB(),
		FileMaxAgeInDays: cfg.Logger().MaxFileAgeDays(),
		FileMaxBackups:   cfg.Logger().MaxBackupFiles(),
		CompressRotated:  cfg.Logger().IsCompressEnabled(),
	}
	if cfg.App().IsProduction() {
		lc.Environment = "production"
		lc.SamplingConfig = &log.SamplingConfig{Initial: 100, Thereafter: 100}
	}
	return log.NewZapLogger(lc)
}

func newEmailClient(cfg config.EmailConfig, logger common.Logger) (email.Client, error) {
	provider := email.Provider(cfg.Provider())
	if !cfg.Enabled() {
		provider = email.Mock
	}
	return email.NewEmailFactory(logger).CreateClient(provider, &email.Config{
		Provider:         string(provider),
		DefaultFrom:      cfg.DefaultFrom(),
		SESRegion:        cfg.SESRegion(),
		SESAccessKey:     cfg.SESAccessKey(),
		SESSecretKey:     cfg.SESSecretKey(),
		SendGridAPIKey:   cfg.SendGridAPIKey(),
		SendGridFromName: cfg.SendGridFromName(),
		MaxRetries:       cfg.MaxRetries(),
		RetryDelay:       cfg.RetryDelay(),
	})
}

func main() {
	// Parse command line flags
	envPath := flag.String("env-file", "", "ENV config file path")
	yamlPath := flag.String("config", "./config/config.yml", "YAML config file path")
	flag.Parse()

	configPaths := []string{*yamlPath}
	if *envPath == "" {
		fmt.Printf("App is starting with config path is '%s' and no load env file\n", *yamlPath)
	} else {
		fmt.Printf("App is starting with config path is '%s' and env path is '%s'...\n", *yamlPath, *envPath)
		configPaths = append(configPaths, *envPath)
	}

	cfg, err := config.Load(configPaths...)
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	if err = config.Validate(cfg); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(fmt.Errorf("failed to create logger: %w", err))
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Printf("Failed to sync logger: %v\n", err)
		}
	}()

	// Set logger for common package using adapter and as default logger
	loggerAdapter := common.NewLoggerAdapter(logger)
	common.SetLogger(loggerAdapter)
	log.SetDefaultLogger(logger)

	logger.Info("Application starting",
		log.String("name", cfg.App().Name()),
		log.String("version", cfg.App().Version()),
		log.String("environment", cfg.App().Environment()),
		log.String("config_path", *yamlPath),
	)

	db, err := database.Connect(cfg.Database(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", log.Error(err))
	}

	if cfg.Database().AutoMigrate() {
		if err = database.MigrateDB(db); err != nil {
			logger.Fatal("Failed to migrate database", log.Error(err))
		}
		logger.Info("Database migrated successfully")
	}

	// Cache backs rate limiting and dashboard statistics
	cacheClient, err := cache.NewCacheFactory(loggerAdapter).CreateCache(cache.Provider(cfg.Cache().Provider()), &cache.Config{
		Host:       cfg.Redis().Host(),
		Port:       cfg.Redis().Port(),
		Password:   cfg.Redis().Password(),
		DB:         cfg.Redis().DB(),
		PoolSize:   cfg.Redis().PoolSize(),
		DefaultTTL: cfg.Cache().DefaultTTL(),
	})
	if err != nil {
		logger.Fatal("Failed to create cache", log.String("provider", cfg.Cache().Provider()), log.Error(err))
	}
	defer cacheClient.Close()

	uploadClient, err := upload.New(upload.Provider(cfg.Upload().Provider()), &upload.Config{
		LocalDir:      cfg.Upload().LocalDir(),
		PublicPath:    cfg.Upload().PublicPath(),
		S3AccessKey:   cfg.Upload().S3AccessKey(),
		S3SecretKey:   cfg.Upload().S3SecretKey(),
		S3EndpointURL: cfg.Upload().S3EndpointURL(),
		S3BucketName:  cfg.Upload().S3BucketName(),
		S3PathPrefix:  cfg.Upload().S3PathPrefix(),
		S3Region:      cfg.Upload().S3Region(),
	})
	if err != nil {
		logger.Fatal("Failed to create upload client", log.String("provider", cfg.Upload().Provider()), log.Error(err))
	}

	emailClient, err := newEmailClient(cfg.Email(), loggerAdapter)
	if err != nil {
		logger.Fatal("Failed to create email client", log.Error(err))
	}

	loc := cfg.App().Location()
	transactor := database.NewTransactor(db)
	bcryptHasher := common.NewBcryptHasher()
	jwtProvider := common.NewJWTProvider(cfg.App())

	// Initialize repositories
	roleRepository := roleRepo.NewRoleRepository(db)
	userRepository := userRepo.NewUserRepository(db)
	suratMasukRepository := suratMasukRepo.NewSuratMasukRepository(db)
	suratKeluarRepository := suratKeluarRepo.NewSuratKeluarRepository(db)
	disposisiRepository := disposisiRepo.NewDisposisiRepository(db)
	arsipRepository := arsipRepo.NewArsipRepository(db)

	// Initialize usecases
	stats := dashboardUC.NewStatsInvalidator(cacheClient, logger)
	notificationUsecase := notificationUC.NewNotificationUsecase(emailClient, logger)

	authUsecase := authUC.NewAuthUsecase(userRepository, jwtProvider, bcryptHasher)
	setupUsecase := setupUC.NewSetupUsecase(roleRepository, userRepository, transactor, bcryptHasher, cfg.App(), stats)
	roleUsecase := roleUC.NewRoleUsecase(roleRepository, userRepository)
	userUsecase := userUC.NewUserUsecase(userRepository, roleRepository, bcryptHasher, stats)
	suratMasukUsecase := suratMasukUC.NewSuratMasukUsecase(
		suratMasukRepository,
		disposisiRepository,
		arsipRepository,
		userRepository,
		transactor,
		stats,
	)
	suratKeluarUsecase := suratKeluarUC.NewSuratKeluarUsecase(
		suratKeluarRepository,
		arsipRepository,
		userRepository,
		transactor,
		stats,
	)
	disposisiUsecase := disposisiUC.NewDisposisiUsecase(
		disposisiRepository,
		suratMasukRepository,
		userRepository,
		transactor,
		notificationUsecase,
		stats,
		logger,
	)
	arsipUsecase := arsipUC.NewArsipUsecase(
		arsipRepository,
		suratMasukRepository,
		suratKeluarRepository,
		userRepository,
		transactor,
		stats,
	)
	dashboardUsecase := dashboardUC.NewDashboardUsecase(dashboardUC.Repositories{
		SuratMasuk:  suratMasukRepository,
		SuratKeluar: suratKeluarRepository,
		Disposisi:   disposisiRepository,
		Arsip:       arsipRepository,
		User:        userRepository,
	}, cacheClient, cfg.Cache().DashboardTTL(), loc)
	laporanUsecase := laporanUC.NewLaporanUsecase(laporanUC.Sources{
		SuratMasuk:  suratMasukRepository,
		SuratKeluar: suratKeluarRepository,
		Disposisi:   disposisiRepository,
		Arsip:       arsipRepository,
		User:        userRepository,
	}, loc)
	maxUploadSize := int64(cfg.Server().MaxUploadSizeMB()) << 20
	attachmentUsecase := attachmentUC.NewAttachmentUsecase(uploadClient, attachmentUC.Config{
		MaxSize:    maxUploadSize,
		PresignTTL: cfg.Upload().S3PresignURLTTL(),
	}, logger)

	if cfg.App().SeedOnStart() {
		if err := bootstrap.InitializeDefaultData(context.Background(), setupUsecase, logger); err != nil {
			logger.Fatal("Failed to initialize default data", log.Error(err))
		}
	}

	// Create middlewares instance
	middlewares := middleware.NewMiddlewares(middleware.Dependencies{
		Cache:       cacheClient,
		Logger:      logger,
		Auth:        authUsecase,
		RequireAuth: cfg.App().RequireAuth(),
		RateLimit: middleware.RateLimitSettings{
			Enabled:          cfg.RateLimit().Enabled(),
			Window:           cfg.RateLimit().Window(),
			MaxRequests:      int64(cfg.RateLimit().MaxRequests()),
			LoginMaxRequests: int64(cfg.RateLimit().LoginMaxRequests()),
		},
	})

	// Disable Gin's default logger and recovery
	gin.DisableConsoleColor()
	gin.SetMode(gin.ReleaseMode)
	appvalidator.RegisterValidatorWithGin()

	// Create Gin server without default middleware
	r := gin.New()
	r.MaxMultipartMemory = maxUploadSize

	// Add custom middleware in order
	r.Use(middlewares.Recovery())
	r.Use(middlewares.RequestIDMiddleware())
	r.Use(middlewares.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.Server().AllowedOrigins(),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}))
	r.Use(middlewares.LoggingMiddleware(middleware.LoggerConfig{
		SkipPaths:         []string{"/health"},
		EnableRequestBody: !cfg.App().IsProduction(),
		MaxBodySize:       1024,
	}))

	// Register routes
	apiGroup := r.Group("/api")
	apiGroup.Use(middlewares.APIRateLimits())
	authAPI.NewAuthHandler(authUsecase, middlewares).RegisterRoutes(apiGroup)
	setupAPI.NewSetupHandler(setupUsecase).RegisterRoutes(apiGroup)
	roleAPI.NewRoleHandler(roleUsecase, middlewares).RegisterRoutes(apiGroup)
	userAPI.NewUserHandler(userUsecase, middlewares).RegisterRoutes(apiGroup)
	suratMasukAPI.NewSuratMasukHandler(suratMasukUsecase, middlewares).RegisterRoutes(apiGroup)
	suratKeluarAPI.NewSuratKeluarHandler(suratKeluarUsecase, middlewares).RegisterRoutes(apiGroup)
	disposisiAPI.NewDisposisiHandler(disposisiUsecase, middlewares).RegisterRoutes(apiGroup)
	arsipAPI.NewArsipHandler(arsipUsecase, middlewares).RegisterRoutes(apiGroup)
	laporanAPI.NewLaporanHandler(laporanUsecase, middlewares, loc).RegisterRoutes(apiGroup)
	dashboardAPI.NewDashboardHandler(dashboardUsecase, middlewares).RegisterRoutes(apiGroup)
	attachmentAPI.NewAttachmentHandler(attachmentUsecase, middlewares, maxUploadSize).RegisterRoutes(apiGroup)

	if uploadClient.Provider() == upload.Local {
		r.Static(cfg.Upload().PublicPath(), cfg.Upload().LocalDir())
	}

	// Add health check endpoint
	r.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"version":   cfg.App().Version(),
			"timestamp": time.Now().Unix(),
		})
	})

	// Graceful shutdown setup
	srv := &http.Server{
		Addr:           cfg.Server().Address(),
		Handler:        r,
		ReadTimeout:    cfg.Server().ReadTimeout(),
		WriteTimeout:   cfg.Server().WriteTimeout(),
		IdleTimeout:    cfg.Server().IdleTimeout(),
		MaxHeaderBytes: cfg.Server().MaxHeaderBytes(),
	}

	// Run server in goroutine
	go func() {
		logger.Info("Starting HTTP server",
			log.Int("port", cfg.Server().Port()),
			log.String("host", cfg.Server().Host()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", log.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server().ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", log.Error(err))
	} else {
		logger.Info("Server exited gracefully")
	}
}
