package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/gestor/backend/internal/application/billing"
	catalogapp "github.com/gestor/backend/internal/application/catalog"
	exportapp "github.com/gestor/backend/internal/application/export"
	identityapp "github.com/gestor/backend/internal/application/identity"
	notificationapp "github.com/gestor/backend/internal/application/notification"
	partnerapp "github.com/gestor/backend/internal/application/partner"
	"github.com/gestor/backend/internal/infrastructure/auth"
	"github.com/gestor/backend/internal/infrastructure/config"
	infraexport "github.com/gestor/backend/internal/infrastructure/export"
	"github.com/gestor/backend/internal/infrastructure/logger"
	"github.com/gestor/backend/internal/infrastructure/mail"
	"github.com/gestor/backend/internal/infrastructure/payment"
	"github.com/gestor/backend/internal/infrastructure/persistence"
	"github.com/gestor/backend/internal/infrastructure/storage"
	"github.com/gestor/backend/internal/interfaces/http/handler"
	"github.com/gestor/backend/internal/interfaces/http/middleware"
	"github.com/gestor/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Gestor API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Token issuing and revocation
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Token revocation backed by Redis")
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Token revocation is in-memory; revocations are lost on restart")
	}

	// Transactional email
	var mailer notificationapp.Mailer
	if cfg.Mail.Enabled {
		mailer = mail.NewSMTPSender(cfg.Mail, log)
	} else {
		mailer = mail.NewNoopSender(log)
		log.Warn("Mail delivery disabled; outbound email is logged and dropped")
	}
	emailService := notificationapp.NewEmailService(mailer, log)

	// Object storage for images and attachments
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
	} else {
		objectStorage = storage.NewInMemoryObjectStorage()
		log.Warn("Object storage bucket not configured; using in-memory storage")
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, auth.NewPasswordHasher(), jwtService, blacklist, emailService, log)
	clientService := partnerapp.NewClientService(clientRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	productService := catalogapp.NewProductService(productRepo)
	attachmentService := catalogapp.NewAttachmentService(objectStorage)
	paymentService := billingapp.NewPaymentService(payment.NewHTTPGateway(cfg.Payment, log), log)
	exportService := exportapp.NewService(clientRepo, supplierRepo, productRepo,
		map[infraexport.Format]infraexport.Renderer{
			infraexport.FormatCSV:  infraexport.NewCSVRenderer(),
			infraexport.FormatXLSX: infraexport.NewXLSXRenderer(),
			infraexport.FormatPDF:  infraexport.NewPDFRenderer(infraexport.PDFRendererConfig{Logger: log}),
		})

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	authMiddleware := middleware.Auth(middleware.AuthConfig{
		JWTService: jwtService,
		Revocation: authService,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
		},
		Logger: log,
	})

	loginLimit := middleware.NewRateLimiter(10, time.Minute)

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(authMiddleware),
	)
	r.Register(handler.NewSystemHandler()).
		Register(handler.NewAuthHandler(authService, loginLimit)).
		Register(handler.NewClientHandler(clientService)).
		Register(handler.NewSupplierHandler(supplierService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewAttachmentHandler(attachmentService)).
		Register(handler.NewBillingHandler(paymentService)).
		Register(handler.NewNotificationHandler(emailService)).
		Register(handler.NewExportHandler(exportService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
