package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"registration-service/config"
	"registration-service/controllers"
	"registration-service/middleware"
	"registration-service/repository"
	"registration-service/routes"
	"registration-service/sender"
	"registration-service/services"
	"registration-service/storage"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Config load failed", zap.Error(err))
	}

	// Capability bundle: each optional client is built exactly once here
	// and handed down explicitly. Absence means degradation, not a crash.
	var blobs storage.BlobStore
	if cfg.StorageEnabled {
		s3Store, err := storage.NewS3BlobStore(context.Background(), cfg.S3Bucket, cfg.S3Endpoint)
		if err != nil {
			logger.Warn("Storage client init failed, running without persistence", zap.Error(err))
		} else {
			if err := s3Store.EnsureBucket(context.Background()); err != nil {
				logger.Warn("Bucket bootstrap failed (non-fatal)", zap.Error(err))
			}
			blobs = s3Store
			logger.Info("Blob storage connected", zap.String("bucket", cfg.S3Bucket))
		}
	} else {
		logger.Warn("Storage not configured. Registrations will not be persisted")
	}

	var mail sender.EmailSender
	if cfg.MailEnabled {
		smtpSender, err := sender.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
		if err != nil {
			logger.Warn("SMTP sender init failed, confirmations disabled", zap.Error(err))
		} else {
			mail = smtpSender
			logger.Info("Email transport ready", zap.String("host", cfg.SMTPHost))
		}
	} else {
		logger.Warn("Email not configured. Confirmations will not be sent")
	}

	gateway := services.NewRazorpayService(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("Unknown timezone, using local", zap.String("timezone", cfg.Timezone))
		loc = time.Local
	}

	// Dependency injection
	ledger := repository.NewExcelLedgerRepository(blobs, logger)
	notifier := services.NewEmailNotifier(mail, logger)
	registrations := services.NewRegistrationService(ledger, notifier, loc, logger)

	rc := &controllers.RegistrationController{
		Gateway:              gateway,
		Registrations:        registrations,
		Ledger:               ledger,
		Logger:               logger,
		RazorpayKeyID:        cfg.RazorpayKeyID,
		OrderCreationEnabled: cfg.OrderCreationEnabled,
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RequestTimeout(30 * time.Second))

	routes.RegisterRoutes(r, rc)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("Registration service started",
			zap.String("port", cfg.Port),
			zap.Bool("order_creation", cfg.OrderCreationEnabled))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("Registration service stopped gracefully")
}
