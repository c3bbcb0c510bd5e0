package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/external/razorpay"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/external/resend"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/config"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/db"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/ratelimit"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/repository"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/services"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer pool.Close()

	var sessions session.Store
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		sessions = session.NewRedisStore(client, cfg.Admin.SessionTTL)
		logger.Info("admin sessions in redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		sessions = session.NewMemoryStore(cfg.Admin.SessionTTL, cfg.Admin.SweepInterval)
		logger.Info("admin sessions in process memory")
	}
	defer sessions.Close()

	limiter := ratelimit.New(cfg.RateLimit.Window, cfg.RateLimit.Max)

	// ======================
	// EXTERNALS
	// ======================
	provider := razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	var mailer services.ReconciliationMailer
	if cfg.Alerts.ResendAPIKey != "" {
		m, err := resend.NewResendMailer(cfg.Alerts.ResendAPIKey, cfg.Alerts.FromAddress)
		if err != nil {
			logger.Fatal("mailer setup failed", zap.Error(err))
		}
		mailer = m
	} else {
		logger.Warn("RESEND_API_KEY not set; reconciliation alerts disabled")
	}

	if cfg.Razorpay.WebhookSecret == "" {
		logger.Warn("RAZORPAY_WEBHOOK_SECRET not set; webhook signature verification is BYPASSED (development mode only)")
	}

	// ======================
	// REPOSITORIES
	// ======================
	cartRepo := repository.NewCartRepository(pool)
	orderRepo := repository.NewOrderRepository(pool, cartRepo)

	// ======================
	// SERVICES
	// ======================
	cartSvc := services.NewCartService(cartRepo)
	paymentSvc := services.NewPaymentService(cartRepo, orderRepo, provider, cfg.Razorpay.KeySecret, logger)
	orderSvc := services.NewOrderService(cartRepo, orderRepo, paymentSvc, mailer, cfg.Alerts.AdminEmail, logger)
	adminSvc := services.NewAdminService(sessions, cfg.Admin.Emails, logger)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerCartRoutes(api, cartSvc)
	registerPaymentRoutes(api, paymentSvc)
	registerWebhookRoutes(api, paymentSvc, limiter, cfg.Razorpay.WebhookSecret, logger)
	registerOrderRoutes(api, orderSvc, sessions, cfg.Server.Production)
	registerAdminRoutes(api, adminSvc, cfg.Admin.SessionTTL, cfg.Server.Production)

	// ======================
	// SERVER
	// ======================
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil {
			logger.Info("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
