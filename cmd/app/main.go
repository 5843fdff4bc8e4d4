package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/venturenest/backend/internal/api/http"
	"github.com/venturenest/backend/internal/cache"
	"github.com/venturenest/backend/internal/config"
	"github.com/venturenest/backend/internal/db"
	"github.com/venturenest/backend/internal/repository"
	"github.com/venturenest/backend/internal/server"
	"github.com/venturenest/backend/internal/service"
	"github.com/venturenest/backend/internal/session"
	"github.com/venturenest/backend/pkg/auth"
	"github.com/venturenest/backend/pkg/email/smtp"
	"github.com/venturenest/backend/pkg/hash"
	"github.com/venturenest/backend/pkg/logger"
	"github.com/venturenest/backend/pkg/otp"

	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	appLogger := logger.Init(cfg.Env)
	defer appLogger.Sync() //nolint:errcheck

	appLogger.Info("starting venturenest api", zap.String("env", cfg.Env))

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			appLogger.Error("error when closing", zap.Error(err))
		}
	}()
	appLogger.Info("mysql connection done")

	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		appLogger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			appLogger.Error("error when closing redis", zap.Error(err))
		}
	}()
	appLogger.Info("redis connection done")

	sessionStore := session.NewStore(redisClient, cfg.Session)

	hasher := hash.NewSHA256Hasher(cfg.Auth.PasswordSalt)

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		appLogger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		appLogger.Error("auth manager creation err", zap.Error(err))
		return
	}

	otpGenerator := otp.NewGOTPGenerator()

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		OtpGenerator: otpGenerator,
		EmailSender:  emailSender,
		Repos:        repos,
		Sessions:     sessionStore,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg)

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
