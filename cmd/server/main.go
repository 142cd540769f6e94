package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bugsight/internal/auth"
	"bugsight/internal/config"
	apphttp "bugsight/internal/http"
	"bugsight/internal/repository/sqlite"
	"bugsight/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	bugRepo := sqlite.NewBugRepository(db)
	sightingRepo := sqlite.NewSightingRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := bugRepo.Init(ctx); err != nil {
		logger.Fatalf("init bug repository: %v", err)
	}
	if err := sightingRepo.Init(ctx); err != nil {
		logger.Fatalf("init sighting repository: %v", err)
	}

	hasher, err := buildHasher(cfg.Auth.HashScheme)
	if err != nil {
		logger.Fatalf("setup password hasher: %v", err)
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	if err != nil {
		logger.Fatalf("setup token issuer: %v", err)
	}

	userService := service.NewUserService(logger, userRepo, hasher, tokens)
	bugService := service.NewBugService(logger, bugRepo)
	sightingService := service.NewSightingService(logger, sightingRepo, bugRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, bugService, sightingService, tokens)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildHasher(scheme string) (auth.PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", "sha256":
		return auth.NewSHA256Hasher(), nil
	case "argon2id":
		return auth.NewArgon2idHasher(), nil
	default:
		return nil, fmt.Errorf("unknown hash scheme %q", scheme)
	}
}
