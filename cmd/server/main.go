package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/repository"
	"inkwell/internal/router"
	"inkwell/internal/services"
	"inkwell/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg)

	// Initialize Database
	gdb, err := db.Open(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}

	store := repository.NewGormStore(gdb)
	authService := services.NewAuthService(store, log)
	postService := services.NewPostService(store, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.SecretKey == config.DefaultSecretKey {
		log.Warn("SECRET_KEY is not set, using the development key")
	}

	r := router.New(router.Deps{
		Auth:         authService,
		Posts:        postService,
		Log:          log,
		SecretKey:    cfg.SecretKey,
		PerPage:      cfg.PerPage,
		SecureCookie: cfg.IsProduction(),
	})

	renderer, err := view.Load("./web/templates")
	if err != nil {
		log.WithError(err).Fatal("Failed to load templates")
	}
	r.HTMLRender = renderer
	r.Static("/static", "./web/static")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Inkwell server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server exited")
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
