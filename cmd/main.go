package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"shagun/internal/config"
	httpapi "shagun/internal/http"
	"shagun/internal/media"
	"shagun/internal/repository"
	"shagun/internal/service"

	_ "shagun/docs"
)

// @title Shagun Fabrics API
// @version 1.0
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx := context.Background()
	stores, err := repository.Open(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected", "backend", stores.Backend)

	uploads, err := newMediaStore(cfg)
	if err != nil {
		slog.Error("media store", "error", err)
		os.Exit(1)
	}

	productsSvc := service.NewProductService(stores.Products, uploads)
	ordersSvc := service.NewOrderService(stores.Orders)
	usersSvc := service.NewUserService(stores.Users)

	if created, err := usersSvc.EnsureAdmin(ctx); err != nil {
		slog.Warn("seed admin not ensured", "error", err)
	} else if created {
		slog.Info("seed admin created", "email", service.SeedAdmin.Email)
	}

	srv := httpapi.NewServer(productsSvc, ordersSvc, usersSvc, uploads)

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	if err := stores.Close(shutdownCtx); err != nil {
		slog.Error("database close error", "error", err)
	}
}

// newMediaStore prefers Cloudinary and falls back to the local uploads directory.
func newMediaStore(cfg config.Config) (media.Store, error) {
	if cfg.MediaConfigured() {
		slog.Info("media store: cloudinary", "folder", media.DefaultFolder)
		return media.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	}
	slog.Warn("cloudinary not configured, storing uploads locally", "dir", cfg.UploadsDir)
	return media.NewLocal(cfg.UploadsDir, cfg.UploadMaxWidth)
}
