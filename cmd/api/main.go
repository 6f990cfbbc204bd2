package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/photoshare/photoshare-api/internal/api"
	"github.com/photoshare/photoshare-api/internal/infrastructure/config"
	mongodb "github.com/photoshare/photoshare-api/internal/infrastructure/db/mongo"
	redisdb "github.com/photoshare/photoshare-api/internal/infrastructure/db/redis"
	"github.com/photoshare/photoshare-api/internal/infrastructure/queue"
	"github.com/photoshare/photoshare-api/internal/infrastructure/storage"
	"github.com/photoshare/photoshare-api/pkg/logger"
)

// @title           PhotoShare API
// @version         1.0
// @description     Photo sharing backend: accounts, friend relationships, photos, comments and likes.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not configured yet.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewPhotoRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("photo index creation failed")
	}

	fileStore, err := storage.NewDiskStore(cfg.ImagesDir)
	if err != nil {
		log.Fatal().Err(err).Msg("image store setup failed")
	}

	cleaner := queue.NewDispatcher(cfg.CleanupWorkers, fileStore, log)
	cleaner.Start(ctx)

	e := api.NewRouter(api.Deps{
		Mongo:     db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		ImagesDir: cfg.ImagesDir,
		FileStore: fileStore,
		Cleaner:   cleaner,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
