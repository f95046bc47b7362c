package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/anantbhadani/CareerCraft/internal/analysis"
	"github.com/anantbhadani/CareerCraft/internal/api"
	"github.com/anantbhadani/CareerCraft/internal/config"
	"github.com/anantbhadani/CareerCraft/internal/prefs"
	"github.com/anantbhadani/CareerCraft/internal/screen"
	"github.com/anantbhadani/CareerCraft/internal/storage"
	"github.com/anantbhadani/CareerCraft/internal/upload"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}
	cfg := config.MustLoad()

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	kv, closeKV, err := prefs.OpenKV(context.Background(), cfg)
	if err != nil {
		log.Fatalf("open preference store: %v", err)
	}
	defer func() {
		if err := closeKV(); err != nil {
			logger.Error("close preference store failed", slog.Any("error", err))
		}
	}()
	logger.Info("preference store ready", slog.String("driver", cfg.Store.Driver))

	store := prefs.NewStore(kv, logger, cfg.Store.MaxValueBytes)

	var blobs screen.BlobStore
	if cfg.MinIO.Enabled() {
		storageClient, err := storage.NewClient(cfg.MinIO, logger)
		if err != nil {
			log.Fatalf("init storage client: %v", err)
		}
		blobs = storageClient
		logger.Info("export storage ready", slog.String("bucket", cfg.MinIO.Bucket))
	}

	client := analysis.NewClient(cfg.Analysis, logger)
	scanner := upload.NewScanner(cfg.Upload.ClamdAddr)
	state := screen.NewState()

	router := api.NewRouter(cfg, logger)
	api.RegisterRoutes(router, api.Screens{
		Dashboard: screen.NewDashboard(client, store, state, scanner, blobs, logger),
		Jobs:      screen.NewJobs(client, store, state, client.JobLimit(), logger),
		Skills:    screen.NewSkills(client, store, state, logger),
		Profile:   screen.NewProfile(store),
		Settings:  screen.NewSettings(store, state, blobs, logger),
		Meter:     api.NewMeterHandler(logger, cfg.API.AllowedOrigins),
	})

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening",
		slog.String("address", address),
		slog.String("analysis_api", cfg.Analysis.BaseURL),
	)
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
