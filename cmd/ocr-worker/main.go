package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/config"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/db"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/logger"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/ocr"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/storage"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "menuplus ocr-worker:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Note: No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Database.DSN == "" {
		return errors.New("DATABASE_URL is not set")
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.InitSchema(ctx, pool); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	store, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	extractor, err := ocr.NewExtractor(cfg.OCR)
	if err != nil {
		return err
	}

	service := ocr.NewService(
		ocr.NewPostgresRepository(pool),
		store,
		extractor,
		ocr.NewCleaner(cfg.OCR.MaxTextLength, log),
		log,
	)

	log.Info("OCR_WORKER_READY",
		zap.String("engine", cfg.OCR.Engine),
		zap.Duration("poll_interval", cfg.OCR.PollInterval),
	)

	return ocr.NewWorker(service, cfg.OCR.PollInterval, log).Run(ctx)
}
