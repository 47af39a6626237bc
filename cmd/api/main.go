package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadbalawal/MenuPlus-sub000/internal/analysis"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/auth"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/config"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/db"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/llm"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/logger"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/menu"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/ocr"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/profile"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/router"
	"github.com/muhammadbalawal/MenuPlus-sub000/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "menuplus api:", err)
		os.Exit(1)
	}
}

func run() error {
	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.InitSchema(ctx, pool); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	log.Info("POSTGRES_READY")

	// ───────────────────────── CLIENTS ─────────────────────────
	store, err := storage.NewS3Store(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	llmClient, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return err
	}

	extractor, err := ocr.NewExtractor(cfg.OCR)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	// ───────────────────────── SERVICES ─────────────────────────
	authService := auth.NewService(auth.NewPostgresUserRepository(pool), tokens, log)
	profileService := profile.NewService(profile.NewPostgresRepository(pool), authService, log)
	ocrService := ocr.NewService(
		ocr.NewPostgresRepository(pool),
		store,
		extractor,
		ocr.NewCleaner(cfg.OCR.MaxTextLength, log),
		log,
	)
	analysisService := analysis.NewService(profileService, llmClient, ocrService, cfg.LLM.Timeout, log)
	menuService := menu.NewService(menu.NewPostgresRepository(pool), store, log)

	// ───────────────────────── HTTP ─────────────────────────
	gin.SetMode(cfg.Server.Mode)
	engine := router.New(router.Deps{
		Server:   cfg.Server,
		Logger:   log,
		Tokens:   tokens,
		Auth:     auth.NewHandler(authService),
		Profile:  profile.NewHandler(profileService),
		Analysis: analysis.NewHandler(analysisService),
		Menus:    menu.NewHandler(menuService),
		Scans:    ocr.NewHandler(ocrService),
		Ping:     pool.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("API_LISTENING",
			zap.String("addr", srv.Addr),
			zap.String("llm", llmClient.Name()),
			zap.String("ocr_engine", cfg.OCR.Engine),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		log.Info("API_SHUTTING_DOWN")
		return srv.Shutdown(shutdownCtx)
	})

	// ───────────────────────── OCR WORKER ─────────────────────────
	if cfg.OCR.EmbeddedWorker {
		worker := ocr.NewWorker(ocrService, cfg.OCR.PollInterval, log)
		g.Go(func() error {
			return worker.Run(gctx)
		})
	}

	return g.Wait()
}
