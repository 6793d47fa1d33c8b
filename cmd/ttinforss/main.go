package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/martinlindenberg/ttinforss/internal/cache"
	"github.com/martinlindenberg/ttinforss/internal/config"
	"github.com/martinlindenberg/ttinforss/internal/pipeline"
	"github.com/martinlindenberg/ttinforss/internal/server"
)

func main() {
	configPath := flag.String("config", "./config.json", "path to the configuration file")
	listen := flag.String("listen", "", "serve the feed over HTTP on this address instead of printing it once")
	verbose := flag.Bool("verbose", false, "log per-league progress")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	level := cfg.LogLevel
	if *verbose {
		level = "debug"
	}
	log := newLogger(level)

	store, err := newStore(cfg)
	if err != nil {
		log.Error("open cache", "driver", cfg.CacheDriver, "path", cfg.CachePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	pipe := pipeline.New(cfg, store, http.DefaultClient, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *listen != "" {
		serve(ctx, *listen, pipe, log)
		return
	}

	doc, cached, err := pipe.Run(ctx)
	if err != nil {
		log.Error("generate feed", "error", err)
		os.Exit(1)
	}
	log.Debug("feed generated", "cached", cached, "bytes", len(doc))
	_, _ = os.Stdout.WriteString(doc)
}

func serve(ctx context.Context, addr string, pipe *pipeline.Pipeline, log *slog.Logger) {
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.New(pipe, log).Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("serve", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func newStore(cfg *config.Config) (cache.Store, error) {
	if cfg.CacheDriver == "sqlite" {
		return cache.NewSQLite(cfg.CachePath)
	}
	return cache.NewFile(cfg.CachePath), nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
