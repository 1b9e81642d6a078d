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

	"github.com/querypod/querypod"
	"github.com/querypod/querypod/server"
	"github.com/querypod/querypod/websearch"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := querypod.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	llm := querypod.NewOpenAIClient(cfg.APIKey, cfg.BaseURL)
	searchTool := websearch.NewTool(websearch.NewClient(cfg.TavilyAPIKey))

	var archive *querypod.Archive
	if cfg.DatabaseURL != "" {
		var err error
		archive, err = querypod.OpenArchive(cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open conversation archive", "error", err)
			os.Exit(1)
		}
		defer func() { _ = archive.Close() }()
	}

	store := querypod.NewMemoryStore()
	streamer := querypod.NewStreamer(store, archive, logger)

	handler, err := server.New(server.Config{
		Store:    store,
		Streamer: streamer,
		BuildAgent: func() querypod.Runner {
			return querypod.NewSearchAgent(llm, cfg.ModelName, searchTool)
		},
		Logger:         logger,
		FrontendOrigin: cfg.FrontendOrigin,
	})
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", cfg.Addr, "model", cfg.ModelName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
