// cmd/server/main.go
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

	"github.com/tahcohcat/voicegen/config"
	"github.com/tahcohcat/voicegen/internal/api"
	"github.com/tahcohcat/voicegen/internal/auth"
	"github.com/tahcohcat/voicegen/internal/database"
	"github.com/tahcohcat/voicegen/internal/history"
	"github.com/tahcohcat/voicegen/internal/llm"
	"github.com/tahcohcat/voicegen/internal/logger"
	"github.com/tahcohcat/voicegen/internal/tts"
	"github.com/tahcohcat/voicegen/internal/websocket"
)

func main() {
	if err := run(); err != nil {
		logger.New().WithError(err).Error("Server stopped")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.SetGlobalLevel(cfg.Log.Level)
	log := logger.Named("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model, err := llm.NewLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create %s client: %w", cfg.LLM.Provider, err)
	}
	if err := model.IsModelAvailable(ctx); err != nil {
		log.WithError(err).Warn("Model check failed, continuing")
	}

	engine, err := tts.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create %s tts: %w", cfg.Tts.Type, err)
	}

	var store api.HistoryStore
	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.WithError(err).Warn("History disabled")
	} else {
		defer db.Close()
		store = history.NewStore(db)
	}

	hub := websocket.NewHub(cfg.Server.AllowedOrigins)
	go hub.Run(ctx)

	handler := api.NewSpeechHandler(
		llm.NewSentenceGenerator(model),
		engine,
		store,
		hub,
		time.Duration(cfg.Server.RequestTimeout)*time.Second,
	)

	authManager := auth.NewManager(&cfg.Auth)
	if authManager.Enabled() {
		log.Info("Session auth enabled")
	}

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(handler, api.RouterOptions{
			Auth:           authManager,
			Feed:           hub,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info(fmt.Sprintf("voicegen backend starting on port %d [llm:%s, tts:%s]", cfg.Server.Port, cfg.LLM.Provider, engine.Name()))
	log.Info(fmt.Sprintf("Clients POST to http://localhost:%d%s", cfg.Server.Port, "/generate-audio"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
