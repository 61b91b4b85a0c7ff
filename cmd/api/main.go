package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/advisor"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/classifier"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/config"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/database"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/farm"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/gemini"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/server"
	"github.com/vanshiiii11/ai-farmer-advisory-system/internal/weather"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	log.Info().Msg("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	dbService := database.NewService()
	defer dbService.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := dbService.Store().EnsureSchema(ctx); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Could not prepare database schema")
	}
	cancel()

	geminiClient := gemini.NewClient(cfg.GeminiAPIKey)
	handler := farm.NewHandler(
		dbService.Store(),
		weather.NewClient(cfg.OpenWeatherAPIKey),
		geminiClient,
		classifier.NewClient(cfg.ModelAPIURL),
		advisor.New(geminiClient),
		cfg.DefaultLat,
		cfg.DefaultLon,
	)

	apiServer := server.NewServer(cfg, dbService, handler)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(apiServer, done)

	log.Info().Str("addr", apiServer.Addr).Msg("Agricultural advisory API listening")
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info().Msg("Graceful shutdown complete.")
}
