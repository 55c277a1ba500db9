package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"

	"shopping-agent/internal/di"
	"shopping-agent/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	container, err := di.NewContainer(di.Config{
		OpenRouterAPIKey: envService.MustGet("OPENROUTER_API_KEY"),
		OpenRouterModel:  envService.MustGet("OPENROUTER_MODEL_NAME"),
		SerpAPIKey:       envService.Get("SERPAPI_KEY"),
		BrowserHeadless:  envService.GetBool("BROWSER_HEADLESS", false),
		LogLevel:         envService.GetWithDefault("LOG_LEVEL", "info"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer container.Close()

	addr := envService.GetWithDefault("LISTEN_ADDR", "127.0.0.1:8000")

	requestLogger := httplog.NewLogger("shopping-agent", httplog.Options{
		JSON:    true,
		Concise: true,
	})

	router := chi.NewRouter()
	router.Use(httplog.RequestLogger(requestLogger))
	router.Mount("/", container.Handler)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		container.Logger.Info("Server listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed", "error", err)
			// os.Exit skips the deferred Close, so release the browser here.
			container.Close()
			os.Exit(1)
		}
	case sig := <-sigCh:
		container.Logger.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			container.Logger.Error("Shutdown failed", "error", err)
		}
	}
}
