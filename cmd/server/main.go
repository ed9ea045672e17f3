package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	appauth "github.com/goalreacher/goalreacher/internal/auth"
	"github.com/goalreacher/goalreacher/internal/backend"
	"github.com/goalreacher/goalreacher/internal/config"
	httpserver "github.com/goalreacher/goalreacher/internal/http"
)

func main() {
	log.Println("Starting Goal Reacher server...")

	// Local dev convenience; in production the environment is real.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendClient := backend.NewClient(cfg.Backend.BaseURL)
	resolver := appauth.NewResolver(cfg.OAuth.ProfileURL)
	authService := appauth.NewService(cfg, backendClient, resolver)

	r := httpserver.NewRouter(cfg, backendClient, authService)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
