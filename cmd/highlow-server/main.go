package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pfranke/highlow/internal/api"
)

func main() {
	logger := log.New(os.Stdout, "[highlow] ", log.LstdFlags)

	addr := envStr("HIGHLOW_ADDR", "127.0.0.1:8099")
	maxSessions := envInt("HIGHLOW_MAX_SESSIONS", 1024)
	sessionTTL := envDuration("HIGHLOW_SESSION_TTL", 30*time.Minute)

	registry := api.NewRegistry(maxSessions, sessionTTL, logger)
	server := api.NewServer(registry)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Routes(),
		// No WriteTimeout: /watch holds long-lived websocket streams.
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return registry.Run(ctx)
	})
	g.Go(func() error {
		logger.Printf("listening addr=%s max_sessions=%d session_ttl=%s version=%s",
			addr, maxSessions, sessionTTL, api.EngineVersion)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatalf("server error: %v", err)
	}
	logger.Println("shutdown complete")
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
