package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"blogsite/cmd/app"
	"blogsite/internal/config"
	handlers "blogsite/internal/handler"
	"blogsite/internal/logger"
	"blogsite/internal/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// setting up config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logg := logger.New(cfg.LogLevel)

	application, err := app.New(ctx, cfg, logg)
	if err != nil {
		logg.Fatal("failed to start application", "error", err)
	}
	defer application.Close()

	if removed, err := application.Sessions.CleanupExpired(ctx); err != nil {
		logg.Warn("failed to remove expired sessions", "error", err)
	} else if removed > 0 {
		logg.Info("removed expired sessions", "count", removed)
	}
	application.StartSessionCleanup(ctx, time.Hour, logg)

	h, err := handlers.NewHandlers(application.Services, application.Sessions, cfg, logg)
	if err != nil {
		logg.Fatal("failed to build handlers", "error", err)
	}

	handlerChain := middleware.Chain(
		h.Routes(),
		application.Sessions.Middleware,
		middleware.CSRF(cfg.Session.Secret, cfg.Session.Secure, logg),
		middleware.SecureHeaders,
		middleware.Logging(logg),
		middleware.Recover(logg),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handlerChain,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	go func() {
		logg.Info("server started", "addr", srv.Addr, "driver", cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown failed", "error", err)
	}
}
