package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/app"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/config"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/logger"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/routes"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRoutes(app),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", cfg.AppURL,
		"email_provider", cfg.EmailProvider, "uploads", cfg.StorageEnabled())

	err = server.ListenAndServe()
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
