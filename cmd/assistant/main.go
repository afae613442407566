package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"cladari-assistant/internal/common/config"
	"cladari-assistant/internal/common/logger"
	"cladari-assistant/internal/common/observability"
	"cladari-assistant/internal/common/plantdb"
	enrichcontext "cladari-assistant/internal/pipeline/enrich-context"
	generatetext "cladari-assistant/internal/pipeline/generate-text"
	queryplantdb "cladari-assistant/internal/pipeline/query-plantdb"
	routequery "cladari-assistant/internal/pipeline/route-query"
	"cladari-assistant/internal/server"
)

func main() {
	zapLog := logger.New("info", "console")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with configured level/format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assistant...",
		zap.String("plantdb", cfg.PlantDB.BaseURL),
		zap.String("generalModel", cfg.Models.General.Endpoint),
		zap.String("specialistModel", cfg.Models.Specialist.Endpoint),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// --- Clients and pipeline wiring ---
	inventory := plantdb.NewClient(cfg.PlantDB)

	local := queryplantdb.NewHandler(queryplantdb.DefaultConfig(), inventory, log)
	general := generatetext.NewHandler(generatetext.FromModelConfig(generatetext.RoleGeneral, cfg.Models.General), log)
	specialist := generatetext.NewHandler(generatetext.FromModelConfig(generatetext.RoleSpecialist, cfg.Models.Specialist), log)
	resolver := enrichcontext.NewHandler(inventory, log)

	router := routequery.NewRouter(local, general, specialist, resolver, obs, log)

	// --- HTTP surface ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))
	r.Use(server.RequestLogger(log))

	h := server.NewHandler(router, log)
	server.RegisterRoutes(r, h)
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		zapLog.Info("listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down server", zap.Error(err))
	}
}
