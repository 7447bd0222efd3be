package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"migflow/internal/catalog"
	cataloghandler "migflow/internal/catalog/handler"
	"migflow/internal/catalog/store"
	"migflow/internal/flow"
	flowhandler "migflow/internal/flow/handler"
	"migflow/internal/platform/config"
	"migflow/internal/platform/httpserver"
	"migflow/internal/platform/logger"
	"migflow/internal/platform/metrics"
	platformredis "migflow/internal/platform/redis"
	"migflow/internal/upstream"
	"migflow/pkg/platform/middleware/requestid"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	client, err := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	}, upstream.WithLogger(log))
	if err != nil {
		log.Error("upstream client init failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}

	var catalogStore store.Store = store.NewMemory()
	if redisClient != nil {
		catalogStore, err = store.NewRedis(redisClient.Client, 2*cfg.Catalog.TTL)
		if err != nil {
			log.Error("redis catalog store init failed", "error", err)
			os.Exit(1)
		}
		log.Info("using redis catalog store")
	}

	catalogSvc, err := catalog.New(client, catalogStore,
		catalog.WithTTL(cfg.Catalog.TTL),
		catalog.WithLogger(log),
		catalog.WithMetrics(m),
	)
	if err != nil {
		log.Error("catalog service init failed", "error", err)
		os.Exit(1)
	}

	flowSvc, err := flow.NewService(client, catalogSvc,
		flow.WithLogger(log),
		flow.WithMetrics(m),
	)
	if err != nil {
		log.Error("flow service init failed", "error", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(requestid.RequestID)

	router.Route("/api", func(r chi.Router) {
		flowhandler.New(flowSvc, log).Register(r)
		cataloghandler.New(catalogSvc, log).Register(r)
	})

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting migflow", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
