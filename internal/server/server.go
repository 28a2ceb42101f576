// Package server boots the Washly HTTP server: configuration, database,
// cache, storage, queue workers, the websocket hub and the router with
// its middleware stack.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/washly/app/jobs"
	"github.com/shashiranjanraj/washly/app/routes"
	"github.com/shashiranjanraj/washly/config"
	"github.com/shashiranjanraj/washly/pkg/cache"
	"github.com/shashiranjanraj/washly/pkg/database"
	"github.com/shashiranjanraj/washly/pkg/logger"
	"github.com/shashiranjanraj/washly/pkg/metrics"
	"github.com/shashiranjanraj/washly/pkg/middleware"
	"github.com/shashiranjanraj/washly/pkg/notification"
	"github.com/shashiranjanraj/washly/pkg/queue"
	"github.com/shashiranjanraj/washly/pkg/reqid"
	"github.com/shashiranjanraj/washly/pkg/router"
	"github.com/shashiranjanraj/washly/pkg/storage"
	"github.com/shashiranjanraj/washly/pkg/ws"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 15 * time.Second
	queueWorkers    = 4
)

// Start boots every subsystem and serves until SIGINT/SIGTERM, then
// drains in-flight requests.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		// Cache misses degrade to DB reads, so a missing Redis is not fatal.
		logger.Warn("server: redis unavailable, caching disabled", "error", err)
	}
	storage.Connect()
	notification.UseDB(database.DB)
	queue.UseDB(database.DB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cache.RDB != nil {
		// Durable queue when Redis is up, in-memory otherwise.
		driver := queue.NewRedisDriver(cache.RDB)
		driver.StartDelayedPromoter(ctx)
		queue.SetDriver(driver)
	}

	jobs.Register()
	queue.StartWorkers(ctx, queueWorkers)
	go ws.OrderFeed.Run()

	srv := &http.Server{
		Addr:         ":" + config.AppPort(),
		Handler:      buildHandler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildHandler assembles the router with the global middleware stack.
func buildHandler() http.Handler {
	r := router.New()
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		metrics.Middleware(),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	routes.RegisterAPI(r)
	return r.Handler()
}
