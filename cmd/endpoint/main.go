package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/config"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/events"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/repository"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/routes"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/services"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/pkg/logger"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logr := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	logr.Info("starting push subscription endpoint", slog.String("app", cfg.AppName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logr.Error("failed to connect database", slog.Any("error", err))
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		defer sqlDB.Close()
	}

	store := repository.NewSubscriptionStore(db, cfg.SubscriptionTable)
	if err := store.Migrate(ctx); err != nil {
		logr.Error("failed to migrate subscriptions table", slog.Any("error", err))
		os.Exit(1)
	}

	var index services.GroupIndex
	if cfg.RedisURL != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		groupIndex := repository.NewGroupIndex(rdb, cfg.GroupIndexTTL)
		defer groupIndex.Close()
		index = groupIndex
	}

	var publisher services.EventPublisher
	if cfg.RabbitURL != "" {
		conn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			logr.Error("failed to connect rabbitmq", slog.Any("error", err))
			os.Exit(1)
		}
		defer conn.Close()
		pub := events.NewPublisher(conn, cfg.EventExchange, logr)
		defer pub.Close()
		publisher = pub
	}

	metricsCollector := metrics.New()
	registry := services.NewRegistry(store, index, publisher, metricsCollector, logr)

	started := time.Now()
	httpSrv := startHTTPServer(cfg, registry, metricsCollector, logr, started)

	<-ctx.Done()
	shutdownHTTP(httpSrv, logr)
	logr.Info("push subscription endpoint stopped")
}

func startHTTPServer(cfg *config.Config, registry *services.Registry, metricsCollector *metrics.Metrics, logr *slog.Logger, started time.Time) *http.Server {
	port := cfg.HTTPPort
	if port == "" {
		port = "8083"
	}
	handler := routes.NewRouter(registry, metricsCollector, started, routes.Options{
		SubscriptionPath: cfg.SubscriptionPath,
		AllowedOrigins:   cfg.AllowedOrigins,
		StaticDir:        cfg.StaticDir,
		RequestTimeout:   cfg.RequestTimeout,
	})
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Error("http server error", slog.Any("error", err))
		}
	}()
	return srv
}

func shutdownHTTP(srv *http.Server, logr *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("failed to shutdown http server", slog.Any("error", err))
	}
}
