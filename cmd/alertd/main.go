package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/quake-alert-service/internal/adapter/catalog"
	httpadapter "github.com/couchcryptid/quake-alert-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-alert-service/internal/adapter/kafka"
	"github.com/couchcryptid/quake-alert-service/internal/adapter/ws"
	"github.com/couchcryptid/quake-alert-service/internal/alert"
	"github.com/couchcryptid/quake-alert-service/internal/config"
	"github.com/couchcryptid/quake-alert-service/internal/domain"
	"github.com/couchcryptid/quake-alert-service/internal/feed"
	"github.com/couchcryptid/quake-alert-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	manager := alert.NewManager(cfg.AlertMaxVisible, cfg.AlertHideDelay, nil, logger, metrics)
	hub := ws.NewHub(logger)

	// Optional Kafka sink (feature-flagged via KAFKA_BROKERS).
	var sink *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		sink = kafkaadapter.NewWriter(cfg, logger)
		logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka sink disabled")
	}

	consume := func(a domain.Alert) {
		manager.Add(a)
		hub.Broadcast(a)
		if sink != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := sink.Publish(ctx, a); err != nil {
				logger.Error("kafka publish failed", "error", err, "region", a.Region)
			}
		}
	}

	client := feed.New(feed.Config{
		URI:            cfg.FeedURI,
		ReconnectDelay: cfg.FeedReconnectDelay,
		DedupSize:      cfg.FeedDedupSize,
	}, feed.WebsocketDialer{}, consume, logger, metrics)

	// Optional earthquake catalog poller (feature-flagged via CATALOG_URL).
	var poller *catalog.Poller
	if cfg.CatalogEnabled {
		fetcher := catalog.NewClient(cfg.CatalogURL, cfg.CatalogTimeout, logger)
		poller = catalog.NewPoller(fetcher, cfg.CatalogRefreshInterval, nil, logger, metrics)
		logger.Info("catalog polling enabled", "url", cfg.CatalogURL, "interval", cfg.CatalogRefreshInterval)
	} else {
		logger.Info("catalog polling disabled")
	}

	var catalogSource httpadapter.CatalogSource
	if poller != nil {
		catalogSource = poller
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, client, manager, catalogSource, http.HandlerFunc(hub.HandleWS), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start feed client.
	go func() {
		if err := client.Run(ctx); err != nil {
			logger.Error("feed client error", "error", err)
		}
	}()

	// Start catalog poller.
	if poller != nil {
		go func() {
			if err := poller.Run(ctx); err != nil {
				logger.Error("catalog poller error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if sink != nil {
		if err := sink.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
