package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	FeedURI            string
	FeedReconnectDelay time.Duration
	FeedDedupSize      int

	AlertMaxVisible int
	AlertHideDelay  time.Duration

	CatalogURL             string
	CatalogEnabled         bool
	CatalogRefreshInterval time.Duration
	CatalogTimeout         time.Duration

	KafkaBrokers   []string
	KafkaSinkTopic string
	KafkaEnabled   bool

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	reconnectDelay, err := parseDuration("FEED_RECONNECT_DELAY", "5s")
	if err != nil {
		return nil, err
	}

	hideDelay, err := parseDuration("ALERT_HIDE_DELAY", "10s")
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parseDuration("CATALOG_REFRESH_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}

	catalogTimeout, err := parseDuration("CATALOG_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	maxVisible, err := parsePositiveInt("ALERT_MAX_VISIBLE", 3)
	if err != nil {
		return nil, err
	}

	dedupSize, err := parsePositiveInt("ALERT_DEDUP_SIZE", 512)
	if err != nil {
		return nil, err
	}

	catalogURL := os.Getenv("CATALOG_URL")
	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		FeedURI:            envOrDefault("FEED_URI", "wss://www.seismicportal.eu/standing_order/websocket"),
		FeedReconnectDelay: reconnectDelay,
		FeedDedupSize:      dedupSize,

		AlertMaxVisible: maxVisible,
		AlertHideDelay:  hideDelay,

		CatalogURL:             catalogURL,
		CatalogEnabled:         catalogURL != "",
		CatalogRefreshInterval: refreshInterval,
		CatalogTimeout:         catalogTimeout,

		KafkaBrokers:   brokers,
		KafkaSinkTopic: envOrDefault("KAFKA_SINK_TOPIC", "quake-alerts"),
		KafkaEnabled:   len(brokers) > 0,

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.FeedURI == "" {
		return nil, errors.New("FEED_URI is required")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_BROKERS is set but KAFKA_SINK_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseBrokers(value string) []string {
	var brokers []string
	for _, b := range strings.Split(value, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
