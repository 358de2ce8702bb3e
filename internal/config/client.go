package config

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"
)

// Dataset attribute names read from the toggle button (data-*).
const (
	AttrURL                  = "url"
	AttrGroup                = "group"
	AttrWorker               = "worker"
	AttrApplicationServerKey = "application-server-key"
	AttrLogLevel             = "log-level"
	AttrTimeout              = "timeout"
	AttrRetries              = "retries"
)

const defaultWorkerScript = "/service-worker.js"

var ErrMissingURL = errors.New("toggle button has no data-url attribute")

// Client is the in-page configuration of the subscription controller.
type Client struct {
	EndpointURL          string
	Group                string
	WorkerScriptURL      string
	ApplicationServerKey string
	LogLevel             string
	RequestTimeout       time.Duration
	RetryMaxAttempts     int
	RetryInitialBackoff  time.Duration
	// Messages are host overrides for the message catalog.
	Messages map[string]string
}

// ClientFromDataset builds the client configuration from the button's data
// attributes and the host-provided message overrides.
func ClientFromDataset(dataset map[string]string, messages map[string]string) (*Client, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(dataset[key]); v != "" {
			return v
		}
		return def
	}

	cfg := &Client{
		EndpointURL:          get(AttrURL, ""),
		Group:                get(AttrGroup, ""),
		WorkerScriptURL:      get(AttrWorker, defaultWorkerScript),
		ApplicationServerKey: get(AttrApplicationServerKey, ""),
		LogLevel:             get(AttrLogLevel, "info"),
		RequestTimeout:       parseDuration(AttrTimeout, get(AttrTimeout, ""), 10*time.Second),
		RetryMaxAttempts:     parseInt(AttrRetries, get(AttrRetries, ""), 1),
		RetryInitialBackoff:  500 * time.Millisecond,
		Messages:             messages,
	}
	if cfg.EndpointURL == "" {
		return nil, ErrMissingURL
	}
	return cfg, nil
}

func parseInt(key, raw string, def int) int {
	if raw == "" {
		return def
	}
	i, err := strconv.Atoi(raw)
	if err != nil || i <= 0 {
		log.Printf("invalid int for data-%s, using default %d: %v", key, def, err)
		return def
	}
	return i
}

func parseDuration(key, raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("invalid duration for data-%s, using default %s: %v", key, def, err)
		return def
	}
	return d
}
