//go:build js && wasm

package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/browser"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/config"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/subscriber"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/pkg/logger"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/pkg/retry"
)

func main() {
	page, err := browser.LookupPage()
	if err != nil {
		log.Fatalf("page error: %v", err)
	}

	dataset := page.Dataset(
		config.AttrURL,
		config.AttrGroup,
		config.AttrWorker,
		config.AttrApplicationServerKey,
		config.AttrLogLevel,
		config.AttrTimeout,
		config.AttrRetries,
	)
	if dataset[config.AttrWorker] == "" {
		if src := browser.WorkerScript(); src != "" {
			dataset[config.AttrWorker] = src
		}
	}
	cfg, err := config.ClientFromDataset(dataset, browser.HostMessages())
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logr := logger.New(cfg.LogLevel)
	logr.Info("starting push subscriber",
		slog.String("endpoint", cfg.EndpointURL),
		slog.String("group", cfg.Group))

	remote := subscriber.NewRemoteSyncClient(cfg.EndpointURL, cfg.RequestTimeout, retry.Config{
		MaxAttempts:    cfg.RetryMaxAttempts,
		InitialBackoff: cfg.RetryInitialBackoff,
	})
	controller := subscriber.NewController(
		browser.NewPlatform(),
		page,
		remote,
		subscriber.NewCatalog(cfg.Messages),
		logr,
		subscriber.Options{
			WorkerScriptURL:      cfg.WorkerScriptURL,
			Group:                cfg.Group,
			ApplicationServerKey: cfg.ApplicationServerKey,
			StartDisabled:        page.ButtonDisabled(),
			InitialButtonText:    page.ButtonText(),
		},
	)

	ctx := context.Background()
	page.OnClick(ctx, controller.OnToggleClicked)

	go controller.Start(ctx)

	select {}
}
