package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/David070920/estimareimob/internal/adapters/publi24"
	"github.com/David070920/estimareimob/internal/adapters/urlfile"
	"github.com/David070920/estimareimob/internal/configs"
	"github.com/David070920/estimareimob/internal/contextkeys"
	"github.com/David070920/estimareimob/internal/core/port"
	usecases_port "github.com/David070920/estimareimob/internal/core/port/usecases"
	"github.com/David070920/estimareimob/internal/core/usecase"
	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/google/uuid"
)

// CrawlerApp is the composition root of the URL discovery binary.
type CrawlerApp struct {
	config       *configs.AppConfig
	logger       port.LoggerPort
	fluentClient *fluent.Fluent

	discoverListings usecases_port.DiscoverListingsPort
}

func NewCrawlerApp() (*CrawlerApp, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := initLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "crawler_app"})

	searchFetcher, err := publi24.NewSearchFetcherAdapter(publi24.SearchFetcherConfig{
		BaseURL:        appConfig.Crawler.BaseURL,
		Domain:         appConfig.Crawler.Domain,
		UserAgent:      appConfig.Crawler.UserAgent,
		RequestTimeout: appConfig.Crawler.RequestTimeout,
		DelayMin:       appConfig.Crawler.DelayMin,
		DelayMax:       appConfig.Crawler.DelayMax,
	})
	if err != nil {
		appLogger.Error("Failed to create search fetcher", err, nil)
		return nil, fmt.Errorf("failed to initialize search fetcher: %w", err)
	}

	urlStore := urlfile.NewURLFileAdapter(appConfig.Crawler.OutputFile)

	discoverListings, err := usecase.NewDiscoverListingsUseCase(searchFetcher, urlStore, appConfig.Crawler.MaxPages)
	if err != nil {
		appLogger.Error("Failed to create discover listings use case", err, nil)
		return nil, err
	}

	appLogger.Info("Crawler initialized", port.Fields{
		"base_url":  appConfig.Crawler.BaseURL,
		"max_pages": appConfig.Crawler.MaxPages,
		"output":    appConfig.Crawler.OutputFile,
	})

	return &CrawlerApp{
		config:           appConfig,
		logger:           baseLogger,
		fluentClient:     fluentClient,
		discoverListings: discoverListings,
	}, nil
}

// Run executes one discovery pass. SIGINT/SIGTERM cancel the crawl.
func (a *CrawlerApp) Run() error {
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	traceID := uuid.New().String()
	runLogger := a.logger.WithFields(port.Fields{"trace_id": traceID})
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)
	ctx = contextkeys.ContextWithLogger(ctx, runLogger)

	runLogger.Info("Starting URL discovery", nil)

	count, err := a.discoverListings.Execute(ctx)
	if err != nil {
		runLogger.Error("URL discovery failed", err, nil)
		return err
	}

	runLogger.Info("URL discovery complete", port.Fields{"unique_urls": count})
	return nil
}

func (a *CrawlerApp) Close() {
	if a.fluentClient != nil {
		_ = a.fluentClient.Close()
	}
}
