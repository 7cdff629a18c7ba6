package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/David070920/estimareimob/internal/adapters/geocoding"
	postgres_adapter "github.com/David070920/estimareimob/internal/adapters/postgres"
	"github.com/David070920/estimareimob/internal/adapters/publi24"
	rabbitmq_adapter "github.com/David070920/estimareimob/internal/adapters/rabbitmq"
	"github.com/David070920/estimareimob/internal/adapters/urlfile"
	"github.com/David070920/estimareimob/internal/configs"
	"github.com/David070920/estimareimob/internal/contextkeys"
	"github.com/David070920/estimareimob/internal/core/port"
	usecases_port "github.com/David070920/estimareimob/internal/core/port/usecases"
	"github.com/David070920/estimareimob/internal/core/usecase"
	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PipelineApp is the composition root of the ingestion binary.
type PipelineApp struct {
	config         *configs.AppConfig
	logger         port.LoggerPort
	fluentClient   *fluent.Fluent
	dbPool         *pgxpool.Pool
	eventPublisher port.IngestEventPublisherPort

	urlStore       port.URLStorePort
	ingestListings usecases_port.IngestListingsPort
}

func NewPipelineApp() (*PipelineApp, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := initLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "pipeline_app"})

	dbPool, err := postgres_adapter.NewClient(context.Background(), postgres_adapter.Config{
		DatabaseURL: appConfig.Database.URL,
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool", nil)

	repository, err := postgres_adapter.NewListingRepositoryAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	extractor, err := publi24.NewListingFetcherAdapter(publi24.ListingFetcherConfig{
		UserAgent:      appConfig.Crawler.UserAgent,
		RequestTimeout: appConfig.Parser.RequestTimeout,
		Delay:          appConfig.Parser.Delay,
		DebugFile:      appConfig.Parser.DebugFile,
	})
	if err != nil {
		appLogger.Error("Failed to create listing fetcher", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to initialize listing fetcher: %w", err)
	}

	geocoder := geocoding.NewNominatimAdapter(geocoding.NominatimConfig{
		UserAgent: appConfig.Geocoder.UserAgent,
		Delay:     appConfig.Geocoder.Delay,
	})

	// Event publishing is an optional tap; without a broker URL the
	// pipeline runs standalone.
	var eventPublisher port.IngestEventPublisherPort = &port.NoopIngestEventPublisher{}
	if appConfig.RabbitMQ.URL != "" {
		publisher, err := rabbitmq_adapter.NewIngestEventPublisherAdapter(rabbitmq_adapter.PublisherConfig{
			URL:        appConfig.RabbitMQ.URL,
			Exchange:   appConfig.RabbitMQ.Exchange,
			RoutingKey: appConfig.RabbitMQ.RoutingKey,
		})
		if err != nil {
			appLogger.Error("Failed to create ingest event publisher", err, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to initialize ingest event publisher: %w", err)
		}
		eventPublisher = publisher
		appLogger.Info("RabbitMQ ingest event publisher initialized", port.Fields{
			"exchange": appConfig.RabbitMQ.Exchange,
		})
	}

	ingestListings, err := usecase.NewIngestListingsUseCase(
		extractor, geocoder, repository, eventPublisher, appConfig.Pipeline.Delay,
	)
	if err != nil {
		appLogger.Error("Failed to create ingest listings use case", err, nil)
		_ = eventPublisher.Close()
		dbPool.Close()
		return nil, err
	}

	appLogger.Info("Pipeline initialized", port.Fields{
		"input_file": appConfig.Pipeline.InputFile,
	})

	return &PipelineApp{
		config:         appConfig,
		logger:         baseLogger,
		fluentClient:   fluentClient,
		dbPool:         dbPool,
		eventPublisher: eventPublisher,
		urlStore:       urlfile.NewURLFileAdapter(appConfig.Pipeline.InputFile),
		ingestListings: ingestListings,
	}, nil
}

// Run ingests the whole URL batch. A missing input file is fatal; a
// failing URL is not.
func (a *PipelineApp) Run() error {
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	traceID := uuid.New().String()
	runLogger := a.logger.WithFields(port.Fields{"trace_id": traceID})
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)
	ctx = contextkeys.ContextWithLogger(ctx, runLogger)

	listingURLs, err := a.urlStore.LoadURLs()
	if err != nil {
		runLogger.Error("Failed to load listing URLs, run the crawler first", err, port.Fields{
			"input_file": a.config.Pipeline.InputFile,
		})
		return err
	}

	runLogger.Info("Starting ingestion run", port.Fields{"url_count": len(listingURLs)})

	stats, err := a.ingestListings.Execute(ctx, listingURLs)
	if err != nil {
		runLogger.Error("Ingestion run aborted", err, nil)
		return err
	}

	runLogger.Info("Ingestion run complete", port.Fields{
		"total":          stats.Total,
		"saved":          stats.Saved,
		"duplicates":     stats.Duplicates,
		"failed":         stats.Failed,
		"geocode_misses": stats.GeocodeMisses,
	})
	return nil
}

func (a *PipelineApp) Close() {
	if a.eventPublisher != nil {
		_ = a.eventPublisher.Close()
	}
	if a.dbPool != nil {
		a.dbPool.Close()
	}
	if a.fluentClient != nil {
		_ = a.fluentClient.Close()
	}
}
