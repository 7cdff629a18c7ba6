package port

import "context"

// IngestEventPublisherPort announces successfully persisted listings to
// downstream consumers. Publishing is best-effort: the pipeline logs
// failures and moves on.
type IngestEventPublisherPort interface {
	PublishListingIngested(ctx context.Context, listingID int64, listingURL string) error
	Close() error
}

// NoopIngestEventPublisher is used when no broker is configured.
type NoopIngestEventPublisher struct{}

func (p *NoopIngestEventPublisher) PublishListingIngested(ctx context.Context, listingID int64, listingURL string) error {
	return nil
}

func (p *NoopIngestEventPublisher) Close() error { return nil }
