// Package rabbitmq publishes ingest events for downstream consumers
// (model retraining, alerting). The publisher is optional: the pipeline
// runs with a noop implementation when no broker is configured.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type PublisherConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

type IngestEventPublisherAdapter struct {
	config     PublisherConfig
	connection *amqp.Connection
	channel    *amqp.Channel
}

type listingIngestedEvent struct {
	ListingID  int64     `json:"listing_id"`
	ListingURL string    `json:"listing_url"`
	IngestedAt time.Time `json:"ingested_at"`
}

func NewIngestEventPublisherAdapter(cfg PublisherConfig) (*IngestEventPublisherAdapter, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("producer: RabbitMQ URL is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("producer: failed to dial RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("producer: failed to open a channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("producer: failed to declare exchange '%s': %w", cfg.Exchange, err)
	}

	return &IngestEventPublisherAdapter{
		config:     cfg,
		connection: conn,
		channel:    ch,
	}, nil
}

func (a *IngestEventPublisherAdapter) PublishListingIngested(ctx context.Context, listingID int64, listingURL string) error {
	if a.channel == nil || a.connection == nil || a.connection.IsClosed() {
		return fmt.Errorf("producer: not connected or channel/connection is closed")
	}

	body, err := json.Marshal(listingIngestedEvent{
		ListingID:  listingID,
		ListingURL: listingURL,
		IngestedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("producer: failed to marshal event: %w", err)
	}

	err = a.channel.PublishWithContext(ctx,
		a.config.Exchange,
		a.config.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("producer: failed to publish event: %w", err)
	}
	return nil
}

func (a *IngestEventPublisherAdapter) Close() error {
	if a.channel != nil {
		_ = a.channel.Close()
	}
	if a.connection != nil {
		return a.connection.Close()
	}
	return nil
}
