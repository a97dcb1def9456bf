package repository

import (
	"context"
	"fmt"

	"github.com/Dotan-Peleh/currency-convertor/internal/domain/models"
	drepo "github.com/Dotan-Peleh/currency-convertor/internal/domain/repository"
	pkgkafka "github.com/Dotan-Peleh/currency-convertor/pkg/kafka"
)

// KafkaPricePublisher emits adopted price changes to a Kafka topic so
// downstream storefront sync jobs can react without polling the matrix.
type KafkaPricePublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaPricePublisher creates the publisher.
func NewKafkaPricePublisher(producer *pkgkafka.Producer, topic string) drepo.PricePublisher {
	return &KafkaPricePublisher{producer: producer, topic: topic}
}

// PublishUpdates publishes one message per adopted record, keyed by
// country:sku so updates for the same pair stay ordered per partition.
func (p *KafkaPricePublisher) PublishUpdates(ctx context.Context, updates []models.PriceUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(updates))
	for _, u := range updates {
		msgs = append(msgs, pkgkafka.Message{
			Key:   []byte(fmt.Sprintf("%s:%s", u.Country, u.AppleSKU)),
			Value: u,
		})
	}
	if err := p.producer.PublishBatch(ctx, p.topic, msgs); err != nil {
		return fmt.Errorf("publish price updates: %w", err)
	}
	return nil
}

func (p *KafkaPricePublisher) Close() error {
	return p.producer.Close()
}
