package usecase

import (
	"context"

	"QuantLab/internal/domain/models"
	"QuantLab/pkg/kafka"
)

// KafkaAnomalyFeed publishes detected anomalies to a Kafka topic, one
// message per anomaly keyed by asset symbol.
type KafkaAnomalyFeed struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaAnomalyFeed creates the feed.
func NewKafkaAnomalyFeed(producer *kafka.Producer, topic string) *KafkaAnomalyFeed {
	return &KafkaAnomalyFeed{producer: producer, topic: topic}
}

// Publish sends each anomaly as its own message. The first publish error
// aborts the batch.
func (f *KafkaAnomalyFeed) Publish(ctx context.Context, anomalies []models.Anomaly) error {
	for _, a := range anomalies {
		if err := f.producer.Publish(ctx, f.topic, []byte(a.Asset), a); err != nil {
			return err
		}
	}
	return nil
}
