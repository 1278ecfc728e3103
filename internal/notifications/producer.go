package notifications

import (
	"context"
	"fmt"
	"time"

	"cineops/internal/shared/config"
	"cineops/pkg/logger"

	"github.com/IBM/sarama"
)

// Publisher delivers domain events. Callers treat a failed publish as
// non-fatal: the business change has already committed.
type Publisher interface {
	Publish(ctx context.Context, event *DomainEvent) error
	Close() error
}

// NewPublisher returns a Kafka publisher when Kafka is enabled, and a log
// publisher otherwise.
func NewPublisher(cfg config.KafkaConfig) (Publisher, error) {
	if !cfg.Enabled {
		return NewLogPublisher(logger.GetDefault()), nil
	}
	publisher, err := NewKafkaPublisher(cfg)
	if err != nil {
		return nil, err
	}
	return publisher, nil
}

// KafkaPublisher writes events to a single topic through a sarama SyncProducer.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func newSaramaConfig(cfg config.KafkaConfig) *sarama.Config {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.ClientID

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = cfg.RetryMax
	saramaConfig.Producer.Timeout = cfg.Timeout

	// idempotent producers require a single in-flight request
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	return saramaConfig
}

func NewKafkaPublisher(cfg config.KafkaConfig) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, cfg.Topic), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer.
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		log:      logger.GetDefault(),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event *DomainEvent) error {
	value, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.PartitionKey()),
		Value:     sarama.ByteEncoder(value),
		Headers:   headers(event),
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send %s event to Kafka: %w", event.Type, err)
	}

	p.log.DebugWithContext(ctx, "Event Published", map[string]interface{}{
		"event_type": string(event.Type),
		"event_id":   event.ID.String(),
		"topic":      p.topic,
		"partition":  partition,
		"offset":     offset,
	})
	return nil
}

func headers(event *DomainEvent) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(event.Type)},
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("occurred_at"), Value: []byte(event.OccurredAt.Format(time.RFC3339Nano))},
	}
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// LogPublisher records events in the application log.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, event *DomainEvent) error {
	p.log.InfoWithContext(ctx, "Domain Event", map[string]interface{}{
		"event_type":   string(event.Type),
		"event_id":     event.ID.String(),
		"aggregate_id": event.AggregateID,
		"payload":      event.Payload,
	})
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}

// PublishAfterCommit sends event and logs a failure instead of returning it.
func PublishAfterCommit(ctx context.Context, publisher Publisher, event *DomainEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to publish event", err, map[string]interface{}{
			"event_type": string(event.Type),
			"event_id":   event.ID.String(),
		})
	}
}
