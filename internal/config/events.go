package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bp22013/english-speaking-app.Ver2-sub001/internal/events"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled           bool
	Publisher         string // "kafka" or "mock"
	KafkaBrokers      string // comma-separated broker list
	NotificationTopic string
}

// LoadEventConfig reads event publishing configuration from the environment
func LoadEventConfig() *EventConfig {
	return &EventConfig{
		Enabled:           getEnv("EVENTS_ENABLED", "false") == "true",
		Publisher:         getEnv("EVENTS_PUBLISHER", "mock"),
		KafkaBrokers:      getEnv("KAFKA_BROKERS", "localhost:9092"),
		NotificationTopic: getEnv("EVENTS_TOPIC", "vocab-training-events"),
	}
}

// GetKafkaBrokers splits the broker list into individual addresses
func (c *EventConfig) GetKafkaBrokers() []string {
	brokers := strings.Split(c.KafkaBrokers, ",")
	for i, broker := range brokers {
		brokers[i] = strings.TrimSpace(broker)
	}
	return brokers
}

// CreateEventPublisher builds an event publisher from the configuration.
// Disabled or unknown publishers fall back to the in-memory mock.
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		publisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.NotificationTopic,
			Logger:       logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Kafka event publisher: %w", err)
		}
		logger.Info("Created Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.NotificationTopic)
		return publisher, nil
	case "mock":
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil
	}
}
